package http

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type MoneyDTO struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type AddressDTO struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type CreateProductRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         MoneyDTO `json:"price"`
	SKU           string   `json:"sku"`
	StockQuantity int      `json:"stockQuantity"`
}

type UpdatePriceRequest struct {
	Price MoneyDTO `json:"price"`
}

type UpdateStockRequest struct {
	StockQuantity int `json:"stockQuantity"`
}

type SetActiveRequest struct {
	IsActive bool `json:"isActive"`
}

type ProductDTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         MoneyDTO  `json:"price"`
	SKU           string    `json:"sku"`
	StockQuantity int       `json:"stockQuantity"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type AddToCartRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

type AddToCartResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	TotalItems  int    `json:"totalItems"`
	TotalAmount string `json:"totalAmount"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CartItemDTO struct {
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	UnitPrice   MoneyDTO  `json:"unitPrice"`
	LineTotal   MoneyDTO  `json:"lineTotal"`
	AddedAt     time.Time `json:"addedAt"`
}

type CartDTO struct {
	ID         uuid.UUID     `json:"id"`
	UserID     string        `json:"userId"`
	Items      []CartItemDTO `json:"items"`
	TotalItems int           `json:"totalItems"`
	Total      MoneyDTO      `json:"total"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

type CheckoutRequest struct {
	ShippingAddress AddressDTO `json:"shippingAddress"`
	BillingAddress  AddressDTO `json:"billingAddress"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type OrderItemDTO struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	UnitPrice   MoneyDTO  `json:"unitPrice"`
}

type OrderDTO struct {
	ID              uuid.UUID      `json:"id"`
	UserID          string         `json:"userId"`
	Status          string         `json:"status"`
	ShippingAddress AddressDTO     `json:"shippingAddress"`
	BillingAddress  AddressDTO     `json:"billingAddress"`
	Items           []OrderItemDTO `json:"items"`
	SubTotal        MoneyDTO       `json:"subTotal"`
	TaxAmount       MoneyDTO       `json:"taxAmount"`
	ShippingAmount  MoneyDTO       `json:"shippingAmount"`
	TotalAmount     MoneyDTO       `json:"totalAmount"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

func mapMoneyToDomain(dto MoneyDTO) (domain.Money, error) {
	amount, err := decimal.NewFromString(dto.Amount)
	if err != nil {
		return domain.Money{}, fmt.Errorf("amount[%s] is not valid: %w", dto.Amount, err)
	}

	unit, err := currency.ParseISO(dto.Currency)
	if err != nil {
		return domain.Money{}, fmt.Errorf("currency[%s] is not valid: %w", dto.Currency, err)
	}

	return domain.NewMoney(amount, unit), nil
}

func mapMoneyToDTO(m domain.Money) MoneyDTO {
	return MoneyDTO{
		Amount:   m.Amount.StringFixed(2),
		Currency: m.Currency.String(),
	}
}

func mapAddressToDomain(dto AddressDTO) domain.Address {
	return domain.NewAddress(dto.Street, dto.City, dto.State, dto.ZipCode, dto.Country)
}

func mapAddressToDTO(a domain.Address) AddressDTO {
	return AddressDTO{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
		Country: a.Country,
	}
}

func mapProductToDTO(p domain.Product) ProductDTO {
	return ProductDTO{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         mapMoneyToDTO(p.Price),
		SKU:           p.SKU,
		StockQuantity: p.StockQuantity,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func mapCartToDTO(cart *domain.Cart) CartDTO {
	return CartDTO{
		ID:     cart.ID(),
		UserID: cart.UserID(),
		Items: lo.Map(cart.Items(), func(item domain.CartItem, _ int) CartItemDTO {
			return CartItemDTO{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				UnitPrice:   mapMoneyToDTO(item.UnitPrice),
				LineTotal:   mapMoneyToDTO(item.LineTotal()),
				AddedAt:     item.AddedAt,
			}
		}),
		TotalItems: cart.TotalItems(),
		Total:      mapMoneyToDTO(cart.Total()),
		UpdatedAt:  cart.UpdatedAt(),
	}
}

func mapOrderToDTO(order *domain.Order) OrderDTO {
	return OrderDTO{
		ID:              order.ID(),
		UserID:          order.UserID(),
		Status:          string(order.Status()),
		ShippingAddress: mapAddressToDTO(order.ShippingAddress()),
		BillingAddress:  mapAddressToDTO(order.BillingAddress()),
		Items: lo.Map(order.Items(), func(item domain.OrderItem, _ int) OrderItemDTO {
			return OrderItemDTO{
				ID:          item.ID,
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				UnitPrice:   mapMoneyToDTO(item.UnitPrice),
			}
		}),
		SubTotal:       mapMoneyToDTO(order.SubTotal()),
		TaxAmount:      mapMoneyToDTO(order.TaxAmount()),
		ShippingAmount: mapMoneyToDTO(order.ShippingAmount()),
		TotalAmount:    mapMoneyToDTO(order.TotalAmount()),
		CreatedAt:      order.CreatedAt(),
		UpdatedAt:      order.UpdatedAt(),
	}
}
