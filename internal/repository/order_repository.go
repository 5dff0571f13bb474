package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcart/internal/db"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/port"
)

type orderRepository struct {
	q    *db.Queries
	dbtx db.DBTX
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{
		q:    db.New(pool),
		dbtx: pool,
	}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		dbtx: tx,
	}
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	if orderID == uuid.Nil {
		return nil, fmt.Errorf("orderID is empty")
	}

	order, err := withTx(ctx, r.dbtx, func(q *db.Queries) (*domain.Order, error) {
		dbOrder, err := q.GetOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("q.GetOrder: %w", ErrNotFound)
			}
			return nil, fmt.Errorf("q.GetOrder: %w", err)
		}

		dbOrderItems, err := q.GetOrderItems(ctx, orderID)
		if err != nil {
			return nil, fmt.Errorf("q.GetOrderItems: %w", err)
		}

		items, err := mapOrderItemsToDomain(dbOrderItems)
		if err != nil {
			return nil, fmt.Errorf("mapOrderItemsToDomain: %w", err)
		}

		order, err := mapOrderToDomain(dbOrder, items)
		if err != nil {
			return nil, fmt.Errorf("mapOrderToDomain: %w", err)
		}

		return order, nil
	})
	if err != nil {
		return nil, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID is empty")
	}

	rows, err := r.q.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("q.ListOrdersByUser: %w", err)
	}

	// rows arrive newest order first, items of one order next to each other
	var (
		ids     []uuid.UUID
		headers = make(map[uuid.UUID]db.Order)
		items   = make(map[uuid.UUID][]domain.OrderItem)
	)

	for _, row := range rows {
		if _, exists := headers[row.ID]; !exists {
			ids = append(ids, row.ID)
			headers[row.ID] = mapListOrdersByUserRowToDBOrder(row)
		}

		item, err := mapListOrdersByUserRowToDomainItem(row)
		if err != nil {
			return nil, fmt.Errorf("mapListOrdersByUserRowToDomainItem: %w", err)
		}

		items[row.ID] = append(items[row.ID], item)
	}

	orders := make([]*domain.Order, 0, len(ids))
	for _, id := range ids {
		order, err := mapOrderToDomain(headers[id], items[id])
		if err != nil {
			return nil, fmt.Errorf("mapOrderToDomain: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func (r *orderRepository) InsertOrder(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return fmt.Errorf("order is nil")
	}

	state := order.State()
	if len(state.Items) == 0 {
		return errors.New("no items in order")
	}

	_, err := withTx(ctx, r.dbtx, func(q *db.Queries) (struct{}, error) {
		var none struct{}

		if err := q.InsertOrder(ctx, mapDomainOrderToInsertParams(state)); err != nil {
			if isUniqueViolation(err) {
				return none, fmt.Errorf("q.InsertOrder: %w", ErrAlreadyExists)
			}
			return none, fmt.Errorf("q.InsertOrder: %w", err)
		}

		// TODO: batch the item inserts with pgx.Batch
		for i, item := range state.Items {
			arg := db.InsertOrderItemParams{
				ID:            item.ID,
				OrderID:       state.ID,
				Position:      int32(i),
				ProductID:     item.ProductID,
				Quantity:      int32(item.Quantity),
				PriceAmount:   item.UnitPrice.Amount,
				PriceCurrency: item.UnitPrice.Currency.String(),
				ProductName:   item.ProductName,
			}
			if err := q.InsertOrderItem(ctx, arg); err != nil {
				return none, fmt.Errorf("q.InsertOrderItem: %w", err)
			}
		}

		return none, nil
	})
	if err != nil {
		return fmt.Errorf("withTx: %w", err)
	}

	return nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return fmt.Errorf("order is nil")
	}

	rowsAffected, err := r.q.UpdateOrderStatus(ctx, db.UpdateOrderStatusParams{
		ID:        order.ID(),
		Status:    string(order.Status()),
		UpdatedAt: order.UpdatedAt(),
		Version:   order.Version(),
	})
	if err != nil {
		return fmt.Errorf("q.UpdateOrderStatus: %w", err)
	}

	if rowsAffected == 0 {
		exists, err := r.q.OrderExists(ctx, order.ID())
		if err != nil {
			return fmt.Errorf("q.OrderExists: %w", err)
		}
		if !exists {
			return fmt.Errorf("q.UpdateOrderStatus: %w", ErrNotFound)
		}
		return fmt.Errorf("q.UpdateOrderStatus: %w", ErrConcurrentUpdate)
	}

	return nil
}

func mapDomainOrderToInsertParams(s domain.OrderState) db.InsertOrderParams {
	return db.InsertOrderParams{
		ID:              s.ID,
		UserID:          s.UserID,
		Status:          string(s.Status),
		ShippingStreet:  s.ShippingAddress.Street,
		ShippingCity:    s.ShippingAddress.City,
		ShippingState:   s.ShippingAddress.State,
		ShippingZipCode: s.ShippingAddress.ZipCode,
		ShippingCountry: s.ShippingAddress.Country,
		BillingStreet:   s.BillingAddress.Street,
		BillingCity:     s.BillingAddress.City,
		BillingState:    s.BillingAddress.State,
		BillingZipCode:  s.BillingAddress.ZipCode,
		BillingCountry:  s.BillingAddress.Country,
		Currency:        s.TotalAmount.Currency.String(),
		SubTotal:        s.SubTotal.Amount,
		TaxAmount:       s.TaxAmount.Amount,
		ShippingAmount:  s.ShippingAmount.Amount,
		TotalAmount:     s.TotalAmount.Amount,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func mapOrderItemToDomain(row db.OrderItem) (domain.OrderItem, error) {
	price, err := mapMoneyToDomain(row.PriceAmount, row.PriceCurrency)
	if err != nil {
		return domain.OrderItem{}, err
	}

	return domain.OrderItem{
		ID:          row.ID,
		ProductID:   row.ProductID,
		Quantity:    int(row.Quantity),
		UnitPrice:   price,
		ProductName: row.ProductName,
	}, nil
}

func mapOrderItemsToDomain(rows []db.OrderItem) ([]domain.OrderItem, error) {
	items := make([]domain.OrderItem, 0, len(rows))

	for _, row := range rows {
		item, err := mapOrderItemToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapOrderItemToDomain: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}

func mapOrderToDomain(dbOrder db.Order, items []domain.OrderItem) (*domain.Order, error) {
	status, err := domain.ToOrderStatus(dbOrder.Status)
	if err != nil {
		return nil, fmt.Errorf("domain.ToOrderStatus: %w", err)
	}

	subTotal, err := mapMoneyToDomain(dbOrder.SubTotal, dbOrder.Currency)
	if err != nil {
		return nil, fmt.Errorf("sub total: %w", err)
	}

	// one currency per order, parsed above
	unit := subTotal.Currency

	order, err := domain.RestoreOrder(domain.OrderState{
		ID:     dbOrder.ID,
		UserID: dbOrder.UserID,
		Status: status,
		ShippingAddress: domain.NewAddress(dbOrder.ShippingStreet, dbOrder.ShippingCity,
			dbOrder.ShippingState, dbOrder.ShippingZipCode, dbOrder.ShippingCountry),
		BillingAddress: domain.NewAddress(dbOrder.BillingStreet, dbOrder.BillingCity,
			dbOrder.BillingState, dbOrder.BillingZipCode, dbOrder.BillingCountry),
		Items:          items,
		SubTotal:       subTotal,
		TaxAmount:      domain.NewMoney(dbOrder.TaxAmount, unit),
		ShippingAmount: domain.NewMoney(dbOrder.ShippingAmount, unit),
		TotalAmount:    domain.NewMoney(dbOrder.TotalAmount, unit),
		Version:        dbOrder.Version,
		CreatedAt:      dbOrder.CreatedAt,
		UpdatedAt:      dbOrder.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("domain.RestoreOrder: %w", err)
	}

	return order, nil
}

func mapListOrdersByUserRowToDBOrder(row db.ListOrdersByUserRow) db.Order {
	return db.Order{
		ID:              row.ID,
		UserID:          row.UserID,
		Status:          row.Status,
		ShippingStreet:  row.ShippingStreet,
		ShippingCity:    row.ShippingCity,
		ShippingState:   row.ShippingState,
		ShippingZipCode: row.ShippingZipCode,
		ShippingCountry: row.ShippingCountry,
		BillingStreet:   row.BillingStreet,
		BillingCity:     row.BillingCity,
		BillingState:    row.BillingState,
		BillingZipCode:  row.BillingZipCode,
		BillingCountry:  row.BillingCountry,
		Currency:        row.Currency,
		SubTotal:        row.SubTotal,
		TaxAmount:       row.TaxAmount,
		ShippingAmount:  row.ShippingAmount,
		TotalAmount:     row.TotalAmount,
		Version:         row.Version,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func mapListOrdersByUserRowToDomainItem(row db.ListOrdersByUserRow) (domain.OrderItem, error) {
	return mapOrderItemToDomain(db.OrderItem{
		ID:            row.ItemID,
		OrderID:       row.ID,
		ProductID:     row.ProductID,
		Quantity:      row.Quantity,
		PriceAmount:   row.PriceAmount,
		PriceCurrency: row.PriceCurrency,
		ProductName:   row.ProductName,
	})
}
