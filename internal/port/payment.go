package port

import (
	"context"

	"github.com/nikolayk812/shopcart/internal/domain"
)

type PaymentIntentStatus string

const (
	PaymentIntentStatusPending   PaymentIntentStatus = "pending"
	PaymentIntentStatusSucceeded PaymentIntentStatus = "succeeded"
	PaymentIntentStatusFailed    PaymentIntentStatus = "failed"
	PaymentIntentStatusCanceled  PaymentIntentStatus = "canceled"
)

type PaymentIntent struct {
	ID           string
	ClientSecret string
	Amount       domain.Money
	Status       PaymentIntentStatus
	Metadata     map[string]string
}

type Refund struct {
	ID       string
	IntentID string
	Amount   domain.Money
}

// PaymentGateway is implemented by a payment provider adapter.
// No adapter ships with this module.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, amount domain.Money, metadata map[string]string) (PaymentIntent, error)
	GetPaymentIntent(ctx context.Context, intentID string) (PaymentIntent, error)

	// Refund refunds the whole intent when amount is nil.
	Refund(ctx context.Context, intentID string, amount *domain.Money) (Refund, error)
}
