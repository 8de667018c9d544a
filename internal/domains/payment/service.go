package payment

import (
	"context"

	"github.com/google/uuid"
)

// Service is the payment business logic contract.
type Service interface {
	CreatePayment(ctx context.Context, userID uuid.UUID, email, role string, req CreatePaymentRequest) (*Payment, error)
	ListPayments(ctx context.Context, userID uuid.UUID, email, role string) ([]*Payment, error)
	GetPayment(ctx context.Context, userID uuid.UUID, email, role string, paymentID uuid.UUID) (*Payment, error)
}
