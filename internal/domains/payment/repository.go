package payment

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the payment data access contract.
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	// ListByClient returns the client's payments, newest first.
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*Payment, error)
}
