package ports

import (
	"context"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
)

// PaymentRepository defines persistence operations for derived payment
// records. There is no update: payments are immutable snapshots.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	List(ctx context.Context) ([]*domain.Payment, error)
	// FindByInvoiceID returns the payment derived from the given invoice, or
	// ErrPaymentNotFound.
	FindByInvoiceID(ctx context.Context, invoiceID string) (*domain.Payment, error)
	Delete(ctx context.Context, id string) error
}

// PaymentService exposes read access to derived payment records.
type PaymentService interface {
	Get(ctx context.Context, id string) (*domain.Payment, error)
	List(ctx context.Context) ([]*domain.Payment, error)
	Delete(ctx context.Context, id string) error
}
