package ports

import (
	"context"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
)

// InvoiceRepository defines persistence operations for invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	List(ctx context.Context) ([]*domain.Invoice, error)
	UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) error
	SetPDFFileName(ctx context.Context, id, filename string) error
	Delete(ctx context.Context, id string) error
}

// CreateInvoiceInput carries the data for a new invoice.
type CreateInvoiceInput struct {
	ClientName    string
	CompanyName   string
	Email         string
	Phone         string
	Address       string
	InvoiceNumber string
	QuoteNumber   string
	Items         []LineItemInput
}

// StatusChangeResult reports the outcome of an invoice status change. The
// status write and the derived Payment write are independent: when the
// Payment fails, the status change has already committed and PaymentErr
// carries the failure for the caller to log or escalate.
type StatusChangeResult struct {
	Status         domain.InvoiceStatus
	PaymentID      string
	PaymentCreated bool
	PaymentErr     error
}

// InvoiceService defines use-case operations for invoices.
type InvoiceService interface {
	Create(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error)
	Get(ctx context.Context, id string) (*domain.Invoice, error)
	List(ctx context.Context) ([]*domain.Invoice, error)
	// UpdateStatus transitions the invoice. Unpaid→Paid synthesises exactly
	// one Payment snapshot; Paid→Paid does not create another.
	UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) (*StatusChangeResult, error)
	Delete(ctx context.Context, id string) error
	Render(ctx context.Context, id string) (pdf []byte, filename string, err error)
	Send(ctx context.Context, id string) error
	// MarkPaidByToken is the capability-URL entry point mirroring the
	// quotation callback.
	MarkPaidByToken(ctx context.Context, id, token string) (*StatusChangeResult, error)
}
