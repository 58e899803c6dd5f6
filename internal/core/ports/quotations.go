package ports

import (
	"context"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
)

// QuotationRepository defines persistence operations for quotations.
type QuotationRepository interface {
	Create(ctx context.Context, q *domain.Quotation) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Quotation, error)
	List(ctx context.Context) ([]*domain.Quotation, error)
	// UpdateStatus overwrites only the status field.
	UpdateStatus(ctx context.Context, id string, status domain.QuotationStatus) error
	// SetPDFFileName records the filename of the last rendered document.
	SetPDFFileName(ctx context.Context, id, filename string) error
	Delete(ctx context.Context, id string) error
}

// LineItemInput is a caller-supplied line; any amount the caller computed is
// ignored and recomputed server-side.
type LineItemInput struct {
	Description string
	Quantity    int
	UnitPrice   float64
}

// CreateQuotationInput carries the data for a new quotation.
type CreateQuotationInput struct {
	ClientName  string
	CompanyName string
	Email       string
	Phone       string
	Address     string
	Notes       string
	Items       []LineItemInput
}

// QuoteSequence issues monotonically increasing, collision-free quote
// numbers. No number is consumed when Next fails.
type QuoteSequence interface {
	Next(ctx context.Context) (int64, error)
}

// QuotationService defines use-case operations for quotations, including the
// token-authorised status callback that runs without a session.
type QuotationService interface {
	Create(ctx context.Context, input CreateQuotationInput) (*domain.Quotation, error)
	Get(ctx context.Context, id string) (*domain.Quotation, error)
	List(ctx context.Context) ([]*domain.Quotation, error)
	UpdateStatus(ctx context.Context, id string, status domain.QuotationStatus) error
	Delete(ctx context.Context, id string) error
	// Render produces the quotation PDF and records its filename.
	Render(ctx context.Context, id string) (pdf []byte, filename string, err error)
	// Send renders the quotation and emails it to the client with the
	// accept/decline capability links.
	Send(ctx context.Context, id string) error
	// UpdateStatusByToken mutates status authorised solely by the capability
	// token; it is the second lifecycle entry point, reached from emailed
	// links with no session.
	UpdateStatusByToken(ctx context.Context, id string, status domain.QuotationStatus, token string) error
}
