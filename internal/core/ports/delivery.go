package ports

import (
	"context"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
)

// DocumentRenderer fills the office template for an entity and produces a
// PDF plus a filesystem-safe filename. Rendering is deterministic for
// identical input.
type DocumentRenderer interface {
	RenderQuotation(ctx context.Context, q *domain.Quotation) (pdf []byte, filename string, err error)
	RenderInvoice(ctx context.Context, inv *domain.Invoice) (pdf []byte, filename string, err error)
}

// Message is a single outbound email.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
	// Attachment is an optional PDF, sent when non-empty.
	Attachment     []byte
	AttachmentName string
}

// Notifier sends a templated email over the SMTP relay. Delivery is
// best-effort and synchronous, with no queue and no retry: the caller sees
// the failure immediately and may retry the whole operation.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// TokenGuard marks capability tokens as spent so an emailed link is acted on
// at most once per (entity, status) pair.
type TokenGuard interface {
	Used(ctx context.Context, entityID, status string) (bool, error)
	MarkUsed(ctx context.Context, entityID, status string) error
}
