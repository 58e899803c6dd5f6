package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
	"github.com/elevate-digital/bizdesk/internal/core/ports"
)

type InvoiceService struct {
	repo     ports.InvoiceRepository
	payments ports.PaymentRepository
	renderer ports.DocumentRenderer
	notifier ports.Notifier
	guard    ports.TokenGuard
	baseURL  string
	logger   zerolog.Logger
}

func NewInvoiceService(
	repo ports.InvoiceRepository,
	payments ports.PaymentRepository,
	renderer ports.DocumentRenderer,
	notifier ports.Notifier,
	guard ports.TokenGuard,
	baseURL string,
	logger zerolog.Logger,
) *InvoiceService {
	return &InvoiceService{
		repo:     repo,
		payments: payments,
		renderer: renderer,
		notifier: notifier,
		guard:    guard,
		baseURL:  baseURL,
		logger:   logger,
	}
}

// Create recomputes every line amount and attaches a fresh capability token
// before persisting. The invoice number is operator-supplied, unlike the
// sequenced quote number.
func (s *InvoiceService) Create(ctx context.Context, input ports.CreateInvoiceInput) (*domain.Invoice, error) {
	items, total, err := buildLineItems(input.Items)
	if err != nil {
		return nil, err
	}

	token, err := newSecureToken()
	if err != nil {
		return nil, err
	}

	inv := &domain.Invoice{
		ClientName:    input.ClientName,
		CompanyName:   input.CompanyName,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		InvoiceNumber: input.InvoiceNumber,
		QuoteNumber:   input.QuoteNumber,
		Items:         items,
		TotalAmount:   total,
		Status:        domain.InvoiceUnpaid,
		SecureToken:   token,
		CreatedAt:     time.Now().UTC(),
	}

	id, err := s.repo.Create(ctx, inv)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create invoice")
		return nil, err
	}
	inv.ID = id

	s.logger.Info().Str("invoice_id", id).Str("invoice_number", inv.InvoiceNumber).Msg("invoice created")
	return inv, nil
}

func (s *InvoiceService) Get(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *InvoiceService) List(ctx context.Context) ([]*domain.Invoice, error) {
	return s.repo.List(ctx)
}

// UpdateStatus transitions the invoice. Reaching Paid from Unpaid synthesises
// the derived Payment snapshot from the invoice's current values. The two
// writes are independent: the status commit stands even when the Payment
// write fails, and the failure travels back in the result for the caller to
// log or escalate. Paid→Paid does not create a second Payment.
func (s *InvoiceService) UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) (*ports.StatusChangeResult, error) {
	if !domain.ValidInvoiceStatus(status) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	wasPaid := inv.Status == domain.InvoicePaid

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	result := &ports.StatusChangeResult{Status: status}
	if status == domain.InvoicePaid && !wasPaid {
		paymentID, perr := s.createPayment(ctx, inv)
		if perr != nil {
			// At-most-once best effort: the status change has committed.
			s.logger.Error().Err(perr).Str("invoice_id", id).Msg("invoice marked paid but payment record failed")
			result.PaymentErr = perr
		} else {
			result.PaymentID = paymentID
			result.PaymentCreated = true
		}
	}

	s.logger.Info().Str("invoice_id", id).Str("status", string(status)).Msg("invoice status updated")
	return result, nil
}

func (s *InvoiceService) createPayment(ctx context.Context, inv *domain.Invoice) (string, error) {
	now := time.Now().UTC()
	p := &domain.Payment{
		InvoiceID:     inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		QuoteNumber:   inv.QuoteNumber,
		ClientName:    inv.ClientName,
		CompanyName:   inv.CompanyName,
		Email:         inv.Email,
		Phone:         inv.Phone,
		Address:       inv.Address,
		Items:         inv.Items,
		TotalAmount:   inv.TotalAmount,
		Status:        "Paid",
		CreatedAt:     inv.CreatedAt,
		PaidAt:        now,
	}
	return s.payments.Create(ctx, p)
}

func (s *InvoiceService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Render produces the invoice PDF and records the filename; the filename
// write is secondary and logged on failure.
func (s *InvoiceService) Render(ctx context.Context, id string) ([]byte, string, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	pdf, filename, err := s.renderer.RenderInvoice(ctx, inv)
	if err != nil {
		s.logger.Error().Err(err).Str("invoice_id", id).Msg("invoice render failed")
		return nil, "", err
	}
	if err := checkPDF(pdf); err != nil {
		return nil, "", err
	}

	if err := s.repo.SetPDFFileName(ctx, id, filename); err != nil {
		s.logger.Warn().Err(err).Str("invoice_id", id).Msg("failed to record pdf filename")
	}
	return pdf, filename, nil
}

// Send renders the invoice and emails it to the client with the mark-paid
// capability link.
func (s *InvoiceService) Send(ctx context.Context, id string) error {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	pdf, filename, err := s.Render(ctx, id)
	if err != nil {
		return err
	}

	msg := ports.Message{
		To:             inv.Email,
		Subject:        fmt.Sprintf("Invoice %s from %s", inv.InvoiceNumber, inv.CompanyName),
		HTMLBody:       s.invoiceBody(inv),
		Attachment:     pdf,
		AttachmentName: filename,
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.Error().Err(err).Str("invoice_id", id).Msg("invoice email failed")
		return err
	}

	s.logger.Info().Str("invoice_id", id).Msg("invoice emailed")
	return nil
}

// MarkPaidByToken is the capability-URL entry point: the emailed link's token
// is the sole credential, compared in constant time and honoured once.
func (s *InvoiceService) MarkPaidByToken(ctx context.Context, id, token string) (*ports.StatusChangeResult, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !tokenMatches(inv.SecureToken, token) {
		return nil, domain.ErrTokenMismatch
	}

	used, err := s.guard.Used(ctx, id, string(domain.InvoicePaid))
	if err != nil {
		s.logger.Warn().Err(err).Str("invoice_id", id).Msg("token guard check failed, proceeding")
	} else if used {
		return nil, domain.ErrTokenAlreadyUsed
	}

	result, err := s.UpdateStatus(ctx, id, domain.InvoicePaid)
	if err != nil {
		return nil, err
	}
	if err := s.guard.MarkUsed(ctx, id, string(domain.InvoicePaid)); err != nil {
		s.logger.Warn().Err(err).Str("invoice_id", id).Msg("failed to mark token used")
	}
	return result, nil
}

func (s *InvoiceService) invoiceBody(inv *domain.Invoice) string {
	v := url.Values{}
	v.Set("id", inv.ID)
	v.Set("status", string(domain.InvoicePaid))
	v.Set("token", inv.SecureToken)
	paid := s.baseURL + "/callback/invoices?" + v.Encode()
	return fmt.Sprintf(
		`<p>Dear %s,</p>
<p>Please find invoice %s attached. Amount due: R%.2f.</p>
<p>Once settled you can <a href=%q>confirm payment here</a>.</p>`,
		inv.ClientName, inv.InvoiceNumber, inv.TotalAmount, paid,
	)
}
