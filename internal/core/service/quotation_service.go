package service

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
	"github.com/elevate-digital/bizdesk/internal/core/ports"
)

// pdfMagic is the signature every well-formed render must start with.
var pdfMagic = []byte("%PDF")

// minPDFSize guards against truncated converter output.
const minPDFSize = 512

type QuotationService struct {
	repo     ports.QuotationRepository
	seq      ports.QuoteSequence
	renderer ports.DocumentRenderer
	notifier ports.Notifier
	guard    ports.TokenGuard
	baseURL  string
	logger   zerolog.Logger
}

func NewQuotationService(
	repo ports.QuotationRepository,
	seq ports.QuoteSequence,
	renderer ports.DocumentRenderer,
	notifier ports.Notifier,
	guard ports.TokenGuard,
	baseURL string,
	logger zerolog.Logger,
) *QuotationService {
	return &QuotationService{
		repo:     repo,
		seq:      seq,
		renderer: renderer,
		notifier: notifier,
		guard:    guard,
		baseURL:  baseURL,
		logger:   logger,
	}
}

// Create recomputes every line amount, draws the next quote number from the
// sequence and attaches a fresh capability token before persisting.
func (s *QuotationService) Create(ctx context.Context, input ports.CreateQuotationInput) (*domain.Quotation, error) {
	items, total, err := buildLineItems(input.Items)
	if err != nil {
		return nil, err
	}

	number, err := s.seq.Next(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("quote number allocation failed")
		return nil, fmt.Errorf("allocate quote number: %w", err)
	}

	token, err := newSecureToken()
	if err != nil {
		return nil, err
	}

	q := &domain.Quotation{
		ClientName:  input.ClientName,
		CompanyName: input.CompanyName,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
		QuoteNumber: fmt.Sprintf("#%d", number),
		Items:       items,
		TotalAmount: total,
		Notes:       input.Notes,
		Status:      domain.QuotePending,
		SecureToken: token,
		CreatedAt:   time.Now().UTC(),
	}

	id, err := s.repo.Create(ctx, q)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create quotation")
		return nil, err
	}
	q.ID = id

	s.logger.Info().Str("quotation_id", id).Str("quote_number", q.QuoteNumber).Msg("quotation created")
	return q, nil
}

func (s *QuotationService) Get(ctx context.Context, id string) (*domain.Quotation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *QuotationService) List(ctx context.Context) ([]*domain.Quotation, error) {
	return s.repo.List(ctx)
}

func (s *QuotationService) UpdateStatus(ctx context.Context, id string, status domain.QuotationStatus) error {
	if !domain.ValidQuotationStatus(status) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *QuotationService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Render produces the quotation PDF, verifies the converter output looks like
// a PDF and records the filename on the document. The filename write is a
// secondary effect; its failure is logged, not raised.
func (s *QuotationService) Render(ctx context.Context, id string) ([]byte, string, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	pdf, filename, err := s.renderer.RenderQuotation(ctx, q)
	if err != nil {
		s.logger.Error().Err(err).Str("quotation_id", id).Msg("quotation render failed")
		return nil, "", err
	}
	if err := checkPDF(pdf); err != nil {
		return nil, "", err
	}

	if err := s.repo.SetPDFFileName(ctx, id, filename); err != nil {
		s.logger.Warn().Err(err).Str("quotation_id", id).Msg("failed to record pdf filename")
	}
	return pdf, filename, nil
}

// Send renders the quotation and emails it to the client with the
// accept/decline capability links.
func (s *QuotationService) Send(ctx context.Context, id string) error {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	pdf, filename, err := s.Render(ctx, id)
	if err != nil {
		return err
	}

	msg := ports.Message{
		To:             q.Email,
		Subject:        fmt.Sprintf("Quotation %s from %s", q.QuoteNumber, q.CompanyName),
		HTMLBody:       s.quotationBody(q),
		Attachment:     pdf,
		AttachmentName: filename,
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.Error().Err(err).Str("quotation_id", id).Msg("quotation email failed")
		return err
	}

	s.logger.Info().Str("quotation_id", id).Msg("quotation emailed")
	return nil
}

// UpdateStatusByToken changes status authorised solely by the capability
// token. It never runs under a session: the token is the credential, matched
// in constant time, and each (quotation, status) link is honoured once.
func (s *QuotationService) UpdateStatusByToken(ctx context.Context, id string, status domain.QuotationStatus, token string) error {
	if status != domain.QuoteAccepted && status != domain.QuoteDeclined {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !tokenMatches(q.SecureToken, token) {
		return domain.ErrTokenMismatch
	}

	used, err := s.guard.Used(ctx, id, string(status))
	if err != nil {
		s.logger.Warn().Err(err).Str("quotation_id", id).Msg("token guard check failed, proceeding")
	} else if used {
		return domain.ErrTokenAlreadyUsed
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	if err := s.guard.MarkUsed(ctx, id, string(status)); err != nil {
		s.logger.Warn().Err(err).Str("quotation_id", id).Msg("failed to mark token used")
	}

	s.logger.Info().Str("quotation_id", id).Str("status", string(status)).Msg("quotation status changed via capability link")
	return nil
}

func (s *QuotationService) quotationBody(q *domain.Quotation) string {
	accept := s.callbackURL(q, domain.QuoteAccepted)
	decline := s.callbackURL(q, domain.QuoteDeclined)
	return fmt.Sprintf(
		`<p>Dear %s,</p>
<p>Please find quotation %s attached. Total: R%.2f.</p>
<p><a href=%q>Accept</a> &nbsp; <a href=%q>Decline</a></p>`,
		q.ClientName, q.QuoteNumber, q.TotalAmount, accept, decline,
	)
}

func (s *QuotationService) callbackURL(q *domain.Quotation, status domain.QuotationStatus) string {
	v := url.Values{}
	v.Set("id", q.ID)
	v.Set("status", string(status))
	v.Set("token", q.SecureToken)
	return s.baseURL + "/callback/quotations?" + v.Encode()
}

// checkPDF is the minimal structural check applied to converter output
// before it is offered downstream: a recognisable header and a non-trivial
// byte length.
func checkPDF(pdf []byte) error {
	if len(pdf) < minPDFSize || !bytes.HasPrefix(pdf, pdfMagic) {
		return fmt.Errorf("render produced invalid pdf output (%d bytes)", len(pdf))
	}
	return nil
}
