package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
	"github.com/elevate-digital/bizdesk/internal/core/ports"
)

type stubInvoiceRepo struct {
	byID   map[string]*domain.Invoice
	nextID int
}

func newStubInvoiceRepo() *stubInvoiceRepo {
	return &stubInvoiceRepo{byID: make(map[string]*domain.Invoice)}
}

func (r *stubInvoiceRepo) Create(_ context.Context, inv *domain.Invoice) (string, error) {
	r.nextID++
	id := fmt.Sprintf("invoice-%d", r.nextID)
	clone := *inv
	clone.ID = id
	r.byID[id] = &clone
	return id, nil
}

func (r *stubInvoiceRepo) GetByID(_ context.Context, id string) (*domain.Invoice, error) {
	inv, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}
	clone := *inv
	return &clone, nil
}

func (r *stubInvoiceRepo) List(_ context.Context) ([]*domain.Invoice, error) {
	out := make([]*domain.Invoice, 0, len(r.byID))
	for _, inv := range r.byID {
		clone := *inv
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubInvoiceRepo) UpdateStatus(_ context.Context, id string, status domain.InvoiceStatus) error {
	inv, ok := r.byID[id]
	if !ok {
		return domain.ErrInvoiceNotFound
	}
	inv.Status = status
	return nil
}

func (r *stubInvoiceRepo) SetPDFFileName(_ context.Context, id, filename string) error {
	inv, ok := r.byID[id]
	if !ok {
		return domain.ErrInvoiceNotFound
	}
	inv.PDFFileName = filename
	return nil
}

func (r *stubInvoiceRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type stubPaymentRepo struct {
	byID      map[string]*domain.Payment
	nextID    int
	createErr error
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{byID: make(map[string]*domain.Payment)}
}

func (r *stubPaymentRepo) Create(_ context.Context, p *domain.Payment) (string, error) {
	if r.createErr != nil {
		return "", r.createErr
	}
	r.nextID++
	id := fmt.Sprintf("payment-%d", r.nextID)
	clone := *p
	clone.ID = id
	r.byID[id] = &clone
	return id, nil
}

func (r *stubPaymentRepo) GetByID(_ context.Context, id string) (*domain.Payment, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPaymentRepo) List(_ context.Context) ([]*domain.Payment, error) {
	out := make([]*domain.Payment, 0, len(r.byID))
	for _, p := range r.byID {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubPaymentRepo) FindByInvoiceID(_ context.Context, invoiceID string) (*domain.Payment, error) {
	for _, p := range r.byID {
		if p.InvoiceID == invoiceID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrPaymentNotFound
}

func (r *stubPaymentRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func newInvoiceService(repo *stubInvoiceRepo, payments *stubPaymentRepo, n *stubNotifier, g *stubGuard) *InvoiceService {
	return NewInvoiceService(repo, payments, &stubRenderer{pdf: validPDF}, n, g, "https://office.example", zerolog.Nop())
}

func createTestInvoice(t *testing.T, svc *InvoiceService) *domain.Invoice {
	t.Helper()
	inv, err := svc.Create(context.Background(), ports.CreateInvoiceInput{
		ClientName:    "Jane Mokoena",
		CompanyName:   "Acme Trading",
		Email:         "jane@acme.example",
		InvoiceNumber: "#10002",
		QuoteNumber:   "#10001",
		Items: []ports.LineItemInput{
			{Description: "Consulting", Quantity: 2, UnitPrice: 100},
		},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return inv
}

func TestInvoiceService_Create(t *testing.T) {
	svc := newInvoiceService(newStubInvoiceRepo(), newStubPaymentRepo(), &stubNotifier{}, newStubGuard())

	inv := createTestInvoice(t, svc)
	if inv.Status != domain.InvoiceUnpaid {
		t.Fatalf("expected Unpaid initial status, got %q", inv.Status)
	}
	if inv.TotalAmount != 200 {
		t.Fatalf("expected recomputed total 200, got %v", inv.TotalAmount)
	}
	if len(inv.SecureToken) != 64 {
		t.Fatalf("expected 64-char capability token")
	}
}

func TestInvoiceService_UpdateStatus_PaidCreatesOnePayment(t *testing.T) {
	repo := newStubInvoiceRepo()
	payments := newStubPaymentRepo()
	svc := newInvoiceService(repo, payments, &stubNotifier{}, newStubGuard())
	inv := createTestInvoice(t, svc)

	result, err := svc.UpdateStatus(context.Background(), inv.ID, domain.InvoicePaid)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if !result.PaymentCreated || result.PaymentID == "" {
		t.Fatalf("expected a payment record: %+v", result)
	}

	p, err := payments.GetByID(context.Background(), result.PaymentID)
	if err != nil {
		t.Fatalf("payment not stored: %v", err)
	}
	// snapshot mirrors the invoice at the moment of transition
	if p.InvoiceID != inv.ID || p.InvoiceNumber != inv.InvoiceNumber || p.QuoteNumber != inv.QuoteNumber {
		t.Fatalf("payment identifiers mismatch: %+v", p)
	}
	if p.ClientName != inv.ClientName || p.Email != inv.Email || p.TotalAmount != inv.TotalAmount {
		t.Fatalf("payment snapshot mismatch: %+v", p)
	}
	if p.Status != "Paid" || p.PaidAt.IsZero() {
		t.Fatalf("payment state mismatch: %+v", p)
	}

	// Paid→Paid is idempotent: no second record
	result, err = svc.UpdateStatus(context.Background(), inv.ID, domain.InvoicePaid)
	if err != nil {
		t.Fatalf("second UpdateStatus returned error: %v", err)
	}
	if result.PaymentCreated {
		t.Fatalf("second Paid transition created another payment")
	}
	if len(payments.byID) != 1 {
		t.Fatalf("expected exactly 1 payment, got %d", len(payments.byID))
	}
}

func TestInvoiceService_UpdateStatus_PaymentFailureSurfacesInResult(t *testing.T) {
	repo := newStubInvoiceRepo()
	payments := newStubPaymentRepo()
	payments.createErr = errors.New("store down")
	svc := newInvoiceService(repo, payments, &stubNotifier{}, newStubGuard())
	inv := createTestInvoice(t, svc)

	result, err := svc.UpdateStatus(context.Background(), inv.ID, domain.InvoicePaid)
	if err != nil {
		t.Fatalf("status change itself should commit, got %v", err)
	}
	if result.PaymentErr == nil {
		t.Fatalf("expected PaymentErr in result")
	}
	if result.PaymentCreated {
		t.Fatalf("PaymentCreated must be false on failure")
	}

	stored, _ := svc.Get(context.Background(), inv.ID)
	if stored.Status != domain.InvoicePaid {
		t.Fatalf("status change lost: %q", stored.Status)
	}
}

func TestInvoiceService_UpdateStatus_Invalid(t *testing.T) {
	svc := newInvoiceService(newStubInvoiceRepo(), newStubPaymentRepo(), &stubNotifier{}, newStubGuard())
	inv := createTestInvoice(t, svc)

	if _, err := svc.UpdateStatus(context.Background(), inv.ID, "Overdue"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestInvoiceService_MarkPaidByToken(t *testing.T) {
	repo := newStubInvoiceRepo()
	payments := newStubPaymentRepo()
	guard := newStubGuard()
	svc := newInvoiceService(repo, payments, &stubNotifier{}, guard)
	inv := createTestInvoice(t, svc)

	// forged token rejected
	if _, err := svc.MarkPaidByToken(context.Background(), inv.ID, "forged"); !errors.Is(err, domain.ErrTokenMismatch) {
		t.Fatalf("expected ErrTokenMismatch, got %v", err)
	}

	result, err := svc.MarkPaidByToken(context.Background(), inv.ID, inv.SecureToken)
	if err != nil {
		t.Fatalf("MarkPaidByToken returned error: %v", err)
	}
	if !result.PaymentCreated {
		t.Fatalf("expected payment record from token path")
	}

	// replay refused
	if _, err := svc.MarkPaidByToken(context.Background(), inv.ID, inv.SecureToken); !errors.Is(err, domain.ErrTokenAlreadyUsed) {
		t.Fatalf("expected ErrTokenAlreadyUsed, got %v", err)
	}
	if len(payments.byID) != 1 {
		t.Fatalf("expected exactly 1 payment, got %d", len(payments.byID))
	}
}

func TestInvoiceService_Send_EmbedsPaymentLink(t *testing.T) {
	repo := newStubInvoiceRepo()
	notifier := &stubNotifier{}
	svc := newInvoiceService(repo, newStubPaymentRepo(), notifier, newStubGuard())
	inv := createTestInvoice(t, svc)

	if err := svc.Send(context.Background(), inv.ID); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(notifier.sent))
	}

	msg := notifier.sent[0]
	for _, needle := range []string{
		"https://office.example/callback/invoices?",
		"token=" + inv.SecureToken,
	} {
		if !strings.Contains(msg.HTMLBody, needle) {
			t.Fatalf("mail body missing %q", needle)
		}
	}
	if len(msg.Attachment) == 0 {
		t.Fatalf("expected PDF attachment")
	}
}
