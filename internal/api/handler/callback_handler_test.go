package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
	"github.com/elevate-digital/bizdesk/internal/core/ports"
)

type stubQuotationService struct {
	ports.QuotationService
	updateByTokenFn func(ctx context.Context, id string, status domain.QuotationStatus, token string) error
}

func (s *stubQuotationService) UpdateStatusByToken(ctx context.Context, id string, status domain.QuotationStatus, token string) error {
	return s.updateByTokenFn(ctx, id, status, token)
}

type stubInvoiceService struct {
	ports.InvoiceService
	markPaidFn func(ctx context.Context, id, token string) (*ports.StatusChangeResult, error)
}

func (s *stubInvoiceService) MarkPaidByToken(ctx context.Context, id, token string) (*ports.StatusChangeResult, error) {
	return s.markPaidFn(ctx, id, token)
}

func callbackContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCallbackHandler_Quotation_Success(t *testing.T) {
	var gotID, gotToken string
	var gotStatus domain.QuotationStatus
	quotations := &stubQuotationService{
		updateByTokenFn: func(_ context.Context, id string, status domain.QuotationStatus, token string) error {
			gotID, gotStatus, gotToken = id, status, token
			return nil
		},
	}
	handler := NewCallbackHandler(quotations, &stubInvoiceService{})

	c, rec := callbackContext("/callback/quotations?id=q-1&status=Accepted&token=tok123")
	if err := handler.Quotation(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != "q-1" || gotStatus != domain.QuoteAccepted || gotToken != "tok123" {
		t.Fatalf("unexpected args: %s %s %s", gotID, gotStatus, gotToken)
	}
}

func TestCallbackHandler_Quotation_TokenMismatch(t *testing.T) {
	quotations := &stubQuotationService{
		updateByTokenFn: func(context.Context, string, domain.QuotationStatus, string) error {
			return domain.ErrTokenMismatch
		},
	}
	handler := NewCallbackHandler(quotations, &stubInvoiceService{})

	c, rec := callbackContext("/callback/quotations?id=q-1&status=Accepted&token=forged")
	if err := handler.Quotation(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCallbackHandler_Quotation_AlreadyUsed(t *testing.T) {
	quotations := &stubQuotationService{
		updateByTokenFn: func(context.Context, string, domain.QuotationStatus, string) error {
			return domain.ErrTokenAlreadyUsed
		},
	}
	handler := NewCallbackHandler(quotations, &stubInvoiceService{})

	c, rec := callbackContext("/callback/quotations?id=q-1&status=Declined&token=tok123")
	if err := handler.Quotation(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestCallbackHandler_Quotation_BadRequest(t *testing.T) {
	handler := NewCallbackHandler(&stubQuotationService{}, &stubInvoiceService{})

	for _, target := range []string{
		"/callback/quotations?status=Accepted&token=tok",   // no id
		"/callback/quotations?id=q-1&token=tok",            // no status
		"/callback/quotations?id=q-1&status=Nope&token=t",  // unknown status
		"/callback/quotations?id=q-1&status=Accepted",      // no token
	} {
		c, rec := callbackContext(target)
		if err := handler.Quotation(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestCallbackHandler_Invoice_Success(t *testing.T) {
	invoices := &stubInvoiceService{
		markPaidFn: func(_ context.Context, id, token string) (*ports.StatusChangeResult, error) {
			if id != "inv-1" || token != "tok123" {
				t.Fatalf("unexpected args: %s %s", id, token)
			}
			return &ports.StatusChangeResult{Status: domain.InvoicePaid, PaymentCreated: true, PaymentID: "pay-1"}, nil
		},
	}
	handler := NewCallbackHandler(&stubQuotationService{}, invoices)

	c, rec := callbackContext("/callback/invoices?id=inv-1&token=tok123")
	if err := handler.Invoice(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCallbackHandler_Invoice_NotFound(t *testing.T) {
	invoices := &stubInvoiceService{
		markPaidFn: func(context.Context, string, string) (*ports.StatusChangeResult, error) {
			return nil, domain.ErrInvoiceNotFound
		},
	}
	handler := NewCallbackHandler(&stubQuotationService{}, invoices)

	c, rec := callbackContext("/callback/invoices?id=gone&token=tok123")
	if err := handler.Invoice(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
