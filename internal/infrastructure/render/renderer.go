// Package render produces the client-facing PDF documents. HTML templates
// are filled in-process and converted through a Gotenberg instance.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
	"github.com/elevate-digital/bizdesk/internal/core/ports"
)

// Renderer implements ports.DocumentRenderer on top of a Gotenberg client.
type Renderer struct {
	converter *GotenbergClient
	log       zerolog.Logger
}

// NewRenderer constructs a Renderer.
func NewRenderer(converter *GotenbergClient, log zerolog.Logger) *Renderer {
	return &Renderer{converter: converter, log: log}
}

var _ ports.DocumentRenderer = (*Renderer)(nil)

// RenderQuotation produces the quotation PDF and its download filename.
func (r *Renderer) RenderQuotation(ctx context.Context, q *domain.Quotation) ([]byte, string, error) {
	var html bytes.Buffer
	if err := quotationTemplate.Execute(&html, q); err != nil {
		return nil, "", fmt.Errorf("fill quotation template: %w", err)
	}

	pdf, err := r.converter.ConvertHTML(ctx, html.String())
	if err != nil {
		r.log.Error().Err(err).Str("quotation_id", q.ID).Msg("quotation PDF conversion failed")
		return nil, "", fmt.Errorf("convert quotation: %w", err)
	}

	return pdf, documentFilename("Quotation", q.CompanyName, q.ClientName, q.QuoteNumber), nil
}

// RenderInvoice produces the invoice PDF and its download filename.
func (r *Renderer) RenderInvoice(ctx context.Context, inv *domain.Invoice) ([]byte, string, error) {
	var html bytes.Buffer
	if err := invoiceTemplate.Execute(&html, inv); err != nil {
		return nil, "", fmt.Errorf("fill invoice template: %w", err)
	}

	pdf, err := r.converter.ConvertHTML(ctx, html.String())
	if err != nil {
		r.log.Error().Err(err).Str("invoice_id", inv.ID).Msg("invoice PDF conversion failed")
		return nil, "", fmt.Errorf("convert invoice: %w", err)
	}

	return pdf, documentFilename("Invoice", inv.CompanyName, inv.ClientName, inv.InvoiceNumber), nil
}

// documentFilename builds "<kind>_<party>_<number>.pdf" from whichever of
// company or client name is present, stripped of filesystem-hostile
// characters.
func documentFilename(kind, company, client, number string) string {
	party := company
	if party == "" {
		party = client
	}

	parts := []string{kind}
	if p := sanitizeFilePart(party); p != "" {
		parts = append(parts, p)
	}
	if n := sanitizeFilePart(number); n != "" {
		parts = append(parts, n)
	}
	return strings.Join(parts, "_") + ".pdf"
}

// sanitizeFilePart drops characters that are unsafe in filenames and
// collapses whitespace runs into single underscores.
func sanitizeFilePart(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t':
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		case strings.ContainsRune(`/\:*?"<>|#`, r) || r < 0x20:
			// dropped
		default:
			b.WriteRune(r)
			lastUnderscore = false
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
