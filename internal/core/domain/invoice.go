package domain

import "time"

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	InvoiceUnpaid InvoiceStatus = "Unpaid"
	InvoicePaid   InvoiceStatus = "Paid"
)

// ValidInvoiceStatus reports whether s is a known invoice state.
func ValidInvoiceStatus(s InvoiceStatus) bool {
	return s == InvoiceUnpaid || s == InvoicePaid
}

// Invoice is a bill issued to a client. Contact fields are stored enciphered.
// Reaching Paid synthesises a derived Payment record. SecureToken authorises
// the emailed mark-paid link.
type Invoice struct {
	ID            string        `json:"id" bson:"_id,omitempty"`
	ClientName    string        `json:"client_name" bson:"client_name"`
	CompanyName   string        `json:"company_name" bson:"company_name"`
	Email         string        `json:"email" bson:"email"`
	Phone         string        `json:"phone" bson:"phone"`
	Address       string        `json:"address" bson:"address"`
	InvoiceNumber string        `json:"invoice_number" bson:"invoice_number"`
	QuoteNumber   string        `json:"quote_number,omitempty" bson:"quote_number,omitempty"`
	Items         []LineItem    `json:"items" bson:"items"`
	TotalAmount   float64       `json:"total_amount" bson:"total_amount"`
	Status        InvoiceStatus `json:"status" bson:"status"`
	SecureToken   string        `json:"-" bson:"secure_token"`
	PDFFileName   string        `json:"pdf_file_name,omitempty" bson:"pdf_file_name,omitempty"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at"`
}
