package domain

import "time"

// Payment is a derived, read-mostly record snapshotting an invoice at the
// moment it transitioned to Paid. It is created only as a side effect of that
// transition, never directly by a caller.
type Payment struct {
	ID            string     `json:"id" bson:"_id,omitempty"`
	InvoiceID     string     `json:"invoice_id" bson:"invoice_id"`
	InvoiceNumber string     `json:"invoice_number" bson:"invoice_number"`
	QuoteNumber   string     `json:"quote_number,omitempty" bson:"quote_number,omitempty"`
	ClientName    string     `json:"client_name" bson:"client_name"`
	CompanyName   string     `json:"company_name" bson:"company_name"`
	Email         string     `json:"email" bson:"email"`
	Phone         string     `json:"phone" bson:"phone"`
	Address       string     `json:"address" bson:"address"`
	Items         []LineItem `json:"items" bson:"items"`
	TotalAmount   float64    `json:"total_amount" bson:"total_amount"`
	Status        string     `json:"status" bson:"status"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
	PaidAt        time.Time  `json:"paid_at" bson:"paid_at"`
}
