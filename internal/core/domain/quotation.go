package domain

import "time"

// QuotationStatus is the lifecycle state of a quotation.
type QuotationStatus string

const (
	QuotePending  QuotationStatus = "Pending"
	QuoteAccepted QuotationStatus = "Accepted"
	QuoteDeclined QuotationStatus = "Declined"
)

// ValidQuotationStatus reports whether s is one of the three known states.
func ValidQuotationStatus(s QuotationStatus) bool {
	switch s {
	case QuotePending, QuoteAccepted, QuoteDeclined:
		return true
	}
	return false
}

// LineItem is a single billable line. Amount is always recomputed server-side
// as Quantity × UnitPrice; any caller-supplied value is discarded.
type LineItem struct {
	Description string  `json:"description" bson:"description"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	UnitPrice   float64 `json:"unit_price" bson:"unit_price"`
	Amount      float64 `json:"amount" bson:"amount"`
}

// Quotation is a priced offer sent to a client. QuoteNumber is the
// human-facing sequential identifier, distinct from the document id, and is
// stored enciphered alongside the contact fields. SecureToken authorises the
// emailed accept/decline links and is stored in clear so the callback can
// compare it.
type Quotation struct {
	ID          string          `json:"id" bson:"_id,omitempty"`
	ClientName  string          `json:"client_name" bson:"client_name"`
	CompanyName string          `json:"company_name" bson:"company_name"`
	Email       string          `json:"email" bson:"email"`
	Phone       string          `json:"phone" bson:"phone"`
	Address     string          `json:"address" bson:"address"`
	QuoteNumber string          `json:"quote_number" bson:"quote_number"`
	Items       []LineItem      `json:"items" bson:"items"`
	TotalAmount float64         `json:"total_amount" bson:"total_amount"`
	Notes       string          `json:"notes,omitempty" bson:"notes,omitempty"`
	Status      QuotationStatus `json:"status" bson:"status"`
	SecureToken string          `json:"-" bson:"secure_token"`
	PDFFileName string          `json:"pdf_file_name,omitempty" bson:"pdf_file_name,omitempty"`
	CreatedAt   time.Time       `json:"created_at" bson:"created_at"`
}
