package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
	"github.com/elevate-digital/bizdesk/internal/core/ports"
)

const collectionInvoices = "invoices"

type invoiceDoc struct {
	ID            string            `bson:"_id"`
	Owner         string            `bson:"owner"`
	ClientName    string            `bson:"client_name"`
	CompanyName   string            `bson:"company_name"`
	Email         string            `bson:"email"`
	Phone         string            `bson:"phone"`
	Address       string            `bson:"address"`
	InvoiceNumber string            `bson:"invoice_number"`
	QuoteNumber   string            `bson:"quote_number,omitempty"`
	Items         []domain.LineItem `bson:"items"`
	TotalAmount   float64           `bson:"total_amount"`
	Status        string            `bson:"status"`
	SecureToken   string            `bson:"secure_token"`
	PDFFileName   string            `bson:"pdf_file_name,omitempty"`
	CreatedAt     time.Time         `bson:"created_at"`
}

type InvoiceRepository struct {
	col   *mongo.Collection
	codec FieldCodec
	owner string
}

func NewInvoiceRepository(db *mongo.Database, codec FieldCodec, owner string) *InvoiceRepository {
	return &InvoiceRepository{col: db.Collection(collectionInvoices), codec: codec, owner: owner}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	g := encGroup{codec: r.codec}
	doc := invoiceDoc{
		ID:            uuid.NewString(),
		Owner:         r.owner,
		ClientName:    g.enc(inv.ClientName),
		CompanyName:   g.enc(inv.CompanyName),
		Email:         g.enc(inv.Email),
		Phone:         g.enc(inv.Phone),
		Address:       g.enc(inv.Address),
		InvoiceNumber: inv.InvoiceNumber,
		QuoteNumber:   inv.QuoteNumber,
		Items:         inv.Items,
		TotalAmount:   inv.TotalAmount,
		Status:        string(inv.Status),
		SecureToken:   inv.SecureToken,
		PDFFileName:   inv.PDFFileName,
		CreatedAt:     inv.CreatedAt,
	}
	if g.err != nil {
		return "", fmt.Errorf("encrypt invoice: %w", g.err)
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert invoice: %w", err)
	}
	return doc.ID, nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc invoiceDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id, "owner": r.owner}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("find invoice: %w", err)
	}
	return r.toDomain(&doc), nil
}

func (r *InvoiceRepository) List(ctx context.Context) ([]*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"owner": r.owner})
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer cur.Close(ctx)

	var invoices []*domain.Invoice
	for cur.Next(ctx) {
		var doc invoiceDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode invoice: %w", err)
		}
		invoices = append(invoices, r.toDomain(&doc))
	}
	return invoices, cur.Err()
}

func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "owner": r.owner},
		bson.M{"$set": bson.M{"status": string(status)}},
	)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *InvoiceRepository) SetPDFFileName(ctx context.Context, id, filename string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "owner": r.owner},
		bson.M{"$set": bson.M{"pdf_file_name": filename}},
	)
	if err != nil {
		return fmt.Errorf("set invoice pdf filename: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "owner": r.owner}); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "invoice_number", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *InvoiceRepository) toDomain(doc *invoiceDoc) *domain.Invoice {
	return &domain.Invoice{
		ID:            doc.ID,
		ClientName:    r.codec.dec(collectionInvoices, "client_name", doc.ClientName),
		CompanyName:   r.codec.dec(collectionInvoices, "company_name", doc.CompanyName),
		Email:         r.codec.dec(collectionInvoices, "email", doc.Email),
		Phone:         r.codec.dec(collectionInvoices, "phone", doc.Phone),
		Address:       r.codec.dec(collectionInvoices, "address", doc.Address),
		InvoiceNumber: doc.InvoiceNumber,
		QuoteNumber:   doc.QuoteNumber,
		Items:         doc.Items,
		TotalAmount:   doc.TotalAmount,
		Status:        domain.InvoiceStatus(doc.Status),
		SecureToken:   doc.SecureToken,
		PDFFileName:   doc.PDFFileName,
		CreatedAt:     doc.CreatedAt,
	}
}

var _ ports.InvoiceRepository = (*InvoiceRepository)(nil)
