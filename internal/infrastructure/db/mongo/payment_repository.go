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

const collectionPayments = "payments"

// paymentDoc snapshots a paid invoice. The same cipher policy as the
// invoice applies to the contact fields it carries.
type paymentDoc struct {
	ID            string            `bson:"_id"`
	Owner         string            `bson:"owner"`
	InvoiceID     string            `bson:"invoice_id"`
	InvoiceNumber string            `bson:"invoice_number"`
	QuoteNumber   string            `bson:"quote_number,omitempty"`
	ClientName    string            `bson:"client_name"`
	CompanyName   string            `bson:"company_name"`
	Email         string            `bson:"email"`
	Phone         string            `bson:"phone"`
	Address       string            `bson:"address"`
	Items         []domain.LineItem `bson:"items"`
	TotalAmount   float64           `bson:"total_amount"`
	Status        string            `bson:"status"`
	CreatedAt     time.Time         `bson:"created_at"`
	PaidAt        time.Time         `bson:"paid_at"`
}

type PaymentRepository struct {
	col   *mongo.Collection
	codec FieldCodec
	owner string
}

func NewPaymentRepository(db *mongo.Database, codec FieldCodec, owner string) *PaymentRepository {
	return &PaymentRepository{col: db.Collection(collectionPayments), codec: codec, owner: owner}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	g := encGroup{codec: r.codec}
	doc := paymentDoc{
		ID:            uuid.NewString(),
		Owner:         r.owner,
		InvoiceID:     p.InvoiceID,
		InvoiceNumber: p.InvoiceNumber,
		QuoteNumber:   p.QuoteNumber,
		ClientName:    g.enc(p.ClientName),
		CompanyName:   g.enc(p.CompanyName),
		Email:         g.enc(p.Email),
		Phone:         g.enc(p.Phone),
		Address:       g.enc(p.Address),
		Items:         p.Items,
		TotalAmount:   p.TotalAmount,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
		PaidAt:        p.PaidAt,
	}
	if g.err != nil {
		return "", fmt.Errorf("encrypt payment: %w", g.err)
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert payment: %w", err)
	}
	return doc.ID, nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc paymentDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id, "owner": r.owner}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}
	return r.toDomain(&doc), nil
}

func (r *PaymentRepository) List(ctx context.Context) ([]*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"owner": r.owner})
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer cur.Close(ctx)

	var payments []*domain.Payment
	for cur.Next(ctx) {
		var doc paymentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode payment: %w", err)
		}
		payments = append(payments, r.toDomain(&doc))
	}
	return payments, cur.Err()
}

func (r *PaymentRepository) FindByInvoiceID(ctx context.Context, invoiceID string) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc paymentDoc
	err := r.col.FindOne(ctx, bson.M{"invoice_id": invoiceID, "owner": r.owner}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("find payment by invoice: %w", err)
	}
	return r.toDomain(&doc), nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "owner": r.owner}); err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "invoice_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *PaymentRepository) toDomain(doc *paymentDoc) *domain.Payment {
	return &domain.Payment{
		ID:            doc.ID,
		InvoiceID:     doc.InvoiceID,
		InvoiceNumber: doc.InvoiceNumber,
		QuoteNumber:   doc.QuoteNumber,
		ClientName:    r.codec.dec(collectionPayments, "client_name", doc.ClientName),
		CompanyName:   r.codec.dec(collectionPayments, "company_name", doc.CompanyName),
		Email:         r.codec.dec(collectionPayments, "email", doc.Email),
		Phone:         r.codec.dec(collectionPayments, "phone", doc.Phone),
		Address:       r.codec.dec(collectionPayments, "address", doc.Address),
		Items:         doc.Items,
		TotalAmount:   doc.TotalAmount,
		Status:        doc.Status,
		CreatedAt:     doc.CreatedAt,
		PaidAt:        doc.PaidAt,
	}
}

var _ ports.PaymentRepository = (*PaymentRepository)(nil)
