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

const collectionQuotations = "quotations"

// quotationDoc is the stored shape of a quotation. The contact fields and
// the quote number hold ciphertext; the secure token stays in clear so the
// callback can compare it, and the line items stay numeric for reporting.
type quotationDoc struct {
	ID          string            `bson:"_id"`
	Owner       string            `bson:"owner"`
	ClientName  string            `bson:"client_name"`
	CompanyName string            `bson:"company_name"`
	Email       string            `bson:"email"`
	Phone       string            `bson:"phone"`
	Address     string            `bson:"address"`
	QuoteNumber string            `bson:"quote_number"`
	Items       []domain.LineItem `bson:"items"`
	TotalAmount float64           `bson:"total_amount"`
	Notes       string            `bson:"notes,omitempty"`
	Status      string            `bson:"status"`
	SecureToken string            `bson:"secure_token"`
	PDFFileName string            `bson:"pdf_file_name,omitempty"`
	CreatedAt   time.Time         `bson:"created_at"`
}

type QuotationRepository struct {
	col   *mongo.Collection
	codec FieldCodec
	owner string
}

func NewQuotationRepository(db *mongo.Database, codec FieldCodec, owner string) *QuotationRepository {
	return &QuotationRepository{col: db.Collection(collectionQuotations), codec: codec, owner: owner}
}

func (r *QuotationRepository) Create(ctx context.Context, q *domain.Quotation) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	g := encGroup{codec: r.codec}
	doc := quotationDoc{
		ID:          uuid.NewString(),
		Owner:       r.owner,
		ClientName:  g.enc(q.ClientName),
		CompanyName: g.enc(q.CompanyName),
		Email:       g.enc(q.Email),
		Phone:       g.enc(q.Phone),
		Address:     g.enc(q.Address),
		QuoteNumber: g.enc(q.QuoteNumber),
		Items:       q.Items,
		TotalAmount: q.TotalAmount,
		Notes:       q.Notes,
		Status:      string(q.Status),
		SecureToken: q.SecureToken,
		PDFFileName: q.PDFFileName,
		CreatedAt:   q.CreatedAt,
	}
	if g.err != nil {
		return "", fmt.Errorf("encrypt quotation: %w", g.err)
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert quotation: %w", err)
	}
	return doc.ID, nil
}

func (r *QuotationRepository) GetByID(ctx context.Context, id string) (*domain.Quotation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc quotationDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id, "owner": r.owner}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrQuotationNotFound
		}
		return nil, fmt.Errorf("find quotation: %w", err)
	}
	return r.toDomain(&doc), nil
}

func (r *QuotationRepository) List(ctx context.Context) ([]*domain.Quotation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"owner": r.owner})
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	defer cur.Close(ctx)

	var quotes []*domain.Quotation
	for cur.Next(ctx) {
		var doc quotationDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode quotation: %w", err)
		}
		quotes = append(quotes, r.toDomain(&doc))
	}
	return quotes, cur.Err()
}

// UpdateStatus overwrites only the status field.
func (r *QuotationRepository) UpdateStatus(ctx context.Context, id string, status domain.QuotationStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "owner": r.owner},
		bson.M{"$set": bson.M{"status": string(status)}},
	)
	if err != nil {
		return fmt.Errorf("update quotation status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrQuotationNotFound
	}
	return nil
}

func (r *QuotationRepository) SetPDFFileName(ctx context.Context, id, filename string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "owner": r.owner},
		bson.M{"$set": bson.M{"pdf_file_name": filename}},
	)
	if err != nil {
		return fmt.Errorf("set quotation pdf filename: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrQuotationNotFound
	}
	return nil
}

func (r *QuotationRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "owner": r.owner}); err != nil {
		return fmt.Errorf("delete quotation: %w", err)
	}
	return nil
}

func (r *QuotationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}},
	})
	return err
}

func (r *QuotationRepository) toDomain(doc *quotationDoc) *domain.Quotation {
	return &domain.Quotation{
		ID:          doc.ID,
		ClientName:  r.codec.dec(collectionQuotations, "client_name", doc.ClientName),
		CompanyName: r.codec.dec(collectionQuotations, "company_name", doc.CompanyName),
		Email:       r.codec.dec(collectionQuotations, "email", doc.Email),
		Phone:       r.codec.dec(collectionQuotations, "phone", doc.Phone),
		Address:     r.codec.dec(collectionQuotations, "address", doc.Address),
		QuoteNumber: r.codec.dec(collectionQuotations, "quote_number", doc.QuoteNumber),
		Items:       doc.Items,
		TotalAmount: doc.TotalAmount,
		Notes:       doc.Notes,
		Status:      domain.QuotationStatus(doc.Status),
		SecureToken: doc.SecureToken,
		PDFFileName: doc.PDFFileName,
		CreatedAt:   doc.CreatedAt,
	}
}

var _ ports.QuotationRepository = (*QuotationRepository)(nil)
