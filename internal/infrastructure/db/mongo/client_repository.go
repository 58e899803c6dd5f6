package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
	"github.com/elevate-digital/bizdesk/internal/core/ports"
)

const collectionClients = "clients"

// clientDoc is the stored shape of a client. All personal fields hold
// ciphertext.
type clientDoc struct {
	ID          string    `bson:"_id"`
	Owner       string    `bson:"owner"`
	Name        string    `bson:"name"`
	Surname     string    `bson:"surname"`
	Email       string    `bson:"email"`
	PhoneNumber string    `bson:"phone_number"`
	Address     string    `bson:"address"`
	CompanyName string    `bson:"company_name"`
	CreatedAt   time.Time `bson:"created_at"`
}

type ClientRepository struct {
	col   *mongo.Collection
	codec FieldCodec
	owner string
}

func NewClientRepository(db *mongo.Database, codec FieldCodec, owner string) *ClientRepository {
	return &ClientRepository{col: db.Collection(collectionClients), codec: codec, owner: owner}
}

// Create assigns the id, enciphers the personal fields and inserts the
// document. The caller's id, if any, is discarded.
func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := clientDoc{
		ID:        uuid.NewString(),
		Owner:     r.owner,
		CreatedAt: c.CreatedAt,
	}
	var err error
	if doc.Name, err = r.codec.enc(c.Name); err != nil {
		return "", fmt.Errorf("encrypt client: %w", err)
	}
	if doc.Surname, err = r.codec.enc(c.Surname); err != nil {
		return "", fmt.Errorf("encrypt client: %w", err)
	}
	if doc.Email, err = r.codec.enc(c.Email); err != nil {
		return "", fmt.Errorf("encrypt client: %w", err)
	}
	if doc.PhoneNumber, err = r.codec.enc(c.PhoneNumber); err != nil {
		return "", fmt.Errorf("encrypt client: %w", err)
	}
	if doc.Address, err = r.codec.enc(c.Address); err != nil {
		return "", fmt.Errorf("encrypt client: %w", err)
	}
	if doc.CompanyName, err = r.codec.enc(c.CompanyName); err != nil {
		return "", fmt.Errorf("encrypt client: %w", err)
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert client: %w", err)
	}
	return doc.ID, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc clientDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id, "owner": r.owner}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return r.toDomain(&doc), nil
}

// List returns every client for the owner; ordering is store-defined.
func (r *ClientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"owner": r.owner})
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer cur.Close(ctx)

	var clients []*domain.Client
	for cur.Next(ctx) {
		var doc clientDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode client: %w", err)
		}
		clients = append(clients, r.toDomain(&doc))
	}
	return clients, cur.Err()
}

// Update fetches the stored document, merges only the provided fields
// (re-enciphering replaced personal data) and overwrites it in full.
func (r *ClientRepository) Update(ctx context.Context, upd ports.ClientUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc clientDoc
	err := r.col.FindOne(ctx, bson.M{"_id": upd.ID, "owner": r.owner}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrClientNotFound
		}
		return fmt.Errorf("find client: %w", err)
	}

	if upd.FullName != "" {
		name, surname := splitFullName(upd.FullName)
		if doc.Name, err = r.codec.enc(name); err != nil {
			return fmt.Errorf("encrypt client: %w", err)
		}
		if surname != "" {
			if doc.Surname, err = r.codec.enc(surname); err != nil {
				return fmt.Errorf("encrypt client: %w", err)
			}
		}
	}
	if upd.Email != "" {
		if doc.Email, err = r.codec.enc(upd.Email); err != nil {
			return fmt.Errorf("encrypt client: %w", err)
		}
	}
	if upd.PhoneNumber != "" {
		if doc.PhoneNumber, err = r.codec.enc(upd.PhoneNumber); err != nil {
			return fmt.Errorf("encrypt client: %w", err)
		}
	}
	if upd.Address != "" {
		if doc.Address, err = r.codec.enc(upd.Address); err != nil {
			return fmt.Errorf("encrypt client: %w", err)
		}
	}
	if upd.CompanyName != "" {
		if doc.CompanyName, err = r.codec.enc(upd.CompanyName); err != nil {
			return fmt.Errorf("encrypt client: %w", err)
		}
	}

	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": upd.ID, "owner": r.owner}, doc); err != nil {
		return fmt.Errorf("replace client: %w", err)
	}
	return nil
}

// Delete is idempotent: removing an absent id succeeds.
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "owner": r.owner}); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes used by the client queries.
func (r *ClientRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}},
	})
	return err
}

func (r *ClientRepository) toDomain(doc *clientDoc) *domain.Client {
	return &domain.Client{
		ID:          doc.ID,
		Name:        r.codec.dec(collectionClients, "name", doc.Name),
		Surname:     r.codec.dec(collectionClients, "surname", doc.Surname),
		Email:       r.codec.dec(collectionClients, "email", doc.Email),
		PhoneNumber: r.codec.dec(collectionClients, "phone_number", doc.PhoneNumber),
		Address:     r.codec.dec(collectionClients, "address", doc.Address),
		CompanyName: r.codec.dec(collectionClients, "company_name", doc.CompanyName),
		CreatedAt:   doc.CreatedAt,
	}
}

// splitFullName splits on the first space: "Jane van Wyk" → "Jane",
// "van Wyk".
func splitFullName(full string) (name, surname string) {
	parts := strings.SplitN(strings.TrimSpace(full), " ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}

var _ ports.ClientRepository = (*ClientRepository)(nil)
