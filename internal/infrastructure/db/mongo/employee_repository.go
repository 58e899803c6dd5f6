package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
	"github.com/elevate-digital/bizdesk/internal/core/ports"
)

const collectionEmployees = "employees"

// employeeDoc is the stored shape of an employee profile, keyed by the
// identity-provider subject id. The id number stays in clear; the personal
// fields hold ciphertext.
type employeeDoc struct {
	UID         string    `bson:"_id"`
	Owner       string    `bson:"owner"`
	IDNumber    string    `bson:"id_number"`
	Name        string    `bson:"name"`
	Surname     string    `bson:"surname"`
	FullName    string    `bson:"full_name"`
	Email       string    `bson:"email"`
	PhoneNumber string    `bson:"phone_number"`
	Role        string    `bson:"role"`
	CreatedAt   time.Time `bson:"created_at"`
}

type EmployeeRepository struct {
	col   *mongo.Collection
	codec FieldCodec
	owner string
}

func NewEmployeeRepository(db *mongo.Database, codec FieldCodec, owner string) *EmployeeRepository {
	return &EmployeeRepository{col: db.Collection(collectionEmployees), codec: codec, owner: owner}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	g := encGroup{codec: r.codec}
	doc := employeeDoc{
		UID:         e.UID,
		Owner:       r.owner,
		IDNumber:    e.IDNumber,
		Name:        g.enc(e.Name),
		Surname:     g.enc(e.Surname),
		FullName:    g.enc(e.FullName),
		Email:       g.enc(e.Email),
		PhoneNumber: g.enc(e.PhoneNumber),
		Role:        e.Role,
		CreatedAt:   e.CreatedAt,
	}
	if g.err != nil {
		return fmt.Errorf("encrypt employee: %w", g.err)
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) GetByUID(ctx context.Context, uid string) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc employeeDoc
	err := r.col.FindOne(ctx, bson.M{"_id": uid, "owner": r.owner}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return r.toDomain(&doc), nil
}

func (r *EmployeeRepository) List(ctx context.Context) ([]*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"owner": r.owner})
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer cur.Close(ctx)

	var employees []*domain.Employee
	for cur.Next(ctx) {
		var doc employeeDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode employee: %w", err)
		}
		employees = append(employees, r.toDomain(&doc))
	}
	return employees, cur.Err()
}

// Update merges only the provided fields into the stored document and
// overwrites it in full, re-enciphering replaced personal data and keeping
// full_name consistent with name + surname.
func (r *EmployeeRepository) Update(ctx context.Context, upd ports.EmployeeUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc employeeDoc
	err := r.col.FindOne(ctx, bson.M{"_id": upd.UID, "owner": r.owner}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrEmployeeNotFound
		}
		return fmt.Errorf("find employee: %w", err)
	}

	name := r.codec.dec(collectionEmployees, "name", doc.Name)
	surname := r.codec.dec(collectionEmployees, "surname", doc.Surname)
	if upd.Name != "" {
		name = upd.Name
	}
	if upd.Surname != "" {
		surname = upd.Surname
	}

	g := encGroup{codec: r.codec}
	if upd.Name != "" || upd.Surname != "" {
		doc.Name = g.enc(name)
		doc.Surname = g.enc(surname)
		doc.FullName = g.enc(name + " " + surname)
	}
	if upd.Email != "" {
		doc.Email = g.enc(upd.Email)
	}
	if upd.PhoneNumber != "" {
		doc.PhoneNumber = g.enc(upd.PhoneNumber)
	}
	if g.err != nil {
		return fmt.Errorf("encrypt employee: %w", g.err)
	}
	if upd.Role != "" {
		doc.Role = upd.Role
	}

	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": upd.UID, "owner": r.owner}, doc); err != nil {
		return fmt.Errorf("replace employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, uid string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": uid, "owner": r.owner}); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}},
	})
	return err
}

func (r *EmployeeRepository) toDomain(doc *employeeDoc) *domain.Employee {
	return &domain.Employee{
		UID:         doc.UID,
		IDNumber:    doc.IDNumber,
		Name:        r.codec.dec(collectionEmployees, "name", doc.Name),
		Surname:     r.codec.dec(collectionEmployees, "surname", doc.Surname),
		FullName:    r.codec.dec(collectionEmployees, "full_name", doc.FullName),
		Email:       r.codec.dec(collectionEmployees, "email", doc.Email),
		PhoneNumber: r.codec.dec(collectionEmployees, "phone_number", doc.PhoneNumber),
		Role:        doc.Role,
		CreatedAt:   doc.CreatedAt,
	}
}

var _ ports.EmployeeRepository = (*EmployeeRepository)(nil)
