package ports

import (
	"context"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
)

// ClientRepository defines persistence operations for clients. Implementations
// encipher personal fields on write and decipher (with raw fallback) on read.
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	// List returns every client; ordering is store-defined.
	List(ctx context.Context) ([]*domain.Client, error)
	// Update merges the non-empty fields of upd into the stored document and
	// overwrites it in full.
	Update(ctx context.Context, upd ClientUpdate) error
	// Delete removes the document. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}

// CreateClientInput carries the data for a new client. The id is always
// assigned by the repository.
type CreateClientInput struct {
	Name        string
	Surname     string
	Email       string
	PhoneNumber string
	Address     string
	CompanyName string
}

// ClientUpdate is a partial update; empty fields are left unchanged.
// FullName, when set, is split into name and surname on the first space.
type ClientUpdate struct {
	ID          string
	FullName    string
	Email       string
	PhoneNumber string
	Address     string
	CompanyName string
}

// ClientService defines use-case operations for clients.
type ClientService interface {
	Create(ctx context.Context, input CreateClientInput) (*domain.Client, error)
	Get(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, upd ClientUpdate) error
	Delete(ctx context.Context, id string) error
}
