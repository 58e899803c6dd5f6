package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
	"github.com/elevate-digital/bizdesk/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubClientRepo struct {
	byID    map[string]*domain.Client
	nextID  int
	listErr error
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{byID: make(map[string]*domain.Client)}
}

func (r *stubClientRepo) Create(_ context.Context, c *domain.Client) (string, error) {
	r.nextID++
	id := fmt.Sprintf("client-%d", r.nextID)
	clone := *c
	clone.ID = id
	r.byID[id] = &clone
	return id, nil
}

func (r *stubClientRepo) GetByID(_ context.Context, id string) (*domain.Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubClientRepo) List(_ context.Context) ([]*domain.Client, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.Client, 0, len(r.byID))
	for _, c := range r.byID {
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

// Update mirrors the real repository: merge non-empty fields, split FullName
// on the first space, overwrite the stored document in full.
func (r *stubClientRepo) Update(_ context.Context, upd ports.ClientUpdate) error {
	c, ok := r.byID[upd.ID]
	if !ok {
		return domain.ErrClientNotFound
	}
	if upd.FullName != "" {
		name, surname, _ := strings.Cut(upd.FullName, " ")
		c.Name = name
		c.Surname = surname
	}
	if upd.Email != "" {
		c.Email = upd.Email
	}
	if upd.PhoneNumber != "" {
		c.PhoneNumber = upd.PhoneNumber
	}
	if upd.Address != "" {
		c.Address = upd.Address
	}
	if upd.CompanyName != "" {
		c.CompanyName = upd.CompanyName
	}
	return nil
}

func (r *stubClientRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestClientService_Lifecycle(t *testing.T) {
	repo := newStubClientRepo()
	svc := NewClientService(repo, zerolog.Nop())
	ctx := context.Background()

	created, err := svc.Create(ctx, ports.CreateClientInput{
		Name:        "Jane",
		Surname:     "Mokoena",
		Email:       "jane@acme.example",
		PhoneNumber: "0821234567",
		Address:     "1 Main Rd",
		CompanyName: "Acme Trading",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected repository-assigned id")
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Name != "Jane" || got.Surname != "Mokoena" || got.Email != "jane@acme.example" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 client, got %d", len(all))
	}

	err = svc.Update(ctx, ports.ClientUpdate{
		ID:       created.ID,
		FullName: "Janet van Wyk",
		Email:    "janet@acme.example",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	got, err = svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get after update: %v", err)
	}
	if got.Name != "Janet" || got.Surname != "van Wyk" {
		t.Fatalf("full name not split on first space: %q %q", got.Name, got.Surname)
	}
	if got.Email != "janet@acme.example" {
		t.Fatalf("email not updated: %q", got.Email)
	}
	// untouched fields survive the merge
	if got.PhoneNumber != "0821234567" || got.CompanyName != "Acme Trading" {
		t.Fatalf("unrelated fields changed: %+v", got)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound after delete, got %v", err)
	}
}

func TestClientService_GetAbsent(t *testing.T) {
	svc := NewClientService(newStubClientRepo(), zerolog.Nop())

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestClientService_UpdateAbsent(t *testing.T) {
	svc := NewClientService(newStubClientRepo(), zerolog.Nop())

	err := svc.Update(context.Background(), ports.ClientUpdate{ID: "missing", Email: "x@y.z"})
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestClientService_DeleteAbsentIsNoError(t *testing.T) {
	svc := NewClientService(newStubClientRepo(), zerolog.Nop())

	if err := svc.Delete(context.Background(), "missing"); err != nil {
		t.Fatalf("deleting an absent client should succeed, got %v", err)
	}
}
