package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
	"github.com/elevate-digital/bizdesk/internal/core/ports"
)

type stubEmployeeRepo struct {
	byUID map[string]*domain.Employee
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{byUID: make(map[string]*domain.Employee)}
}

func (r *stubEmployeeRepo) Create(_ context.Context, e *domain.Employee) error {
	clone := *e
	r.byUID[e.UID] = &clone
	return nil
}

func (r *stubEmployeeRepo) GetByUID(_ context.Context, uid string) (*domain.Employee, error) {
	e, ok := r.byUID[uid]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEmployeeRepo) List(_ context.Context) ([]*domain.Employee, error) {
	out := make([]*domain.Employee, 0, len(r.byUID))
	for _, e := range r.byUID {
		clone := *e
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubEmployeeRepo) Update(_ context.Context, upd ports.EmployeeUpdate) error {
	e, ok := r.byUID[upd.UID]
	if !ok {
		return domain.ErrEmployeeNotFound
	}
	if upd.Name != "" {
		e.Name = upd.Name
	}
	if upd.Surname != "" {
		e.Surname = upd.Surname
	}
	e.FullName = e.Name + " " + e.Surname
	if upd.Email != "" {
		e.Email = upd.Email
	}
	if upd.PhoneNumber != "" {
		e.PhoneNumber = upd.PhoneNumber
	}
	if upd.Role != "" {
		e.Role = upd.Role
	}
	return nil
}

func (r *stubEmployeeRepo) Delete(_ context.Context, uid string) error {
	delete(r.byUID, uid)
	return nil
}

// stubIdentity records registrations and deletions; errors are injectable.
type stubIdentity struct {
	nextUID      int
	registered   map[string]string // uid -> password handed out
	deleted      []string
	registerErr  error
	deleteErr    error
	lastPassword string
}

func newStubIdentity() *stubIdentity {
	return &stubIdentity{registered: make(map[string]string)}
}

func (s *stubIdentity) SignIn(context.Context, string, string) (string, *domain.User, error) {
	return "", nil, domain.ErrInvalidCredentials
}

func (s *stubIdentity) Register(_ context.Context, _, password, _, _ string) (string, error) {
	if s.registerErr != nil {
		return "", s.registerErr
	}
	s.nextUID++
	uid := fmt.Sprintf("uid-%d", s.nextUID)
	s.registered[uid] = password
	s.lastPassword = password
	return uid, nil
}

func (s *stubIdentity) DeleteAccount(_ context.Context, uid string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, uid)
	return nil
}

func TestEmployeeService_Create(t *testing.T) {
	repo := newStubEmployeeRepo()
	idp := newStubIdentity()
	svc := NewEmployeeService(repo, idp, zerolog.Nop())

	result, err := svc.Create(context.Background(), ports.CreateEmployeeInput{
		IDNumber: "9001015009087",
		Name:     "Thabo",
		Surname:  "Nkosi",
		Email:    "thabo@bizdesk.example",
		Role:     domain.RoleEmployee,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if result.Employee.UID == "" {
		t.Fatalf("expected provider-assigned uid")
	}
	if result.Employee.FullName != "Thabo Nkosi" {
		t.Fatalf("unexpected full name: %q", result.Employee.FullName)
	}
	// temp credential derives from the last six digits of the id number
	if result.TempPassword != "Tmp@009087" {
		t.Fatalf("unexpected temp password: %q", result.TempPassword)
	}
	if idp.lastPassword != result.TempPassword {
		t.Fatalf("provider registered with a different credential")
	}
	if _, ok := repo.byUID[result.Employee.UID]; !ok {
		t.Fatalf("profile not stored under subject id")
	}
}

func TestEmployeeService_Create_BadIDNumber(t *testing.T) {
	svc := NewEmployeeService(newStubEmployeeRepo(), newStubIdentity(), zerolog.Nop())

	for _, idNumber := range []string{"", "12345", "900101500908a", "90010150090877"} {
		_, err := svc.Create(context.Background(), ports.CreateEmployeeInput{
			IDNumber: idNumber,
			Name:     "T",
			Surname:  "N",
			Email:    "t@e.x",
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("id number %q: expected validation error, got %v", idNumber, err)
		}
	}
}

func TestEmployeeService_Create_DefaultsRole(t *testing.T) {
	idp := newStubIdentity()
	svc := NewEmployeeService(newStubEmployeeRepo(), idp, zerolog.Nop())

	result, err := svc.Create(context.Background(), ports.CreateEmployeeInput{
		IDNumber: "9001015009087",
		Name:     "T",
		Surname:  "N",
		Email:    "t@e.x",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if result.Employee.Role != domain.RoleEmployee {
		t.Fatalf("expected default role Employee, got %q", result.Employee.Role)
	}
}

func TestEmployeeService_Create_RegistrationFails(t *testing.T) {
	repo := newStubEmployeeRepo()
	idp := newStubIdentity()
	idp.registerErr = domain.ErrUserExists
	svc := NewEmployeeService(repo, idp, zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateEmployeeInput{
		IDNumber: "9001015009087",
		Name:     "T",
		Surname:  "N",
		Email:    "t@e.x",
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(repo.byUID) != 0 {
		t.Fatalf("profile stored despite failed registration")
	}
}

func TestEmployeeService_Delete_RemovesAccount(t *testing.T) {
	repo := newStubEmployeeRepo()
	idp := newStubIdentity()
	svc := NewEmployeeService(repo, idp, zerolog.Nop())

	result, err := svc.Create(context.Background(), ports.CreateEmployeeInput{
		IDNumber: "9001015009087",
		Name:     "T",
		Surname:  "N",
		Email:    "t@e.x",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(context.Background(), result.Employee.UID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(idp.deleted) != 1 || idp.deleted[0] != result.Employee.UID {
		t.Fatalf("sign-in account not removed: %v", idp.deleted)
	}
}

func TestEmployeeService_Delete_AccountFailureIsNotFatal(t *testing.T) {
	repo := newStubEmployeeRepo()
	idp := newStubIdentity()
	svc := NewEmployeeService(repo, idp, zerolog.Nop())

	result, err := svc.Create(context.Background(), ports.CreateEmployeeInput{
		IDNumber: "9001015009087",
		Name:     "T",
		Surname:  "N",
		Email:    "t@e.x",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	idp.deleteErr = errors.New("provider unavailable")
	if err := svc.Delete(context.Background(), result.Employee.UID); err != nil {
		t.Fatalf("profile delete should succeed despite account failure, got %v", err)
	}
	if _, ok := repo.byUID[result.Employee.UID]; ok {
		t.Fatalf("profile still present")
	}
}
