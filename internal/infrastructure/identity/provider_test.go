package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
)

type stubUserStore struct {
	users map[string]*domain.User
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (s *stubUserStore) Create(_ context.Context, user *domain.User) error {
	for _, u := range s.users {
		if u.Email == user.Email {
			return domain.ErrUserExists
		}
	}
	s.users[user.UID] = cloneUser(user)
	return nil
}

func (s *stubUserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserStore) Delete(_ context.Context, uid string) error {
	delete(s.users, uid)
	return nil
}

func TestProvider_Register_Success(t *testing.T) {
	store := newStubUserStore()
	p := NewProvider(store, "secret", time.Hour)

	uid, err := p.Register(context.Background(), "alice@example.com", "pass123", "Alice Dube", domain.RoleManager)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if uid == "" {
		t.Fatalf("expected a subject id")
	}

	stored := store.users[uid]
	if stored == nil {
		t.Fatalf("account not persisted")
	}
	if stored.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestProvider_Register_Validation(t *testing.T) {
	p := NewProvider(newStubUserStore(), "secret", time.Hour)

	if _, err := p.Register(context.Background(), "", "pass", "", domain.RoleEmployee); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := p.Register(context.Background(), "a@b.c", "pass", "A", "Superuser"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown role, got %v", err)
	}
}

func TestProvider_Register_Duplicate(t *testing.T) {
	p := NewProvider(newStubUserStore(), "secret", time.Hour)

	if _, err := p.Register(context.Background(), "a@b.c", "pass", "A", domain.RoleEmployee); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := p.Register(context.Background(), "a@b.c", "other", "B", domain.RoleEmployee); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestProvider_SignIn_Success(t *testing.T) {
	store := newStubUserStore()
	p := NewProvider(store, "secret", time.Hour)

	uid, err := p.Register(context.Background(), "alice@example.com", "pass123", "Alice Dube", domain.RoleManager)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, user, err := p.SignIn(context.Background(), "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if user.UID != uid {
		t.Fatalf("unexpected uid: %s", user.UID)
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		t.Fatalf("invalid token claims")
	}
	if claims["sub"] != uid {
		t.Fatalf("unexpected sub claim: %v", claims["sub"])
	}
	if claims["role"] != domain.RoleManager {
		t.Fatalf("unexpected role claim: %v", claims["role"])
	}
	if claims["name"] != "Alice Dube" {
		t.Fatalf("unexpected name claim: %v", claims["name"])
	}
}

func TestProvider_SignIn_WrongPassword(t *testing.T) {
	p := NewProvider(newStubUserStore(), "secret", time.Hour)

	if _, err := p.Register(context.Background(), "alice@example.com", "pass123", "Alice", domain.RoleEmployee); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, _, err := p.SignIn(context.Background(), "alice@example.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := p.SignIn(context.Background(), "nobody@example.com", "pass123"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestProvider_DeleteAccount(t *testing.T) {
	store := newStubUserStore()
	p := NewProvider(store, "secret", time.Hour)

	uid, err := p.Register(context.Background(), "alice@example.com", "pass123", "Alice", domain.RoleEmployee)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := p.DeleteAccount(context.Background(), uid); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if len(store.users) != 0 {
		t.Fatalf("account still present after delete")
	}
}
