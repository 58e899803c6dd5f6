// Package identity implements the sign-in provider on the local user store.
package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
	"github.com/elevate-digital/bizdesk/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

// UserStore is the persistence surface the provider needs.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Delete(ctx context.Context, uid string) error
}

// Provider implements ports.IdentityProvider with bcrypt-hashed credentials
// and HS256 session tokens.
type Provider struct {
	store     UserStore
	jwtSecret string
	tokenTTL  time.Duration
}

var _ ports.IdentityProvider = (*Provider)(nil)

// NewProvider constructs a Provider. A non-positive TTL falls back to 24h.
func NewProvider(store UserStore, jwtSecret string, tokenTTL time.Duration) *Provider {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &Provider{store: store, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// SignIn exchanges email/password for a signed session token.
func (p *Provider) SignIn(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := p.store.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := p.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Register provisions a sign-in account and returns its subject id.
func (p *Provider) Register(ctx context.Context, email, password, displayName, role string) (string, error) {
	if email == "" || password == "" || role == "" {
		return "", domain.ErrInvalidCredentials
	}
	if role != domain.RoleEmployee && role != domain.RoleManager {
		return "", domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		UID:          uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := p.store.Create(ctx, user); err != nil {
		return "", err
	}
	return user.UID, nil
}

// DeleteAccount removes the sign-in account for a subject id.
func (p *Provider) DeleteAccount(ctx context.Context, uid string) error {
	return p.store.Delete(ctx, uid)
}

func (p *Provider) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.UID,
		"name": user.DisplayName,
		"role": user.Role,
		"exp":  time.Now().Add(p.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(p.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
