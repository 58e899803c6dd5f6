package ports

import (
	"context"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
)

// IdentityProvider abstracts the external identity service. SignIn exchanges
// email/password for an opaque session token; Register provisions an account
// and returns its stable subject identifier.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	Register(ctx context.Context, email, password, displayName, role string) (uid string, err error)
	// DeleteAccount removes the sign-in account for a subject id.
	DeleteAccount(ctx context.Context, uid string) error
}
