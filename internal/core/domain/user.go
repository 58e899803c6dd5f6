package domain

import "time"

// User is a sign-in account held by the identity provider. The UID is the
// stable subject identifier carried in session tokens and used to key the
// employee profile.
type User struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
