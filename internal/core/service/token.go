package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// newSecureToken returns a 64-character hex capability token backed by 32
// bytes of crypto/rand entropy. The token itself is the authorisation for
// the emailed status-change links, so it must be unguessable.
func newSecureToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("secure token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// tokenMatches compares a presented token with the stored one in constant
// time.
func tokenMatches(stored, presented string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}
