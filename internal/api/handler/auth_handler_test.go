package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
)

type stubIdentityProvider struct {
	signInFn func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubIdentityProvider) SignIn(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.signInFn(ctx, email, password)
}

func (s *stubIdentityProvider) Register(context.Context, string, string, string, string) (string, error) {
	return "", nil
}

func (s *stubIdentityProvider) DeleteAccount(context.Context, string) error { return nil }

func TestAuthHandler_Login_Success(t *testing.T) {
	identity := &stubIdentityProvider{
		signInFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			if email != "alice@example.com" || password != "s3cret" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return "jwt-token", &domain.User{UID: "uid-1", Email: email, Role: domain.RoleManager}, nil
		},
	}
	handler := NewAuthHandler(identity)

	c, rec := jsonContext(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"s3cret"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Token != "jwt-token" || got.User == nil || got.User.UID != "uid-1" {
		t.Fatalf("unexpected response: %+v", got)
	}
}

func TestAuthHandler_Login_Validation(t *testing.T) {
	handler := NewAuthHandler(&stubIdentityProvider{})

	for _, body := range []string{
		`{"password":"s3cret"}`,
		`{"email":"alice@example.com"}`,
		`{"email":"not-an-email","password":"s3cret"}`,
	} {
		c, _ := jsonContext(http.MethodPost, "/auth/login", body)
		err := handler.Login(c)
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 HTTPError, got %v", body, err)
		}
	}
}

func TestAuthHandler_Login_BadCredentialsPropagate(t *testing.T) {
	identity := &stubIdentityProvider{
		signInFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(identity)

	c, _ := jsonContext(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"wrong"}`)
	err := handler.Login(c)
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected credentials error to reach the central handler, got %v", err)
	}
}
