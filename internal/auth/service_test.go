package auth

import (
	"context"
	"testing"

	"github.com/southsteak/ordering-backend/pkg/config"
	pkgerrors "github.com/southsteak/ordering-backend/pkg/errors"
	"github.com/southsteak/ordering-backend/pkg/security"
)

func newTestService(t *testing.T, password string) Service {
	t.Helper()

	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	svc, err := NewService(
		config.AdminConfig{Email: "admin@southsteak.ph", PasswordHash: hash},
		config.JWTConfig{Secret: "test-secret", Issuer: "southsteak", ExpirationMinutes: 60},
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestLoginAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, "correct horse battery")
	ctx := context.Background()

	result, err := svc.Login(ctx, "Admin@SouthSteak.ph", "correct horse battery")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}

	claims, err := svc.Verify(ctx, result.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Email != "admin@southsteak.ph" {
		t.Fatalf("claims email = %q", claims.Email)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, "correct horse battery")
	ctx := context.Background()

	cases := []struct {
		name     string
		email    string
		password string
		code     pkgerrors.Code
	}{
		{"wrong password", "admin@southsteak.ph", "wrong", pkgerrors.CodeUnauthorized},
		{"wrong email", "intruder@example.com", "correct horse battery", pkgerrors.CodeUnauthorized},
		{"blank input", "", "", pkgerrors.CodeValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tc.email, tc.password)
			if err == nil {
				t.Fatal("expected error")
			}
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != tc.code {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestVerifyRejectsGarbageToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, "correct horse battery")
	if _, err := svc.Verify(context.Background(), "not-a-jwt"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
