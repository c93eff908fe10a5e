package auth

import (
	"context"
	"strings"
	"time"

	"github.com/southsteak/ordering-backend/pkg/auth"
	"github.com/southsteak/ordering-backend/pkg/config"
	pkgerrors "github.com/southsteak/ordering-backend/pkg/errors"
	"github.com/southsteak/ordering-backend/pkg/security"
)

// Service authenticates the dashboard operator. There is a single admin
// credential configured through the environment; no user table exists.
type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Verify(ctx context.Context, token string) (*auth.AdminClaims, error)
}

// LoginResult carries the minted token and its expiry.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type service struct {
	admin config.AdminConfig
	jwt   config.JWTConfig
	clock func() time.Time
}

// NewService constructs the admin auth service.
func NewService(admin config.AdminConfig, jwt config.JWTConfig) (Service, error) {
	if admin.Email == "" || admin.PasswordHash == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "admin credential is not configured")
	}
	if jwt.Secret == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "jwt secret is not configured")
	}
	return &service{admin: admin, jwt: jwt, clock: time.Now}, nil
}

// Login verifies the credential and mints a session token. Failures are
// reported uniformly so the response does not reveal which check failed.
func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	if email != strings.ToLower(s.admin.Email) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	ok, err := security.VerifyPassword(password, s.admin.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	now := s.clock()
	token, err := auth.MintAdminToken(s.jwt, now, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: now.Add(time.Duration(s.jwt.ExpirationMinutes) * time.Minute),
	}, nil
}

// Verify parses and validates a bearer token.
func (s *service) Verify(ctx context.Context, token string) (*auth.AdminClaims, error) {
	claims, err := auth.ParseAdminToken(s.jwt, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	return claims, nil
}
