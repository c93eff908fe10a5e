package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/southsteak/ordering-backend/api/responses"
	pkgauth "github.com/southsteak/ordering-backend/pkg/auth"
	pkgerrors "github.com/southsteak/ordering-backend/pkg/errors"
	"github.com/southsteak/ordering-backend/pkg/logger"
)

// AdminVerifier validates a dashboard bearer token.
type AdminVerifier interface {
	Verify(ctx context.Context, token string) (*pkgauth.AdminClaims, error)
}

// AdminAuth validates the dashboard bearer token and seeds the context with
// the operator email.
func AdminAuth(verifier AdminVerifier, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithAdminEmail(r.Context(), claims.Email)
			if logg != nil {
				ctx = logg.WithField(ctx, "admin_email", claims.Email)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CronAuth guards the scheduled-task trigger endpoint with a shared secret.
func CronAuth(secret string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "cron trigger is not configured"))
				return
			}

			token := bearerToken(r)
			if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid cron secret"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
