package controllers

import (
	"net/http"

	"github.com/southsteak/ordering-backend/api/responses"
	"github.com/southsteak/ordering-backend/api/validators"
	authsvc "github.com/southsteak/ordering-backend/internal/auth"
	"github.com/southsteak/ordering-backend/pkg/logger"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminLogin authenticates the dashboard operator and mints a bearer token.
func AdminLogin(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), payload.Email, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
