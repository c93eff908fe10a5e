package controllers

import (
	"net/http"

	"github.com/southsteak/ordering-backend/api/responses"
	"github.com/southsteak/ordering-backend/api/validators"
	settingssvc "github.com/southsteak/ordering-backend/internal/settings"
	"github.com/southsteak/ordering-backend/pkg/logger"
)

func SettingsGet(svc settingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := svc.Get(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, settings)
	}
}

type updateSettingsRequest struct {
	SiteName        *string `json:"site_name"`
	SiteDescription *string `json:"site_description"`
	Currency        *string `json:"currency"`
	CurrencyCode    *string `json:"currency_code"`
}

func AdminSettingsUpdate(svc settingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload updateSettingsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		settings, err := svc.Update(r.Context(), settingssvc.UpdateInput{
			SiteName:        payload.SiteName,
			SiteDescription: payload.SiteDescription,
			Currency:        payload.Currency,
			CurrencyCode:    payload.CurrencyCode,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, settings)
	}
}
