package controllers

import (
	"net/http"

	"github.com/southsteak/ordering-backend/api/responses"
	"github.com/southsteak/ordering-backend/api/validators"
	pmsvc "github.com/southsteak/ordering-backend/internal/paymentmethods"
	"github.com/southsteak/ordering-backend/pkg/logger"
)

// PaymentMethodList serves the active payment channels shown at checkout.
func PaymentMethodList(svc pmsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		methods, err := svc.ListActive(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, methods)
	}
}

func AdminPaymentMethodList(svc pmsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		methods, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, methods)
	}
}

type createPaymentMethodRequest struct {
	Name          string  `json:"name" validate:"required"`
	AccountName   string  `json:"account_name"`
	AccountNumber string  `json:"account_number"`
	QRCodeURL     *string `json:"qr_code_url"`
	Active        *bool   `json:"active"`
	SortOrder     int     `json:"sort_order"`
}

func AdminPaymentMethodCreate(svc pmsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createPaymentMethodRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		active := true
		if payload.Active != nil {
			active = *payload.Active
		}

		method, err := svc.Create(r.Context(), pmsvc.PaymentMethodInput{
			Name:          payload.Name,
			AccountName:   payload.AccountName,
			AccountNumber: payload.AccountNumber,
			QRCodeURL:     payload.QRCodeURL,
			Active:        active,
			SortOrder:     payload.SortOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, method)
	}
}

type updatePaymentMethodRequest struct {
	Name          *string `json:"name"`
	AccountName   *string `json:"account_name"`
	AccountNumber *string `json:"account_number"`
	QRCodeURL     *string `json:"qr_code_url"`
	ClearQRCode   bool    `json:"clear_qr_code"`
	Active        *bool   `json:"active"`
	SortOrder     *int    `json:"sort_order"`
}

func AdminPaymentMethodUpdate(svc pmsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "methodId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updatePaymentMethodRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := svc.Update(r.Context(), id, pmsvc.UpdatePaymentMethodInput{
			Name:          payload.Name,
			AccountName:   payload.AccountName,
			AccountNumber: payload.AccountNumber,
			QRCodeURL:     payload.QRCodeURL,
			ClearQRCode:   payload.ClearQRCode,
			Active:        payload.Active,
			SortOrder:     payload.SortOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, method)
	}
}

func AdminPaymentMethodDelete(svc pmsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "methodId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
