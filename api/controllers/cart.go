package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/southsteak/ordering-backend/api/middleware"
	"github.com/southsteak/ordering-backend/api/responses"
	"github.com/southsteak/ordering-backend/api/validators"
	cartsvc "github.com/southsteak/ordering-backend/internal/cart"
	pkgerrors "github.com/southsteak/ordering-backend/pkg/errors"
	"github.com/southsteak/ordering-backend/pkg/logger"
)

func CartGet(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		cart, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cart)
	}
}

type addOnQtyPayload struct {
	AddOnID uuid.UUID `json:"add_on_id" validate:"required"`
	Qty     int       `json:"qty" validate:"required,min=1"`
}

type addCartItemRequest struct {
	MenuItemID  uuid.UUID         `json:"menu_item_id" validate:"required"`
	VariationID *uuid.UUID        `json:"variation_id"`
	AddOns      []addOnQtyPayload `json:"add_ons" validate:"dive"`
	Quantity    int               `json:"quantity" validate:"required,min=1"`
}

// CartAddItem prices the configuration and merges it into the session cart.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		addOns := make([]cartsvc.AddOnQty, len(payload.AddOns))
		for i, a := range payload.AddOns {
			addOns[i] = cartsvc.AddOnQty{AddOnID: a.AddOnID, Qty: a.Qty}
		}

		cart, err := svc.AddItem(r.Context(), sessionID, cartsvc.AddItemInput{
			MenuItemID:  payload.MenuItemID,
			VariationID: payload.VariationID,
			AddOns:      addOns,
			Quantity:    payload.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cart)
	}
}

type updateCartLineRequest struct {
	LineKey  string `json:"line_key" validate:"required"`
	Quantity int    `json:"quantity"`
}

// CartUpdateLine sets an absolute quantity on a line. Zero removes the line.
func CartUpdateLine(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		var payload updateCartLineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.UpdateQuantity(r.Context(), sessionID, payload.LineKey, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cart)
	}
}

// CartRemoveLine drops a line by key. Removing an absent line is a no-op.
func CartRemoveLine(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		lineKey := strings.TrimSpace(r.URL.Query().Get("line_key"))
		if lineKey == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "line_key query parameter is required"))
			return
		}

		cart, err := svc.RemoveLine(r.Context(), sessionID, lineKey)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cart)
	}
}

func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		cart, err := svc.Clear(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cart)
	}
}
