package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/southsteak/ordering-backend/api/responses"
	"github.com/southsteak/ordering-backend/api/validators"
	menusvc "github.com/southsteak/ordering-backend/internal/menu"
	"github.com/southsteak/ordering-backend/pkg/logger"
)

// MenuList serves the catalog with optional filters. The storefront asks for
// available items only; the dashboard lists everything.
func MenuList(svc menusvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.ParseQueryUUID(r, "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		availableOnly, err := validators.ParseQueryBool(r, "available_only")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		popularOnly, err := validators.ParseQueryBool(r, "popular_only")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.ListMenu(r.Context(), menusvc.ListFilters{
			CategoryID:    categoryID,
			AvailableOnly: availableOnly,
			PopularOnly:   popularOnly,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

func MenuGet(svc menusvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetMenuItemDTO(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

type variationPayload struct {
	Name       string          `json:"name" validate:"required"`
	PriceDelta decimal.Decimal `json:"price_delta"`
	Position   int             `json:"position"`
}

type addOnPayload struct {
	Name      string          `json:"name" validate:"required"`
	Price     decimal.Decimal `json:"price"`
	GroupName string          `json:"group_name"`
	Position  int             `json:"position"`
}

type createMenuItemRequest struct {
	CategoryID        uuid.UUID          `json:"category_id" validate:"required"`
	Name              string             `json:"name" validate:"required"`
	Description       string             `json:"description"`
	BasePrice         decimal.Decimal    `json:"base_price" validate:"required"`
	DiscountPrice     *decimal.Decimal   `json:"discount_price"`
	DiscountActive    bool               `json:"discount_active"`
	DiscountStartDate *time.Time         `json:"discount_start_date"`
	DiscountEndDate   *time.Time         `json:"discount_end_date"`
	ImageURL          *string            `json:"image_url"`
	Popular           bool               `json:"popular"`
	Available         *bool              `json:"available"`
	Variations        []variationPayload `json:"variations" validate:"dive"`
	AddOns            []addOnPayload     `json:"add_ons" validate:"dive"`
}

func AdminMenuCreate(svc menusvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createMenuItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		available := true
		if payload.Available != nil {
			available = *payload.Available
		}

		item, err := svc.CreateMenuItem(r.Context(), menusvc.CreateMenuItemInput{
			CategoryID:        payload.CategoryID,
			Name:              payload.Name,
			Description:       payload.Description,
			BasePrice:         payload.BasePrice,
			DiscountPrice:     payload.DiscountPrice,
			DiscountActive:    payload.DiscountActive,
			DiscountStartDate: payload.DiscountStartDate,
			DiscountEndDate:   payload.DiscountEndDate,
			ImageURL:          payload.ImageURL,
			Popular:           payload.Popular,
			Available:         available,
			Variations:        toVariationInputs(payload.Variations),
			AddOns:            toAddOnInputs(payload.AddOns),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

type updateMenuItemRequest struct {
	CategoryID        *uuid.UUID          `json:"category_id"`
	Name              *string             `json:"name"`
	Description       *string             `json:"description"`
	BasePrice         *decimal.Decimal    `json:"base_price"`
	DiscountPrice     *decimal.Decimal    `json:"discount_price"`
	ClearDiscount     bool                `json:"clear_discount"`
	DiscountActive    *bool               `json:"discount_active"`
	DiscountStartDate *time.Time          `json:"discount_start_date"`
	DiscountEndDate   *time.Time          `json:"discount_end_date"`
	ImageURL          *string             `json:"image_url"`
	Popular           *bool               `json:"popular"`
	Available         *bool               `json:"available"`
	Variations        *[]variationPayload `json:"variations" validate:"omitempty,dive"`
	AddOns            *[]addOnPayload     `json:"add_ons" validate:"omitempty,dive"`
}

func AdminMenuUpdate(svc menusvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateMenuItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := menusvc.UpdateMenuItemInput{
			CategoryID:        payload.CategoryID,
			Name:              payload.Name,
			Description:       payload.Description,
			BasePrice:         payload.BasePrice,
			DiscountPrice:     payload.DiscountPrice,
			ClearDiscount:     payload.ClearDiscount,
			DiscountActive:    payload.DiscountActive,
			DiscountStartDate: payload.DiscountStartDate,
			DiscountEndDate:   payload.DiscountEndDate,
			ImageURL:          payload.ImageURL,
			Popular:           payload.Popular,
			Available:         payload.Available,
		}
		if payload.Variations != nil {
			variations := toVariationInputs(*payload.Variations)
			input.Variations = &variations
		}
		if payload.AddOns != nil {
			addOns := toAddOnInputs(*payload.AddOns)
			input.AddOns = &addOns
		}

		item, err := svc.UpdateMenuItem(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

func AdminMenuDelete(svc menusvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteMenuItem(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func toVariationInputs(payloads []variationPayload) []menusvc.VariationInput {
	inputs := make([]menusvc.VariationInput, len(payloads))
	for i, p := range payloads {
		inputs[i] = menusvc.VariationInput{
			Name:       p.Name,
			PriceDelta: p.PriceDelta,
			Position:   p.Position,
		}
	}
	return inputs
}

func toAddOnInputs(payloads []addOnPayload) []menusvc.AddOnInput {
	inputs := make([]menusvc.AddOnInput, len(payloads))
	for i, p := range payloads {
		inputs[i] = menusvc.AddOnInput{
			Name:      p.Name,
			Price:     p.Price,
			GroupName: p.GroupName,
			Position:  p.Position,
		}
	}
	return inputs
}
