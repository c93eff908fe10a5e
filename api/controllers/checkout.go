package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/southsteak/ordering-backend/api/middleware"
	"github.com/southsteak/ordering-backend/api/responses"
	"github.com/southsteak/ordering-backend/api/validators"
	checkoutsvc "github.com/southsteak/ordering-backend/internal/checkout"
	"github.com/southsteak/ordering-backend/pkg/enums"
	pkgerrors "github.com/southsteak/ordering-backend/pkg/errors"
	"github.com/southsteak/ordering-backend/pkg/logger"
)

type deliveryPayload struct {
	Address  string `json:"address" validate:"required"`
	Landmark string `json:"landmark"`
}

type pickupPayload struct {
	Minutes    string `json:"minutes"`
	CustomTime string `json:"custom_time"`
}

type dineInPayload struct {
	PartySize     int       `json:"party_size" validate:"required,min=1"`
	PreferredTime time.Time `json:"preferred_time" validate:"required"`
}

type checkoutRequest struct {
	CustomerName    string           `json:"customer_name" validate:"required"`
	ContactNumber   string           `json:"contact_number" validate:"required"`
	ServiceType     string           `json:"service_type" validate:"required,oneof=dine-in pickup delivery"`
	Delivery        *deliveryPayload `json:"delivery"`
	Pickup          *pickupPayload   `json:"pickup"`
	DineIn          *dineInPayload   `json:"dine_in"`
	PaymentMethodID uuid.UUID        `json:"payment_method_id" validate:"required"`
	Notes           string           `json:"notes"`
}

// Checkout assembles the order text for the session cart and returns the
// Messenger deep link the storefront opens to hand the order off.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		serviceType, err := enums.ParseServiceType(payload.ServiceType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid service type"))
			return
		}

		input := checkoutsvc.Input{
			CustomerName:    payload.CustomerName,
			ContactNumber:   payload.ContactNumber,
			ServiceType:     serviceType,
			PaymentMethodID: payload.PaymentMethodID,
			Notes:           payload.Notes,
		}
		if payload.Delivery != nil {
			input.Delivery = &checkoutsvc.DeliveryDetails{
				Address:  payload.Delivery.Address,
				Landmark: payload.Delivery.Landmark,
			}
		}
		if payload.Pickup != nil {
			input.Pickup = &checkoutsvc.PickupDetails{
				Minutes:    payload.Pickup.Minutes,
				CustomTime: payload.Pickup.CustomTime,
			}
		}
		if payload.DineIn != nil {
			input.DineIn = &checkoutsvc.DineInDetails{
				PartySize:     payload.DineIn.PartySize,
				PreferredTime: payload.DineIn.PreferredTime,
			}
		}

		handoff, err := svc.BuildHandoff(r.Context(), sessionID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, handoff)
	}
}
