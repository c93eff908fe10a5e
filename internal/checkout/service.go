package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/southsteak/ordering-backend/internal/cart"
	"github.com/southsteak/ordering-backend/pkg/config"
	"github.com/southsteak/ordering-backend/pkg/db/models"
	"github.com/southsteak/ordering-backend/pkg/enums"
	pkgerrors "github.com/southsteak/ordering-backend/pkg/errors"
)

type cartReader interface {
	Get(ctx context.Context, sessionID string) (*cart.Cart, error)
}

type paymentMethodLoader interface {
	Get(ctx context.Context, id uuid.UUID) (*models.PaymentMethod, error)
}

type settingsReader interface {
	Get(ctx context.Context) (*models.SiteSettings, error)
}

// Service assembles the Messenger handoff for a session cart. Orders are not
// persisted; the conversation is the order record.
type Service interface {
	BuildHandoff(ctx context.Context, sessionID string, input Input) (*Handoff, error)
}

type service struct {
	carts          cartReader
	paymentMethods paymentMethodLoader
	settings       settingsReader
	cfg            config.CheckoutConfig
}

// NewService constructs a checkout service instance.
func NewService(carts cartReader, paymentMethods paymentMethodLoader, settings settingsReader, cfg config.CheckoutConfig) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart reader required")
	}
	if paymentMethods == nil {
		return nil, fmt.Errorf("payment method loader required")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings reader required")
	}
	if cfg.MessengerPageID == "" {
		return nil, fmt.Errorf("messenger page id required")
	}
	return &service{
		carts:          carts,
		paymentMethods: paymentMethods,
		settings:       settings,
		cfg:            cfg,
	}, nil
}

// BuildHandoff validates the checkout payload against the session cart and
// returns the order text plus the m.me deep link.
func (s *service) BuildHandoff(ctx context.Context, sessionID string, input Input) (*Handoff, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	sessionCart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(sessionCart.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	method, err := s.paymentMethods.Get(ctx, input.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	if !method.Active {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment method is not active")
	}

	siteSettings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	orderText := BuildOrderText(sessionCart, input, method.Name, siteSettings.Currency)
	return &Handoff{
		OrderText:    orderText,
		MessengerURL: MessengerURL(s.cfg.MessengerPageID, orderText),
		TotalPrice:   sessionCart.TotalPrice(),
		ItemCount:    sessionCart.ItemCount(),
	}, nil
}

func validateInput(input Input) error {
	if strings.TrimSpace(input.CustomerName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if strings.TrimSpace(input.ContactNumber) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "contact number is required")
	}
	if !input.ServiceType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid service type")
	}
	if input.PaymentMethodID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment method is required")
	}

	switch input.ServiceType {
	case enums.ServiceTypeDelivery:
		if input.Delivery == nil || strings.TrimSpace(input.Delivery.Address) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "delivery address is required")
		}
	case enums.ServiceTypePickup:
		if input.Pickup == nil || (input.Pickup.Minutes == "" && input.Pickup.CustomTime == "") {
			return pkgerrors.New(pkgerrors.CodeValidation, "pickup time is required")
		}
	case enums.ServiceTypeDineIn:
		if input.DineIn == nil || input.DineIn.PartySize < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, "party size must be at least 1")
		}
		if input.DineIn.PreferredTime.IsZero() {
			return pkgerrors.New(pkgerrors.CodeValidation, "preferred time is required")
		}
	}
	return nil
}
