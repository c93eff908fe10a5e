package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/southsteak/ordering-backend/pkg/enums"
)

// Input is the validated checkout payload for one session cart.
type Input struct {
	CustomerName    string
	ContactNumber   string
	ServiceType     enums.ServiceType
	Delivery        *DeliveryDetails
	Pickup          *PickupDetails
	DineIn          *DineInDetails
	PaymentMethodID uuid.UUID
	Notes           string
}

// DeliveryDetails holds the drop-off information for delivery orders.
type DeliveryDetails struct {
	Address  string
	Landmark string
}

// PickupDetails holds the pickup timing. Minutes carries a preset range like
// "5-10"; CustomTime is free text used when no preset fits.
type PickupDetails struct {
	Minutes    string
	CustomTime string
}

// DineInDetails holds the reservation information for dine-in orders.
type DineInDetails struct {
	PartySize     int
	PreferredTime time.Time
}

// Handoff is the assembled result: the plain order text and the Messenger
// deep link the storefront opens to finish the order.
type Handoff struct {
	OrderText    string          `json:"order_text"`
	MessengerURL string          `json:"messenger_url"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	ItemCount    int             `json:"item_count"`
}
