package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/southsteak/ordering-backend/pkg/db/models"
)

// Quote is the result of evaluating a menu item's discount at a point in time.
type Quote struct {
	OnDiscount     bool
	EffectivePrice decimal.Decimal
}

// Evaluate decides whether the item's discount applies at the given instant
// and returns the price subsequent calculations should start from.
//
// A discount applies only when the flag is set, a positive discount price exists, and
// the instant falls inside the configured window. Window bounds are inclusive
// on both ends; a missing bound leaves that side open.
func Evaluate(item *models.MenuItem, now time.Time) Quote {
	if item == nil {
		return Quote{}
	}

	quote := Quote{EffectivePrice: item.BasePrice}
	if !item.DiscountActive || item.DiscountPrice == nil || !item.DiscountPrice.IsPositive() {
		return quote
	}
	if item.DiscountStartDate != nil && now.Before(*item.DiscountStartDate) {
		return quote
	}
	if item.DiscountEndDate != nil && now.After(*item.DiscountEndDate) {
		return quote
	}

	quote.OnDiscount = true
	quote.EffectivePrice = *item.DiscountPrice
	return quote
}

// AddOnSelection pairs an add-on with the quantity chosen for it.
type AddOnSelection struct {
	AddOn models.AddOn
	Qty   int
}

// UnitPrice computes the price of one unit of a customized item:
// the effective base price, plus the chosen variation's delta, plus
// each add-on's price scaled by its quantity.
func UnitPrice(item *models.MenuItem, variation *models.Variation, addOns []AddOnSelection, now time.Time) decimal.Decimal {
	price := Evaluate(item, now).EffectivePrice
	if variation != nil {
		price = price.Add(variation.PriceDelta)
	}
	for _, sel := range addOns {
		if sel.Qty <= 0 {
			continue
		}
		price = price.Add(sel.AddOn.Price.Mul(decimal.NewFromInt(int64(sel.Qty))))
	}
	return price
}
