package cart

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// noVariationKey stands in for the variation segment of a line key when the
// item was added without choosing one.
const noVariationKey = "none"

// AddOnLine is one add-on choice captured on a cart line.
type AddOnLine struct {
	AddOnID uuid.UUID       `json:"add_on_id"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Qty     int             `json:"qty"`
}

// Line is a single cart entry: one item configuration at a locked unit price.
type Line struct {
	Key           string          `json:"key"`
	MenuItemID    uuid.UUID       `json:"menu_item_id"`
	Name          string          `json:"name"`
	VariationID   *uuid.UUID      `json:"variation_id,omitempty"`
	VariationName *string         `json:"variation_name,omitempty"`
	AddOns        []AddOnLine     `json:"add_ons,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int             `json:"quantity"`
	ImageURL      *string         `json:"image_url,omitempty"`
}

// Subtotal is the line's unit price times its quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// LineKey derives the identity of a cart line from the item, its variation
// and the multiset of add-on selections. Two configurations that differ only
// in add-on order produce the same key; differing quantities do not.
func LineKey(menuItemID uuid.UUID, variationID *uuid.UUID, addOns []AddOnLine) string {
	var b strings.Builder
	b.WriteString(menuItemID.String())
	b.WriteByte('|')
	if variationID != nil {
		b.WriteString(variationID.String())
	} else {
		b.WriteString(noVariationKey)
	}

	parts := make([]string, 0, len(addOns))
	for _, sel := range addOns {
		parts = append(parts, sel.AddOnID.String()+":"+strconv.Itoa(sel.Qty))
	}
	sort.Strings(parts)
	for _, p := range parts {
		b.WriteByte('|')
		b.WriteString(p)
	}
	return b.String()
}
