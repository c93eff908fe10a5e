package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Variation is a mutually exclusive cut/size option on a menu item.
// PriceDelta is added to the item's effective base price and may be negative
// (a smaller cut can cost less than the base configuration).
type Variation struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MenuItemID uuid.UUID       `gorm:"column:menu_item_id;type:uuid;not null"`
	Name       string          `gorm:"column:name;not null"`
	PriceDelta decimal.Decimal `gorm:"column:price_delta;type:numeric(10,2);not null;default:0"`
	Position   int             `gorm:"column:position;not null;default:0"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}
