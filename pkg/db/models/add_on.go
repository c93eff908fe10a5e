package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddOn is an independently quantifiable extra with an absolute per-unit price.
// GroupName is a display grouping tag (e.g. "extras", "sides").
type AddOn struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MenuItemID uuid.UUID       `gorm:"column:menu_item_id;type:uuid;not null"`
	Name       string          `gorm:"column:name;not null"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null;default:0"`
	GroupName  string          `gorm:"column:group_name;not null;default:'extras'"`
	Position   int             `gorm:"column:position;not null;default:0"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}
