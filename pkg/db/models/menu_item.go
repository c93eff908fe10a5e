package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItem is the canonical catalog record for one dish.
//
// Discount windows are stored raw; whether the discount applies right now is
// derived per request from DiscountActive, DiscountPrice and the window bounds.
type MenuItem struct {
	ID                uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID        uuid.UUID        `gorm:"column:category_id;type:uuid;not null"`
	Name              string           `gorm:"column:name;not null"`
	Description       string           `gorm:"column:description;not null;default:''"`
	BasePrice         decimal.Decimal  `gorm:"column:base_price;type:numeric(10,2);not null"`
	DiscountPrice     *decimal.Decimal `gorm:"column:discount_price;type:numeric(10,2)"`
	DiscountActive    bool             `gorm:"column:discount_active;not null;default:false"`
	DiscountStartDate *time.Time       `gorm:"column:discount_start_date"`
	DiscountEndDate   *time.Time       `gorm:"column:discount_end_date"`
	ImageURL          *string          `gorm:"column:image_url"`
	Popular           bool             `gorm:"column:popular;not null;default:false"`
	Available         bool             `gorm:"column:available;not null;default:true"`
	Variations        []Variation      `gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE"`
	AddOns            []AddOn          `gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
