package models

import (
	"time"

	"github.com/google/uuid"
)

// SiteSettings is the single-row storefront configuration.
type SiteSettings struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SiteName        string    `gorm:"column:site_name;not null"`
	SiteDescription string    `gorm:"column:site_description;not null;default:''"`
	Currency        string    `gorm:"column:currency;not null;default:'₱'"`
	CurrencyCode    string    `gorm:"column:currency_code;not null;default:'PHP'"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides GORM's pluralization.
func (SiteSettings) TableName() string {
	return "site_settings"
}
