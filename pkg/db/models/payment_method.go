package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is a manually settled payment channel (GCash, bank transfer,
// cash) displayed at checkout; no processing happens server-side.
type PaymentMethod struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string    `gorm:"column:name;not null"`
	AccountName   string    `gorm:"column:account_name;not null;default:''"`
	AccountNumber string    `gorm:"column:account_number;not null;default:''"`
	QRCodeURL     *string   `gorm:"column:qr_code_url"`
	Active        bool      `gorm:"column:active;not null;default:true"`
	SortOrder     int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
