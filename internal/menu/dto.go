package menu

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/southsteak/ordering-backend/internal/pricing"
	"github.com/southsteak/ordering-backend/pkg/db/models"
)

// MenuItemDTO is the catalog payload returned to clients. EffectivePrice and
// IsOnDiscount are evaluated against the request instant, not stored.
type MenuItemDTO struct {
	ID                uuid.UUID        `json:"id"`
	CategoryID        uuid.UUID        `json:"category_id"`
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	BasePrice         decimal.Decimal  `json:"base_price"`
	DiscountPrice     *decimal.Decimal `json:"discount_price,omitempty"`
	DiscountActive    bool             `json:"discount_active"`
	DiscountStartDate *time.Time       `json:"discount_start_date,omitempty"`
	DiscountEndDate   *time.Time       `json:"discount_end_date,omitempty"`
	IsOnDiscount      bool             `json:"is_on_discount"`
	EffectivePrice    decimal.Decimal  `json:"effective_price"`
	ImageURL          *string          `json:"image_url,omitempty"`
	Popular           bool             `json:"popular"`
	Available         bool             `json:"available"`
	Variations        []VariationDTO   `json:"variations"`
	AddOns            []AddOnDTO       `json:"add_ons"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// VariationDTO is one selectable cut/size with its price delta.
type VariationDTO struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	PriceDelta decimal.Decimal `json:"price_delta"`
	Position   int             `json:"position"`
}

// AddOnDTO is one selectable extra with its absolute per-unit price.
type AddOnDTO struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	GroupName string          `json:"group_name"`
	Position  int             `json:"position"`
}

// NewMenuItemDTO builds a DTO from the persisted model, evaluating the
// discount at the given instant.
func NewMenuItemDTO(item *models.MenuItem, now time.Time) *MenuItemDTO {
	quote := pricing.Evaluate(item, now)

	dto := &MenuItemDTO{
		ID:                item.ID,
		CategoryID:        item.CategoryID,
		Name:              item.Name,
		Description:       item.Description,
		BasePrice:         item.BasePrice,
		DiscountPrice:     item.DiscountPrice,
		DiscountActive:    item.DiscountActive,
		DiscountStartDate: item.DiscountStartDate,
		DiscountEndDate:   item.DiscountEndDate,
		IsOnDiscount:      quote.OnDiscount,
		EffectivePrice:    quote.EffectivePrice,
		ImageURL:          item.ImageURL,
		Popular:           item.Popular,
		Available:         item.Available,
		Variations:        make([]VariationDTO, len(item.Variations)),
		AddOns:            make([]AddOnDTO, len(item.AddOns)),
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}

	for i, v := range item.Variations {
		dto.Variations[i] = VariationDTO{
			ID:         v.ID,
			Name:       v.Name,
			PriceDelta: v.PriceDelta,
			Position:   v.Position,
		}
	}
	for i, a := range item.AddOns {
		dto.AddOns[i] = AddOnDTO{
			ID:        a.ID,
			Name:      a.Name,
			Price:     a.Price,
			GroupName: a.GroupName,
			Position:  a.Position,
		}
	}
	return dto
}
