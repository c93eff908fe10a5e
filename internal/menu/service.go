package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/southsteak/ordering-backend/pkg/db"
	"github.com/southsteak/ordering-backend/pkg/db/models"
	pkgerrors "github.com/southsteak/ordering-backend/pkg/errors"
)

// Service exposes catalog read paths for the storefront and menu item
// management for the admin surface.
type Service interface {
	ListMenu(ctx context.Context, filters ListFilters) ([]MenuItemDTO, error)
	GetMenuItemDTO(ctx context.Context, id uuid.UUID) (*MenuItemDTO, error)
	GetMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	CreateMenuItem(ctx context.Context, input CreateMenuItemInput) (*MenuItemDTO, error)
	UpdateMenuItem(ctx context.Context, id uuid.UUID, input UpdateMenuItemInput) (*MenuItemDTO, error)
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error
}

// CreateMenuItemInput holds the validated payload to create a menu item.
type CreateMenuItemInput struct {
	CategoryID        uuid.UUID
	Name              string
	Description       string
	BasePrice         decimal.Decimal
	DiscountPrice     *decimal.Decimal
	DiscountActive    bool
	DiscountStartDate *time.Time
	DiscountEndDate   *time.Time
	ImageURL          *string
	Popular           bool
	Available         bool
	Variations        []VariationInput
	AddOns            []AddOnInput
}

// VariationInput defines one cut/size option.
type VariationInput struct {
	Name       string
	PriceDelta decimal.Decimal
	Position   int
}

// AddOnInput defines one extra.
type AddOnInput struct {
	Name      string
	Price     decimal.Decimal
	GroupName string
	Position  int
}

// UpdateMenuItemInput holds optional mutation values for a menu item.
// Variations and add-ons, when present, replace the existing sets.
type UpdateMenuItemInput struct {
	CategoryID        *uuid.UUID
	Name              *string
	Description       *string
	BasePrice         *decimal.Decimal
	DiscountPrice     *decimal.Decimal
	ClearDiscount     bool
	DiscountActive    *bool
	DiscountStartDate *time.Time
	DiscountEndDate   *time.Time
	ImageURL          *string
	Popular           *bool
	Available         *bool
	Variations        *[]VariationInput
	AddOns            *[]AddOnInput
}

type categoryLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

type service struct {
	repo       *Repository
	dbClient   *db.Client
	categories categoryLoader
	clock      func() time.Time
}

// NewService constructs a menu service instance.
func NewService(repo *Repository, dbClient *db.Client, categories categoryLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("menu repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category loader required")
	}
	return &service{repo: repo, dbClient: dbClient, categories: categories, clock: time.Now}, nil
}

func (s *service) ListMenu(ctx context.Context, filters ListFilters) ([]MenuItemDTO, error) {
	rows, err := s.repo.ListMenuItems(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list menu items")
	}

	now := s.clock()
	dtos := make([]MenuItemDTO, len(rows))
	for i := range rows {
		dtos[i] = *NewMenuItemDTO(&rows[i], now)
	}
	return dtos, nil
}

func (s *service) GetMenuItemDTO(ctx context.Context, id uuid.UUID) (*MenuItemDTO, error) {
	item, err := s.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewMenuItemDTO(item, s.clock()), nil
}

// GetMenuItem returns the persisted model with ordered variations and
// add-ons; cart pricing works off the model, not the DTO.
func (s *service) GetMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item id is required")
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load menu item")
	}
	return item, nil
}

func (s *service) CreateMenuItem(ctx context.Context, input CreateMenuItemInput) (*MenuItemDTO, error) {
	if err := s.validateCreate(ctx, input); err != nil {
		return nil, err
	}

	item := &models.MenuItem{
		ID:                uuid.New(),
		CategoryID:        input.CategoryID,
		Name:              strings.TrimSpace(input.Name),
		Description:       input.Description,
		BasePrice:         input.BasePrice,
		DiscountPrice:     input.DiscountPrice,
		DiscountActive:    input.DiscountActive,
		DiscountStartDate: input.DiscountStartDate,
		DiscountEndDate:   input.DiscountEndDate,
		ImageURL:          input.ImageURL,
		Popular:           input.Popular,
		Available:         input.Available,
		Variations:        buildVariations(uuid.Nil, input.Variations),
		AddOns:            buildAddOns(uuid.Nil, input.AddOns),
	}
	for i := range item.Variations {
		item.Variations[i].MenuItemID = item.ID
	}
	for i := range item.AddOns {
		item.AddOns[i].MenuItemID = item.ID
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).CreateMenuItem(ctx, item)
		return err
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create menu item")
	}

	return s.GetMenuItemDTO(ctx, item.ID)
}

func (s *service) UpdateMenuItem(ctx context.Context, id uuid.UUID, input UpdateMenuItemInput) (*MenuItemDTO, error) {
	item, err := s.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		if err := s.ensureCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		item.CategoryID = *input.CategoryID
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		item.Name = name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.BasePrice != nil {
		item.BasePrice = *input.BasePrice
	}
	if input.ClearDiscount {
		item.DiscountPrice = nil
		item.DiscountActive = false
		item.DiscountStartDate = nil
		item.DiscountEndDate = nil
	} else {
		if input.DiscountPrice != nil {
			item.DiscountPrice = input.DiscountPrice
		}
		if input.DiscountActive != nil {
			item.DiscountActive = *input.DiscountActive
		}
		if input.DiscountStartDate != nil {
			item.DiscountStartDate = input.DiscountStartDate
		}
		if input.DiscountEndDate != nil {
			item.DiscountEndDate = input.DiscountEndDate
		}
	}
	if input.ImageURL != nil {
		item.ImageURL = input.ImageURL
	}
	if input.Popular != nil {
		item.Popular = *input.Popular
	}
	if input.Available != nil {
		item.Available = *input.Available
	}

	if err := validatePricing(item.BasePrice, item.DiscountPrice, item.DiscountStartDate, item.DiscountEndDate); err != nil {
		return nil, err
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.UpdateMenuItem(ctx, item); err != nil {
			return err
		}
		if input.Variations != nil {
			if err := validateVariations(*input.Variations); err != nil {
				return err
			}
			if err := txRepo.ReplaceVariations(ctx, item.ID, buildVariations(item.ID, *input.Variations)); err != nil {
				return err
			}
		}
		if input.AddOns != nil {
			if err := validateAddOns(*input.AddOns); err != nil {
				return err
			}
			if err := txRepo.ReplaceAddOns(ctx, item.ID, buildAddOns(item.ID, *input.AddOns)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update menu item")
	}

	return s.GetMenuItemDTO(ctx, item.ID)
}

func (s *service) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetMenuItem(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteMenuItem(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete menu item")
	}
	return nil
}

func (s *service) validateCreate(ctx context.Context, input CreateMenuItemInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.CategoryID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}
	if err := s.ensureCategory(ctx, input.CategoryID); err != nil {
		return err
	}
	if err := validatePricing(input.BasePrice, input.DiscountPrice, input.DiscountStartDate, input.DiscountEndDate); err != nil {
		return err
	}
	if err := validateVariations(input.Variations); err != nil {
		return err
	}
	return validateAddOns(input.AddOns)
}

func (s *service) ensureCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "category does not exist")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return nil
}

func validatePricing(basePrice decimal.Decimal, discountPrice *decimal.Decimal, start, end *time.Time) error {
	if basePrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "base price cannot be negative")
	}
	if discountPrice != nil && discountPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount price cannot be negative")
	}
	if start != nil && end != nil && end.Before(*start) {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount window ends before it starts")
	}
	return nil
}

func validateVariations(inputs []VariationInput) error {
	for _, v := range inputs {
		if strings.TrimSpace(v.Name) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "variation name is required")
		}
	}
	return nil
}

func validateAddOns(inputs []AddOnInput) error {
	for _, a := range inputs {
		if strings.TrimSpace(a.Name) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "add-on name is required")
		}
		if a.Price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "add-on price cannot be negative")
		}
	}
	return nil
}

func buildVariations(menuItemID uuid.UUID, inputs []VariationInput) []models.Variation {
	rows := make([]models.Variation, len(inputs))
	for i, v := range inputs {
		rows[i] = models.Variation{
			ID:         uuid.New(),
			MenuItemID: menuItemID,
			Name:       strings.TrimSpace(v.Name),
			PriceDelta: v.PriceDelta,
			Position:   v.Position,
		}
	}
	return rows
}

func buildAddOns(menuItemID uuid.UUID, inputs []AddOnInput) []models.AddOn {
	rows := make([]models.AddOn, len(inputs))
	for i, a := range inputs {
		group := strings.TrimSpace(a.GroupName)
		if group == "" {
			group = "extras"
		}
		rows[i] = models.AddOn{
			ID:         uuid.New(),
			MenuItemID: menuItemID,
			Name:       strings.TrimSpace(a.Name),
			Price:      a.Price,
			GroupName:  group,
			Position:   a.Position,
		}
	}
	return rows
}
