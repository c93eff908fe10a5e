package menu

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/southsteak/ordering-backend/pkg/db/models"
)

// MenuRepository defines CRUD operations for menu items.
type MenuRepository interface {
	CreateMenuItem(context.Context, *models.MenuItem) (*models.MenuItem, error)
	UpdateMenuItem(context.Context, *models.MenuItem) (*models.MenuItem, error)
	DeleteMenuItem(context.Context, uuid.UUID) error
	FindByID(context.Context, uuid.UUID) (*models.MenuItem, error)
	ListMenuItems(context.Context, ListFilters) ([]models.MenuItem, error)
	ReplaceVariations(context.Context, uuid.UUID, []models.Variation) error
	ReplaceAddOns(context.Context, uuid.UUID, []models.AddOn) error
}

// ListFilters narrows the menu listing.
type ListFilters struct {
	CategoryID    *uuid.UUID
	AvailableOnly bool
	PopularOnly   bool
}

// Repository wires menu item persistence to GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads the menu item with its variations and add-ons in display order.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.WithContext(ctx).
		Preload("Variations", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("AddOns", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&item, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListMenuItems returns menu items matching the filters with preloaded relations.
func (r *Repository) ListMenuItems(ctx context.Context, filters ListFilters) ([]models.MenuItem, error) {
	qb := r.db.WithContext(ctx).
		Preload("Variations", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("AddOns", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})

	if filters.CategoryID != nil {
		qb = qb.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.AvailableOnly {
		qb = qb.Where("available = ?", true)
	}
	if filters.PopularOnly {
		qb = qb.Where("popular = ?", true)
	}

	var rows []models.MenuItem
	err := qb.Order("name ASC").Find(&rows).Error
	return rows, err
}

// CreateMenuItem inserts a new menu item row along with its associations.
func (r *Repository) CreateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateMenuItem updates an existing menu item row.
func (r *Repository) UpdateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	if err := r.db.WithContext(ctx).Omit("Variations", "AddOns").Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteMenuItem removes a menu item by ID; variations and add-ons cascade.
func (r *Repository) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MenuItem{}).Error
}

// ReplaceVariations replaces all variations for the menu item.
func (r *Repository) ReplaceVariations(ctx context.Context, menuItemID uuid.UUID, variations []models.Variation) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("menu_item_id = ?", menuItemID).Delete(&models.Variation{}).Error; err != nil {
		return err
	}
	if len(variations) == 0 {
		return nil
	}
	return tx.Create(&variations).Error
}

// ReplaceAddOns replaces all add-ons for the menu item.
func (r *Repository) ReplaceAddOns(ctx context.Context, menuItemID uuid.UUID, addOns []models.AddOn) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("menu_item_id = ?", menuItemID).Delete(&models.AddOn{}).Error; err != nil {
		return err
	}
	if len(addOns) == 0 {
		return nil
	}
	return tx.Create(&addOns).Error
}
