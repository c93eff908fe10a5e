package paymentmethods

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/southsteak/ordering-backend/pkg/db/models"
)

// Repository wires payment channel persistence to GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a payment method by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	if err := r.db.WithContext(ctx).First(&method, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &method, nil
}

// List returns payment methods in display order, optionally only active ones.
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]models.PaymentMethod, error) {
	qb := r.db.WithContext(ctx)
	if activeOnly {
		qb = qb.Where("active = ?", true)
	}

	var rows []models.PaymentMethod
	err := qb.Order("sort_order ASC").Order("name ASC").Find(&rows).Error
	return rows, err
}

// Create inserts a new payment method row.
func (r *Repository) Create(ctx context.Context, method *models.PaymentMethod) (*models.PaymentMethod, error) {
	if err := r.db.WithContext(ctx).Create(method).Error; err != nil {
		return nil, err
	}
	return method, nil
}

// Update updates an existing payment method row.
func (r *Repository) Update(ctx context.Context, method *models.PaymentMethod) (*models.PaymentMethod, error) {
	if err := r.db.WithContext(ctx).Save(method).Error; err != nil {
		return nil, err
	}
	return method, nil
}

// Delete removes a payment method by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.PaymentMethod{}).Error
}
