package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/southsteak/ordering-backend/pkg/db/models"
	pkgerrors "github.com/southsteak/ordering-backend/pkg/errors"
)

// Defaults applied when the settings row has not been created yet.
const (
	DefaultSiteName     = "South Steak"
	DefaultCurrency     = "₱"
	DefaultCurrencyCode = "PHP"
)

// Service reads and updates the single-row storefront configuration.
type Service interface {
	Get(ctx context.Context) (*models.SiteSettings, error)
	Update(ctx context.Context, input UpdateInput) (*models.SiteSettings, error)
}

// UpdateInput holds optional mutation values for the settings row.
type UpdateInput struct {
	SiteName        *string
	SiteDescription *string
	Currency        *string
	CurrencyCode    *string
}

type service struct {
	db *gorm.DB
}

// NewService constructs a settings service instance.
func NewService(db *gorm.DB) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("db connection required")
	}
	return &service{db: db}, nil
}

// Get returns the settings row, falling back to defaults when none exists.
func (s *service) Get(ctx context.Context) (*models.SiteSettings, error) {
	var row models.SiteSettings
	err := s.db.WithContext(ctx).Order("created_at ASC").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.SiteSettings{
				SiteName:     DefaultSiteName,
				Currency:     DefaultCurrency,
				CurrencyCode: DefaultCurrencyCode,
			}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load site settings")
	}
	return &row, nil
}

// Update mutates the settings row, creating it on first write.
func (s *service) Update(ctx context.Context, input UpdateInput) (*models.SiteSettings, error) {
	var row models.SiteSettings
	err := s.db.WithContext(ctx).Order("created_at ASC").First(&row).Error
	created := false
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load site settings")
		}
		row = models.SiteSettings{
			ID:           uuid.New(),
			SiteName:     DefaultSiteName,
			Currency:     DefaultCurrency,
			CurrencyCode: DefaultCurrencyCode,
		}
		created = true
	}

	if input.SiteName != nil {
		name := strings.TrimSpace(*input.SiteName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "site name cannot be empty")
		}
		row.SiteName = name
	}
	if input.SiteDescription != nil {
		row.SiteDescription = strings.TrimSpace(*input.SiteDescription)
	}
	if input.Currency != nil {
		currency := strings.TrimSpace(*input.Currency)
		if currency == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "currency cannot be empty")
		}
		row.Currency = currency
	}
	if input.CurrencyCode != nil {
		code := strings.ToUpper(strings.TrimSpace(*input.CurrencyCode))
		if len(code) != 3 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "currency code must be 3 letters")
		}
		row.CurrencyCode = code
	}

	tx := s.db.WithContext(ctx)
	if created {
		err = tx.Create(&row).Error
	} else {
		err = tx.Save(&row).Error
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save site settings")
	}
	return &row, nil
}
