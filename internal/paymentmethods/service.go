package paymentmethods

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

// Service manages the manually settled payment channels shown at checkout.
// No charge is ever created; settlement happens over Messenger.
type Service interface {
	ListActive(ctx context.Context) ([]models.PaymentMethod, error)
	ListAll(ctx context.Context) ([]models.PaymentMethod, error)
	Get(ctx context.Context, id uuid.UUID) (*models.PaymentMethod, error)
	Create(ctx context.Context, input PaymentMethodInput) (*models.PaymentMethod, error)
	Update(ctx context.Context, id uuid.UUID, input UpdatePaymentMethodInput) (*models.PaymentMethod, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentMethodInput is the payload to register a payment channel.
type PaymentMethodInput struct {
	Name          string
	AccountName   string
	AccountNumber string
	QRCodeURL     *string
	Active        bool
	SortOrder     int
}

// UpdatePaymentMethodInput holds optional mutation values.
type UpdatePaymentMethodInput struct {
	Name          *string
	AccountName   *string
	AccountNumber *string
	QRCodeURL     *string
	ClearQRCode   bool
	Active        *bool
	SortOrder     *int
}

type service struct {
	repo *Repository
}

// NewService constructs a payment method service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payment method repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListActive(ctx context.Context) ([]models.PaymentMethod, error) {
	rows, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payment methods")
	}
	return rows, nil
}

func (s *service) ListAll(ctx context.Context) ([]models.PaymentMethod, error) {
	rows, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payment methods")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.PaymentMethod, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment method id is required")
	}
	method, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment method not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment method")
	}
	return method, nil
}

func (s *service) Create(ctx context.Context, input PaymentMethodInput) (*models.PaymentMethod, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	method := &models.PaymentMethod{
		ID:            uuid.New(),
		Name:          name,
		AccountName:   strings.TrimSpace(input.AccountName),
		AccountNumber: strings.TrimSpace(input.AccountNumber),
		QRCodeURL:     input.QRCodeURL,
		Active:        input.Active,
		SortOrder:     input.SortOrder,
	}
	if _, err := s.repo.Create(ctx, method); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment method")
	}
	return method, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdatePaymentMethodInput) (*models.PaymentMethod, error) {
	method, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		method.Name = name
	}
	if input.AccountName != nil {
		method.AccountName = strings.TrimSpace(*input.AccountName)
	}
	if input.AccountNumber != nil {
		method.AccountNumber = strings.TrimSpace(*input.AccountNumber)
	}
	if input.ClearQRCode {
		method.QRCodeURL = nil
	} else if input.QRCodeURL != nil {
		method.QRCodeURL = input.QRCodeURL
	}
	if input.Active != nil {
		method.Active = *input.Active
	}
	if input.SortOrder != nil {
		method.SortOrder = *input.SortOrder
	}

	if _, err := s.repo.Update(ctx, method); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update payment method")
	}
	return method, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete payment method")
	}
	return nil
}
