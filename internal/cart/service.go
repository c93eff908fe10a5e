package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/southsteak/ordering-backend/internal/pricing"
	"github.com/southsteak/ordering-backend/pkg/db/models"
	pkgerrors "github.com/southsteak/ordering-backend/pkg/errors"
)

type menuLoader interface {
	GetMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
}

// Service exposes the session cart operations.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	AddItem(ctx context.Context, sessionID string, input AddItemInput) (*Cart, error)
	UpdateQuantity(ctx context.Context, sessionID string, lineKey string, quantity int) (*Cart, error)
	RemoveLine(ctx context.Context, sessionID string, lineKey string) (*Cart, error)
	Clear(ctx context.Context, sessionID string) (*Cart, error)
}

type service struct {
	store Store
	menu  menuLoader
	clock func() time.Time
}

// NewService builds a cart service backed by the provided store and catalog.
func NewService(store Store, menu menuLoader) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if menu == nil {
		return nil, fmt.Errorf("menu loader required")
	}
	return &service{store: store, menu: menu, clock: time.Now}, nil
}

// AddItemInput captures one item configuration to add to the cart.
type AddItemInput struct {
	MenuItemID  uuid.UUID
	VariationID *uuid.UUID
	AddOns      []AddOnQty
	Quantity    int
}

// AddOnQty selects an add-on by id with a quantity.
type AddOnQty struct {
	AddOnID uuid.UUID
	Qty     int
}

func (s *service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}
	return s.store.Load(ctx, sessionID)
}

// AddItem resolves the item configuration against the catalog, prices one
// unit at the current instant and merges the resulting line into the cart.
// The unit price of an existing line with the same configuration is kept.
func (s *service) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*Cart, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if input.MenuItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item id is required")
	}

	item, err := s.menu.GetMenuItem(ctx, input.MenuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		if typed := pkgerrors.As(err); typed != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load menu item")
	}
	if !item.Available {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item is not available")
	}

	line, err := buildLine(item, input, s.clock())
	if err != nil {
		return nil, err
	}

	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.Add(line)

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets a line's quantity to an absolute value; zero or less
// removes the line. The line keeps its original unit price.
func (s *service) UpdateQuantity(ctx context.Context, sessionID string, lineKey string, quantity int) (*Cart, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(lineKey) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "line key is required")
	}

	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !cart.UpdateQuantity(lineKey, quantity) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveLine deletes a line. Removing a key that is not present succeeds.
func (s *service) RemoveLine(ctx context.Context, sessionID string, lineKey string) (*Cart, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.Remove(lineKey)

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) Clear(ctx context.Context, sessionID string) (*Cart, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, sessionID); err != nil {
		return nil, err
	}
	return NewCart(sessionID), nil
}

func buildLine(item *models.MenuItem, input AddItemInput, now time.Time) (Line, error) {
	var variation *models.Variation
	if input.VariationID != nil {
		for i := range item.Variations {
			if item.Variations[i].ID == *input.VariationID {
				variation = &item.Variations[i]
				break
			}
		}
		if variation == nil {
			return Line{}, pkgerrors.New(pkgerrors.CodeValidation, "variation does not belong to item")
		}
	}

	addOnsByID := make(map[uuid.UUID]models.AddOn, len(item.AddOns))
	for _, a := range item.AddOns {
		addOnsByID[a.ID] = a
	}

	selections := make([]pricing.AddOnSelection, 0, len(input.AddOns))
	addOnLines := make([]AddOnLine, 0, len(input.AddOns))
	seen := make(map[uuid.UUID]struct{}, len(input.AddOns))
	for _, sel := range input.AddOns {
		if sel.Qty < 1 {
			return Line{}, pkgerrors.New(pkgerrors.CodeValidation, "add-on quantity must be at least 1")
		}
		addOn, ok := addOnsByID[sel.AddOnID]
		if !ok {
			return Line{}, pkgerrors.New(pkgerrors.CodeValidation, "add-on does not belong to item")
		}
		if _, dup := seen[sel.AddOnID]; dup {
			return Line{}, pkgerrors.New(pkgerrors.CodeValidation, "duplicate add-on selection")
		}
		seen[sel.AddOnID] = struct{}{}

		selections = append(selections, pricing.AddOnSelection{AddOn: addOn, Qty: sel.Qty})
		addOnLines = append(addOnLines, AddOnLine{
			AddOnID: addOn.ID,
			Name:    addOn.Name,
			Price:   addOn.Price,
			Qty:     sel.Qty,
		})
	}

	line := Line{
		MenuItemID: item.ID,
		Name:       item.Name,
		AddOns:     addOnLines,
		UnitPrice:  pricing.UnitPrice(item, variation, selections, now),
		Quantity:   input.Quantity,
		ImageURL:   item.ImageURL,
	}
	if variation != nil {
		id := variation.ID
		name := variation.Name
		line.VariationID = &id
		line.VariationName = &name
	}
	line.Key = LineKey(item.ID, line.VariationID, addOnLines)
	return line, nil
}

func validateSessionID(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return nil
}
