package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/southsteak/ordering-backend/pkg/db/models"
	pkgerrors "github.com/southsteak/ordering-backend/pkg/errors"
)

type menuLoaderFunc func(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)

func (fn menuLoaderFunc) GetMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	return fn(ctx, id)
}

func fixtureItem() *models.MenuItem {
	itemID := uuid.New()
	return &models.MenuItem{
		ID:        itemID,
		Name:      "T-Bone Steak",
		BasePrice: dec("450.00"),
		Available: true,
		Variations: []models.Variation{
			{ID: uuid.New(), MenuItemID: itemID, Name: "Family Cut", PriceDelta: dec("120.00")},
		},
		AddOns: []models.AddOn{
			{ID: uuid.New(), MenuItemID: itemID, Name: "Garlic Rice", Price: dec("35.00")},
		},
	}
}

func newTestService(t *testing.T, item *models.MenuItem) (Service, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	svc, err := NewService(store, menuLoaderFunc(func(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
		if item != nil && id == item.ID {
			return item, nil
		}
		return nil, gorm.ErrRecordNotFound
	}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, store
}

func TestServiceAddItemPricesAndMerges(t *testing.T) {
	t.Parallel()

	item := fixtureItem()
	svc, _ := newTestService(t, item)
	ctx := context.Background()

	input := AddItemInput{
		MenuItemID:  item.ID,
		VariationID: &item.Variations[0].ID,
		AddOns:      []AddOnQty{{AddOnID: item.AddOns[0].ID, Qty: 2}},
		Quantity:    1,
	}

	cart, err := svc.AddItem(ctx, "sess-1", input)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if len(cart.Lines) != 1 {
		t.Fatalf("expected one line, got %d", len(cart.Lines))
	}
	// 450 + 120 + 35*2
	if want := dec("640.00"); !cart.Lines[0].UnitPrice.Equal(want) {
		t.Fatalf("unit price = %s, want %s", cart.Lines[0].UnitPrice, want)
	}

	// same configuration again merges instead of appending
	cart, err = svc.AddItem(ctx, "sess-1", input)
	if err != nil {
		t.Fatalf("add item again: %v", err)
	}
	if len(cart.Lines) != 1 || cart.Lines[0].Quantity != 2 {
		t.Fatalf("expected merged line with qty 2, got %+v", cart.Lines)
	}
}

func TestServiceAddItemKeepsLockedPriceAcrossDiscountChange(t *testing.T) {
	t.Parallel()

	item := fixtureItem()
	svc, _ := newTestService(t, item)
	ctx := context.Background()

	input := AddItemInput{MenuItemID: item.ID, Quantity: 1}
	if _, err := svc.AddItem(ctx, "sess-1", input); err != nil {
		t.Fatalf("add item: %v", err)
	}

	// catalog price drops between adds; the existing line keeps its price
	discounted := dec("380.00")
	item.DiscountPrice = &discounted
	item.DiscountActive = true

	cart, err := svc.AddItem(ctx, "sess-1", input)
	if err != nil {
		t.Fatalf("add item after discount: %v", err)
	}
	if len(cart.Lines) != 1 {
		t.Fatalf("expected merged line, got %d", len(cart.Lines))
	}
	if !cart.Lines[0].UnitPrice.Equal(dec("450.00")) {
		t.Fatalf("unit price = %s, want locked 450.00", cart.Lines[0].UnitPrice)
	}
}

func TestServiceAddItemValidation(t *testing.T) {
	t.Parallel()

	item := fixtureItem()
	svc, _ := newTestService(t, item)
	ctx := context.Background()

	cases := []struct {
		name  string
		input AddItemInput
		code  pkgerrors.Code
	}{
		{"zero quantity", AddItemInput{MenuItemID: item.ID, Quantity: 0}, pkgerrors.CodeValidation},
		{"unknown item", AddItemInput{MenuItemID: uuid.New(), Quantity: 1}, pkgerrors.CodeNotFound},
		{
			"foreign variation",
			AddItemInput{MenuItemID: item.ID, VariationID: ptrUUID(uuid.New()), Quantity: 1},
			pkgerrors.CodeValidation,
		},
		{
			"foreign add-on",
			AddItemInput{MenuItemID: item.ID, AddOns: []AddOnQty{{AddOnID: uuid.New(), Qty: 1}}, Quantity: 1},
			pkgerrors.CodeValidation,
		},
		{
			"zero add-on qty",
			AddItemInput{MenuItemID: item.ID, AddOns: []AddOnQty{{AddOnID: item.AddOns[0].ID, Qty: 0}}, Quantity: 1},
			pkgerrors.CodeValidation,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddItem(ctx, "sess-1", tc.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != tc.code {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestServiceAddItemRejectsUnavailable(t *testing.T) {
	t.Parallel()

	item := fixtureItem()
	item.Available = false
	svc, _ := newTestService(t, item)

	_, err := svc.AddItem(context.Background(), "sess-1", AddItemInput{MenuItemID: item.ID, Quantity: 1})
	if err == nil {
		t.Fatal("expected error for unavailable item")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestServiceUpdateRemoveClear(t *testing.T) {
	t.Parallel()

	item := fixtureItem()
	svc, _ := newTestService(t, item)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "sess-1", AddItemInput{MenuItemID: item.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	key := cart.Lines[0].Key

	cart, err = svc.UpdateQuantity(ctx, "sess-1", key, 5)
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if cart.Lines[0].Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", cart.Lines[0].Quantity)
	}

	if _, err := svc.UpdateQuantity(ctx, "sess-1", "missing", 1); err == nil {
		t.Fatal("expected not-found for unknown line key")
	}

	cart, err = svc.UpdateQuantity(ctx, "sess-1", key, 0)
	if err != nil {
		t.Fatalf("update to zero: %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Fatal("zero quantity should remove the line")
	}

	// removing an absent line succeeds
	if _, err := svc.RemoveLine(ctx, "sess-1", key); err != nil {
		t.Fatalf("remove absent line: %v", err)
	}

	if _, err := svc.AddItem(ctx, "sess-1", AddItemInput{MenuItemID: item.ID, Quantity: 1}); err != nil {
		t.Fatalf("re-add item: %v", err)
	}
	cart, err = svc.Clear(ctx, "sess-1")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Fatal("cleared cart should have no lines")
	}

	cart, err = svc.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get after clear: %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Fatal("store should be empty after clear")
	}
}

func TestServiceSessionIsolation(t *testing.T) {
	t.Parallel()

	item := fixtureItem()
	svc, _ := newTestService(t, item)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "sess-a", AddItemInput{MenuItemID: item.ID, Quantity: 1}); err != nil {
		t.Fatalf("add item: %v", err)
	}

	other, err := svc.Get(ctx, "sess-b")
	if err != nil {
		t.Fatalf("get other session: %v", err)
	}
	if len(other.Lines) != 0 {
		t.Fatal("sessions must not share carts")
	}

	if _, err := svc.Get(ctx, "  "); err == nil {
		t.Fatal("expected validation error for blank session id")
	}
}

func ptrUUID(id uuid.UUID) *uuid.UUID {
	return &id
}
