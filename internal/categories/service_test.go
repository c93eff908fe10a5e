package categories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/southsteak/ordering-backend/pkg/db/models"
	pkgerrors "github.com/southsteak/ordering-backend/pkg/errors"
)

func setupCategoriesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  sort_order INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS menu_items (
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  base_price NUMERIC NOT NULL,
  discount_price NUMERIC,
  discount_active INTEGER NOT NULL DEFAULT 0,
  discount_start_date DATETIME,
  discount_end_date DATETIME,
  image_url TEXT,
  popular INTEGER NOT NULL DEFAULT 0,
  available INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := setupCategoriesTestDB(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc, conn
}

func TestServiceCreateAndListOrdering(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CategoryInput{Name: "Silog Meals", SortOrder: 2})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CategoryInput{Name: "Steaks", SortOrder: 1})
	require.NoError(t, err)

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Steaks", rows[0].Name)
	assert.Equal(t, "Silog Meals", rows[1].Name)
}

func TestServiceCreateRejectsBlankName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CategoryInput{Name: "   "})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceUpdateAndGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CategoryInput{Name: "Steaks"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, CategoryInput{Name: " Grilled Steaks ", SortOrder: 5})
	require.NoError(t, err)
	assert.Equal(t, "Grilled Steaks", updated.Name)
	assert.Equal(t, 5, updated.SortOrder)

	_, err = svc.Get(ctx, uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceDeleteGuardsItemsInUse(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CategoryInput{Name: "Steaks"})
	require.NoError(t, err)

	item := &models.MenuItem{
		ID:         uuid.New(),
		CategoryID: created.ID,
		Name:       "T-Bone Steak",
		BasePrice:  decimal.RequireFromString("450.00"),
		Available:  true,
	}
	require.NoError(t, conn.Create(item).Error)

	err = svc.Delete(ctx, created.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	require.NoError(t, conn.Delete(item).Error)
	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	require.Error(t, err)
}
