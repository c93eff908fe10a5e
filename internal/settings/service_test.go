package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/southsteak/ordering-backend/pkg/errors"
)

func setupSettingsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.Exec(`CREATE TABLE IF NOT EXISTS site_settings (
  id TEXT PRIMARY KEY,
  site_name TEXT NOT NULL,
  site_description TEXT NOT NULL DEFAULT '',
  currency TEXT NOT NULL DEFAULT '₱',
  currency_code TEXT NOT NULL DEFAULT 'PHP',
  created_at DATETIME,
  updated_at DATETIME
);`).Error)
	return conn
}

func TestServiceGetFallsBackToDefaults(t *testing.T) {
	svc, err := NewService(setupSettingsTestDB(t))
	require.NoError(t, err)

	row, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultSiteName, row.SiteName)
	assert.Equal(t, "₱", row.Currency)
	assert.Equal(t, "PHP", row.CurrencyCode)
}

func TestServiceUpdateCreatesThenMutatesSingleRow(t *testing.T) {
	conn := setupSettingsTestDB(t)
	svc, err := NewService(conn)
	require.NoError(t, err)
	ctx := context.Background()

	desc := "Premium steaks and silog meals"
	row, err := svc.Update(ctx, UpdateInput{SiteDescription: &desc})
	require.NoError(t, err)
	assert.Equal(t, DefaultSiteName, row.SiteName)
	assert.Equal(t, desc, row.SiteDescription)

	name := "South Steak Tagaytay"
	row, err = svc.Update(ctx, UpdateInput{SiteName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, row.SiteName)
	assert.Equal(t, desc, row.SiteDescription)

	var count int64
	require.NoError(t, conn.Table("site_settings").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestServiceUpdateValidation(t *testing.T) {
	svc, err := NewService(setupSettingsTestDB(t))
	require.NoError(t, err)
	ctx := context.Background()

	blank := "  "
	_, err = svc.Update(ctx, UpdateInput{SiteName: &blank})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	badCode := "PESO"
	_, err = svc.Update(ctx, UpdateInput{CurrencyCode: &badCode})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	lower := "php"
	row, err := svc.Update(ctx, UpdateInput{CurrencyCode: &lower})
	require.NoError(t, err)
	assert.Equal(t, "PHP", row.CurrencyCode)
}
