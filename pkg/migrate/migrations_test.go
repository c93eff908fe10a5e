package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/southsteak/ordering-backend/pkg/migrate"
)

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("shipped migrations failed validation: %v", err)
	}
}

func TestMenuItemsMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_menu_items.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no menu_items migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS menu_items",
		"FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE CASCADE",
		"CHECK (base_price >= 0)",
		"CHECK (discount_price IS NULL OR discount_price >= 0)",
		"DROP TABLE IF EXISTS menu_items",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestVariationAndAddOnMigrationsCascade(t *testing.T) {
	for _, name := range []string{"*_create_variations.sql", "*_create_add_ons.sql"} {
		matches, err := filepath.Glob(filepath.Join("migrations", name))
		if err != nil {
			t.Fatalf("glob migrations: %v", err)
		}
		if len(matches) == 0 {
			t.Fatalf("no migration matching %s", name)
		}

		data, err := os.ReadFile(matches[0])
		if err != nil {
			t.Fatalf("read migration file: %v", err)
		}
		if !strings.Contains(string(data), "REFERENCES menu_items(id) ON DELETE CASCADE") {
			t.Errorf("%s does not cascade from menu_items", matches[0])
		}
	}
}
