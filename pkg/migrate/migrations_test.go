package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scentvault/storefront-backend/pkg/migrate"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one migration matching %q, found %d", pattern, len(matches))
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations: %v", err)
	}
}

func TestMigrationsContainExpectedSchema(t *testing.T) {
	cases := map[string][]string{
		"*_create_products.sql": {
			"CREATE TABLE IF NOT EXISTS products",
			"sizes text[]",
			"weight numeric(8,3)",
			"DROP TABLE IF EXISTS products",
		},
		"*_create_price_intelligence.sql": {
			"CREATE TABLE IF NOT EXISTS price_intelligence",
			"FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE",
		},
		"*_create_shipping_rates.sql": {
			"CREATE TABLE IF NOT EXISTS weight_rate_bands",
			"CHECK (max_weight > min_weight)",
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_vendor_shipping_rules_vendor_min_qty",
			"CHECK (min_quantity >= 1)",
		},
		"*_create_orders.sql": {
			"CREATE TABLE IF NOT EXISTS orders",
			"CREATE TABLE IF NOT EXISTS order_items",
			"'pending_payment'",
			"DROP TABLE IF EXISTS order_items",
		},
	}

	for pattern, checks := range cases {
		content := readMigration(t, pattern)
		for _, sub := range checks {
			if !strings.Contains(content, sub) {
				t.Errorf("%s: missing expected statement %q", pattern, sub)
			}
		}
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()

	path, err := migrate.CreateSQLMigration(dir, "Add Deal Views!")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_deal_views.sql") {
		t.Fatalf("unexpected filename %s", path)
	}
	if err := migrate.ValidateDir(dir); err != nil {
		t.Fatalf("created migration should validate: %v", err)
	}

	if _, err := migrate.CreateSQLMigration(dir, "!!!"); err == nil {
		t.Fatalf("expected empty sanitized name to fail")
	}
}

func TestValidateDirRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	if err := migrate.ValidateDir(dir); err == nil {
		t.Fatalf("expected empty dir to fail")
	}

	if err := os.WriteFile(filepath.Join(dir, "create_things.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := migrate.ValidateDir(dir); err == nil {
		t.Fatalf("expected bad filename to fail")
	}

	dir = t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "20260101000000_no_down.sql"), []byte("-- +goose Up\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := migrate.ValidateDir(dir); err == nil {
		t.Fatalf("expected missing down section to fail")
	}
}
