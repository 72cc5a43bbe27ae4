package migrate

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationSlug(t *testing.T) {
	assert.Equal(t, "add_deal_views", migrationSlug("Add Deal Views!"))
	assert.Equal(t, "v2_shipping_rates", migrationSlug("  v2--shipping rates "))
	assert.Equal(t, "", migrationSlug("!!!"))
}

func TestNextVersionSkipsPastExistingFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	v, err := nextVersion(dir, now)
	require.NoError(t, err)
	assert.Equal(t, int64(20260301090000), v)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "20260301090000_first.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))
	v, err = nextVersion(dir, now)
	require.NoError(t, err)
	assert.Equal(t, int64(20260301090001), v)
}

func TestParseCommandAndVersion(t *testing.T) {
	cmd, err := ParseCommand(" UP ")
	require.NoError(t, err)
	assert.Equal(t, CommandUp, cmd)

	_, err = ParseCommand("create")
	assert.Error(t, err)

	v, err := parseVersion("20260301090500")
	require.NoError(t, err)
	assert.Equal(t, int64(20260301090500), v)

	_, err = parseVersion("2026")
	assert.Error(t, err)
}

func TestValidateDirReportsEveryProblem(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write("20260101000000_ok.sql", "-- +goose Up\nSELECT 1;\n-- +goose Down\nSELECT 1;\n")
	write("20260101000001_reversed.sql", "-- +goose Down\n-- +goose Up\n")
	write("20260101000002_no_down.sql", "-- +goose Up\n")
	write("notes.sql", "-- +goose Up\n-- +goose Down\n")
	write("README.md", "ignored")

	err := ValidateDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reversed")
	assert.Contains(t, err.Error(), "no_down")
	assert.Contains(t, err.Error(), "notes.sql")
}
