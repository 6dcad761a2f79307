package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/hanane-yh/app-scraper/lib/sqliteutil"
	"github.com/hanane-yh/app-scraper/lib/telemetry"
)

type StoreParams struct {
	Name string
	// applied to the fresh database, empty skips it
	Schema string
	// if unspecified, it will use `:memory:`
	Path string
}

// SetupStore opens a throwaway database for a test, wiring up test
// telemetry on the way. The returned cleanup func closes both.
func SetupStore(t testing.TB, params StoreParams) (*sql.DB, func()) {
	telemetryCleanup := telemetry.SetupForTesting(t, fmt.Sprintf("test:%s", params.Name))

	path := params.Path
	if path == "" {
		path = ":memory:"
	}
	database, err := sqliteutil.OpenDB(params.Schema, path)
	if err != nil {
		t.Fatal(err)
	}

	return database, func() {
		database.Close()
		telemetryCleanup()
	}
}
