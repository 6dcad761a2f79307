package export

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/hanane-yh/app-scraper/lib/scrapers/bazaar"
	"github.com/hanane-yh/app-scraper/lib/testutil"
	"github.com/hanane-yh/app-scraper/lib/timezone"
	"github.com/hanane-yh/app-scraper/services/catalog"
	"github.com/hanane-yh/app-scraper/services/catalog/db"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbookEmptyStore(t *testing.T) {
	database, cleanup := testutil.SetupStore(t, testutil.StoreParams{
		Name:   "services/catalog/export",
		Schema: db.Schema,
	})
	defer cleanup()

	path := filepath.Join(t.TempDir(), "out.xlsx")
	summary, err := WriteWorkbook(context.Background(), database, path)
	require.NoError(t, err)
	require.Equal(t, Summary{}, summary)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{SheetApps, SheetComments, SheetUsers}, f.GetSheetList())

	// header-only sheets, no data rows
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		require.NoError(t, err)
		require.Len(t, rows, 1, "sheet %s", sheet)
	}

	rows, err := f.GetRows(SheetApps)
	require.NoError(t, err)
	diff := cmp.Diff([]string{
		"package", "name", "description", "category", "rating",
		"installs", "size_mb", "updated_at", "screenshots", "url",
	}, rows[0])
	require.Empty(t, diff)
}

func TestWriteWorkbookRows(t *testing.T) {
	database, cleanup := testutil.SetupStore(t, testutil.StoreParams{
		Name:   "services/catalog/export",
		Schema: db.Schema,
	})
	defer cleanup()
	ctx := context.Background()

	svc := catalog.NewService(database)
	rating := int64(4)
	_, err := svc.SaveApp(ctx, bazaar.App{
		Package:     "com.example.calm",
		Name:        "Calm",
		Description: "breathing exercises",
		Category:    "Health",
		Installs:    10_000,
		SizeMB:      215,
		UpdatedAt:   time.Date(2025, time.June, 22, 0, 0, 0, 0, timezone.Location),
		Url:         "https://cafebazaar.ir/app/com.example.calm",
	}, []bazaar.Comment{
		{
			Username: "علی",
			Body:     "عالی بود",
			Rating:   &rating,
			PostedAt: time.Date(2023, time.August, 5, 0, 0, 0, 0, timezone.Location),
			Offset:   0,
		},
		{Username: "Sara", Body: "Helps a lot", Offset: 1},
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.xlsx")
	summary, err := WriteWorkbook(ctx, database, path)
	require.NoError(t, err)
	require.Equal(t, Summary{Apps: 1, Comments: 2, Users: 2}, summary)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	apps, err := f.GetRows(SheetApps)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	require.Equal(t, "com.example.calm", apps[1][0])
	require.Equal(t, "2025-06-22", apps[1][7])

	comments, err := f.GetRows(SheetComments)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	diff := cmp.Diff(
		[]string{"com.example.calm", "علی", "عالی بود", "4", "2023-08-05", "0"},
		comments[1],
	)
	require.Empty(t, diff)

	users, err := f.GetRows(SheetUsers)
	require.NoError(t, err)
	require.Len(t, users, 3)
}
