package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/hanane-yh/app-scraper/lib/scrapers/bazaar"
	"github.com/hanane-yh/app-scraper/lib/testutil"
	"github.com/hanane-yh/app-scraper/lib/timezone"
	"github.com/hanane-yh/app-scraper/services/catalog/db"

	"github.com/stretchr/testify/require"
)

func setup(t testing.TB) (Service, *db.Queries, func()) {
	database, cleanup := testutil.SetupStore(t, testutil.StoreParams{
		Name:   "services/catalog",
		Schema: db.Schema,
	})
	return NewService(database), db.New(database), cleanup
}

func testApp(pkg string) bazaar.App {
	rating := 4.2
	return bazaar.App{
		Package:     pkg,
		Name:        "Calm",
		Description: "breathing exercises",
		Category:    "Health",
		Rating:      &rating,
		Installs:    10_000,
		SizeMB:      215,
		UpdatedAt:   time.Date(2025, time.June, 22, 0, 0, 0, 0, timezone.Location),
		Screenshots: []string{"https://cdn.example/shot1.webp"},
		Url:         "https://cafebazaar.ir/app/" + pkg,
	}
}

func TestUpsertAppIdempotent(t *testing.T) {
	svc, qry, cleanup := setup(t)
	defer cleanup()
	ctx := context.Background()

	app := testApp("com.example.calm")
	first, err := svc.UpsertApp(ctx, app)
	require.NoError(t, err)

	// a re-scrape sees newer metadata
	app.Installs = 50_000
	second, err := svc.UpsertApp(ctx, app)
	require.NoError(t, err)
	require.Equal(t, first, second)

	rows, err := qry.ListApps(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, int64(50_000), rows[0].Installs)
	require.Equal(t, `["https://cdn.example/shot1.webp"]`, rows[0].Screenshots)
	require.True(t, rows[0].Rating.Valid)
	require.Equal(t, 4.2, rows[0].Rating.Float64)
}

func TestGetOrCreateUserCollapsesNames(t *testing.T) {
	svc, qry, cleanup := setup(t)
	defer cleanup()
	ctx := context.Background()

	first, err := svc.GetOrCreateUser(ctx, "علی")
	require.NoError(t, err)
	again, err := svc.GetOrCreateUser(ctx, "علی")
	require.NoError(t, err)
	require.Equal(t, first, again)

	other, err := svc.GetOrCreateUser(ctx, "Sara")
	require.NoError(t, err)
	require.NotEqual(t, first, other)

	rows, err := qry.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestInsertCommentIfAbsent(t *testing.T) {
	svc, qry, cleanup := setup(t)
	defer cleanup()
	ctx := context.Background()

	appId, err := svc.UpsertApp(ctx, testApp("com.example.calm"))
	require.NoError(t, err)

	rating := int64(4)
	comment := bazaar.Comment{
		Username: "علی",
		Body:     "عالی بود",
		Rating:   &rating,
		PostedAt: time.Date(2023, time.August, 5, 0, 0, 0, 0, timezone.Location),
	}

	inserted, err := svc.InsertCommentIfAbsent(ctx, appId, comment)
	require.NoError(t, err)
	require.True(t, inserted)

	inserted, err = svc.InsertCommentIfAbsent(ctx, appId, comment)
	require.NoError(t, err)
	require.False(t, inserted)

	rows, err := qry.ListComments(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "com.example.calm", rows[0].AppPackage)
	require.Equal(t, "علی", rows[0].UserName)
}

func TestSaveAppRerunSafe(t *testing.T) {
	svc, qry, cleanup := setup(t)
	defer cleanup()
	ctx := context.Background()

	app := testApp("com.example.calm")
	comments := []bazaar.Comment{
		{Username: "علی", Body: "عالی بود", Offset: 0},
		{Username: "علی", Body: "هنوز هم عالی", Offset: 1},
		{Username: "Sara", Body: "Helps a lot", Offset: 2},
	}

	inserted, err := svc.SaveApp(ctx, app, comments)
	require.NoError(t, err)
	require.Equal(t, int64(3), inserted)

	// re-running the same scrape writes nothing new
	inserted, err = svc.SaveApp(ctx, app, comments)
	require.NoError(t, err)
	require.Equal(t, int64(0), inserted)

	apps, err := qry.ListApps(ctx)
	require.NoError(t, err)
	require.Len(t, apps, 1)

	commentRows, err := qry.ListComments(ctx)
	require.NoError(t, err)
	require.Len(t, commentRows, 3)

	users, err := qry.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
}
