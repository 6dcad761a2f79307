// Package export renders the entire catalog store into one xlsx
// workbook, a sheet per entity with a fixed header row and column
// order. An empty store yields header-only sheets.
package export

import (
	"context"
	"database/sql"
	"time"

	"github.com/hanane-yh/app-scraper/lib/timezone"
	"github.com/hanane-yh/app-scraper/services/catalog/db"

	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/catalog/export")

const (
	SheetApps     = "Apps"
	SheetComments = "Comments"
	SheetUsers    = "Users"
)

var appsHeader = []interface{}{
	"package", "name", "description", "category", "rating",
	"installs", "size_mb", "updated_at", "screenshots", "url",
}
var commentsHeader = []interface{}{
	"app", "user", "body", "rating", "posted_at", "offset",
}
var usersHeader = []interface{}{"name"}

type Summary struct {
	Apps     int
	Comments int
	Users    int
}

func formatDate(v sql.NullInt64) string {
	if !v.Valid {
		return ""
	}
	return time.Unix(v.Int64, 0).In(timezone.Location).Format("2006-01-02")
}

func nullFloat(v sql.NullFloat64) interface{} {
	if !v.Valid {
		return ""
	}
	return v.Float64
}

func nullInt(v sql.NullInt64) interface{} {
	if !v.Valid {
		return ""
	}
	return v.Int64
}

func writeSheet(f *excelize.File, name string, header []interface{}, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// WriteWorkbook reads every stored app, comment and user and saves
// them as a workbook at path. Row order follows insertion order.
func WriteWorkbook(ctx context.Context, database *sql.DB, path string) (Summary, error) {
	ctx, span := tracer.Start(ctx, "WriteWorkbook")
	defer span.End()
	span.SetAttributes(attribute.String("path", path))

	fail := func(err error) (Summary, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Summary{}, err
	}

	qry := db.New(database)
	apps, err := qry.ListApps(ctx)
	if err != nil {
		return fail(err)
	}
	comments, err := qry.ListComments(ctx)
	if err != nil {
		return fail(err)
	}
	users, err := qry.ListUsers(ctx)
	if err != nil {
		return fail(err)
	}

	appRows := make([][]interface{}, len(apps))
	for i, a := range apps {
		appRows[i] = []interface{}{
			a.Package, a.Name, a.Description, a.Category, nullFloat(a.Rating),
			a.Installs, a.SizeMb, formatDate(a.UpdatedAt), a.Screenshots, a.Url,
		}
	}
	commentRows := make([][]interface{}, len(comments))
	for i, c := range comments {
		commentRows[i] = []interface{}{
			c.AppPackage, c.UserName, c.Body, nullInt(c.Rating),
			formatDate(c.PostedAt), c.PageOffset,
		}
	}
	userRows := make([][]interface{}, len(users))
	for i, u := range users {
		userRows[i] = []interface{}{u.Name}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheet(f, SheetApps, appsHeader, appRows); err != nil {
		return fail(err)
	}
	if err := writeSheet(f, SheetComments, commentsHeader, commentRows); err != nil {
		return fail(err)
	}
	if err := writeSheet(f, SheetUsers, usersHeader, userRows); err != nil {
		return fail(err)
	}
	// excelize seeds new workbooks with an empty default sheet
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fail(err)
	}
	idx, err := f.GetSheetIndex(SheetApps)
	if err != nil {
		return fail(err)
	}
	f.SetActiveSheet(idx)

	if err := f.SaveAs(path); err != nil {
		return fail(err)
	}

	summary := Summary{Apps: len(apps), Comments: len(comments), Users: len(users)}
	span.SetAttributes(
		attribute.Int("apps", summary.Apps),
		attribute.Int("comments", summary.Comments),
		attribute.Int("users", summary.Users),
	)
	return summary, nil
}
