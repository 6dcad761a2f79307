// Package catalog persists scraped marketplace records. Writes are
// idempotent: apps upsert on their package identifier, users collapse
// on display name and comments dedupe on (app, user, body).
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/hanane-yh/app-scraper/lib/scrapers/bazaar"
	"github.com/hanane-yh/app-scraper/services/catalog/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/catalog")

// PersistenceError reports a store write that violated the data
// model. Unlike a fetch or parse failure it aborts the whole run.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

type Service struct {
	db  *sql.DB
	qry *db.Queries
}

func NewService(database *sql.DB) Service {
	return Service{
		db:  database,
		qry: db.New(database),
	}
}

func appParams(app bazaar.App) db.UpsertAppParams {
	screenshots := app.Screenshots
	if screenshots == nil {
		screenshots = []string{}
	}
	// json marshaling of a string slice cannot fail
	encoded, _ := json.Marshal(screenshots)

	params := db.UpsertAppParams{
		Package:     app.Package,
		Name:        app.Name,
		Description: app.Description,
		Category:    app.Category,
		Installs:    app.Installs,
		SizeMb:      app.SizeMB,
		Screenshots: string(encoded),
		Url:         app.Url,
	}
	if app.Rating != nil {
		params.Rating = sql.NullFloat64{Float64: *app.Rating, Valid: true}
	}
	if !app.UpdatedAt.IsZero() {
		params.UpdatedAt = sql.NullInt64{Int64: app.UpdatedAt.Unix(), Valid: true}
	}
	return params
}

func commentParams(appId, userId int64, comment bazaar.Comment) db.InsertCommentParams {
	params := db.InsertCommentParams{
		AppID:      appId,
		UserID:     userId,
		Body:       comment.Body,
		PageOffset: comment.Offset,
	}
	if comment.Rating != nil {
		params.Rating = sql.NullInt64{Int64: *comment.Rating, Valid: true}
	}
	if !comment.PostedAt.IsZero() {
		params.PostedAt = sql.NullInt64{Int64: comment.PostedAt.Unix(), Valid: true}
	}
	return params
}

func getOrCreateUser(ctx context.Context, qry *db.Queries, name string) (int64, error) {
	if err := qry.CreateUser(ctx, name); err != nil {
		return 0, &PersistenceError{Op: "user", Err: err}
	}
	id, err := qry.GetUserId(ctx, name)
	if err != nil {
		return 0, &PersistenceError{Op: "user", Err: err}
	}
	return id, nil
}

// UpsertApp writes an app's metadata, updating the existing row when
// the package identifier is already known. Returns the row id.
func (s Service) UpsertApp(ctx context.Context, app bazaar.App) (int64, error) {
	ctx, span := tracer.Start(ctx, "UpsertApp")
	defer span.End()
	span.SetAttributes(attribute.String("package", app.Package))

	id, err := s.qry.UpsertApp(ctx, appParams(app))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, &PersistenceError{Op: "app", Err: err}
	}
	return id, nil
}

// GetOrCreateUser resolves a display name to a user row id, creating
// the row on first reference. Names are the only identity the source
// exposes, distinct people sharing one collapse to one row.
func (s Service) GetOrCreateUser(ctx context.Context, name string) (int64, error) {
	ctx, span := tracer.Start(ctx, "GetOrCreateUser")
	defer span.End()

	id, err := getOrCreateUser(ctx, s.qry, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	return id, nil
}

// InsertCommentIfAbsent writes one comment unless its natural key
// (app, user, body) already exists, resolving the user on the way.
// Reports whether a row was written.
func (s Service) InsertCommentIfAbsent(ctx context.Context, appId int64, comment bazaar.Comment) (bool, error) {
	ctx, span := tracer.Start(ctx, "InsertCommentIfAbsent")
	defer span.End()

	userId, err := getOrCreateUser(ctx, s.qry, comment.Username)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}
	inserted, err := s.qry.InsertComment(ctx, commentParams(appId, userId, comment))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, &PersistenceError{Op: "comment", Err: err}
	}
	return inserted > 0, nil
}

// SaveApp writes an app and its comments in one transaction, so a
// failure mid-batch never leaves a half-saved app behind. Saves of
// different apps are independent of each other. Returns the number of
// comments that were new to the store.
func (s Service) SaveApp(ctx context.Context, app bazaar.App, comments []bazaar.Comment) (int64, error) {
	ctx, span := tracer.Start(ctx, "SaveApp")
	defer span.End()
	span.SetAttributes(
		attribute.String("package", app.Package),
		attribute.Int("comments", len(comments)),
	)

	fail := func(err error) (int64, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fail(&PersistenceError{Op: "begin", Err: err})
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	appId, err := txqry.UpsertApp(ctx, appParams(app))
	if err != nil {
		return fail(&PersistenceError{Op: "app", Err: err})
	}

	var inserted int64
	for _, comment := range comments {
		userId, err := getOrCreateUser(ctx, txqry, comment.Username)
		if err != nil {
			return fail(err)
		}
		n, err := txqry.InsertComment(ctx, commentParams(appId, userId, comment))
		if err != nil {
			return fail(&PersistenceError{Op: "comment", Err: err})
		}
		inserted += n
	}

	if err := tx.Commit(); err != nil {
		return fail(&PersistenceError{Op: "commit", Err: err})
	}
	return inserted, nil
}
