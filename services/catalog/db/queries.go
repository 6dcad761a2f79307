package db

import (
	"context"
	"database/sql"
)

const upsertApp = `
INSERT INTO apps (package, name, description, category, rating, installs, size_mb, updated_at, screenshots, url)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (package) DO UPDATE SET
    name = excluded.name,
    description = excluded.description,
    category = excluded.category,
    rating = excluded.rating,
    installs = excluded.installs,
    size_mb = excluded.size_mb,
    updated_at = excluded.updated_at,
    screenshots = excluded.screenshots,
    url = excluded.url
RETURNING id
`

type UpsertAppParams struct {
	Package     string
	Name        string
	Description string
	Category    string
	Rating      sql.NullFloat64
	Installs    int64
	SizeMb      int64
	UpdatedAt   sql.NullInt64
	Screenshots string
	Url         string
}

func (q *Queries) UpsertApp(ctx context.Context, arg UpsertAppParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, upsertApp,
		arg.Package,
		arg.Name,
		arg.Description,
		arg.Category,
		arg.Rating,
		arg.Installs,
		arg.SizeMb,
		arg.UpdatedAt,
		arg.Screenshots,
		arg.Url,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const createUser = `
INSERT INTO users (name) VALUES (?)
ON CONFLICT (name) DO NOTHING
`

func (q *Queries) CreateUser(ctx context.Context, name string) error {
	_, err := q.db.ExecContext(ctx, createUser, name)
	return err
}

const getUserId = `
SELECT id FROM users WHERE name = ?
`

func (q *Queries) GetUserId(ctx context.Context, name string) (int64, error) {
	row := q.db.QueryRowContext(ctx, getUserId, name)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const insertComment = `
INSERT INTO comments (app_id, user_id, body, rating, posted_at, page_offset)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (app_id, user_id, body) DO NOTHING
`

type InsertCommentParams struct {
	AppID      int64
	UserID     int64
	Body       string
	Rating     sql.NullInt64
	PostedAt   sql.NullInt64
	PageOffset int64
}

// InsertComment returns the number of rows written, which is zero
// when the comment's natural key already exists.
func (q *Queries) InsertComment(ctx context.Context, arg InsertCommentParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, insertComment,
		arg.AppID,
		arg.UserID,
		arg.Body,
		arg.Rating,
		arg.PostedAt,
		arg.PageOffset,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listApps = `
SELECT id, package, name, description, category, rating, installs, size_mb, updated_at, screenshots, url
FROM apps
ORDER BY id
`

func (q *Queries) ListApps(ctx context.Context) ([]App, error) {
	rows, err := q.db.QueryContext(ctx, listApps)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []App
	for rows.Next() {
		var i App
		err := rows.Scan(
			&i.ID,
			&i.Package,
			&i.Name,
			&i.Description,
			&i.Category,
			&i.Rating,
			&i.Installs,
			&i.SizeMb,
			&i.UpdatedAt,
			&i.Screenshots,
			&i.Url,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listUsers = `
SELECT id, name FROM users ORDER BY id
`

func (q *Queries) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := q.db.QueryContext(ctx, listUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []User
	for rows.Next() {
		var i User
		if err := rows.Scan(&i.ID, &i.Name); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listComments = `
SELECT comments.id, apps.package, users.name, comments.body, comments.rating, comments.posted_at, comments.page_offset
FROM comments
JOIN apps ON apps.id = comments.app_id
JOIN users ON users.id = comments.user_id
ORDER BY comments.id
`

type ListCommentsRow struct {
	ID         int64
	AppPackage string
	UserName   string
	Body       string
	Rating     sql.NullInt64
	PostedAt   sql.NullInt64
	PageOffset int64
}

func (q *Queries) ListComments(ctx context.Context) ([]ListCommentsRow, error) {
	rows, err := q.db.QueryContext(ctx, listComments)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListCommentsRow
	for rows.Next() {
		var i ListCommentsRow
		err := rows.Scan(
			&i.ID,
			&i.AppPackage,
			&i.UserName,
			&i.Body,
			&i.Rating,
			&i.PostedAt,
			&i.PageOffset,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
