package db

import "database/sql"

type App struct {
	ID          int64
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

type User struct {
	ID   int64
	Name string
}

type Comment struct {
	ID         int64
	AppID      int64
	UserID     int64
	Body       string
	Rating     sql.NullInt64
	PostedAt   sql.NullInt64
	PageOffset int64
}
