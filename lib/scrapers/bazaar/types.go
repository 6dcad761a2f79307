package bazaar

import "time"

// AppRef points at one app discovered on a listing page.
type AppRef struct {
	Package string
	Url     string
}

// App holds everything a detail page yields. Rating is nil and
// UpdatedAt is the zero time when the page does not show them.
type App struct {
	Package     string
	Name        string
	Description string
	Category    string
	Rating      *float64
	Installs    int64
	SizeMB      int64
	UpdatedAt   time.Time
	Screenshots []string
	Url         string
}

// Comment is one entry of a rendered comment list. Rating is nil and
// PostedAt is the zero time when the entry does not show them.
type Comment struct {
	Username string
	Body     string
	Rating   *int64
	PostedAt time.Time
	// Offset is the entry's position in the rendered list.
	Offset int64
}
