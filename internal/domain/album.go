package domain

import "time"

// Album is a themed collection of ordered collectible images.
// Albums are created and updated by the content pipeline; the service
// only ever reads them.
type Album struct {
	ID        int64
	Name      string
	Type      string
	Cover     string
	Total     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AlbumImage is a single collectible inside an album, positioned by Level.
// Images sharing a ParentID are ordered by (Level ASC, ID ASC).
type AlbumImage struct {
	ID        int64
	ParentID  int64
	Name      string
	Level     int
	ListCover string
	Pic       string
	Type      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
