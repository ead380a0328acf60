package domain

import "time"

// UserAlbumImage marks that a user has completed one image.
// Completion is monotonic: once Completed is true it never reverts,
// and the row is never deleted.
type UserAlbumImage struct {
	UserOpenID   string
	AlbumImageID int64
	Completed    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserAlbum is the per-(user, album) aggregate flag. It is true iff every
// image of the album has a completed marker for the user; it is recomputed
// inside the completion transaction when the last image of an album flips.
type UserAlbum struct {
	UserOpenID string
	AlbumID    int64
	Completed  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
