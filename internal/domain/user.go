package domain

import "time"

// User is one mini-program user, keyed by the open id issued by the
// platform gateway. Rank is the cumulative completion score and only
// grows; it is mutated exclusively by the completion transaction.
type User struct {
	OpenID    string
	Nickname  string
	Icon      string
	Rank      int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LeaderboardEntry is one row of the rank projection: a 1-based position
// plus the public user fields. Ties in score order arbitrarily.
type LeaderboardEntry struct {
	Position int
	Nickname string
	Icon     string
	Score    int
}
