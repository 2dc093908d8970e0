package domain

import "time"

// Session is a screening of a movie at a cinema. Its identity is the
// (MovieID, CinemaID) pair; there is no surrogate key.
type Session struct {
	MovieID   int64
	CinemaID  int64
	CreatedAt time.Time
}
