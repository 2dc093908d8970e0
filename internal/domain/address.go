package domain

import "time"

// Address is a street address owned by at most one cinema.
type Address struct {
	ID        int64
	Street    string
	Number    int
	CreatedAt time.Time
	UpdatedAt time.Time
}
