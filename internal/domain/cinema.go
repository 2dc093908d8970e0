package domain

import "time"

// Cinema represents a cinema venue together with its owned address.
type Cinema struct {
	ID        int64
	Name      string
	AddressID int64
	Address   Address
	CreatedAt time.Time
	UpdatedAt time.Time
}
