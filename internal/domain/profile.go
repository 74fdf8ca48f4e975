package domain

import "time"

// Profile carries the mutable presentation fields attached to a user. A blank
// profile is created with the account and filled in later.
type Profile struct {
	ID        string
	UserID    string
	FirstName string
	LastName  string
	Bio       string
	Interests string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
