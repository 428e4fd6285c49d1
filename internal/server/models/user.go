package models

import "time"

// User is a registered account. PlaceIDs is a materialized back-reference to
// the places the user created; it is mutated only together with the place
// rows themselves, inside a transaction.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	ImageKey     string
	PlaceIDs     []string
	CreatedAt    time.Time
}
