package models

import "time"

// Place is a point of interest created by exactly one user.
type Place struct {
	ID          string
	Title       string
	Description string
	Address     string
	Lat         float64
	Lng         float64
	ImageKey    string
	CreatorID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
