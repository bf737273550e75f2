package domain

import "time"

// Service represents a bookable barbershop service (haircut, shave, ...)
type Service struct {
	ID              int64
	BranchID        int64
	Name            string
	Price           float64
	DurationMinutes int
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
