package domain

import "time"

// Interest records that a user hearted a venue. At most one interest exists
// per (user, venue) pair; the heart operation is idempotent.
type Interest struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	VenueID   string    `json:"venueId"`
	CreatedAt time.Time `json:"createdAt"`
}
