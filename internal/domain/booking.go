package domain

import "time"

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingPending   BookingStatus = "pending"
	BookingCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID               string        `json:"id"`
	VenueID          string        `json:"venueId"`
	UserID           string        `json:"userId"`
	Guests           []string      `json:"guests"`
	PartySize        int           `json:"partySize"`
	DateTime         time.Time     `json:"dateTime"`
	Status           BookingStatus `json:"status"`
	ConfirmationCode string        `json:"confirmationCode"`
	CreatedAt        time.Time     `json:"createdAt"`
}
