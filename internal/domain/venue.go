package domain

type VenueLocation struct {
	Address  string  `json:"address"`
	Distance string  `json:"distance"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

// Venue is immutable reference data.
type Venue struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Type         string        `json:"type"`
	Vibe         string        `json:"vibe"`
	Description  string        `json:"description"`
	Location     VenueLocation `json:"location"`
	MediaURL     string        `json:"mediaUrl"`
	ThumbnailURL string        `json:"thumbnailUrl"`
}

// EnrichedVenue is a venue joined with the current user's social context.
// It is derived per request and never persisted.
type EnrichedVenue struct {
	Venue
	InterestedFriends []User  `json:"interestedFriends"`
	MutualCount       int     `json:"mutualCount"`
	InviteState       *Invite `json:"inviteState"`
}
