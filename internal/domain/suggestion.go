package domain

import "time"

// Suggestion is a proactive "take these friends here" recommendation for a
// single venue, derived from shared venue-type interests.
type Suggestion struct {
	VenueID         string    `json:"venueId"`
	VenueName       string    `json:"venueName"`
	FriendNames     []string  `json:"friendNames"`
	FriendIDs       []string  `json:"friendIds"`
	PartySize       int       `json:"partySize"`
	SuggestedTime   time.Time `json:"suggestedTime"`
	Reasoning       string    `json:"reasoning"`
	SharedInterests []string  `json:"sharedInterests"`
}
