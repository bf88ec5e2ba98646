package domain

import "time"

type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteDeclined InviteStatus = "declined"
)

// Invite is created pending and transitions exactly once, by the recipient,
// to accepted or declined.
type Invite struct {
	ID           string       `json:"id"`
	VenueID      string       `json:"venueId"`
	FromUserID   string       `json:"fromUserId"`
	ToUserID     string       `json:"toUserId"`
	Status       InviteStatus `json:"status"`
	ProposedTime time.Time    `json:"proposedTime"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// EnrichedInvite is an invite with the user ids resolved to full profiles.
type EnrichedInvite struct {
	ID           string       `json:"id"`
	VenueID      string       `json:"venueId"`
	FromUser     User         `json:"fromUser"`
	ToUser       User         `json:"toUser"`
	Status       InviteStatus `json:"status"`
	ProposedTime time.Time    `json:"proposedTime"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// InviteList groups a user's invites for the list endpoint. Related holds
// invites between third parties that share a venue and a host with one of
// the user's own invites. Pending is the pending subset of Received.
type InviteList struct {
	Sent     []EnrichedInvite `json:"sent"`
	Received []EnrichedInvite `json:"received"`
	Related  []EnrichedInvite `json:"related"`
	Pending  []EnrichedInvite `json:"pending"`
}
