package domain

// VibeStatus is a user's self-reported mood shown on their profile.
type VibeStatus string

const (
	VibeReadyToMingle VibeStatus = "ready_to_mingle"
	VibeChilling      VibeStatus = "chilling"
	VibeExploring     VibeStatus = "exploring"
)

// User is read-only to the services; profiles and friend lists are managed
// through the admin surface and seed data.
type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	AvatarURL  string     `json:"avatarUrl"`
	VibeStatus VibeStatus `json:"vibeStatus"`
	Friends    []string   `json:"friends"`
}
