// Package agent holds the concierge logic behind the /agent routes: the
// proactive per-venue suggestion, and the two actions the chat assistant is
// allowed to trigger (booking a table and sending invites). The chat and
// language-model plumbing itself lives outside this server.
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/RestartDK/selene/internal/domain"
	"github.com/RestartDK/selene/internal/service"
	"github.com/RestartDK/selene/internal/store"
)

type Concierge struct {
	store    store.Store
	bookings *service.BookingService
	invites  *service.InviteService
}

func NewConcierge(s store.Store, bookings *service.BookingService, invites *service.InviteService) *Concierge {
	return &Concierge{store: s, bookings: bookings, invites: invites}
}

// Suggest recommends taking the venue's interested friends there. It
// returns nil when no friends are interested. The reasoning cites, in
// order of preference: the venue's own type when the user and the friends
// share it, any other shared venue type, or the venue's vibe.
func (c *Concierge) Suggest(ctx context.Context, venueID, currentUserID string) (*domain.Suggestion, error) {
	venues, err := c.store.LoadVenues(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading venues: %w", err)
	}
	users, err := c.store.LoadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	interests, err := c.store.LoadInterests(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading interests: %w", err)
	}

	var venue *domain.Venue
	venueTypeByID := make(map[string]string, len(venues))
	for i := range venues {
		venueTypeByID[venues[i].ID] = venues[i].Type
		if venues[i].ID == venueID {
			venue = &venues[i]
		}
	}
	if venue == nil {
		return nil, service.ErrVenueNotFound
	}

	userByID := make(map[string]domain.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	friendIDs := map[string]bool{}
	if current, ok := userByID[currentUserID]; ok {
		for _, id := range current.Friends {
			friendIDs[id] = true
		}
	}

	friends := []domain.User{}
	for _, interest := range interests {
		if interest.VenueID != venueID || !friendIDs[interest.UserID] {
			continue
		}
		if friend, ok := userByID[interest.UserID]; ok {
			friends = append(friends, friend)
		}
	}
	if len(friends) == 0 {
		return nil, nil
	}

	interestedIDs := map[string]bool{}
	for _, f := range friends {
		interestedIDs[f.ID] = true
	}

	// Venue types the interested friends have hearted, anywhere.
	friendTypes := map[string]bool{}
	for _, interest := range interests {
		if !interestedIDs[interest.UserID] {
			continue
		}
		if t, ok := venueTypeByID[interest.VenueID]; ok {
			friendTypes[t] = true
		}
	}

	// Shared types in the order the current user hearted them.
	shared := []string{}
	sharedSet := map[string]bool{}
	for _, interest := range interests {
		if interest.UserID != currentUserID {
			continue
		}
		t, ok := venueTypeByID[interest.VenueID]
		if !ok || !friendTypes[t] || sharedSet[t] {
			continue
		}
		sharedSet[t] = true
		shared = append(shared, t)
	}

	names := make([]string, len(friends))
	ids := make([]string, len(friends))
	for i, f := range friends {
		names[i] = f.Name
		ids[i] = f.ID
	}

	now := time.Now()
	return &domain.Suggestion{
		VenueID:         venue.ID,
		VenueName:       venue.Name,
		FriendNames:     names,
		FriendIDs:       ids,
		PartySize:       len(friends) + 1,
		SuggestedTime:   time.Date(now.Year(), now.Month(), now.Day(), 21, 0, 0, 0, time.Local),
		Reasoning:       reasoning(venue, names, shared, sharedSet),
		SharedInterests: shared,
	}, nil
}

func reasoning(venue *domain.Venue, names, shared []string, sharedSet map[string]bool) string {
	joined := joinNames(names)
	switch {
	case sharedSet[venue.Type]:
		return fmt.Sprintf("You and %s are all into %s spots, and %s is exactly that.",
			joined, venue.Type, venue.Name)
	case len(shared) > 0:
		return fmt.Sprintf("You and %s share a taste for %s spots, so %s could be a great night out.",
			joined, shared[0], venue.Name)
	default:
		return fmt.Sprintf("%s would love %s — the vibe there is %s.",
			joined, venue.Name, venue.Vibe)
	}
}

// joinNames renders a name list in sentence form: "Maya", "Maya and Leo",
// "Maya, Leo and Zoe".
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

// BookingResult is what the assistant reads back to the user after the
// book-table action.
type BookingResult struct {
	Message          string          `json:"message"`
	ConfirmationCode string          `json:"confirmationCode"`
	Booking          *domain.Booking `json:"booking"`
}

// BookTable is the concierge's booking action. Unlike the plain booking
// endpoint it refuses venues that do not exist, since the assistant may
// hallucinate ids.
func (c *Concierge) BookTable(ctx context.Context, venueID string, partySize int, dateTime time.Time, guestIDs []string, currentUserID string) (*BookingResult, error) {
	venue, err := c.findVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}

	booking, err := c.bookings.Create(ctx, venueID, partySize, dateTime, guestIDs, currentUserID)
	if err != nil {
		return nil, err
	}

	return &BookingResult{
		Message:          fmt.Sprintf("Booking confirmed at %s!", venue.Name),
		ConfirmationCode: booking.ConfirmationCode,
		Booking:          booking,
	}, nil
}

// InviteResult is what the assistant reads back after the send-invites
// action.
type InviteResult struct {
	Message string          `json:"message"`
	Invites []domain.Invite `json:"invites"`
}

// SendInvites is the concierge's invite action.
func (c *Concierge) SendInvites(ctx context.Context, venueID string, toUserIDs []string, proposedTime time.Time, currentUserID string) (*InviteResult, error) {
	venue, err := c.findVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}

	created, err := c.invites.Create(ctx, venueID, toUserIDs, proposedTime, currentUserID)
	if err != nil {
		return nil, err
	}

	users, err := c.store.LoadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	userByID := make(map[string]domain.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	names := []string{}
	for _, inv := range created {
		if u, ok := userByID[inv.ToUserID]; ok {
			names = append(names, u.Name)
		}
	}

	return &InviteResult{
		Message: fmt.Sprintf("Invites sent to %s for %s!", strings.Join(names, ", "), venue.Name),
		Invites: created,
	}, nil
}

func (c *Concierge) findVenue(ctx context.Context, venueID string) (*domain.Venue, error) {
	venues, err := c.store.LoadVenues(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading venues: %w", err)
	}
	for i := range venues {
		if venues[i].ID == venueID {
			return &venues[i], nil
		}
	}
	return nil, service.ErrVenueNotFound
}
