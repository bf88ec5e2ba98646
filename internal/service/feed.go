package service

import (
	"context"
	"fmt"

	"github.com/RestartDK/selene/internal/domain"
	"github.com/RestartDK/selene/internal/store"
)

// FeedService joins venues with interests, invites and users to build the
// personalized feed for one user. It is read-only.
type FeedService struct {
	store store.Store
}

func NewFeedService(s store.Store) *FeedService {
	return &FeedService{store: s}
}

// BuildFeed returns every venue enriched with the current user's social
// context. Interested friends keep interest insertion order.
func (s *FeedService) BuildFeed(ctx context.Context, currentUserID string) ([]domain.EnrichedVenue, error) {
	venues, err := s.store.LoadVenues(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading venues: %w", err)
	}
	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	interests, err := s.store.LoadInterests(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading interests: %w", err)
	}
	invites, err := s.store.LoadInvites(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading invites: %w", err)
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

	feed := make([]domain.EnrichedVenue, 0, len(venues))
	for _, venue := range venues {
		enriched := domain.EnrichedVenue{
			Venue:             venue,
			InterestedFriends: []domain.User{},
		}

		for _, interest := range interests {
			if interest.VenueID != venue.ID {
				continue
			}
			switch {
			case friendIDs[interest.UserID]:
				if u, ok := userByID[interest.UserID]; ok {
					enriched.InterestedFriends = append(enriched.InterestedFriends, u)
				}
			case interest.UserID != currentUserID:
				enriched.MutualCount++
			}
		}

		enriched.InviteState = activeInvite(invites, venue.ID, currentUserID)
		feed = append(feed, enriched)
	}

	return feed, nil
}

// GetVenue returns a single enriched venue, or ErrVenueNotFound.
func (s *FeedService) GetVenue(ctx context.Context, venueID, currentUserID string) (*domain.EnrichedVenue, error) {
	feed, err := s.BuildFeed(ctx, currentUserID)
	if err != nil {
		return nil, err
	}
	for i := range feed {
		if feed[i].ID == venueID {
			return &feed[i], nil
		}
	}
	return nil, ErrVenueNotFound
}

// activeInvite picks the user's pending invite for a venue, as sender or
// recipient. With more than one candidate the most recently created wins,
// so the surfaced invite is deterministic.
func activeInvite(invites []domain.Invite, venueID, userID string) *domain.Invite {
	var active *domain.Invite
	for i := range invites {
		inv := invites[i]
		if inv.VenueID != venueID || inv.Status != domain.InvitePending {
			continue
		}
		if inv.FromUserID != userID && inv.ToUserID != userID {
			continue
		}
		if active == nil || inv.CreatedAt.After(active.CreatedAt) {
			copied := inv
			active = &copied
		}
	}
	return active
}
