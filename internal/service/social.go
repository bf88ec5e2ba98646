package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RestartDK/selene/internal/domain"
	"github.com/RestartDK/selene/internal/store"
)

// SocialService serves friend lookups and owns the interest (heart) state.
type SocialService struct {
	store store.Store

	// mu serializes interest load-mutate-save cycles so concurrent hearts
	// cannot drop each other's writes.
	mu sync.Mutex
}

func NewSocialService(s store.Store) *SocialService {
	return &SocialService{store: s}
}

// CurrentUser returns the profile for the given id, or ErrUserNotFound.
func (s *SocialService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	for i := range users {
		if users[i].ID == userID {
			return &users[i], nil
		}
	}
	return nil, ErrUserNotFound
}

// Friends resolves the user's friend ids to full profiles, keeping the
// friend list order and skipping ids that no longer resolve.
func (s *SocialService) Friends(ctx context.Context, userID string) ([]domain.User, error) {
	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}

	userByID := make(map[string]domain.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	current, ok := userByID[userID]
	if !ok {
		return nil, ErrUserNotFound
	}

	friends := []domain.User{}
	for _, friendID := range current.Friends {
		if friend, ok := userByID[friendID]; ok {
			friends = append(friends, friend)
		}
	}
	return friends, nil
}

// InterestedFriends returns the user's friends holding an interest in the
// venue, in interest insertion order.
func (s *SocialService) InterestedFriends(ctx context.Context, venueID, userID string) ([]domain.User, error) {
	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	interests, err := s.store.LoadInterests(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading interests: %w", err)
	}

	userByID := make(map[string]domain.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	current, ok := userByID[userID]
	if !ok {
		return nil, ErrUserNotFound
	}

	friendIDs := map[string]bool{}
	for _, id := range current.Friends {
		friendIDs[id] = true
	}

	interested := []domain.User{}
	for _, interest := range interests {
		if interest.VenueID != venueID || !friendIDs[interest.UserID] {
			continue
		}
		if friend, ok := userByID[interest.UserID]; ok {
			interested = append(interested, friend)
		}
	}
	return interested, nil
}

// Heart records the user's interest in a venue. The operation is
// idempotent: hearting an already-hearted venue returns the existing
// interest and created=false.
func (s *SocialService) Heart(ctx context.Context, venueID, userID string) (*domain.Interest, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	interests, err := s.store.LoadInterests(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("loading interests: %w", err)
	}

	for i := range interests {
		if interests[i].UserID == userID && interests[i].VenueID == venueID {
			return &interests[i], false, nil
		}
	}

	interest := domain.Interest{
		ID:        uuid.NewString(),
		UserID:    userID,
		VenueID:   venueID,
		CreatedAt: time.Now().UTC(),
	}
	interests = append(interests, interest)

	if err := s.store.SaveInterests(ctx, interests); err != nil {
		return nil, false, fmt.Errorf("saving interests: %w", err)
	}
	return &interest, true, nil
}

// Unheart removes the user's interest in a venue, or returns
// ErrInterestNotFound.
func (s *SocialService) Unheart(ctx context.Context, venueID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	interests, err := s.store.LoadInterests(ctx)
	if err != nil {
		return fmt.Errorf("loading interests: %w", err)
	}

	for i := range interests {
		if interests[i].UserID == userID && interests[i].VenueID == venueID {
			interests = append(interests[:i], interests[i+1:]...)
			if err := s.store.SaveInterests(ctx, interests); err != nil {
				return fmt.Errorf("saving interests: %w", err)
			}
			return nil
		}
	}
	return ErrInterestNotFound
}
