package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RestartDK/selene/internal/domain"
	"github.com/RestartDK/selene/internal/store"
)

// InviteService owns the invite lifecycle: creation, the single pending →
// accepted/declined transition, and related-invite discovery.
type InviteService struct {
	store store.Store

	// mu serializes invite load-mutate-save cycles across requests.
	mu sync.Mutex
}

func NewInviteService(s store.Store) *InviteService {
	return &InviteService{store: s}
}

// List partitions invites around the current user. Sent and Received are
// the user's own invites. Related holds invites between third parties at a
// venue where the user has an invite, sent by the same host as one of the
// user's invites there. Pending is the pending subset of Received.
func (s *InviteService) List(ctx context.Context, currentUserID string) (*domain.InviteList, error) {
	invites, err := s.store.LoadInvites(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading invites: %w", err)
	}
	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}

	userByID := make(map[string]domain.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	var sent, received, pending []domain.Invite

	// Hosts of the user's invites, grouped by venue. For sent invites the
	// host is the user; for received invites it is the original sender.
	hostsByVenue := map[string]map[string]bool{}
	addHost := func(venueID, hostID string) {
		if hostsByVenue[venueID] == nil {
			hostsByVenue[venueID] = map[string]bool{}
		}
		hostsByVenue[venueID][hostID] = true
	}

	for _, inv := range invites {
		switch {
		case inv.FromUserID == currentUserID:
			sent = append(sent, inv)
			addHost(inv.VenueID, inv.FromUserID)
		case inv.ToUserID == currentUserID:
			received = append(received, inv)
			addHost(inv.VenueID, inv.FromUserID)
			if inv.Status == domain.InvitePending {
				pending = append(pending, inv)
			}
		}
	}

	var related []domain.Invite
	seen := map[string]bool{}
	for _, inv := range invites {
		if inv.FromUserID == currentUserID || inv.ToUserID == currentUserID {
			continue
		}
		if !hostsByVenue[inv.VenueID][inv.FromUserID] || seen[inv.ID] {
			continue
		}
		seen[inv.ID] = true
		related = append(related, inv)
	}

	return &domain.InviteList{
		Sent:     enrichInvites(sent, userByID),
		Received: enrichInvites(received, userByID),
		Related:  enrichInvites(related, userByID),
		Pending:  enrichInvites(pending, userByID),
	}, nil
}

// Create sends pending invites from the current user to each resolvable
// target. Targets resolve by exact id first, then case-insensitive name.
// Unresolvable targets and pairs that already have a pending invite are
// skipped silently; only newly created invites are returned.
func (s *InviteService) Create(ctx context.Context, venueID string, targets []string, proposedTime time.Time, currentUserID string) ([]domain.Invite, error) {
	if venueID == "" {
		return nil, NewValidationError("missing required field: venueId")
	}
	if proposedTime.IsZero() {
		return nil, NewValidationError("missing required field: proposedTime")
	}

	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	invites, err := s.store.LoadInvites(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading invites: %w", err)
	}

	created := []domain.Invite{}
	for _, target := range targets {
		recipient := resolveUser(users, target)
		if recipient == nil {
			continue
		}
		if hasPendingInvite(invites, venueID, currentUserID, recipient.ID) {
			continue
		}

		invite := domain.Invite{
			ID:           uuid.NewString(),
			VenueID:      venueID,
			FromUserID:   currentUserID,
			ToUserID:     recipient.ID,
			Status:       domain.InvitePending,
			ProposedTime: proposedTime,
			CreatedAt:    time.Now().UTC(),
		}
		invites = append(invites, invite)
		created = append(created, invite)
	}

	if len(created) > 0 {
		if err := s.store.SaveInvites(ctx, invites); err != nil {
			return nil, fmt.Errorf("saving invites: %w", err)
		}
	}
	return created, nil
}

// UpdateStatus moves a pending invite to accepted or declined. Only the
// recipient may respond, and only once.
func (s *InviteService) UpdateStatus(ctx context.Context, inviteID string, status domain.InviteStatus, currentUserID string) (*domain.Invite, error) {
	if status != domain.InviteAccepted && status != domain.InviteDeclined {
		return nil, NewValidationError("status must be 'accepted' or 'declined'")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	invites, err := s.store.LoadInvites(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading invites: %w", err)
	}

	for i := range invites {
		if invites[i].ID != inviteID {
			continue
		}
		if invites[i].ToUserID != currentUserID {
			return nil, ErrNotRecipient
		}
		if invites[i].Status != domain.InvitePending {
			return nil, &InvalidStateError{Status: invites[i].Status}
		}

		invites[i].Status = status
		if err := s.store.SaveInvites(ctx, invites); err != nil {
			return nil, fmt.Errorf("saving invites: %w", err)
		}
		updated := invites[i]
		return &updated, nil
	}
	return nil, ErrInviteNotFound
}

func resolveUser(users []domain.User, target string) *domain.User {
	for i := range users {
		if users[i].ID == target {
			return &users[i]
		}
	}
	for i := range users {
		if strings.EqualFold(users[i].Name, target) {
			return &users[i]
		}
	}
	return nil
}

func hasPendingInvite(invites []domain.Invite, venueID, fromUserID, toUserID string) bool {
	for _, inv := range invites {
		if inv.VenueID == venueID &&
			inv.FromUserID == fromUserID &&
			inv.ToUserID == toUserID &&
			inv.Status == domain.InvitePending {
			return true
		}
	}
	return false
}

// enrichInvites swaps user ids for full profiles. Invites whose users no
// longer resolve are dropped rather than returned half-empty.
func enrichInvites(invites []domain.Invite, userByID map[string]domain.User) []domain.EnrichedInvite {
	enriched := []domain.EnrichedInvite{}
	for _, inv := range invites {
		from, okFrom := userByID[inv.FromUserID]
		to, okTo := userByID[inv.ToUserID]
		if !okFrom || !okTo {
			continue
		}
		enriched = append(enriched, domain.EnrichedInvite{
			ID:           inv.ID,
			VenueID:      inv.VenueID,
			FromUser:     from,
			ToUser:       to,
			Status:       inv.Status,
			ProposedTime: inv.ProposedTime,
			CreatedAt:    inv.CreatedAt,
		})
	}
	return enriched
}
