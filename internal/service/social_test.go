package service

import (
	"context"
	"testing"

	"github.com/RestartDK/selene/internal/domain"
)

func TestHeart_CreatesInterest(t *testing.T) {
	s := newTestStore(t)
	svc := NewSocialService(s)

	interest, created, err := svc.Heart(context.Background(), "blue-note", alexID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected a new interest")
	}
	if interest.UserID != alexID || interest.VenueID != "blue-note" {
		t.Fatalf("wrong interest: %+v", interest)
	}
	if interest.ID == "" || interest.CreatedAt.IsZero() {
		t.Fatal("expected generated id and timestamp")
	}
}

func TestHeart_Idempotent(t *testing.T) {
	s := newTestStore(t)
	svc := NewSocialService(s)
	ctx := context.Background()

	first, _, err := svc.Heart(ctx, "blue-note", alexID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, created, err := svc.Heart(ctx, "blue-note", alexID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatal("expected existing interest, not a duplicate")
	}
	if second.ID != first.ID {
		t.Fatalf("expected same interest id, got %s and %s", first.ID, second.ID)
	}

	interests, _ := s.LoadInterests(ctx)
	if len(interests) != 1 {
		t.Fatalf("expected 1 stored interest, got %d", len(interests))
	}
}

func TestUnheart_RemovesInterest(t *testing.T) {
	s := newTestStore(t)
	svc := NewSocialService(s)
	ctx := context.Background()

	if _, _, err := svc.Heart(ctx, "blue-note", alexID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Unheart(ctx, "blue-note", alexID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	interests, _ := s.LoadInterests(ctx)
	if len(interests) != 0 {
		t.Fatalf("expected no interests, got %d", len(interests))
	}
}

func TestUnheart_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := NewSocialService(s).Unheart(context.Background(), "blue-note", alexID)
	if err != ErrInterestNotFound {
		t.Fatalf("expected ErrInterestNotFound, got %v", err)
	}
}

func TestFriends_ResolvesProfiles(t *testing.T) {
	s := newTestStore(t)

	friends, err := NewSocialService(s).Friends(context.Background(), alexID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(friends) != 2 {
		t.Fatalf("expected 2 friends, got %d", len(friends))
	}
	if friends[0].ID != sarahID || friends[1].ID != mikeID {
		t.Fatalf("wrong friends: %s, %s", friends[0].ID, friends[1].ID)
	}
}

func TestFriends_UnknownUser(t *testing.T) {
	s := newTestStore(t)

	_, err := NewSocialService(s).Friends(context.Background(), "u-ghost")
	if err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestInterestedFriends_FiltersByVenueAndFriendship(t *testing.T) {
	s := newTestStore(t)
	saveInterests(t, s, []domain.Interest{
		{ID: "i1", UserID: mikeID, VenueID: "blue-note"},
		{ID: "i2", UserID: rileyID, VenueID: "blue-note"},
		{ID: "i3", UserID: sarahID, VenueID: "noir-bar"},
	})

	interested, err := NewSocialService(s).InterestedFriends(context.Background(), "blue-note", alexID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(interested) != 1 || interested[0].ID != mikeID {
		t.Fatalf("expected only mike, got %+v", interested)
	}
}

func TestCurrentUser(t *testing.T) {
	s := newTestStore(t)

	user, err := NewSocialService(s).CurrentUser(context.Background(), alexID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name != "Alex" {
		t.Fatalf("expected Alex, got %s", user.Name)
	}

	if _, err := NewSocialService(s).CurrentUser(context.Background(), "u-ghost"); err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
