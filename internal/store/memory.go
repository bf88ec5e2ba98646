package store

import (
	"context"
	"sync"

	"github.com/RestartDK/selene/internal/domain"
)

// MemoryStore is an in-process Store used in tests and as a throwaway
// backend. Slices are copied on both load and save so callers cannot alias
// the stored data.
type MemoryStore struct {
	mu        sync.RWMutex
	users     []domain.User
	venues    []domain.Venue
	interests []domain.Interest
	invites   []domain.Invite
	bookings  []domain.Booking
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func copySlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func (s *MemoryStore) LoadUsers(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.users), nil
}

func (s *MemoryStore) SaveUsers(_ context.Context, users []domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = copySlice(users)
	return nil
}

func (s *MemoryStore) LoadVenues(_ context.Context) ([]domain.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.venues), nil
}

func (s *MemoryStore) SaveVenues(_ context.Context, venues []domain.Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.venues = copySlice(venues)
	return nil
}

func (s *MemoryStore) LoadInterests(_ context.Context) ([]domain.Interest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.interests), nil
}

func (s *MemoryStore) SaveInterests(_ context.Context, interests []domain.Interest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interests = copySlice(interests)
	return nil
}

func (s *MemoryStore) LoadInvites(_ context.Context) ([]domain.Invite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.invites), nil
}

func (s *MemoryStore) SaveInvites(_ context.Context, invites []domain.Invite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invites = copySlice(invites)
	return nil
}

func (s *MemoryStore) LoadBookings(_ context.Context) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.bookings), nil
}

func (s *MemoryStore) SaveBookings(_ context.Context, bookings []domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = copySlice(bookings)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
