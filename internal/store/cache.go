package store

import (
	"context"
	"sync"
	"time"

	"github.com/RestartDK/selene/internal/domain"
)

type cacheEntry struct {
	data     any
	loadedAt time.Time
}

// CachedStore is a read-through cache keyed by collection name. Entries
// expire after the TTL and are invalidated on save. It only short-circuits
// repeated reads within a narrow window; correctness never depends on it.
type CachedStore struct {
	inner Store
	ttl   time.Duration

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewCachedStore wraps inner with a TTL read cache. A TTL of zero or less
// disables caching and returns inner unchanged.
func NewCachedStore(inner Store, ttl time.Duration) Store {
	if ttl <= 0 {
		return inner
	}
	return &CachedStore{
		inner:   inner,
		ttl:     ttl,
		entries: map[string]cacheEntry{},
	}
}

func (s *CachedStore) get(name string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[name]
	if !ok || time.Since(entry.loadedAt) >= s.ttl {
		return nil, false
	}
	return entry.data, true
}

func (s *CachedStore) put(name string, data any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[name] = cacheEntry{data: data, loadedAt: time.Now()}
}

// Invalidate drops the cached entry for a collection.
func (s *CachedStore) Invalidate(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, name)
}

func cachedLoad[T any](s *CachedStore, name string, load func() ([]T, error)) ([]T, error) {
	if data, ok := s.get(name); ok {
		return copySlice(data.([]T)), nil
	}
	records, err := load()
	if err != nil {
		return nil, err
	}
	s.put(name, copySlice(records))
	return records, nil
}

func (s *CachedStore) LoadUsers(ctx context.Context) ([]domain.User, error) {
	return cachedLoad(s, CollectionUsers, func() ([]domain.User, error) {
		return s.inner.LoadUsers(ctx)
	})
}

func (s *CachedStore) SaveUsers(ctx context.Context, users []domain.User) error {
	s.Invalidate(CollectionUsers)
	return s.inner.SaveUsers(ctx, users)
}

func (s *CachedStore) LoadVenues(ctx context.Context) ([]domain.Venue, error) {
	return cachedLoad(s, CollectionVenues, func() ([]domain.Venue, error) {
		return s.inner.LoadVenues(ctx)
	})
}

func (s *CachedStore) SaveVenues(ctx context.Context, venues []domain.Venue) error {
	s.Invalidate(CollectionVenues)
	return s.inner.SaveVenues(ctx, venues)
}

func (s *CachedStore) LoadInterests(ctx context.Context) ([]domain.Interest, error) {
	return cachedLoad(s, CollectionInterests, func() ([]domain.Interest, error) {
		return s.inner.LoadInterests(ctx)
	})
}

func (s *CachedStore) SaveInterests(ctx context.Context, interests []domain.Interest) error {
	s.Invalidate(CollectionInterests)
	return s.inner.SaveInterests(ctx, interests)
}

func (s *CachedStore) LoadInvites(ctx context.Context) ([]domain.Invite, error) {
	return cachedLoad(s, CollectionInvites, func() ([]domain.Invite, error) {
		return s.inner.LoadInvites(ctx)
	})
}

func (s *CachedStore) SaveInvites(ctx context.Context, invites []domain.Invite) error {
	s.Invalidate(CollectionInvites)
	return s.inner.SaveInvites(ctx, invites)
}

func (s *CachedStore) LoadBookings(ctx context.Context) ([]domain.Booking, error) {
	return cachedLoad(s, CollectionBookings, func() ([]domain.Booking, error) {
		return s.inner.LoadBookings(ctx)
	})
}

func (s *CachedStore) SaveBookings(ctx context.Context, bookings []domain.Booking) error {
	s.Invalidate(CollectionBookings)
	return s.inner.SaveBookings(ctx, bookings)
}

func (s *CachedStore) Close() error {
	return s.inner.Close()
}
