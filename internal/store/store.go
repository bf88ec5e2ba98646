package store

import (
	"context"

	"github.com/RestartDK/selene/internal/domain"
)

// Collection names used by the cache, the seed loader and the admin surface.
const (
	CollectionUsers     = "users"
	CollectionVenues    = "venues"
	CollectionInterests = "interests"
	CollectionInvites   = "invites"
	CollectionBookings  = "bookings"
)

// Collections lists every known collection name.
var Collections = []string{
	CollectionUsers,
	CollectionVenues,
	CollectionInterests,
	CollectionInvites,
	CollectionBookings,
}

// Store reads and writes whole entity collections. Loads preserve insertion
// order and return an empty slice for a collection that has never been
// written. Saves replace the full collection.
type Store interface {
	LoadUsers(ctx context.Context) ([]domain.User, error)
	SaveUsers(ctx context.Context, users []domain.User) error

	LoadVenues(ctx context.Context) ([]domain.Venue, error)
	SaveVenues(ctx context.Context, venues []domain.Venue) error

	LoadInterests(ctx context.Context) ([]domain.Interest, error)
	SaveInterests(ctx context.Context, interests []domain.Interest) error

	LoadInvites(ctx context.Context) ([]domain.Invite, error)
	SaveInvites(ctx context.Context, invites []domain.Invite) error

	LoadBookings(ctx context.Context) ([]domain.Booking, error)
	SaveBookings(ctx context.Context, bookings []domain.Booking) error

	Close() error
}
