package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/RestartDK/selene/internal/domain"
	"github.com/RestartDK/selene/internal/store"
)

type Data struct {
	Users     []domain.User     `json:"users"`
	Venues    []domain.Venue    `json:"venues"`
	Interests []domain.Interest `json:"interests"`
	Invites   []domain.Invite   `json:"invites"`
	Bookings  []domain.Booking  `json:"bookings"`
}

// LoadFromFile reads seed data from a JSON file and populates the store.
// A collection that already has records is left untouched, so restarts do
// not clobber live data. Returns nil if path is empty (seeding disabled).
func LoadFromFile(ctx context.Context, path string, s store.Store) error {
	if path == "" {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading seed file %s: %w", path, err)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parsing seed file %s: %w", path, err)
	}

	if err := seedCollection(ctx, store.CollectionUsers, data.Users,
		s.LoadUsers, s.SaveUsers); err != nil {
		return err
	}
	if err := seedCollection(ctx, store.CollectionVenues, data.Venues,
		s.LoadVenues, s.SaveVenues); err != nil {
		return err
	}
	if err := seedCollection(ctx, store.CollectionInterests, data.Interests,
		s.LoadInterests, s.SaveInterests); err != nil {
		return err
	}
	if err := seedCollection(ctx, store.CollectionInvites, data.Invites,
		s.LoadInvites, s.SaveInvites); err != nil {
		return err
	}
	return seedCollection(ctx, store.CollectionBookings, data.Bookings,
		s.LoadBookings, s.SaveBookings)
}

func seedCollection[T any](
	ctx context.Context,
	name string,
	records []T,
	load func(context.Context) ([]T, error),
	save func(context.Context, []T) error,
) error {
	if len(records) == 0 {
		return nil
	}

	existing, err := load(ctx)
	if err != nil {
		return fmt.Errorf("checking %s before seeding: %w", name, err)
	}
	if len(existing) > 0 {
		log.WithField("collection", name).Debug("seed: collection not empty, skipping")
		return nil
	}

	if err := save(ctx, records); err != nil {
		return fmt.Errorf("seeding %s: %w", name, err)
	}
	log.WithFields(log.Fields{"collection": name, "count": len(records)}).Info("seeded collection")
	return nil
}
