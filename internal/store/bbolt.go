package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/RestartDK/selene/internal/domain"
)

// BBoltStore keeps each collection in its own bucket. Records are stored
// under 8-byte big-endian sequence keys so a full load iterates in the same
// order the records were saved; the feed relies on that ordering.
type BBoltStore struct {
	db *bolt.DB
}

func NewBBoltStore(path string) (*BBoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bbolt db at %s: %w", path, err)
	}

	// Reason: buckets must exist before any read/write operations
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range Collections {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating collection buckets: %w", err)
	}

	return &BBoltStore{db: db}, nil
}

func (s *BBoltStore) loadAll(name string, visit func(v []byte) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(name))
		return b.ForEach(func(_, v []byte) error {
			return visit(v)
		})
	})
}

func (s *BBoltStore) saveAll(name string, records []json.RawMessage) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(name)); err != nil {
			return fmt.Errorf("deleting %s bucket: %w", name, err)
		}
		b, err := tx.CreateBucket([]byte(name))
		if err != nil {
			return fmt.Errorf("recreating %s bucket: %w", name, err)
		}
		for _, rec := range records {
			seq, err := b.NextSequence()
			if err != nil {
				return fmt.Errorf("allocating sequence in %s: %w", name, err)
			}
			key := make([]byte, 8)
			binary.BigEndian.PutUint64(key, seq)
			if err := b.Put(key, rec); err != nil {
				return fmt.Errorf("writing record to %s: %w", name, err)
			}
		}
		return nil
	})
}

func marshalAll[T any](name string, records []T) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(records))
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s record: %w", name, err)
		}
		out = append(out, data)
	}
	return out, nil
}

func loadCollection[T any](s *BBoltStore, name string) ([]T, error) {
	result := []T{}
	err := s.loadAll(name, func(v []byte) error {
		var rec T
		if err := json.Unmarshal(v, &rec); err != nil {
			return fmt.Errorf("unmarshaling %s record: %w", name, err)
		}
		result = append(result, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func saveCollection[T any](s *BBoltStore, name string, records []T) error {
	raw, err := marshalAll(name, records)
	if err != nil {
		return err
	}
	return s.saveAll(name, raw)
}

func (s *BBoltStore) LoadUsers(_ context.Context) ([]domain.User, error) {
	return loadCollection[domain.User](s, CollectionUsers)
}

func (s *BBoltStore) SaveUsers(_ context.Context, users []domain.User) error {
	return saveCollection(s, CollectionUsers, users)
}

func (s *BBoltStore) LoadVenues(_ context.Context) ([]domain.Venue, error) {
	return loadCollection[domain.Venue](s, CollectionVenues)
}

func (s *BBoltStore) SaveVenues(_ context.Context, venues []domain.Venue) error {
	return saveCollection(s, CollectionVenues, venues)
}

func (s *BBoltStore) LoadInterests(_ context.Context) ([]domain.Interest, error) {
	return loadCollection[domain.Interest](s, CollectionInterests)
}

func (s *BBoltStore) SaveInterests(_ context.Context, interests []domain.Interest) error {
	return saveCollection(s, CollectionInterests, interests)
}

func (s *BBoltStore) LoadInvites(_ context.Context) ([]domain.Invite, error) {
	return loadCollection[domain.Invite](s, CollectionInvites)
}

func (s *BBoltStore) SaveInvites(_ context.Context, invites []domain.Invite) error {
	return saveCollection(s, CollectionInvites, invites)
}

func (s *BBoltStore) LoadBookings(_ context.Context) ([]domain.Booking, error) {
	return loadCollection[domain.Booking](s, CollectionBookings)
}

func (s *BBoltStore) SaveBookings(_ context.Context, bookings []domain.Booking) error {
	return saveCollection(s, CollectionBookings, bookings)
}

func (s *BBoltStore) Close() error {
	return s.db.Close()
}
