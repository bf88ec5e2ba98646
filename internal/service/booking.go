package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RestartDK/selene/internal/domain"
	"github.com/RestartDK/selene/internal/store"
)

// Characters that read unambiguously on a phone screen: no I, O, 0 or 1.
const confirmationAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const confirmationCodeLength = 6

// BookingService creates confirmed bookings against a mock reservation
// provider. Each creation waits a uniform 1–2 s to model the provider's
// round trip; the delay suspends only the calling request.
type BookingService struct {
	store store.Store

	minDelay time.Duration
	maxDelay time.Duration

	// mu serializes booking load-append-save cycles. The simulated delay
	// happens before the lock is taken.
	mu sync.Mutex
}

func NewBookingService(s store.Store) *BookingService {
	return &BookingService{
		store:    s,
		minDelay: 1 * time.Second,
		maxDelay: 2 * time.Second,
	}
}

// ListForUser returns bookings the user owns or is a guest on.
func (s *BookingService) ListForUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	bookings, err := s.store.LoadBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading bookings: %w", err)
	}

	mine := []domain.Booking{}
	for _, b := range bookings {
		if b.UserID == userID || contains(b.Guests, userID) {
			mine = append(mine, b)
		}
	}
	return mine, nil
}

// Create validates the request, simulates the provider delay and persists a
// confirmed booking with a fresh confirmation code.
func (s *BookingService) Create(ctx context.Context, venueID string, partySize int, dateTime time.Time, guestIDs []string, userID string) (*domain.Booking, error) {
	if venueID == "" {
		return nil, NewValidationError("missing required field: venueId")
	}
	if partySize <= 0 {
		return nil, NewValidationError("partySize must be greater than zero")
	}
	if dateTime.IsZero() {
		return nil, NewValidationError("missing required field: dateTime")
	}

	s.simulateProcessing()

	code, err := confirmationCode()
	if err != nil {
		return nil, fmt.Errorf("generating confirmation code: %w", err)
	}

	booking := domain.Booking{
		ID:               uuid.NewString(),
		VenueID:          venueID,
		UserID:           userID,
		Guests:           guestIDs,
		PartySize:        partySize,
		DateTime:         dateTime,
		Status:           domain.BookingConfirmed,
		ConfirmationCode: code,
		CreatedAt:        time.Now().UTC(),
	}
	if booking.Guests == nil {
		booking.Guests = []string{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.store.LoadBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading bookings: %w", err)
	}
	bookings = append(bookings, booking)
	if err := s.store.SaveBookings(ctx, bookings); err != nil {
		return nil, fmt.Errorf("saving bookings: %w", err)
	}

	return &booking, nil
}

func (s *BookingService) simulateProcessing() {
	window := s.maxDelay - s.minDelay
	delay := s.minDelay
	if window > 0 {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(window)))
		if err == nil {
			delay += time.Duration(n.Int64())
		}
	}
	time.Sleep(delay)
}

func confirmationCode() (string, error) {
	buf := make([]byte, confirmationCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	code := make([]byte, confirmationCodeLength)
	for i, b := range buf {
		code[i] = confirmationAlphabet[int(b)%len(confirmationAlphabet)]
	}
	return string(code), nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
