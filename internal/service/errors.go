package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RestartDK/selene/internal/domain"
)

var (
	ErrVenueNotFound    = errors.New("venue not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrInviteNotFound   = errors.New("invite not found")
	ErrInterestNotFound = errors.New("interest not found")

	// ErrNotRecipient is returned when anyone but the invite's recipient
	// tries to accept or decline it.
	ErrNotRecipient = errors.New("only the recipient can update this invite")
)

// ValidationError marks a request that is missing or malformed a required
// field. The boundary maps it to 400.
type ValidationError struct {
	msg string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

func (e *ValidationError) Error() string {
	return e.msg
}

// InvalidStateError marks an illegal lifecycle transition, such as
// responding to an invite that has already been accepted or declined.
type InvalidStateError struct {
	Status domain.InviteStatus
}

// Message is the client-facing form served in error responses.
func (e *InvalidStateError) Message() string {
	return fmt.Sprintf("Invite already %s", e.Status)
}

func (e *InvalidStateError) Error() string {
	return strings.ToLower(e.Message())
}
