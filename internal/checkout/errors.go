package checkout

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrNotBookingOwner   = errors.New("booking belongs to another user")
	ErrBookingNotPending = errors.New("booking is not pending")
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
	ErrPaymentNotFound   = errors.New("payment not found")
)

// SeatsUnavailableError reports seats that were no longer available when
// the booking transaction ran. The selection wizard inspects the seat IDs
// to drop exactly those from the user's cart.
type SeatsUnavailableError struct {
	SeatIDs []uuid.UUID
}

func (e *SeatsUnavailableError) Error() string {
	return fmt.Sprintf("%d seat(s) are no longer available", len(e.SeatIDs))
}

func (e *SeatsUnavailableError) ConflictingSeatIDs() []uuid.UUID {
	return e.SeatIDs
}
