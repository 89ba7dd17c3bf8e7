package wizard

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNoSession means the user has no active selection session.
	ErrNoSession = errors.New("no active selection session")

	// ErrInvalidStage means the operation is not legal at the current stage.
	ErrInvalidStage = errors.New("operation not allowed at current stage")

	// ErrInvalidZone means the zone ID is not in the currently loaded zone
	// list. This is a contract violation, not a race: a well-formed client
	// only offers zones it was shown.
	ErrInvalidZone = errors.New("zone not in loaded zone list")

	// ErrInvalidSection means the section ID is not in the currently loaded
	// section list.
	ErrInvalidSection = errors.New("section not in loaded section list")

	// ErrInvalidSeat means the seat ID is not in the currently loaded seat
	// list for the chosen section.
	ErrInvalidSeat = errors.New("seat not in loaded seat list")

	// ErrEmptySelection blocks submission of a cart with no seats.
	ErrEmptySelection = errors.New("no seats selected")
)

// SeatConflictError is implemented by checkout errors that carry the seats
// which raced to booked between selection and submission. The wizard uses
// it to drop the offending seats from the cart and return the user to the
// seat stage with a fresh list.
type SeatConflictError interface {
	error
	ConflictingSeatIDs() []uuid.UUID
}
