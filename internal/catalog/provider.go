package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrConcertNotFound = errors.New("concert not found")
	ErrZoneNotFound    = errors.New("zone not found")
	ErrSectionNotFound = errors.New("section not found")
)

// Provider is the read contract the seat-selection wizard depends on. Seat
// availability returned here is ground truth at read time; callers must not
// cache it past a stage transition.
type Provider interface {
	// ListZones returns the zones of a concert, or ErrConcertNotFound.
	ListZones(ctx context.Context, concertID uuid.UUID) ([]Zone, error)

	// ListSections returns the sections of a zone, or ErrZoneNotFound.
	ListSections(ctx context.Context, concertID, zoneID uuid.UUID) ([]Section, error)

	// ListSeats returns the seats scoped to a zone, narrowed to one section
	// when sectionID is non-nil. Fails with ErrZoneNotFound or
	// ErrSectionNotFound as applicable.
	ListSeats(ctx context.Context, concertID, zoneID uuid.UUID, sectionID *uuid.UUID) ([]Seat, error)
}
