package cart

import (
	"sync"

	"github.com/google/uuid"
)

// SelectedSeat is one cart entry. Price is deliberately not stored here:
// totals are always derived from the owning zone's current unit price at
// read time, so a zone price refresh is never masked by a stale snapshot.
type SelectedSeat struct {
	SeatID    uuid.UUID `json:"seat_id"`
	ZoneID    uuid.UUID `json:"zone_id"`
	SectionID uuid.UUID `json:"section_id"`
	Label     string    `json:"label"`
}

// Cart holds the seats one user intends to purchase for one show. Field
// ownership is split: the selection wizard writes the show and the seat
// set, the checkout handoff writes the booking ID after submission, and
// neither touches the other's fields.
type Cart struct {
	mu        sync.Mutex
	showID    uuid.UUID
	seats     []SelectedSeat
	bookingID *uuid.UUID
}

func New() *Cart {
	return &Cart{}
}

// SetShow binds the cart to a show. Switching to a different show clears
// the seat set and any booking reference: a selection is only meaningful
// within the show it was made for.
func (c *Cart) SetShow(showID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.showID != showID {
		c.seats = nil
		c.bookingID = nil
	}
	c.showID = showID
}

// AddSeat appends a seat to the selection. Adding a seat already present
// is a no-op; insertion order is preserved otherwise.
func (c *Cart) AddSeat(seat SelectedSeat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.seats {
		if s.SeatID == seat.SeatID {
			return
		}
	}
	c.seats = append(c.seats, seat)
}

// RemoveSeat drops a seat from the selection. Removing an absent seat is
// a no-op.
func (c *Cart) RemoveSeat(seatID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range c.seats {
		if s.SeatID == seatID {
			c.seats = append(c.seats[:i], c.seats[i+1:]...)
			return
		}
	}
}

// ClearSeats empties the selection without touching the show binding.
func (c *Cart) ClearSeats() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seats = nil
}

// SetBookingID records the booking created from this cart. Written only
// by the checkout handoff.
func (c *Cart) SetBookingID(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bookingID = &id
}

func (c *Cart) ShowID() uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.showID
}

// Seats returns a copy of the selection in insertion order.
func (c *Cart) Seats() []SelectedSeat {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]SelectedSeat, len(c.seats))
	copy(out, c.seats)
	return out
}

func (c *Cart) Contains(seatID uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.seats {
		if s.SeatID == seatID {
			return true
		}
	}
	return false
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.seats)
}

func (c *Cart) BookingID() *uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bookingID == nil {
		return nil
	}
	id := *c.bookingID
	return &id
}
