package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"concertly/internal/cart"
	"concertly/internal/catalog"

	"github.com/google/uuid"
)

// Stage is the wizard's position in the selection flow.
type Stage string

const (
	StageZone    Stage = "ZONE"
	StageSection Stage = "SECTION"
	StageSeats   Stage = "SEATS"
)

// Checkout is the downstream boundary that turns a finalized selection
// into a booking. The returned error may implement SeatConflictError when
// some seats were booked by someone else between selection and submission.
type Checkout interface {
	ConfirmSelection(ctx context.Context, userID, concertID, zoneID uuid.UUID, seatIDs []uuid.UUID, total int64) (uuid.UUID, error)
}

// Session is one user's walk through the zone, section and seat stages.
//
// Every mutating operation follows the same shape: validate and advance
// state under the lock, bump the request generation, release the lock for
// the catalog fetch, then re-acquire and apply the result only if the
// generation is unchanged. A response that lands after the user has moved
// on is discarded, never applied over newer state.
type Session struct {
	mu sync.Mutex

	userID    uuid.UUID
	concertID uuid.UUID

	stage           Stage
	zones           []catalog.Zone
	sections        []catalog.Section
	seats           []catalog.Seat
	chosenZoneID    uuid.UUID
	chosenSectionID *uuid.UUID

	cart     *cart.Cart
	gen      uint64
	fetcher  *Fetcher
	checkout Checkout

	// skipSections collapses the flow to zone -> seats for venues that
	// are not subdivided.
	skipSections bool

	lastActive time.Time
}

func newSession(userID, concertID uuid.UUID, fetcher *Fetcher, checkout Checkout, skipSections bool) *Session {
	c := cart.New()
	c.SetShow(concertID)
	return &Session{
		userID:       userID,
		concertID:    concertID,
		stage:        StageZone,
		cart:         c,
		fetcher:      fetcher,
		checkout:     checkout,
		skipSections: skipSections,
		lastActive:   time.Now(),
	}
}

// start loads the zone list for the session's concert.
func (s *Session) start(ctx context.Context) error {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.gen++
	gen := s.gen
	concertID := s.concertID
	s.mu.Unlock()

	zones, err := s.fetcher.Zones(ctx, concertID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load zones: %w", err)
	}
	s.zones = zones
	return nil
}

// SelectZone picks a zone and advances to the section stage (or straight
// to seats when sections are skipped). Picking a different zone than the
// current one clears the cart: a selection's price and legality are scoped
// to one zone.
func (s *Session) SelectZone(ctx context.Context, zoneID uuid.UUID) error {
	s.mu.Lock()
	s.lastActive = time.Now()

	if s.zoneByIDLocked(zoneID) == nil {
		s.mu.Unlock()
		return ErrInvalidZone
	}
	if s.chosenZoneID != zoneID {
		s.cart.ClearSeats()
	}
	s.chosenZoneID = zoneID
	s.chosenSectionID = nil
	s.sections = nil
	s.seats = nil
	if s.skipSections {
		s.stage = StageSeats
	} else {
		s.stage = StageSection
	}

	s.gen++
	gen := s.gen
	concertID := s.concertID
	s.mu.Unlock()

	if s.skipSections {
		seats, err := s.fetcher.Seats(ctx, concertID, zoneID, nil)
		return s.applySeats(gen, seats, err)
	}

	sections, err := s.fetcher.Sections(ctx, concertID, zoneID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load sections: %w", err)
	}
	s.sections = sections
	return nil
}

// SelectSection picks a section and advances to the seat stage. It is
// also legal from the seat stage so a user can switch sections without
// backing out first; switching clears any seats picked in the old section.
func (s *Session) SelectSection(ctx context.Context, sectionID uuid.UUID) error {
	s.mu.Lock()
	s.lastActive = time.Now()

	if s.stage != StageSection && s.stage != StageSeats {
		s.mu.Unlock()
		return ErrInvalidStage
	}
	found := false
	for _, sec := range s.sections {
		if sec.ID == sectionID {
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return ErrInvalidSection
	}
	if s.chosenSectionID == nil || *s.chosenSectionID != sectionID {
		s.cart.ClearSeats()
	}
	sid := sectionID
	s.chosenSectionID = &sid
	s.seats = nil
	s.stage = StageSeats

	s.gen++
	gen := s.gen
	concertID := s.concertID
	zoneID := s.chosenZoneID
	s.mu.Unlock()

	seats, err := s.fetcher.Seats(ctx, concertID, zoneID, &sid)
	return s.applySeats(gen, seats, err)
}

func (s *Session) applySeats(gen uint64, seats []catalog.Seat, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load seats: %w", err)
	}
	s.seats = seats
	return nil
}

// ToggleSeat adds the seat to the cart if absent, removes it if present.
// Toggling a booked seat is a silent no-op: the seat is visible but never
// selectable, and the availability shown to the user is authoritative.
// A seat ID outside the loaded list fails loudly instead.
func (s *Session) ToggleSeat(seatID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	if s.stage != StageSeats {
		return ErrInvalidStage
	}
	var target *catalog.Seat
	for i := range s.seats {
		if s.seats[i].ID == seatID {
			target = &s.seats[i]
			break
		}
	}
	if target == nil {
		return ErrInvalidSeat
	}
	if !target.IsAvailable() {
		return nil
	}

	if s.cart.Contains(seatID) {
		s.cart.RemoveSeat(seatID)
		return nil
	}
	s.cart.AddSeat(cart.SelectedSeat{
		SeatID:    target.ID,
		ZoneID:    target.ZoneID,
		SectionID: target.SectionID,
		Label:     target.Label(),
	})
	return nil
}

// Back moves one stage up. Leaving the seat stage abandons the current
// selection context, so the cart is cleared; re-entering the same section
// later starts from an empty selection.
func (s *Session) Back(ctx context.Context) error {
	s.mu.Lock()
	s.lastActive = time.Now()

	switch s.stage {
	case StageSeats:
		s.cart.ClearSeats()
		s.seats = nil
		s.chosenSectionID = nil
		if s.skipSections {
			s.stage = StageZone
			s.chosenZoneID = uuid.Nil
			s.sections = nil
		} else {
			s.stage = StageSection
		}
	case StageSection:
		s.cart.ClearSeats()
		s.stage = StageZone
		s.chosenZoneID = uuid.Nil
		s.chosenSectionID = nil
		s.sections = nil
		s.seats = nil
	default:
		s.mu.Unlock()
		return ErrInvalidStage
	}

	s.gen++
	gen := s.gen
	concertID := s.concertID
	zoneID := s.chosenZoneID
	stage := s.stage
	s.mu.Unlock()

	// Re-read the list for the stage we landed on; nothing from before
	// the transition is trusted.
	switch stage {
	case StageSection:
		sections, err := s.fetcher.Sections(ctx, concertID, zoneID)
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen != gen {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to reload sections: %w", err)
		}
		s.sections = sections
		return nil
	default:
		zones, err := s.fetcher.Zones(ctx, concertID)
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen != gen {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to reload zones: %w", err)
		}
		s.zones = zones
		return nil
	}
}

// RefreshZones re-reads zone data so totals track the latest unit prices.
// The result is discarded if any operation ran while the fetch was out.
func (s *Session) RefreshZones(ctx context.Context) error {
	s.mu.Lock()
	gen := s.gen
	concertID := s.concertID
	s.mu.Unlock()

	zones, err := s.fetcher.Zones(ctx, concertID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to refresh zones: %w", err)
	}
	s.zones = zones
	return nil
}

// ComputeTotal derives the cart total from each selected seat's owning
// zone at its current unit price. The price is never copied onto the seat
// at selection time, so a zone price refresh is reflected immediately.
func (s *Session) ComputeTotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.computeTotalLocked()
}

func (s *Session) computeTotalLocked() int64 {
	var total int64
	for _, seat := range s.cart.Seats() {
		if z := s.zoneByIDLocked(seat.ZoneID); z != nil {
			total += z.UnitPrice
		}
	}
	return total
}

func (s *Session) zoneByIDLocked(zoneID uuid.UUID) *catalog.Zone {
	for i := range s.zones {
		if s.zones[i].ID == zoneID {
			return &s.zones[i]
		}
	}
	return nil
}

// Submit finalizes the selection: refreshes zone prices, derives the
// total, and hands the cart to the checkout boundary. An empty selection
// is rejected before checkout is ever called. If checkout reports a seat
// conflict, the offending seats are dropped from the cart and the seat
// list is re-read so the user can retry from the seat stage.
func (s *Session) Submit(ctx context.Context) (uuid.UUID, int64, error) {
	s.mu.Lock()
	s.lastActive = time.Now()
	if s.stage != StageSeats {
		s.mu.Unlock()
		return uuid.Nil, 0, ErrInvalidStage
	}
	if s.cart.Len() == 0 {
		s.mu.Unlock()
		return uuid.Nil, 0, ErrEmptySelection
	}
	concertID := s.concertID
	s.mu.Unlock()

	// Totals must reflect current zone pricing at the moment of
	// submission, not whatever was loaded when seats were picked.
	if err := s.RefreshZones(ctx); err != nil {
		return uuid.Nil, 0, err
	}

	s.mu.Lock()
	selected := s.cart.Seats()
	if len(selected) == 0 {
		s.mu.Unlock()
		return uuid.Nil, 0, ErrEmptySelection
	}
	total := s.computeTotalLocked()
	userID := s.userID
	zoneID := s.chosenZoneID
	seatIDs := make([]uuid.UUID, len(selected))
	for i, seat := range selected {
		seatIDs[i] = seat.SeatID
	}
	s.mu.Unlock()

	bookingID, err := s.checkout.ConfirmSelection(ctx, userID, concertID, zoneID, seatIDs, total)
	if err != nil {
		var conflict SeatConflictError
		if errors.As(err, &conflict) {
			s.recoverFromConflict(ctx, conflict.ConflictingSeatIDs())
		}
		return uuid.Nil, 0, err
	}

	s.mu.Lock()
	s.cart.SetBookingID(bookingID)
	s.mu.Unlock()
	return bookingID, total, nil
}

// recoverFromConflict drops raced seats from the cart and re-reads the
// seat list so availability reflects what just happened.
func (s *Session) recoverFromConflict(ctx context.Context, conflicting []uuid.UUID) {
	s.mu.Lock()
	for _, id := range conflicting {
		s.cart.RemoveSeat(id)
	}
	s.stage = StageSeats
	s.gen++
	gen := s.gen
	concertID := s.concertID
	zoneID := s.chosenZoneID
	sectionID := s.chosenSectionID
	s.mu.Unlock()

	seats, err := s.fetcher.Seats(ctx, concertID, zoneID, sectionID)
	if err != nil {
		return
	}
	s.mu.Lock()
	if s.gen == gen {
		s.seats = seats
	}
	s.mu.Unlock()
}

// View is a read-only snapshot of the session for the HTTP layer.
type View struct {
	Stage           Stage               `json:"stage"`
	ConcertID       uuid.UUID           `json:"concert_id"`
	ChosenZoneID    *uuid.UUID          `json:"chosen_zone_id,omitempty"`
	ChosenSectionID *uuid.UUID          `json:"chosen_section_id,omitempty"`
	Zones           []catalog.Zone      `json:"zones,omitempty"`
	Sections        []catalog.Section   `json:"sections,omitempty"`
	Seats           []catalog.Seat      `json:"seats,omitempty"`
	SelectedSeats   []cart.SelectedSeat `json:"selected_seats"`
	Total           int64               `json:"total"`
	BookingID       *uuid.UUID          `json:"booking_id,omitempty"`
}

func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Stage:         s.stage,
		ConcertID:     s.concertID,
		SelectedSeats: s.cart.Seats(),
		Total:         s.computeTotalLocked(),
		BookingID:     s.cart.BookingID(),
	}
	if s.chosenZoneID != uuid.Nil {
		zid := s.chosenZoneID
		v.ChosenZoneID = &zid
	}
	if s.chosenSectionID != nil {
		sid := *s.chosenSectionID
		v.ChosenSectionID = &sid
	}
	v.Zones = append([]catalog.Zone(nil), s.zones...)
	v.Sections = append([]catalog.Section(nil), s.sections...)
	v.Seats = append([]catalog.Seat(nil), s.seats...)
	return v
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}
