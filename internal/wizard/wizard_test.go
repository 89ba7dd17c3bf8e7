package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"concertly/internal/catalog"
	"concertly/internal/shared/config"

	"github.com/google/uuid"
)

var (
	testConcertID = catalog.StaticID("concert:test")
	zoneAID       = catalog.StaticID("zone:A")
	zoneBID       = catalog.StaticID("zone:B")
	sectionA1ID   = catalog.StaticID("section:A1")
	sectionA2ID   = catalog.StaticID("section:A2")
	sectionB1ID   = catalog.StaticID("section:B1")
	seatA1n1      = catalog.StaticID("seat:A1:A:1")
	seatA1n2      = catalog.StaticID("seat:A1:A:2")
)

// instrumentedProvider wraps the static fixture so tests can count
// upstream calls and hold individual seat fetches open.
type instrumentedProvider struct {
	inner *catalog.StaticProvider

	mu         sync.Mutex
	zoneCalls  int
	seatCalls  int
	seatGates  map[uuid.UUID]chan struct{}
	seatStarts map[uuid.UUID]int
}

func newInstrumentedProvider() *instrumentedProvider {
	return &instrumentedProvider{
		inner:      catalog.NewStaticProvider(testConcertID),
		seatGates:  make(map[uuid.UUID]chan struct{}),
		seatStarts: make(map[uuid.UUID]int),
	}
}

func (p *instrumentedProvider) ListZones(ctx context.Context, concertID uuid.UUID) ([]catalog.Zone, error) {
	p.mu.Lock()
	p.zoneCalls++
	p.mu.Unlock()
	return p.inner.ListZones(ctx, concertID)
}

func (p *instrumentedProvider) ListSections(ctx context.Context, concertID, zoneID uuid.UUID) ([]catalog.Section, error) {
	return p.inner.ListSections(ctx, concertID, zoneID)
}

func (p *instrumentedProvider) ListSeats(ctx context.Context, concertID, zoneID uuid.UUID, sectionID *uuid.UUID) ([]catalog.Seat, error) {
	p.mu.Lock()
	p.seatCalls++
	var gate chan struct{}
	if sectionID != nil {
		p.seatStarts[*sectionID]++
		gate = p.seatGates[*sectionID]
	}
	p.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return p.inner.ListSeats(ctx, concertID, zoneID, sectionID)
}

func (p *instrumentedProvider) gateSeats(sectionID uuid.UUID) chan struct{} {
	gate := make(chan struct{})
	p.mu.Lock()
	p.seatGates[sectionID] = gate
	p.mu.Unlock()
	return gate
}

func (p *instrumentedProvider) waitForSeatFetch(t *testing.T, sectionID uuid.UUID) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		p.mu.Lock()
		started := p.seatStarts[sectionID]
		p.mu.Unlock()
		if started > 0 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("seat fetch never started")
}

type fakeCheckout struct {
	mu        sync.Mutex
	calls     int
	seatIDs   []uuid.UUID
	total     int64
	bookingID uuid.UUID
	err       error
}

func (f *fakeCheckout) ConfirmSelection(ctx context.Context, userID, concertID, zoneID uuid.UUID, seatIDs []uuid.UUID, total int64) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.seatIDs = append([]uuid.UUID(nil), seatIDs...)
	f.total = total
	if f.err != nil {
		return uuid.Nil, f.err
	}
	return f.bookingID, nil
}

type conflictErr struct {
	ids []uuid.UUID
}

func (e *conflictErr) Error() string                   { return "seats already booked" }
func (e *conflictErr) ConflictingSeatIDs() []uuid.UUID { return e.ids }

func newTestSession(t *testing.T, provider catalog.Provider, checkout Checkout) *Session {
	t.Helper()
	s := newSession(uuid.New(), testConcertID, NewFetcher(provider), checkout, false)
	if err := s.start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	return s
}

func advanceToSeats(t *testing.T, s *Session) {
	t.Helper()
	ctx := context.Background()
	if err := s.SelectZone(ctx, zoneAID); err != nil {
		t.Fatalf("SelectZone: %v", err)
	}
	if err := s.SelectSection(ctx, sectionA1ID); err != nil {
		t.Fatalf("SelectSection: %v", err)
	}
}

func TestSelectionFlowWithBookedSeat(t *testing.T) {
	provider := newInstrumentedProvider()
	provider.inner.SetSeatStatus(seatA1n2, catalog.SeatBooked)
	s := newTestSession(t, provider, &fakeCheckout{})
	advanceToSeats(t, s)

	if err := s.ToggleSeat(seatA1n1); err != nil {
		t.Fatalf("toggling an available seat: %v", err)
	}
	if err := s.ToggleSeat(seatA1n2); err != nil {
		t.Fatalf("toggling a booked seat must be a silent no-op, got %v", err)
	}

	view := s.Snapshot()
	if len(view.SelectedSeats) != 1 {
		t.Fatalf("expected 1 selected seat, got %d", len(view.SelectedSeats))
	}
	if view.SelectedSeats[0].SeatID != seatA1n1 {
		t.Error("wrong seat in cart")
	}
	if got := s.ComputeTotal(); got != 3000 {
		t.Errorf("expected total 3000 (zone A unit price), got %d", got)
	}
}

func TestZoneSwitchClearsSelection(t *testing.T) {
	provider := newInstrumentedProvider()
	s := newTestSession(t, provider, &fakeCheckout{})
	advanceToSeats(t, s)

	if err := s.ToggleSeat(seatA1n1); err != nil {
		t.Fatalf("ToggleSeat: %v", err)
	}
	if err := s.SelectZone(context.Background(), zoneBID); err != nil {
		t.Fatalf("SelectZone B: %v", err)
	}

	view := s.Snapshot()
	if len(view.SelectedSeats) != 0 {
		t.Errorf("switching zones must clear the cart, got %d seats", len(view.SelectedSeats))
	}
	if view.Stage != StageSection {
		t.Errorf("expected stage %s, got %s", StageSection, view.Stage)
	}
	if s.ComputeTotal() != 0 {
		t.Error("total must be 0 after zone switch")
	}
}

func TestSectionSwitchClearsSelection(t *testing.T) {
	provider := newInstrumentedProvider()
	s := newTestSession(t, provider, &fakeCheckout{})
	advanceToSeats(t, s)

	if err := s.ToggleSeat(seatA1n1); err != nil {
		t.Fatalf("ToggleSeat: %v", err)
	}
	if err := s.SelectSection(context.Background(), sectionA2ID); err != nil {
		t.Fatalf("SelectSection A2: %v", err)
	}

	if n := len(s.Snapshot().SelectedSeats); n != 0 {
		t.Errorf("switching sections must clear the cart, got %d seats", n)
	}
}

func TestSubmitEmptySelection(t *testing.T) {
	provider := newInstrumentedProvider()
	checkout := &fakeCheckout{}
	s := newTestSession(t, provider, checkout)
	advanceToSeats(t, s)

	_, _, err := s.Submit(context.Background())
	if !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
	if checkout.calls != 0 {
		t.Error("checkout must not be called for an empty selection")
	}
}

func TestStaleSeatFetchDiscarded(t *testing.T) {
	provider := newInstrumentedProvider()
	s := newTestSession(t, provider, &fakeCheckout{})
	if err := s.SelectZone(context.Background(), zoneAID); err != nil {
		t.Fatalf("SelectZone: %v", err)
	}

	// Hold the A1 seat fetch open while the user clicks through to A2.
	gate := provider.gateSeats(sectionA1ID)
	done := make(chan error, 1)
	go func() {
		done <- s.SelectSection(context.Background(), sectionA1ID)
	}()
	provider.waitForSeatFetch(t, sectionA1ID)

	if err := s.SelectSection(context.Background(), sectionA2ID); err != nil {
		t.Fatalf("SelectSection A2: %v", err)
	}

	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("stale SelectSection must not error, got %v", err)
	}

	view := s.Snapshot()
	if view.ChosenSectionID == nil || *view.ChosenSectionID != sectionA2ID {
		t.Fatal("active section must be A2")
	}
	if len(view.Seats) == 0 {
		t.Fatal("expected A2 seats to be loaded")
	}
	for _, seat := range view.Seats {
		if seat.SectionID != sectionA2ID {
			t.Fatalf("seat %s is from a stale A1 response", seat.Label())
		}
	}
}

func TestToggleSeatIdempotence(t *testing.T) {
	provider := newInstrumentedProvider()
	s := newTestSession(t, provider, &fakeCheckout{})
	advanceToSeats(t, s)

	if err := s.ToggleSeat(seatA1n1); err != nil {
		t.Fatal(err)
	}
	if err := s.ToggleSeat(seatA1n1); err != nil {
		t.Fatal(err)
	}
	if n := len(s.Snapshot().SelectedSeats); n != 0 {
		t.Errorf("double toggle must return to the original membership, got %d seats", n)
	}
}

func TestBackNavigationClearsSelection(t *testing.T) {
	provider := newInstrumentedProvider()
	s := newTestSession(t, provider, &fakeCheckout{})
	advanceToSeats(t, s)

	if err := s.ToggleSeat(seatA1n1); err != nil {
		t.Fatal(err)
	}
	if err := s.Back(context.Background()); err != nil {
		t.Fatalf("Back: %v", err)
	}
	if s.Snapshot().Stage != StageSection {
		t.Fatal("expected to land on the section stage")
	}

	// Re-entering the same section starts from an empty selection.
	if err := s.SelectSection(context.Background(), sectionA1ID); err != nil {
		t.Fatalf("re-entering section: %v", err)
	}
	if n := len(s.Snapshot().SelectedSeats); n != 0 {
		t.Errorf("expected empty selection after back-navigation, got %d seats", n)
	}
}

func TestBackFromFirstStage(t *testing.T) {
	provider := newInstrumentedProvider()
	s := newTestSession(t, provider, &fakeCheckout{})

	if err := s.Back(context.Background()); !errors.Is(err, ErrInvalidStage) {
		t.Errorf("expected ErrInvalidStage at the zone stage, got %v", err)
	}
}

func TestTotalTracksZonePriceRefresh(t *testing.T) {
	provider := newInstrumentedProvider()
	s := newTestSession(t, provider, &fakeCheckout{})
	advanceToSeats(t, s)

	if err := s.ToggleSeat(seatA1n1); err != nil {
		t.Fatal(err)
	}
	if got := s.ComputeTotal(); got != 3000 {
		t.Fatalf("expected 3000 before refresh, got %d", got)
	}

	provider.inner.SetZonePrice(zoneAID, 3500)
	if err := s.RefreshZones(context.Background()); err != nil {
		t.Fatalf("RefreshZones: %v", err)
	}
	if got := s.ComputeTotal(); got != 3500 {
		t.Errorf("total must follow the refreshed zone price, got %d", got)
	}
}

func TestSubmitHandsOffSelection(t *testing.T) {
	provider := newInstrumentedProvider()
	checkout := &fakeCheckout{bookingID: uuid.New()}
	s := newTestSession(t, provider, checkout)
	advanceToSeats(t, s)

	if err := s.ToggleSeat(seatA1n1); err != nil {
		t.Fatal(err)
	}
	if err := s.ToggleSeat(seatA1n2); err != nil {
		t.Fatal(err)
	}

	bookingID, total, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if bookingID != checkout.bookingID {
		t.Error("booking ID not propagated from checkout")
	}
	if total != 6000 {
		t.Errorf("expected total 6000 for two zone A seats, got %d", total)
	}
	if len(checkout.seatIDs) != 2 || checkout.seatIDs[0] != seatA1n1 || checkout.seatIDs[1] != seatA1n2 {
		t.Errorf("checkout received wrong seats: %v", checkout.seatIDs)
	}
	if checkout.total != total {
		t.Error("checkout total mismatch")
	}

	view := s.Snapshot()
	if view.BookingID == nil || *view.BookingID != bookingID {
		t.Error("booking ID not recorded on the cart")
	}
}

func TestSubmitSeatConflictRecovery(t *testing.T) {
	provider := newInstrumentedProvider()
	checkout := &fakeCheckout{err: &conflictErr{ids: []uuid.UUID{seatA1n1}}}
	s := newTestSession(t, provider, checkout)
	advanceToSeats(t, s)

	if err := s.ToggleSeat(seatA1n1); err != nil {
		t.Fatal(err)
	}
	if err := s.ToggleSeat(seatA1n2); err != nil {
		t.Fatal(err)
	}

	// The seat raced to booked on the backend.
	provider.inner.SetSeatStatus(seatA1n1, catalog.SeatBooked)

	_, _, err := s.Submit(context.Background())
	var conflict SeatConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected a seat conflict error, got %v", err)
	}

	view := s.Snapshot()
	if view.Stage != StageSeats {
		t.Error("conflict recovery must land on the seat stage")
	}
	if len(view.SelectedSeats) != 1 || view.SelectedSeats[0].SeatID != seatA1n2 {
		t.Errorf("conflicting seat must be dropped from the cart, kept %v", view.SelectedSeats)
	}
	for _, seat := range view.Seats {
		if seat.ID == seatA1n1 && seat.IsAvailable() {
			t.Error("refreshed seat list must show the raced seat as booked")
		}
	}
	if checkout.calls != 1 {
		t.Errorf("expected exactly one checkout attempt, got %d", checkout.calls)
	}
}

func TestInvalidSelectionsFailLoudly(t *testing.T) {
	provider := newInstrumentedProvider()
	s := newTestSession(t, provider, &fakeCheckout{})

	if err := s.SelectZone(context.Background(), uuid.New()); !errors.Is(err, ErrInvalidZone) {
		t.Errorf("expected ErrInvalidZone, got %v", err)
	}
	if err := s.SelectSection(context.Background(), sectionA1ID); !errors.Is(err, ErrInvalidStage) {
		t.Errorf("expected ErrInvalidStage before a zone is chosen, got %v", err)
	}

	advanceToSeats(t, s)
	if err := s.SelectSection(context.Background(), sectionB1ID); !errors.Is(err, ErrInvalidSection) {
		t.Errorf("expected ErrInvalidSection for a section of another zone, got %v", err)
	}
	if err := s.ToggleSeat(uuid.New()); !errors.Is(err, ErrInvalidSeat) {
		t.Errorf("expected ErrInvalidSeat, got %v", err)
	}
}

func TestNoDuplicateSeatIDsInCart(t *testing.T) {
	provider := newInstrumentedProvider()
	s := newTestSession(t, provider, &fakeCheckout{})
	advanceToSeats(t, s)

	for i := 0; i < 3; i++ {
		_ = s.ToggleSeat(seatA1n1)
	}
	seen := make(map[uuid.UUID]bool)
	for _, seat := range s.Snapshot().SelectedSeats {
		if seen[seat.SeatID] {
			t.Fatalf("duplicate seat %s in cart", seat.SeatID)
		}
		seen[seat.SeatID] = true
	}
}

func TestFetcherCollapsesConcurrentLookups(t *testing.T) {
	provider := newInstrumentedProvider()
	gate := provider.gateSeats(sectionA1ID)
	fetcher := NewFetcher(provider)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sid := sectionA1ID
			if _, err := fetcher.Seats(context.Background(), testConcertID, zoneAID, &sid); err != nil {
				t.Errorf("Seats: %v", err)
			}
		}()
	}
	provider.waitForSeatFetch(t, sectionA1ID)
	close(gate)
	wg.Wait()

	provider.mu.Lock()
	calls := provider.seatCalls
	provider.mu.Unlock()
	if calls != 1 {
		t.Errorf("expected concurrent identical lookups to collapse into 1 call, got %d", calls)
	}
}

func TestManagerSessionLifecycle(t *testing.T) {
	provider := newInstrumentedProvider()
	m := NewManager(provider, &fakeCheckout{}, config.SelectionConfig{
		SessionTTL:    time.Hour,
		SweepInterval: time.Hour,
	})
	defer m.Close()

	userID := uuid.New()
	if _, err := m.Get(userID); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}

	session, err := m.Start(context.Background(), userID, testConcertID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	got, err := m.Get(userID)
	if err != nil || got != session {
		t.Fatal("Get must return the started session")
	}

	// Starting again replaces the old session.
	replacement, err := m.Start(context.Background(), userID, testConcertID)
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	got, _ = m.Get(userID)
	if got != replacement {
		t.Error("restart must replace the session")
	}

	m.End(userID)
	if _, err := m.Get(userID); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession after End, got %v", err)
	}
}

func TestManagerStartUnknownConcert(t *testing.T) {
	provider := newInstrumentedProvider()
	m := NewManager(provider, &fakeCheckout{}, config.SelectionConfig{
		SessionTTL:    time.Hour,
		SweepInterval: time.Hour,
	})
	defer m.Close()

	if _, err := m.Start(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, catalog.ErrConcertNotFound) {
		t.Errorf("expected ErrConcertNotFound, got %v", err)
	}
}

func TestManagerExpiresIdleSessions(t *testing.T) {
	provider := newInstrumentedProvider()
	m := NewManager(provider, &fakeCheckout{}, config.SelectionConfig{
		SessionTTL:    time.Nanosecond,
		SweepInterval: time.Hour,
	})
	defer m.Close()

	userID := uuid.New()
	if _, err := m.Start(context.Background(), userID, testConcertID); err != nil {
		t.Fatalf("Start: %v", err)
	}

	time.Sleep(time.Millisecond)
	m.expireIdle()

	if _, err := m.Get(userID); !errors.Is(err, ErrNoSession) {
		t.Error("idle session should have been swept")
	}
}

func TestSkipSectionsFlow(t *testing.T) {
	provider := newInstrumentedProvider()
	s := newSession(uuid.New(), testConcertID, NewFetcher(provider), &fakeCheckout{}, true)
	if err := s.start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := s.SelectZone(context.Background(), zoneAID); err != nil {
		t.Fatalf("SelectZone: %v", err)
	}
	view := s.Snapshot()
	if view.Stage != StageSeats {
		t.Fatalf("expected to land on the seat stage, got %s", view.Stage)
	}
	if len(view.Seats) != 60 {
		t.Errorf("expected all 60 zone A seats, got %d", len(view.Seats))
	}

	if err := s.Back(context.Background()); err != nil {
		t.Fatalf("Back: %v", err)
	}
	if s.Snapshot().Stage != StageZone {
		t.Error("back from seats must return to the zone stage when sections are skipped")
	}
}
