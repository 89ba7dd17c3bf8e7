package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestStaticProviderZones(t *testing.T) {
	concertID := StaticID("concert:test")
	p := NewStaticProvider(concertID)

	zones, err := p.ListZones(context.Background(), concertID)
	if err != nil {
		t.Fatalf("ListZones: %v", err)
	}
	if len(zones) != 3 {
		t.Fatalf("expected 3 zones, got %d", len(zones))
	}

	want := map[string]int64{"A": 3000, "B": 1500, "C": 1000}
	for _, z := range zones {
		if want[z.Name] != z.UnitPrice {
			t.Errorf("zone %s: expected price %d, got %d", z.Name, want[z.Name], z.UnitPrice)
		}
		if z.ConcertID != concertID {
			t.Errorf("zone %s: wrong concert ID", z.Name)
		}
	}
}

func TestStaticProviderUnknownConcert(t *testing.T) {
	p := NewStaticProvider(StaticID("concert:test"))

	if _, err := p.ListZones(context.Background(), uuid.New()); err != ErrConcertNotFound {
		t.Errorf("expected ErrConcertNotFound, got %v", err)
	}
}

func TestStaticProviderSections(t *testing.T) {
	concertID := StaticID("concert:test")
	p := NewStaticProvider(concertID)

	sections, err := p.ListSections(context.Background(), concertID, StaticID("zone:A"))
	if err != nil {
		t.Fatalf("ListSections: %v", err)
	}
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}
	labels := []string{"A1", "A2", "A3"}
	positions := []string{"left", "center", "right"}
	for i, sec := range sections {
		if sec.Label != labels[i] {
			t.Errorf("section %d: expected label %s, got %s", i, labels[i], sec.Label)
		}
		if sec.Position != positions[i] {
			t.Errorf("section %s: expected position %s, got %s", sec.Label, positions[i], sec.Position)
		}
	}

	if _, err := p.ListSections(context.Background(), concertID, uuid.New()); err != ErrZoneNotFound {
		t.Errorf("expected ErrZoneNotFound, got %v", err)
	}
}

func TestStaticProviderSeats(t *testing.T) {
	concertID := StaticID("concert:test")
	p := NewStaticProvider(concertID)

	sectionID := StaticID("section:A1")
	seats, err := p.ListSeats(context.Background(), concertID, StaticID("zone:A"), &sectionID)
	if err != nil {
		t.Fatalf("ListSeats: %v", err)
	}
	if len(seats) != 20 {
		t.Fatalf("expected 20 seats in A1, got %d", len(seats))
	}
	for _, s := range seats {
		if !s.IsAvailable() {
			t.Errorf("seat %s should start available", s.Label())
		}
		if s.SectionID != sectionID {
			t.Errorf("seat %s belongs to wrong section", s.Label())
		}
	}

	// No section filter returns the whole zone.
	all, err := p.ListSeats(context.Background(), concertID, StaticID("zone:A"), nil)
	if err != nil {
		t.Fatalf("ListSeats without filter: %v", err)
	}
	if len(all) != 60 {
		t.Fatalf("expected 60 seats in zone A, got %d", len(all))
	}

	unknown := uuid.New()
	if _, err := p.ListSeats(context.Background(), concertID, StaticID("zone:A"), &unknown); err != ErrSectionNotFound {
		t.Errorf("expected ErrSectionNotFound, got %v", err)
	}
}

func TestStaticProviderSetSeatStatus(t *testing.T) {
	concertID := StaticID("concert:test")
	p := NewStaticProvider(concertID)

	seatID := StaticID("seat:A1:A:1")
	if !p.SetSeatStatus(seatID, SeatBooked) {
		t.Fatal("SetSeatStatus should find the seat")
	}

	sectionID := StaticID("section:A1")
	seats, err := p.ListSeats(context.Background(), concertID, StaticID("zone:A"), &sectionID)
	if err != nil {
		t.Fatalf("ListSeats: %v", err)
	}
	booked := 0
	for _, s := range seats {
		if s.Status == SeatBooked {
			booked++
		}
	}
	if booked != 1 {
		t.Errorf("expected exactly 1 booked seat, got %d", booked)
	}

	if p.SetSeatStatus(uuid.New(), SeatBooked) {
		t.Error("SetSeatStatus should report unknown seats")
	}
}

func TestStaticProviderReturnsCopies(t *testing.T) {
	concertID := StaticID("concert:test")
	p := NewStaticProvider(concertID)

	zones, _ := p.ListZones(context.Background(), concertID)
	zones[0].UnitPrice = 99999

	again, _ := p.ListZones(context.Background(), concertID)
	if again[0].UnitPrice == 99999 {
		t.Error("mutating a returned slice must not affect the provider")
	}
}
