package cart

import (
	"testing"

	"github.com/google/uuid"
)

func seat(n string) SelectedSeat {
	return SelectedSeat{
		SeatID:    uuid.NewSHA1(uuid.NameSpaceOID, []byte("seat:"+n)),
		ZoneID:    uuid.NewSHA1(uuid.NameSpaceOID, []byte("zone:A")),
		SectionID: uuid.NewSHA1(uuid.NameSpaceOID, []byte("section:A1")),
		Label:     n,
	}
}

func TestAddSeatIdempotent(t *testing.T) {
	c := New()
	s := seat("A1")

	c.AddSeat(s)
	c.AddSeat(s)

	if c.Len() != 1 {
		t.Fatalf("expected 1 seat after double add, got %d", c.Len())
	}
}

func TestRemoveSeatIdempotent(t *testing.T) {
	c := New()
	s := seat("A1")
	c.AddSeat(s)

	c.RemoveSeat(s.SeatID)
	c.RemoveSeat(s.SeatID)

	if c.Len() != 0 {
		t.Fatalf("expected empty cart, got %d seats", c.Len())
	}
}

func TestSeatsInsertionOrder(t *testing.T) {
	c := New()
	names := []string{"A3", "A1", "A2"}
	for _, n := range names {
		c.AddSeat(seat(n))
	}

	got := c.Seats()
	if len(got) != 3 {
		t.Fatalf("expected 3 seats, got %d", len(got))
	}
	for i, n := range names {
		if got[i].Label != n {
			t.Errorf("position %d: expected %s, got %s", i, n, got[i].Label)
		}
	}
}

func TestRemoveMiddlePreservesOrder(t *testing.T) {
	c := New()
	a, b, d := seat("A1"), seat("A2"), seat("A3")
	c.AddSeat(a)
	c.AddSeat(b)
	c.AddSeat(d)

	c.RemoveSeat(b.SeatID)

	got := c.Seats()
	if len(got) != 2 || got[0].Label != "A1" || got[1].Label != "A3" {
		t.Fatalf("unexpected order after middle removal: %+v", got)
	}
}

func TestSetShowClearsOnChange(t *testing.T) {
	c := New()
	show1 := uuid.New()
	show2 := uuid.New()

	c.SetShow(show1)
	c.AddSeat(seat("A1"))
	c.SetBookingID(uuid.New())

	// Same show keeps the selection.
	c.SetShow(show1)
	if c.Len() != 1 {
		t.Fatal("re-setting the same show must not clear seats")
	}

	// Different show clears seats and the booking reference.
	c.SetShow(show2)
	if c.Len() != 0 {
		t.Error("switching shows must clear seats")
	}
	if c.BookingID() != nil {
		t.Error("switching shows must clear the booking ID")
	}
	if c.ShowID() != show2 {
		t.Error("show ID not updated")
	}
}

func TestSeatsReturnsCopy(t *testing.T) {
	c := New()
	c.AddSeat(seat("A1"))

	got := c.Seats()
	got[0].Label = "mutated"

	if c.Seats()[0].Label != "A1" {
		t.Error("mutating the returned slice must not affect the cart")
	}
}

func TestContains(t *testing.T) {
	c := New()
	s := seat("A1")
	c.AddSeat(s)

	if !c.Contains(s.SeatID) {
		t.Error("expected cart to contain added seat")
	}
	if c.Contains(uuid.New()) {
		t.Error("cart should not contain unknown seat")
	}
}
