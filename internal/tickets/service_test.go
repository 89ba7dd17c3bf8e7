package tickets

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeRepo struct {
	tickets []Ticket
}

func (r *fakeRepo) CreateBatch(ctx context.Context, tickets []Ticket) error {
	r.tickets = append(r.tickets, tickets...)
	return nil
}

func (r *fakeRepo) GetByBookingID(ctx context.Context, bookingID uuid.UUID) ([]Ticket, error) {
	var out []Ticket
	for _, t := range r.tickets {
		if t.BookingID == bookingID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetByUserID(ctx context.Context, userID uuid.UUID) ([]Ticket, error) {
	var out []Ticket
	for _, t := range r.tickets {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetByCode(ctx context.Context, code string) (*Ticket, error) {
	for i := range r.tickets {
		if r.tickets[i].TicketCode == code {
			return &r.tickets[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) MarkUsed(ctx context.Context, id uuid.UUID) error {
	for i := range r.tickets {
		if r.tickets[i].ID == id {
			now := time.Now()
			r.tickets[i].UsedAt = &now
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func TestIssueForBooking(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	bookingID := uuid.New()
	userID := uuid.New()
	seatIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	if err := svc.IssueForBooking(context.Background(), bookingID, userID, uuid.New(), seatIDs); err != nil {
		t.Fatalf("IssueForBooking: %v", err)
	}
	if len(repo.tickets) != 3 {
		t.Fatalf("expected 3 tickets, got %d", len(repo.tickets))
	}

	codes := make(map[string]bool)
	for _, ticket := range repo.tickets {
		if !strings.HasPrefix(ticket.TicketCode, "TKT-") {
			t.Errorf("unexpected code %q", ticket.TicketCode)
		}
		if codes[ticket.TicketCode] {
			t.Errorf("duplicate ticket code %q", ticket.TicketCode)
		}
		codes[ticket.TicketCode] = true

		raw, err := base64.StdEncoding.DecodeString(ticket.QRPayload)
		if err != nil {
			t.Fatalf("QR payload is not base64: %v", err)
		}
		var payload map[string]string
		if err := json.Unmarshal(raw, &payload); err != nil {
			t.Fatalf("QR payload is not JSON: %v", err)
		}
		if payload["ticket_code"] != ticket.TicketCode || payload["booking_id"] != bookingID.String() {
			t.Errorf("QR payload mismatch: %v", payload)
		}
	}
}

func TestValidateTicket(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	bookingID := uuid.New()
	if err := svc.IssueForBooking(context.Background(), bookingID, uuid.New(), uuid.New(), []uuid.UUID{uuid.New()}); err != nil {
		t.Fatal(err)
	}
	code := repo.tickets[0].TicketCode

	ticket, err := svc.ValidateTicket(context.Background(), code)
	if err != nil {
		t.Fatalf("ValidateTicket: %v", err)
	}
	if !ticket.IsUsed() {
		t.Error("validated ticket must be marked used")
	}

	if _, err := svc.ValidateTicket(context.Background(), code); !errors.Is(err, ErrTicketUsed) {
		t.Errorf("expected ErrTicketUsed on second scan, got %v", err)
	}
	if _, err := svc.ValidateTicket(context.Background(), "TKT-UNKNOWN1"); !errors.Is(err, ErrTicketNotFound) {
		t.Errorf("expected ErrTicketNotFound, got %v", err)
	}
}

func TestGetBookingTicketsOwnership(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	bookingID := uuid.New()
	owner := uuid.New()
	if err := svc.IssueForBooking(context.Background(), bookingID, owner, uuid.New(), []uuid.UUID{uuid.New()}); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.GetBookingTickets(context.Background(), bookingID, uuid.New()); !errors.Is(err, ErrNotTicketOwner) {
		t.Errorf("expected ErrNotTicketOwner, got %v", err)
	}
	tickets, err := svc.GetBookingTickets(context.Background(), bookingID, owner)
	if err != nil || len(tickets) != 1 {
		t.Errorf("owner should get 1 ticket, got %d (%v)", len(tickets), err)
	}
}
