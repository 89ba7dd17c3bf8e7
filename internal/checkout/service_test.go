package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeRepo struct {
	bookings    map[uuid.UUID]*Booking
	payments    map[uuid.UUID]*Payment
	unavailable []uuid.UUID
	released    []uuid.UUID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		bookings: make(map[uuid.UUID]*Booking),
		payments: make(map[uuid.UUID]*Payment),
	}
}

func (r *fakeRepo) CreateBookingWithSeatHold(ctx context.Context, booking *Booking, payment *Payment, seatIDs []uuid.UUID) error {
	if len(r.unavailable) > 0 {
		return &SeatsUnavailableError{SeatIDs: r.unavailable}
	}
	payment.BookingID = booking.ID
	r.bookings[booking.ID] = booking
	r.payments[booking.ID] = payment
	return nil
}

func (r *fakeRepo) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return booking, nil
}

func (r *fakeRepo) GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, int64, error) {
	var out []Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status BookingStatus, at time.Time) error {
	booking, ok := r.bookings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	booking.Status = status
	switch status {
	case BookingConfirmed:
		booking.ConfirmedAt = &at
	case BookingCancelled:
		booking.CancelledAt = &at
	}
	return nil
}

func (r *fakeRepo) GetPaymentByBookingID(ctx context.Context, bookingID uuid.UUID) (*Payment, error) {
	payment, ok := r.payments[bookingID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return payment, nil
}

func (r *fakeRepo) UpdatePayment(ctx context.Context, payment *Payment) error {
	r.payments[payment.BookingID] = payment
	return nil
}

func (r *fakeRepo) ReleaseSeats(ctx context.Context, bookingID uuid.UUID) error {
	r.released = append(r.released, bookingID)
	return nil
}

type fakeIssuer struct {
	calls   int
	seatIDs []uuid.UUID
	err     error
}

func (f *fakeIssuer) IssueForBooking(ctx context.Context, bookingID, userID, concertID uuid.UUID, seatIDs []uuid.UUID) error {
	f.calls++
	f.seatIDs = seatIDs
	return f.err
}

type fakePublisher struct {
	events []string
}

func (f *fakePublisher) PublishBookingEvent(ctx context.Context, eventType string, booking *Booking) error {
	f.events = append(f.events, eventType)
	return nil
}

func TestConfirmSelectionCreatesPendingBooking(t *testing.T) {
	repo := newFakeRepo()
	publisher := &fakePublisher{}
	svc := NewService(repo)
	svc.SetEventPublisher(publisher)

	userID := uuid.New()
	seatIDs := []uuid.UUID{uuid.New(), uuid.New()}

	bookingID, err := svc.ConfirmSelection(context.Background(), userID, uuid.New(), uuid.New(), seatIDs, 6000)
	if err != nil {
		t.Fatalf("ConfirmSelection: %v", err)
	}

	booking := repo.bookings[bookingID]
	if booking == nil {
		t.Fatal("booking not persisted")
	}
	if booking.Status != BookingPending {
		t.Errorf("expected PENDING, got %s", booking.Status)
	}
	if booking.TotalPrice != 6000 || booking.TotalSeats != 2 {
		t.Errorf("wrong totals: price=%d seats=%d", booking.TotalPrice, booking.TotalSeats)
	}
	if !strings.HasPrefix(booking.BookingRef, "CNC-") {
		t.Errorf("unexpected booking ref %q", booking.BookingRef)
	}
	for _, seat := range booking.Seats {
		if seat.UnitPrice != 3000 {
			t.Errorf("expected per-seat price 3000, got %d", seat.UnitPrice)
		}
	}

	payment := repo.payments[bookingID]
	if payment == nil || payment.Status != PaymentPending || payment.Amount != 6000 {
		t.Errorf("unexpected payment: %+v", payment)
	}

	if len(publisher.events) != 1 || publisher.events[0] != EventBookingCreated {
		t.Errorf("expected a %s event, got %v", EventBookingCreated, publisher.events)
	}
}

func TestConfirmSelectionSeatConflict(t *testing.T) {
	repo := newFakeRepo()
	raced := uuid.New()
	repo.unavailable = []uuid.UUID{raced}
	svc := NewService(repo)

	_, err := svc.ConfirmSelection(context.Background(), uuid.New(), uuid.New(), uuid.New(), []uuid.UUID{raced, uuid.New()}, 6000)

	var conflict *SeatsUnavailableError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected SeatsUnavailableError, got %v", err)
	}
	if len(conflict.ConflictingSeatIDs()) != 1 || conflict.ConflictingSeatIDs()[0] != raced {
		t.Errorf("wrong conflicting seats: %v", conflict.ConflictingSeatIDs())
	}
	if len(repo.bookings) != 0 {
		t.Error("no booking may exist after a conflict")
	}
}

func TestConfirmPaymentIssuesTickets(t *testing.T) {
	repo := newFakeRepo()
	issuer := &fakeIssuer{}
	publisher := &fakePublisher{}
	svc := NewService(repo)
	svc.SetTicketIssuer(issuer)
	svc.SetEventPublisher(publisher)

	userID := uuid.New()
	seatIDs := []uuid.UUID{uuid.New(), uuid.New()}
	bookingID, err := svc.ConfirmSelection(context.Background(), userID, uuid.New(), uuid.New(), seatIDs, 6000)
	if err != nil {
		t.Fatal(err)
	}

	booking, err := svc.ConfirmPayment(context.Background(), bookingID, userID, ProcessPaymentRequest{PaymentMethod: "promptpay"})
	if err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	if booking.Status != BookingConfirmed {
		t.Errorf("expected CONFIRMED, got %s", booking.Status)
	}

	payment := repo.payments[bookingID]
	if payment.Status != PaymentCompleted || payment.PaymentMethod != "promptpay" || payment.ProcessedAt == nil {
		t.Errorf("payment not completed: %+v", payment)
	}

	if issuer.calls != 1 || len(issuer.seatIDs) != 2 {
		t.Errorf("expected tickets for 2 seats, calls=%d seats=%v", issuer.calls, issuer.seatIDs)
	}

	want := []string{EventBookingCreated, EventBookingConfirmed}
	if fmt.Sprint(publisher.events) != fmt.Sprint(want) {
		t.Errorf("expected events %v, got %v", want, publisher.events)
	}
}

func TestConfirmPaymentGuards(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	userID := uuid.New()
	bookingID, err := svc.ConfirmSelection(context.Background(), userID, uuid.New(), uuid.New(), []uuid.UUID{uuid.New()}, 3000)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ConfirmPayment(context.Background(), bookingID, uuid.New(), ProcessPaymentRequest{PaymentMethod: "promptpay"}); !errors.Is(err, ErrNotBookingOwner) {
		t.Errorf("expected ErrNotBookingOwner, got %v", err)
	}
	if _, err := svc.ConfirmPayment(context.Background(), uuid.New(), userID, ProcessPaymentRequest{PaymentMethod: "promptpay"}); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("expected ErrBookingNotFound, got %v", err)
	}

	if _, err := svc.ConfirmPayment(context.Background(), bookingID, userID, ProcessPaymentRequest{PaymentMethod: "promptpay"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ConfirmPayment(context.Background(), bookingID, userID, ProcessPaymentRequest{PaymentMethod: "promptpay"}); !errors.Is(err, ErrBookingNotPending) {
		t.Errorf("expected ErrBookingNotPending on double payment, got %v", err)
	}
}

func TestTicketFailureDoesNotFailPayment(t *testing.T) {
	repo := newFakeRepo()
	issuer := &fakeIssuer{err: errors.New("printer on fire")}
	svc := NewService(repo)
	svc.SetTicketIssuer(issuer)

	userID := uuid.New()
	bookingID, err := svc.ConfirmSelection(context.Background(), userID, uuid.New(), uuid.New(), []uuid.UUID{uuid.New()}, 3000)
	if err != nil {
		t.Fatal(err)
	}

	booking, err := svc.ConfirmPayment(context.Background(), bookingID, userID, ProcessPaymentRequest{PaymentMethod: "credit_card"})
	if err != nil {
		t.Fatalf("payment must survive a ticket issuing failure, got %v", err)
	}
	if booking.Status != BookingConfirmed {
		t.Errorf("expected CONFIRMED, got %s", booking.Status)
	}
}

func TestCancelBookingReleasesSeats(t *testing.T) {
	repo := newFakeRepo()
	publisher := &fakePublisher{}
	svc := NewService(repo)
	svc.SetEventPublisher(publisher)

	userID := uuid.New()
	bookingID, err := svc.ConfirmSelection(context.Background(), userID, uuid.New(), uuid.New(), []uuid.UUID{uuid.New()}, 3000)
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.CancelBooking(context.Background(), bookingID, userID); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}

	if repo.bookings[bookingID].Status != BookingCancelled {
		t.Error("booking not cancelled")
	}
	if len(repo.released) != 1 || repo.released[0] != bookingID {
		t.Error("seats not released")
	}
	payment := repo.payments[bookingID]
	if payment.Status != PaymentFailed || payment.FailureReason != "booking cancelled" {
		t.Errorf("pending payment should fail on cancel: %+v", payment)
	}

	if err := svc.CancelBooking(context.Background(), bookingID, userID); !errors.Is(err, ErrAlreadyCancelled) {
		t.Errorf("expected ErrAlreadyCancelled, got %v", err)
	}
}

func TestCancelConfirmedBookingRefunds(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	userID := uuid.New()
	bookingID, err := svc.ConfirmSelection(context.Background(), userID, uuid.New(), uuid.New(), []uuid.UUID{uuid.New()}, 3000)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ConfirmPayment(context.Background(), bookingID, userID, ProcessPaymentRequest{PaymentMethod: "promptpay"}); err != nil {
		t.Fatal(err)
	}

	if err := svc.CancelBooking(context.Background(), bookingID, userID); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if repo.payments[bookingID].Status != PaymentRefunded {
		t.Errorf("completed payment must be refunded, got %s", repo.payments[bookingID].Status)
	}
}
