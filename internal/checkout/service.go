package checkout

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"concertly/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TicketIssuer interface for ticket generation (to avoid circular dependency)
type TicketIssuer interface {
	IssueForBooking(ctx context.Context, bookingID, userID, concertID uuid.UUID, seatIDs []uuid.UUID) error
}

// EventPublisher interface for booking lifecycle events (to avoid circular dependency)
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, eventType string, booking *Booking) error
}

// Booking lifecycle event types
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
)

// Service interface defines the contract for checkout business logic
type Service interface {
	ConfirmSelection(ctx context.Context, userID, concertID, zoneID uuid.UUID, seatIDs []uuid.UUID, total int64) (uuid.UUID, error)
	ConfirmPayment(ctx context.Context, bookingID, userID uuid.UUID, req ProcessPaymentRequest) (*Booking, error)
	CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) error
	GetBooking(ctx context.Context, bookingID, userID uuid.UUID) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, int64, error)
}

type service struct {
	repo      Repository
	tickets   TicketIssuer
	publisher EventPublisher
	logger    *logger.Logger
}

func NewService(repo Repository) *service {
	return &service{
		repo:   repo,
		logger: logger.GetDefault(),
	}
}

// SetTicketIssuer wires ticket generation into payment confirmation.
func (s *service) SetTicketIssuer(issuer TicketIssuer) {
	s.tickets = issuer
}

// SetEventPublisher wires booking lifecycle events to the message broker.
func (s *service) SetEventPublisher(publisher EventPublisher) {
	s.publisher = publisher
}

// ConfirmSelection turns a finalized seat selection into a pending
// booking. Seat availability is re-checked transactionally; the returned
// error is a *SeatsUnavailableError when any seat raced to booked.
func (s *service) ConfirmSelection(ctx context.Context, userID, concertID, zoneID uuid.UUID, seatIDs []uuid.UUID, total int64) (uuid.UUID, error) {
	if len(seatIDs) == 0 {
		return uuid.Nil, fmt.Errorf("no seats to book")
	}

	ref, err := s.generateBookingReference()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to generate booking reference: %w", err)
	}

	unitPrice := total / int64(len(seatIDs))
	booking := &Booking{
		ID:         uuid.New(),
		UserID:     userID,
		ConcertID:  concertID,
		ZoneID:     zoneID,
		TotalSeats: len(seatIDs),
		TotalPrice: total,
		Status:     BookingPending,
		BookingRef: ref,
	}
	for _, seatID := range seatIDs {
		booking.Seats = append(booking.Seats, BookingSeat{
			ID:        uuid.New(),
			BookingID: booking.ID,
			SeatID:    seatID,
			UnitPrice: unitPrice,
		})
	}
	payment := &Payment{
		ID:            uuid.New(),
		Amount:        total,
		Currency:      "THB",
		Status:        PaymentPending,
		TransactionID: s.generateTransactionID(),
	}

	if err := s.repo.CreateBookingWithSeatHold(ctx, booking, payment, seatIDs); err != nil {
		return uuid.Nil, err
	}

	s.logger.LogBookingCreated(ctx, booking.ID.String(), concertID.String(), userID.String())
	s.publish(ctx, EventBookingCreated, booking)
	return booking.ID, nil
}

// ConfirmPayment completes the pending payment, confirms the booking and
// issues tickets for each held seat.
func (s *service) ConfirmPayment(ctx context.Context, bookingID, userID uuid.UUID, req ProcessPaymentRequest) (*Booking, error) {
	booking, err := s.getOwnedBooking(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	if booking.Status != BookingPending {
		return nil, ErrBookingNotPending
	}

	payment, err := s.repo.GetPaymentByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	now := time.Now()
	payment.Status = PaymentCompleted
	payment.PaymentMethod = req.PaymentMethod
	payment.ProcessedAt = &now
	if err := s.repo.UpdatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}
	if err := s.repo.UpdateBookingStatus(ctx, bookingID, BookingConfirmed, now); err != nil {
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}

	if s.tickets != nil {
		seatIDs := make([]uuid.UUID, len(booking.Seats))
		for i, seat := range booking.Seats {
			seatIDs[i] = seat.SeatID
		}
		if err := s.tickets.IssueForBooking(ctx, bookingID, userID, booking.ConcertID, seatIDs); err != nil {
			s.logger.WithError(err).Warn("⚠️ Ticket issuing failed, booking remains confirmed", "booking_id", bookingID)
		}
	}

	confirmed, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}
	s.publish(ctx, EventBookingConfirmed, confirmed)
	return confirmed, nil
}

// CancelBooking releases the held seats and settles the payment record.
func (s *service) CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) error {
	booking, err := s.getOwnedBooking(ctx, bookingID, userID)
	if err != nil {
		return err
	}
	if booking.Status == BookingCancelled {
		return ErrAlreadyCancelled
	}

	now := time.Now()
	if err := s.repo.UpdateBookingStatus(ctx, bookingID, BookingCancelled, now); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	if err := s.repo.ReleaseSeats(ctx, bookingID); err != nil {
		return fmt.Errorf("failed to release seats: %w", err)
	}

	payment, err := s.repo.GetPaymentByBookingID(ctx, bookingID)
	if err == nil {
		if payment.Status == PaymentCompleted {
			payment.Status = PaymentRefunded
		} else {
			payment.Status = PaymentFailed
			payment.FailureReason = "booking cancelled"
		}
		if err := s.repo.UpdatePayment(ctx, payment); err != nil {
			return fmt.Errorf("failed to settle payment: %w", err)
		}
	}

	s.logger.LogBookingCancelled(ctx, bookingID.String(), userID.String())
	booking.Status = BookingCancelled
	booking.CancelledAt = &now
	s.publish(ctx, EventBookingCancelled, booking)
	return nil
}

func (s *service) GetBooking(ctx context.Context, bookingID, userID uuid.UUID) (*Booking, error) {
	return s.getOwnedBooking(ctx, bookingID, userID)
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.GetUserBookings(ctx, userID, limit, offset)
}

func (s *service) getOwnedBooking(ctx context.Context, bookingID, userID uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking.UserID != userID {
		return nil, ErrNotBookingOwner
	}
	return booking, nil
}

// publish sends a lifecycle event; delivery is best-effort and never
// fails the request.
func (s *service) publish(ctx context.Context, eventType string, booking *Booking) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishBookingEvent(ctx, eventType, booking); err != nil {
		s.logger.WithError(err).Warn("⚠️ Failed to publish booking event", "type", eventType, "booking_id", booking.ID)
	}
}

// generateBookingReference creates a reference like CNC-20250901-XKCDQA
func (s *service) generateBookingReference() (string, error) {
	timestamp := time.Now().Format("20060102")

	letters := "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	randomPart := make([]byte, 6)
	for i := range randomPart {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		randomPart[i] = letters[num.Int64()]
	}
	return fmt.Sprintf("CNC-%s-%s", timestamp, string(randomPart)), nil
}

func (s *service) generateTransactionID() string {
	return fmt.Sprintf("TXN-%d-%s", time.Now().UnixNano(), uuid.New().String()[:8])
}
