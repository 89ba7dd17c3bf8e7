package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the contract for booking persistence
type Repository interface {
	CreateBookingWithSeatHold(ctx context.Context, booking *Booking, payment *Payment, seatIDs []uuid.UUID) error
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, int64, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status BookingStatus, at time.Time) error
	GetPaymentByBookingID(ctx context.Context, bookingID uuid.UUID) (*Payment, error)
	UpdatePayment(ctx context.Context, payment *Payment) error
	ReleaseSeats(ctx context.Context, bookingID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateBookingWithSeatHold atomically re-checks seat availability, flips
// the seats to booked, and persists the booking with its seat rows and
// pending payment. If any requested seat is no longer available the whole
// transaction rolls back and the conflicting IDs are reported.
func (r *repository) CreateBookingWithSeatHold(ctx context.Context, booking *Booking, payment *Payment, seatIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Table("seats").
			Where("id IN ? AND status = ?", seatIDs, "AVAILABLE").
			Update("status", "BOOKED")
		if res.Error != nil {
			return fmt.Errorf("failed to hold seats: %w", res.Error)
		}
		if res.RowsAffected != int64(len(seatIDs)) {
			var unavailable []uuid.UUID
			if err := tx.Table("seats").
				Where("id IN ? AND status <> ?", seatIDs, "AVAILABLE").
				Pluck("id", &unavailable).Error; err != nil {
				return fmt.Errorf("failed to identify unavailable seats: %w", err)
			}
			return &SeatsUnavailableError{SeatIDs: unavailable}
		}

		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		payment.BookingID = booking.ID
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}
		return nil
	})
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Seats").
		Preload("Payments").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, int64, error) {
	var bookings []Booking
	var total int64

	query := r.db.WithContext(ctx).Model(&Booking{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.
		Preload("Seats").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *repository) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status BookingStatus, at time.Time) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": at,
	}
	switch status {
	case BookingConfirmed:
		updates["confirmed_at"] = at
	case BookingCancelled:
		updates["cancelled_at"] = at
	}
	return r.db.WithContext(ctx).Model(&Booking{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) GetPaymentByBookingID(ctx context.Context, bookingID uuid.UUID) (*Payment, error) {
	var payment Payment
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at DESC").
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *repository) UpdatePayment(ctx context.Context, payment *Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

// ReleaseSeats puts a cancelled booking's seats back on the market.
func (r *repository) ReleaseSeats(ctx context.Context, bookingID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE seats SET status = 'AVAILABLE', updated_at = NOW()
		 WHERE id IN (SELECT seat_id FROM booking_seats WHERE booking_id = ?)`,
		bookingID,
	).Error
}
