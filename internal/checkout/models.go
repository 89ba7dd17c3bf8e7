package checkout

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus follows the booking through its lifecycle: created as
// PENDING with seats already held, then CONFIRMED once payment completes
// or CANCELLED if the user backs out.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// Booking is a finalized seat selection handed off from the wizard.
type Booking struct {
	ID          uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID     `gorm:"type:uuid;index;not null" json:"user_id"`
	ConcertID   uuid.UUID     `gorm:"type:uuid;index;not null" json:"concert_id"`
	ZoneID      uuid.UUID     `gorm:"type:uuid;not null" json:"zone_id"`
	TotalSeats  int           `gorm:"not null" json:"total_seats"`
	TotalPrice  int64         `gorm:"not null" json:"total_price"`
	Status      BookingStatus `gorm:"type:varchar(20);check:status IN ('PENDING', 'CONFIRMED', 'CANCELLED');default:'PENDING'" json:"status"`
	BookingRef  string        `gorm:"unique;not null" json:"booking_ref"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	ConfirmedAt *time.Time    `json:"confirmed_at,omitempty"`
	CancelledAt *time.Time    `json:"cancelled_at,omitempty"`

	// Relationships
	Seats    []BookingSeat `json:"seats,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
	Payments []Payment     `json:"payments,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:RESTRICT;"`
}

// BookingSeat is one held seat within a booking. The unit price is
// snapshotted here at submission time: the wizard derives totals from
// live zone prices, but once a booking exists its price is fixed.
type BookingSeat struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`
	SeatID    uuid.UUID `gorm:"type:uuid;index;not null" json:"seat_id"`
	UnitPrice int64     `gorm:"not null" json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Booking *Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
}

// Payment tracks the money side of a booking.
type Payment struct {
	ID            uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID     uuid.UUID     `gorm:"type:uuid;index;not null" json:"booking_id"`
	Amount        int64         `gorm:"not null" json:"amount"`
	Currency      string        `gorm:"type:varchar(3);default:'THB'" json:"currency"`
	Status        PaymentStatus `gorm:"type:varchar(20);check:status IN ('PENDING', 'COMPLETED', 'FAILED', 'REFUNDED');default:'PENDING'" json:"status"`
	PaymentMethod string        `gorm:"type:varchar(50)" json:"payment_method"`
	TransactionID string        `gorm:"unique" json:"transaction_id"`
	ProcessedAt   *time.Time    `json:"processed_at,omitempty"`
	FailureReason string        `json:"failure_reason,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// Relationships
	Booking *Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
}

func (Booking) TableName() string     { return "bookings" }
func (BookingSeat) TableName() string { return "booking_seats" }
func (Payment) TableName() string     { return "payments" }
