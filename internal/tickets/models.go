package tickets

import (
	"time"

	"github.com/google/uuid"
)

// Ticket is one admission credential, issued per seat once the owning
// booking's payment completes.
type Ticket struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"booking_id"`
	UserID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	ConcertID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"concert_id"`
	SeatID     uuid.UUID  `gorm:"type:uuid;not null" json:"seat_id"`
	TicketCode string     `gorm:"unique;not null" json:"ticket_code"`
	QRPayload  string     `gorm:"not null" json:"qr_payload"`
	IssuedAt   time.Time  `json:"issued_at"`
	UsedAt     *time.Time `json:"used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (Ticket) TableName() string { return "tickets" }

func (t *Ticket) IsUsed() bool {
	return t.UsedAt != nil
}
