package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SeatStatus is the availability state of a seat. It is authoritative from
// the catalog: clients never flip a booked seat back to selectable.
type SeatStatus string

const (
	SeatAvailable SeatStatus = "AVAILABLE"
	SeatBooked    SeatStatus = "BOOKED"
)

// Zone identifies a pricing/seating tier for a concert. The zone owns the
// per-seat price; seats deliberately carry no price column of their own.
type Zone struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ConcertID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_concert_zone" json:"concert_id"`
	Name      string    `gorm:"not null;uniqueIndex:idx_concert_zone" json:"name"`
	UnitPrice int64     `gorm:"not null;check:unit_price > 0" json:"unit_price"`
	Capacity  int       `gorm:"not null" json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Section is a sub-division of a zone (e.g. "A1", "A2", "A3")
type Section struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ZoneID    uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_zone_section" json:"zone_id"`
	Label     string    `gorm:"not null;uniqueIndex:idx_zone_section" json:"label"`
	Position  string    `gorm:"type:varchar(20)" json:"position"` // left, center, right
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Seat defines the structure for individual bookable seats
type Seat struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ConcertID uuid.UUID  `gorm:"type:uuid;index;not null" json:"concert_id"`
	ZoneID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"zone_id"`
	SectionID uuid.UUID  `gorm:"type:uuid;index" json:"section_id"`
	Row       string     `gorm:"not null" json:"row"`
	Number    int        `gorm:"not null" json:"number"`
	Status    SeatStatus `gorm:"type:varchar(20);check:status IN ('AVAILABLE', 'BOOKED');default:'AVAILABLE'" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Zone) TableName() string    { return "zones" }
func (Section) TableName() string { return "sections" }
func (Seat) TableName() string    { return "seats" }

func (s *Seat) IsAvailable() bool {
	return s.Status == SeatAvailable
}

// Label returns the display label, e.g. "C7"
func (s *Seat) Label() string {
	return fmt.Sprintf("%s%d", s.Row, s.Number)
}
