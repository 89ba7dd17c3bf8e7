package concerts

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// JSONList represents a JSON array type that can be stored in the database
type JSONList []interface{}

// Value implements the driver.Valuer interface for database storage
func (j JSONList) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements the sql.Scanner interface for database retrieval
func (j *JSONList) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, j)
}

// GormDataType tells GORM how to handle this type
func (JSONList) GormDataType() string {
	return "jsonb"
}

// Band defines the structure for performing bands
type Band struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Genres    JSONList  `gorm:"type:jsonb" json:"genres"`  // e.g. ["Rock", "Pop"]
	Members   JSONList  `gorm:"type:jsonb" json:"members"` // e.g. [{"name": "John", "role": "Vocal"}]
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Concert defines the structure for concerts (the bookable shows)
type Concert struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BandID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"band_id"`
	Name        string     `gorm:"not null" json:"name"`
	Gate        string     `gorm:"not null" json:"gate"`
	Venue       string     `json:"venue"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Band        *Band      `json:"band,omitempty" gorm:"foreignKey:BandID"`
	Schedules   []Schedule `json:"schedules,omitempty" gorm:"foreignKey:ConcertID"`
}

// Schedule defines a show date/time for a concert
type Schedule struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ConcertID uuid.UUID `gorm:"type:uuid;index;not null" json:"concert_id"`
	ShowDate  time.Time `gorm:"not null" json:"show_date"`
	StartTime string    `gorm:"not null" json:"start_time"` // "19:00"
	EndTime   string    `gorm:"not null" json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Band) TableName() string     { return "bands" }
func (Concert) TableName() string  { return "concerts" }
func (Schedule) TableName() string { return "schedules" }
