package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BookingEvent is the wire format published to the booking events topic
// whenever a booking is created, confirmed or cancelled.
type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  uuid.UUID `json:"booking_id"`
	UserID     uuid.UUID `json:"user_id"`
	ConcertID  uuid.UUID `json:"concert_id"`
	BookingRef string    `json:"booking_ref"`
	TotalSeats int       `json:"total_seats"`
	TotalPrice int64     `json:"total_price"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey routes all events of one user to the same partition so
// per-user ordering is preserved.
func (e *BookingEvent) PartitionKey() string {
	return e.UserID.String()
}

func BookingEventFromJSON(data []byte) (*BookingEvent, error) {
	var event BookingEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
