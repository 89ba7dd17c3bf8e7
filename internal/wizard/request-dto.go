package wizard

type StartSelectionRequest struct {
	ConcertID string `json:"concert_id" binding:"required,uuid"`
}

type SelectZoneRequest struct {
	ZoneID string `json:"zone_id" binding:"required,uuid"`
}

type SelectSectionRequest struct {
	SectionID string `json:"section_id" binding:"required,uuid"`
}

type ToggleSeatRequest struct {
	SeatID string `json:"seat_id" binding:"required,uuid"`
}
