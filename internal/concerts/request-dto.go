package concerts

import "time"

type CreateBandRequest struct {
	Name    string   `json:"name" binding:"required,min=1,max=200"`
	Genres  []string `json:"genres" binding:"required,min=1"`
	Members JSONList `json:"members"`
}

type CreateConcertRequest struct {
	BandID      string `json:"band_id" binding:"required,uuid"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Gate        string `json:"gate" binding:"required"`
	Venue       string `json:"venue"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url" binding:"omitempty,url"`
}

type CreateScheduleRequest struct {
	ConcertID string    `json:"concert_id" binding:"required,uuid"`
	ShowDate  time.Time `json:"show_date" binding:"required"`
	StartTime string    `json:"start_time" binding:"required"`
	EndTime   string    `json:"end_time" binding:"required"`
}
