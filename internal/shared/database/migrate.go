package database

import (
	"concertly/internal/catalog"
	"concertly/internal/checkout"
	"concertly/internal/concerts"
	"concertly/internal/tickets"
	"concertly/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&concerts.Band{},
		&concerts.Concert{},
		&concerts.Schedule{},
		&catalog.Zone{},
		&catalog.Section{},
		&catalog.Seat{},
		&checkout.Booking{},
		&checkout.BookingSeat{},
		&checkout.Payment{},
		&tickets.Ticket{},
	)
}
