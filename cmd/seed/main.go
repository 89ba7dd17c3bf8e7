package main

import (
	"fmt"
	"log"
	"time"

	"concertly/internal/catalog"
	"concertly/internal/concerts"
	"concertly/internal/shared/config"
	"concertly/internal/shared/database"
	"concertly/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Concertly Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"tickets",
		"payments",
		"booking_seats",
		"bookings",
		"seats",
		"sections",
		"zones",
		"schedules",
		"concerts",
		"bands",
		"users",
	}

	pg := s.db.GetPostgreSQL()
	for _, table := range tables {
		if err := pg.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

func (s *Seeder) SeedAll() error {
	if err := s.seedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	concertID, err := s.seedConcert()
	if err != nil {
		return fmt.Errorf("failed to seed concert: %w", err)
	}
	if err := s.seedVenueLayout(concertID); err != nil {
		return fmt.Errorf("failed to seed venue layout: %w", err)
	}
	return nil
}

func (s *Seeder) seedUsers() error {
	hash := func(password string) string {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		return string(hashed)
	}

	seedUsers := []users.User{
		{
			ID:          uuid.New(),
			DisplayName: "Admin",
			Email:       "admin@concertly.local",
			Password:    hash("Admin@1234"),
			Role:        users.RoleAdmin,
		},
		{
			ID:          uuid.New(),
			DisplayName: "Somchai J.",
			Email:       "somchai@example.com",
			Password:    hash("User@1234"),
			Role:        users.RoleUser,
		},
	}
	if err := s.db.GetPostgreSQL().Create(&seedUsers).Error; err != nil {
		return err
	}
	fmt.Printf("   👤 Created %d users\n", len(seedUsers))
	return nil
}

func (s *Seeder) seedConcert() (uuid.UUID, error) {
	pg := s.db.GetPostgreSQL()

	band := concerts.Band{
		ID:     uuid.New(),
		Name:   "The Midnight Parade",
		Genres: concerts.JSONList{"Rock", "Indie"},
		Members: concerts.JSONList{
			map[string]interface{}{"name": "Arthit", "role": "Vocal"},
			map[string]interface{}{"name": "Beam", "role": "Guitar"},
			map[string]interface{}{"name": "Nok", "role": "Drums"},
		},
	}
	if err := pg.Create(&band).Error; err != nil {
		return uuid.Nil, err
	}

	concert := concerts.Concert{
		ID:          uuid.New(),
		BandID:      band.ID,
		Name:        "The Midnight Parade: City Lights Tour",
		Gate:        "Gate 3",
		Venue:       "Impact Arena, Bangkok",
		Description: "One night only. Full band, full production.",
		ImageURL:    "https://cdn.concertly.local/img/city-lights-tour.jpg",
	}
	if err := pg.Create(&concert).Error; err != nil {
		return uuid.Nil, err
	}

	showDate := time.Now().AddDate(0, 1, 0).Truncate(24 * time.Hour)
	schedules := []concerts.Schedule{
		{ID: uuid.New(), ConcertID: concert.ID, ShowDate: showDate, StartTime: "19:00", EndTime: "22:00"},
		{ID: uuid.New(), ConcertID: concert.ID, ShowDate: showDate.AddDate(0, 0, 1), StartTime: "18:00", EndTime: "21:00"},
	}
	if err := pg.Create(&schedules).Error; err != nil {
		return uuid.Nil, err
	}

	fmt.Printf("   🎸 Created band %q with concert %q (%d schedules)\n", band.Name, concert.Name, len(schedules))
	return concert.ID, nil
}

// seedVenueLayout creates the three-tier layout: zone A at 3000, B at
// 1500, C at 1000, each with three sections and rows of ten seats.
func (s *Seeder) seedVenueLayout(concertID uuid.UUID) error {
	pg := s.db.GetPostgreSQL()

	zoneLayouts := []struct {
		name      string
		unitPrice int64
		rows      []string
	}{
		{name: "A", unitPrice: 3000, rows: []string{"A", "B"}},
		{name: "B", unitPrice: 1500, rows: []string{"A", "B", "C"}},
		{name: "C", unitPrice: 1000, rows: []string{"A", "B", "C", "D"}},
	}
	positions := []string{"left", "center", "right"}
	const seatsPerRow = 10

	totalSeats := 0
	for _, zs := range zoneLayouts {
		capacity := len(zs.rows) * seatsPerRow * len(positions)
		zone := catalog.Zone{
			ID:        uuid.New(),
			ConcertID: concertID,
			Name:      zs.name,
			UnitPrice: zs.unitPrice,
			Capacity:  capacity,
		}
		if err := pg.Create(&zone).Error; err != nil {
			return err
		}

		for i, position := range positions {
			section := catalog.Section{
				ID:       uuid.New(),
				ZoneID:   zone.ID,
				Label:    fmt.Sprintf("%s%d", zs.name, i+1),
				Position: position,
			}
			if err := pg.Create(&section).Error; err != nil {
				return err
			}

			var seats []catalog.Seat
			for _, row := range zs.rows {
				for n := 1; n <= seatsPerRow; n++ {
					seats = append(seats, catalog.Seat{
						ID:        uuid.New(),
						ConcertID: concertID,
						ZoneID:    zone.ID,
						SectionID: section.ID,
						Row:       row,
						Number:    n,
						Status:    catalog.SeatAvailable,
					})
				}
			}
			if err := pg.Create(&seats).Error; err != nil {
				return err
			}
			totalSeats += len(seats)
		}
		fmt.Printf("   💺 Zone %s: %d seats at %d THB\n", zs.name, capacity, zs.unitPrice)
	}

	fmt.Printf("   ✅ Venue layout seeded (%d seats total)\n", totalSeats)
	return nil
}
