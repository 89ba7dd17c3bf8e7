package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	ConcertExists(ctx context.Context, concertID uuid.UUID) (bool, error)
	GetZonesByConcertID(ctx context.Context, concertID uuid.UUID) ([]Zone, error)
	GetZoneByID(ctx context.Context, zoneID uuid.UUID) (*Zone, error)
	GetSectionsByZoneID(ctx context.Context, zoneID uuid.UUID) ([]Section, error)
	GetSectionByID(ctx context.Context, sectionID uuid.UUID) (*Section, error)
	GetSeats(ctx context.Context, concertID, zoneID uuid.UUID, sectionID *uuid.UUID) ([]Seat, error)
	GetSeatByID(ctx context.Context, seatID uuid.UUID) (*Seat, error)
	UpdateSeatStatus(ctx context.Context, seatID uuid.UUID, status SeatStatus) error
	UpdateZonePrice(ctx context.Context, zoneID uuid.UUID, unitPrice int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ConcertExists(ctx context.Context, concertID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("concerts").Where("id = ?", concertID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) GetZonesByConcertID(ctx context.Context, concertID uuid.UUID) ([]Zone, error) {
	var zones []Zone
	err := r.db.WithContext(ctx).
		Where("concert_id = ?", concertID).
		Order("unit_price DESC").
		Find(&zones).Error
	if err != nil {
		return nil, err
	}
	return zones, nil
}

func (r *repository) GetZoneByID(ctx context.Context, zoneID uuid.UUID) (*Zone, error) {
	var zone Zone
	if err := r.db.WithContext(ctx).Where("id = ?", zoneID).First(&zone).Error; err != nil {
		return nil, err
	}
	return &zone, nil
}

func (r *repository) GetSectionsByZoneID(ctx context.Context, zoneID uuid.UUID) ([]Section, error) {
	var sections []Section
	err := r.db.WithContext(ctx).
		Where("zone_id = ?", zoneID).
		Order("label ASC").
		Find(&sections).Error
	if err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *repository) GetSectionByID(ctx context.Context, sectionID uuid.UUID) (*Section, error) {
	var section Section
	if err := r.db.WithContext(ctx).Where("id = ?", sectionID).First(&section).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *repository) GetSeats(ctx context.Context, concertID, zoneID uuid.UUID, sectionID *uuid.UUID) ([]Seat, error) {
	query := r.db.WithContext(ctx).
		Where("concert_id = ? AND zone_id = ?", concertID, zoneID)
	if sectionID != nil {
		query = query.Where("section_id = ?", *sectionID)
	}

	var seats []Seat
	if err := query.Order("row ASC, number ASC").Find(&seats).Error; err != nil {
		return nil, err
	}
	return seats, nil
}

func (r *repository) GetSeatByID(ctx context.Context, seatID uuid.UUID) (*Seat, error) {
	var seat Seat
	if err := r.db.WithContext(ctx).Where("id = ?", seatID).First(&seat).Error; err != nil {
		return nil, err
	}
	return &seat, nil
}

func (r *repository) UpdateSeatStatus(ctx context.Context, seatID uuid.UUID, status SeatStatus) error {
	return r.db.WithContext(ctx).Model(&Seat{}).
		Where("id = ?", seatID).
		Update("status", status).Error
}

func (r *repository) UpdateZonePrice(ctx context.Context, zoneID uuid.UUID, unitPrice int64) error {
	return r.db.WithContext(ctx).Model(&Zone{}).
		Where("id = ?", zoneID).
		Update("unit_price", unitPrice).Error
}
