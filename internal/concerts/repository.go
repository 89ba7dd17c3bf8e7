package concerts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetAll(ctx context.Context, limit, offset int) ([]Concert, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Concert, error)
	Create(ctx context.Context, concert *Concert) error
	CreateBand(ctx context.Context, band *Band) error
	CreateSchedule(ctx context.Context, schedule *Schedule) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAll(ctx context.Context, limit, offset int) ([]Concert, int64, error) {
	var concerts []Concert
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Concert{})
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Band").Preload("Schedules").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&concerts).Error
	if err != nil {
		return nil, 0, err
	}

	return concerts, totalCount, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Concert, error) {
	var concert Concert
	err := r.db.WithContext(ctx).
		Preload("Band").Preload("Schedules").
		Where("id = ?", id).
		First(&concert).Error
	if err != nil {
		return nil, err
	}
	return &concert, nil
}

func (r *repository) Create(ctx context.Context, concert *Concert) error {
	return r.db.WithContext(ctx).Create(concert).Error
}

func (r *repository) CreateBand(ctx context.Context, band *Band) error {
	return r.db.WithContext(ctx).Create(band).Error
}

func (r *repository) CreateSchedule(ctx context.Context, schedule *Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("concert_id = ?", id).Delete(&Schedule{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&Concert{}).Error
	})
}
