package tickets

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	CreateBatch(ctx context.Context, tickets []Ticket) error
	GetByBookingID(ctx context.Context, bookingID uuid.UUID) ([]Ticket, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]Ticket, error)
	GetByCode(ctx context.Context, code string) (*Ticket, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBatch(ctx context.Context, tickets []Ticket) error {
	return r.db.WithContext(ctx).Create(&tickets).Error
}

func (r *repository) GetByBookingID(ctx context.Context, bookingID uuid.UUID) ([]Ticket, error) {
	var tickets []Ticket
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&tickets).Error
	return tickets, err
}

func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]Ticket, error) {
	var tickets []Ticket
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tickets).Error
	return tickets, err
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Ticket, error) {
	var ticket Ticket
	if err := r.db.WithContext(ctx).Where("ticket_code = ?", code).First(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) MarkUsed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&Ticket{}).
		Where("id = ?", id).
		Update("used_at", gorm.Expr("NOW()")).Error
}
