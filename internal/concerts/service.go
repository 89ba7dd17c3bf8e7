package concerts

import (
	"context"
	"errors"
	"fmt"

	"concertly/internal/shared/constants"
	"concertly/pkg/cache"
	"concertly/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrConcertNotFound = errors.New("concert not found")

type Service interface {
	ListConcerts(ctx context.Context, limit, offset int) ([]Concert, int64, error)
	GetConcert(ctx context.Context, id string) (*Concert, error)
	CreateConcert(ctx context.Context, req CreateConcertRequest) (*Concert, error)
	CreateBand(ctx context.Context, req CreateBandRequest) (*Band, error)
	CreateSchedule(ctx context.Context, req CreateScheduleRequest) (*Schedule, error)
	DeleteConcert(ctx context.Context, id string) error
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

// SetCacheService wires an optional Redis cache for concert listings
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) ListConcerts(ctx context.Context, limit, offset int) ([]Concert, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	// Cache only the default first page; deeper paging goes to the database
	if s.cacheService != nil && offset == 0 && limit == 20 {
		var cached struct {
			Concerts []Concert `json:"concerts"`
			Total    int64     `json:"total"`
		}
		if err := s.cacheService.Get(ctx, constants.CACHE_KEY_CONCERTS_LIST, &cached); err == nil {
			return cached.Concerts, cached.Total, nil
		}
	}

	concerts, total, err := s.repo.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list concerts: %w", err)
	}

	if s.cacheService != nil && offset == 0 && limit == 20 {
		payload := map[string]interface{}{"concerts": concerts, "total": total}
		if err := s.cacheService.Set(ctx, constants.CACHE_KEY_CONCERTS_LIST, payload, constants.TTL_CONCERT_LIST); err != nil {
			logger.GetDefault().Debug("failed to cache concert list", "error", err)
		}
	}

	return concerts, total, nil
}

func (s *service) GetConcert(ctx context.Context, id string) (*Concert, error) {
	concertID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid concert ID: %w", err)
	}

	cacheKey := constants.BuildConcertDetailKey(id)
	if s.cacheService != nil {
		var cached Concert
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	concert, err := s.repo.GetByID(ctx, concertID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConcertNotFound
		}
		return nil, fmt.Errorf("failed to get concert: %w", err)
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, concert, constants.TTL_CONCERT_DETAIL); err != nil {
			logger.GetDefault().Debug("failed to cache concert detail", "error", err)
		}
	}

	return concert, nil
}

func (s *service) CreateConcert(ctx context.Context, req CreateConcertRequest) (*Concert, error) {
	bandID, err := uuid.Parse(req.BandID)
	if err != nil {
		return nil, fmt.Errorf("invalid band ID: %w", err)
	}

	concert := &Concert{
		BandID:      bandID,
		Name:        req.Name,
		Gate:        req.Gate,
		Venue:       req.Venue,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := s.repo.Create(ctx, concert); err != nil {
		return nil, fmt.Errorf("failed to create concert: %w", err)
	}

	s.invalidateListings(ctx)
	return concert, nil
}

func (s *service) CreateBand(ctx context.Context, req CreateBandRequest) (*Band, error) {
	band := &Band{
		Name:    req.Name,
		Genres:  toJSONList(req.Genres),
		Members: req.Members,
	}
	if err := s.repo.CreateBand(ctx, band); err != nil {
		return nil, fmt.Errorf("failed to create band: %w", err)
	}
	return band, nil
}

func (s *service) CreateSchedule(ctx context.Context, req CreateScheduleRequest) (*Schedule, error) {
	concertID, err := uuid.Parse(req.ConcertID)
	if err != nil {
		return nil, fmt.Errorf("invalid concert ID: %w", err)
	}

	schedule := &Schedule{
		ConcertID: concertID,
		ShowDate:  req.ShowDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := s.repo.CreateSchedule(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}

	s.invalidateListings(ctx)
	return schedule, nil
}

func (s *service) DeleteConcert(ctx context.Context, id string) error {
	concertID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid concert ID: %w", err)
	}

	if err := s.repo.Delete(ctx, concertID); err != nil {
		return fmt.Errorf("failed to delete concert: %w", err)
	}

	s.invalidateListings(ctx)
	return nil
}

func (s *service) invalidateListings(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_CONCERTS); err != nil {
		logger.GetDefault().Debug("failed to invalidate concert cache", "error", err)
	}
}

func toJSONList(values []string) JSONList {
	list := make(JSONList, 0, len(values))
	for _, v := range values {
		list = append(list, v)
	}
	return list
}
