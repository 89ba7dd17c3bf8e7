package catalog

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

// Service is the database-backed catalog. It implements Provider for the
// selection wizard and adds the admin-facing mutations.
type Service interface {
	Provider

	GetSeat(ctx context.Context, seatID string) (*Seat, error)
	UpdateSeatStatus(ctx context.Context, seatID string, req UpdateSeatStatusRequest) (*Seat, error)
	UpdateZonePrice(ctx context.Context, zoneID string, req UpdateZonePriceRequest) (*Zone, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

// SetCacheService wires an optional Redis cache for zone listings. Seat
// availability is never cached: it must be ground truth at read time.
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) ListZones(ctx context.Context, concertID uuid.UUID) ([]Zone, error) {
	cacheKey := constants.BuildZoneListKey(concertID.String())
	if s.cacheService != nil {
		var cached []Zone
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	exists, err := s.repo.ConcertExists(ctx, concertID)
	if err != nil {
		return nil, fmt.Errorf("failed to check concert: %w", err)
	}
	if !exists {
		return nil, ErrConcertNotFound
	}

	zones, err := s.repo.GetZonesByConcertID(ctx, concertID)
	if err != nil {
		return nil, fmt.Errorf("failed to get zones: %w", err)
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, zones, constants.TTL_ZONE_LIST); err != nil {
			logger.GetDefault().Debug("failed to cache zone list", "error", err)
		}
	}

	return zones, nil
}

func (s *service) ListSections(ctx context.Context, concertID, zoneID uuid.UUID) ([]Section, error) {
	zone, err := s.repo.GetZoneByID(ctx, zoneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZoneNotFound
		}
		return nil, fmt.Errorf("failed to get zone: %w", err)
	}
	if zone.ConcertID != concertID {
		return nil, ErrZoneNotFound
	}

	sections, err := s.repo.GetSectionsByZoneID(ctx, zoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sections: %w", err)
	}
	return sections, nil
}

func (s *service) ListSeats(ctx context.Context, concertID, zoneID uuid.UUID, sectionID *uuid.UUID) ([]Seat, error) {
	zone, err := s.repo.GetZoneByID(ctx, zoneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZoneNotFound
		}
		return nil, fmt.Errorf("failed to get zone: %w", err)
	}
	if zone.ConcertID != concertID {
		return nil, ErrZoneNotFound
	}

	if sectionID != nil {
		section, err := s.repo.GetSectionByID(ctx, *sectionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSectionNotFound
			}
			return nil, fmt.Errorf("failed to get section: %w", err)
		}
		if section.ZoneID != zoneID {
			return nil, ErrSectionNotFound
		}
	}

	seats, err := s.repo.GetSeats(ctx, concertID, zoneID, sectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get seats: %w", err)
	}
	return seats, nil
}

func (s *service) GetSeat(ctx context.Context, seatID string) (*Seat, error) {
	id, err := uuid.Parse(seatID)
	if err != nil {
		return nil, fmt.Errorf("invalid seat ID: %w", err)
	}

	seat, err := s.repo.GetSeatByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("seat not found")
		}
		return nil, fmt.Errorf("failed to get seat: %w", err)
	}
	return seat, nil
}

func (s *service) UpdateSeatStatus(ctx context.Context, seatID string, req UpdateSeatStatusRequest) (*Seat, error) {
	id, err := uuid.Parse(seatID)
	if err != nil {
		return nil, fmt.Errorf("invalid seat ID: %w", err)
	}

	status := SeatStatus(req.Status)
	if status != SeatAvailable && status != SeatBooked {
		return nil, fmt.Errorf("invalid seat status: %s", req.Status)
	}

	if err := s.repo.UpdateSeatStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update seat status: %w", err)
	}

	return s.repo.GetSeatByID(ctx, id)
}

func (s *service) UpdateZonePrice(ctx context.Context, zoneID string, req UpdateZonePriceRequest) (*Zone, error) {
	id, err := uuid.Parse(zoneID)
	if err != nil {
		return nil, fmt.Errorf("invalid zone ID: %w", err)
	}

	if err := s.repo.UpdateZonePrice(ctx, id, req.UnitPrice); err != nil {
		return nil, fmt.Errorf("failed to update zone price: %w", err)
	}

	// Stale cached zone lists would feed wrong totals
	if s.cacheService != nil {
		if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_CATALOG); err != nil {
			logger.GetDefault().Debug("failed to invalidate catalog cache", "error", err)
		}
	}

	zone, err := s.repo.GetZoneByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZoneNotFound
		}
		return nil, err
	}
	return zone, nil
}
