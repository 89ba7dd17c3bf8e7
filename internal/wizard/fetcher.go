package wizard

import (
	"context"
	"fmt"

	"concertly/internal/catalog"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Fetcher wraps the catalog provider so that identical in-flight lookups
// collapse into one upstream call. Results are never retained between
// calls: availability is ground truth and must be re-read on every stage
// transition, so the only dedup window is the lifetime of a single fetch.
type Fetcher struct {
	provider catalog.Provider
	group    singleflight.Group
}

func NewFetcher(provider catalog.Provider) *Fetcher {
	return &Fetcher{provider: provider}
}

func (f *Fetcher) Zones(ctx context.Context, concertID uuid.UUID) ([]catalog.Zone, error) {
	key := fmt.Sprintf("zones:%s", concertID)
	v, err, _ := f.group.Do(key, func() (interface{}, error) {
		return f.provider.ListZones(ctx, concertID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]catalog.Zone), nil
}

func (f *Fetcher) Sections(ctx context.Context, concertID, zoneID uuid.UUID) ([]catalog.Section, error) {
	key := fmt.Sprintf("sections:%s:%s", concertID, zoneID)
	v, err, _ := f.group.Do(key, func() (interface{}, error) {
		return f.provider.ListSections(ctx, concertID, zoneID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]catalog.Section), nil
}

func (f *Fetcher) Seats(ctx context.Context, concertID, zoneID uuid.UUID, sectionID *uuid.UUID) ([]catalog.Seat, error) {
	key := fmt.Sprintf("seats:%s:%s", concertID, zoneID)
	if sectionID != nil {
		key += ":" + sectionID.String()
	}
	v, err, _ := f.group.Do(key, func() (interface{}, error) {
		return f.provider.ListSeats(ctx, concertID, zoneID, sectionID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]catalog.Seat), nil
}
