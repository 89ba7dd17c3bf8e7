package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StaticProvider serves a fixed venue layout from memory. It backs local
// development and tests where a database is unavailable; IDs are derived
// deterministically so fixtures stay stable across runs.
type StaticProvider struct {
	mu        sync.RWMutex
	concertID uuid.UUID

	zones          []Zone
	sectionsByZone map[uuid.UUID][]Section
	seatsBySection map[uuid.UUID][]Seat
}

// StaticID derives a stable UUID for a fixture entity from its path,
// e.g. "zone:A" or "seat:A1:A:3".
func StaticID(path string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("concertly:"+path))
}

type staticZoneLayout struct {
	name      string
	unitPrice int64
	rows      []string
	perRow    int
}

// NewStaticProvider builds the default three-tier layout for the given
// concert: zone A at 3000, B at 1500, C at 1000, each split into three
// sections (left, center, right).
func NewStaticProvider(concertID uuid.UUID) *StaticProvider {
	p := &StaticProvider{
		concertID:      concertID,
		sectionsByZone: make(map[uuid.UUID][]Section),
		seatsBySection: make(map[uuid.UUID][]Seat),
	}

	layouts := []staticZoneLayout{
		{name: "A", unitPrice: 3000, rows: []string{"A", "B"}, perRow: 10},
		{name: "B", unitPrice: 1500, rows: []string{"A", "B", "C"}, perRow: 10},
		{name: "C", unitPrice: 1000, rows: []string{"A", "B", "C", "D"}, perRow: 10},
	}
	positions := []string{"left", "center", "right"}

	now := time.Now()
	for _, zs := range layouts {
		zoneID := StaticID("zone:" + zs.name)
		capacity := 0
		for i, pos := range positions {
			label := fmt.Sprintf("%s%d", zs.name, i+1)
			sectionID := StaticID("section:" + label)
			section := Section{
				ID:        sectionID,
				ZoneID:    zoneID,
				Label:     label,
				Position:  pos,
				CreatedAt: now,
				UpdatedAt: now,
			}
			p.sectionsByZone[zoneID] = append(p.sectionsByZone[zoneID], section)

			for _, row := range zs.rows {
				for n := 1; n <= zs.perRow; n++ {
					seat := Seat{
						ID:        StaticID(fmt.Sprintf("seat:%s:%s:%d", label, row, n)),
						ConcertID: concertID,
						ZoneID:    zoneID,
						SectionID: sectionID,
						Row:       row,
						Number:    n,
						Status:    SeatAvailable,
						CreatedAt: now,
						UpdatedAt: now,
					}
					p.seatsBySection[sectionID] = append(p.seatsBySection[sectionID], seat)
					capacity++
				}
			}
		}
		p.zones = append(p.zones, Zone{
			ID:        zoneID,
			ConcertID: concertID,
			Name:      zs.name,
			UnitPrice: zs.unitPrice,
			Capacity:  capacity,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return p
}

func (p *StaticProvider) ListZones(ctx context.Context, concertID uuid.UUID) ([]Zone, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if concertID != p.concertID {
		return nil, ErrConcertNotFound
	}
	out := make([]Zone, len(p.zones))
	copy(out, p.zones)
	return out, nil
}

func (p *StaticProvider) ListSections(ctx context.Context, concertID, zoneID uuid.UUID) ([]Section, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if concertID != p.concertID {
		return nil, ErrConcertNotFound
	}
	sections, ok := p.sectionsByZone[zoneID]
	if !ok {
		return nil, ErrZoneNotFound
	}
	out := make([]Section, len(sections))
	copy(out, sections)
	return out, nil
}

func (p *StaticProvider) ListSeats(ctx context.Context, concertID, zoneID uuid.UUID, sectionID *uuid.UUID) ([]Seat, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if concertID != p.concertID {
		return nil, ErrConcertNotFound
	}
	sections, ok := p.sectionsByZone[zoneID]
	if !ok {
		return nil, ErrZoneNotFound
	}
	var out []Seat
	if sectionID != nil {
		found := false
		for _, sec := range sections {
			if sec.ID == *sectionID {
				found = true
				break
			}
		}
		if !found {
			return nil, ErrSectionNotFound
		}
		out = append(out, p.seatsBySection[*sectionID]...)
		return out, nil
	}
	for _, sec := range sections {
		out = append(out, p.seatsBySection[sec.ID]...)
	}
	return out, nil
}

// SetSeatStatus flips a fixture seat's availability. Used by tests and the
// demo checkout path.
func (p *StaticProvider) SetSeatStatus(seatID uuid.UUID, status SeatStatus) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for sectionID, seats := range p.seatsBySection {
		for i := range seats {
			if seats[i].ID == seatID {
				p.seatsBySection[sectionID][i].Status = status
				p.seatsBySection[sectionID][i].UpdatedAt = time.Now()
				return true
			}
		}
	}
	return false
}

// SetZonePrice updates a fixture zone's unit price.
func (p *StaticProvider) SetZonePrice(zoneID uuid.UUID, unitPrice int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.zones {
		if p.zones[i].ID == zoneID {
			p.zones[i].UnitPrice = unitPrice
			p.zones[i].UpdatedAt = time.Now()
			return true
		}
	}
	return false
}
