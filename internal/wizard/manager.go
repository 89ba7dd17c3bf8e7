package wizard

import (
	"context"
	"sync"
	"time"

	"concertly/internal/catalog"
	"concertly/internal/shared/config"
	"concertly/pkg/logger"

	"github.com/google/uuid"
)

// Manager owns one selection session per user. Sessions that go idle
// past the configured TTL are swept so abandoned wizards do not pin
// memory forever.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session

	fetcher  *Fetcher
	checkout Checkout
	cfg      config.SelectionConfig
	log      *logger.Logger

	stop chan struct{}
	once sync.Once
}

func NewManager(provider catalog.Provider, checkout Checkout, cfg config.SelectionConfig) *Manager {
	m := &Manager{
		sessions: make(map[uuid.UUID]*Session),
		fetcher:  NewFetcher(provider),
		checkout: checkout,
		cfg:      cfg,
		log:      logger.GetDefault(),
		stop:     make(chan struct{}),
	}
	go m.sweep()
	return m
}

// Start opens a fresh session for the user, replacing any existing one,
// and loads the zone list for the chosen concert.
func (m *Manager) Start(ctx context.Context, userID, concertID uuid.UUID) (*Session, error) {
	session := newSession(userID, concertID, m.fetcher, m.checkout, m.cfg.SkipSections)
	if err := session.start(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[userID] = session
	m.mu.Unlock()
	return session, nil
}

// Get returns the user's active session, or ErrNoSession.
func (m *Manager) Get(userID uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[userID]
	if !ok {
		return nil, ErrNoSession
	}
	return session, nil
}

// End discards the user's session.
func (m *Manager) End(userID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

func (m *Manager) sweep() {
	interval := m.cfg.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.expireIdle()
		}
	}
}

func (m *Manager) expireIdle() {
	cutoff := time.Now().Add(-m.cfg.SessionTTL)

	m.mu.Lock()
	var expired []uuid.UUID
	for userID, session := range m.sessions {
		if session.idleSince().Before(cutoff) {
			expired = append(expired, userID)
		}
	}
	for _, userID := range expired {
		delete(m.sessions, userID)
	}
	m.mu.Unlock()

	if len(expired) > 0 {
		m.log.Info("🧹 Expired idle selection sessions", "count", len(expired))
	}
}

// Close stops the background sweeper.
func (m *Manager) Close() {
	m.once.Do(func() { close(m.stop) })
}
