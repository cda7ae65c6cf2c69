package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/marves/pcpartstore/internal/cart/event"
	"github.com/marves/pcpartstore/internal/cart/repository"
)

// Manager hands out one hydrated Store per session.
type Manager struct {
	repo   repository.CartRepository
	events *event.Producer
	logger *slog.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

// NewManager creates a store manager. events may be nil.
func NewManager(repo repository.CartRepository, events *event.Producer, logger *slog.Logger) *Manager {
	return &Manager{
		repo:   repo,
		events: events,
		logger: logger,
		stores: make(map[string]*Store),
	}
}

// ForSession returns the store for the session, creating and hydrating it
// on first use.
func (m *Manager) ForSession(ctx context.Context, sessionID string) (*Store, error) {
	m.mu.Lock()
	s, ok := m.stores[sessionID]
	if !ok {
		s = New(sessionID, m.repo, m.events, m.logger)
		m.stores[sessionID] = s
	}
	m.mu.Unlock()

	if err := s.Hydrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Evict drops the in-memory store for a session. The persisted snapshot is
// untouched; the next ForSession call re-hydrates from it.
func (m *Manager) Evict(sessionID string) {
	m.mu.Lock()
	delete(m.stores, sessionID)
	m.mu.Unlock()
}
