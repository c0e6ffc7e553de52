// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/futcuervo/club-trivia/pkg/attempt"
	"github.com/futcuervo/club-trivia/pkg/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	// ErrSessionNotFound indicates an unknown or expired session ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrGameNotConfigured indicates a game type missing from the catalog.
	ErrGameNotConfigured = errors.New("game type not configured")
)

// Manager keeps the in-memory sessions of this instance.
type Manager struct {
	catalog    *Catalog
	cfg        ManagerConfig
	onComplete CompletionFunc
	opts       []SessionOption

	mu       sync.RWMutex
	sessions map[string]*Session
}

// ManagerConfig tunes session housekeeping.
type ManagerConfig struct {
	// Retention is how long finished sessions stay readable.
	Retention time.Duration
	// MaxIdle is how long an unfinished session may live.
	MaxIdle time.Duration
}

// NewManager creates a session manager. onComplete is called for every finished session.
func NewManager(catalog *Catalog, cfg ManagerConfig, onComplete CompletionFunc, opts ...SessionOption) *Manager {
	if cfg.Retention <= 0 {
		cfg.Retention = 10 * time.Minute
	}
	if cfg.MaxIdle <= 0 {
		cfg.MaxIdle = 2 * time.Hour
	}
	return &Manager{
		catalog:    catalog,
		cfg:        cfg,
		onComplete: onComplete,
		opts:       opts,
		sessions:   make(map[string]*Session),
	}
}

// Create starts a new session for owner on the given club.
func (m *Manager) Create(gameType attempt.GameType, clubID, owner string) (*Session, error) {
	def, ok := m.catalog.Get(gameType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotConfigured, gameType)
	}

	id := uuid.NewString()
	opts := append([]SessionOption{
		WithOwner(owner, clubID),
		WithCompletion(m.onComplete),
	}, m.opts...)
	session := NewSession(id, def, opts...)

	if err := session.Start(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[id] = session
	metrics.ActiveSessions.Set(float64(len(m.sessions)))
	m.mu.Unlock()

	logrus.Infof("created session %s: game=%s club=%s", id, gameType, clubID)
	return session, nil
}

// Get returns a live or recently finished session.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Count returns the number of tracked sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops sessions that finished more than the retention period ago and
// abandoned sessions older than MaxIdle.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, session := range m.sessions {
		started, ended := session.times()
		finished := !ended.IsZero() && now.Sub(ended) > m.cfg.Retention
		abandoned := ended.IsZero() && now.Sub(started) > m.cfg.MaxIdle
		if finished || abandoned {
			delete(m.sessions, id)
			removed++
		}
	}
	metrics.ActiveSessions.Set(float64(len(m.sessions)))
	if removed > 0 {
		logrus.Debugf("swept %d finished sessions", removed)
	}
	return removed
}

// Run sweeps finished sessions until ctx is cancelled.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.Sweep(now)
		}
	}
}
