package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/makebuild-code/slidenav/internal/logging"
	"github.com/makebuild-code/slidenav/pkg/domain"
	"github.com/makebuild-code/slidenav/pkg/ports"
)

// DefaultLockTTL bounds how long a replica may hold a session lock.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu     sync.Mutex
	refs   int
	unlock ports.UnlockFunc
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.PositionStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.SessionLocker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.SessionLocker) Option {
	return func(m *Manager) { m.locker = locker }
}

// WithLockTTL overrides the distributed lock TTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.lockTTL = ttl }
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// NewManager creates a session manager over a position store.
func NewManager(store ports.PositionStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST lock entry.mu, then call release(sessionID) after
// unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Load retrieves an existing session position from the store.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.Position, error) {
	var pos *domain.Position
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		pos, err = m.store.Load(ctx, sessionID)
		return err
	})
	return pos, err
}

// LoadOrStart tries to load a session. If not found, it initializes a new
// position at startIndex and persists it immediately to reserve the ID.
func (m *Manager) LoadOrStart(ctx context.Context, sessionID string, startIndex int) (*domain.Position, error) {
	var pos *domain.Position
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		pos, err = m.store.Load(ctx, sessionID)
		if err == nil {
			return nil
		}
		if err != domain.ErrSessionNotFound {
			return fmt.Errorf("failed to check session existence: %w", err)
		}

		pos = domain.NewPosition(startIndex)
		if err := m.store.Save(ctx, sessionID, pos); err != nil {
			return fmt.Errorf("failed to initialize session: %w", err)
		}
		return nil
	})
	return pos, err
}

// Save persists the session position.
func (m *Manager) Save(ctx context.Context, sessionID string, pos *domain.Position) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Save(ctx, sessionID, pos)
	})
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying position store.
func (m *Manager) Store() ports.PositionStore {
	return m.store
}

// WithLock executes fn while holding the per-process lock for the session,
// plus the distributed lock when one is configured.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
