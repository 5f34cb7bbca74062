package session

import (
	"context"
	"sync"
	"time"
)

// MemoryOption configures a [MemoryStore].
type MemoryOption func(*MemoryStore)

// WithMaxSessions caps the number of live sessions. Zero means no cap.
func WithMaxSessions(n int) MemoryOption {
	return func(m *MemoryStore) { m.max = n }
}

// WithNow replaces the clock used for expiry checks.
func WithNow(now func() time.Time) MemoryOption {
	return func(m *MemoryStore) { m.now = now }
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	max      int
	now      func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{sessions: make(map[string]*Session), now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if s.IsExpired(m.now()) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return nil, ErrExpired
	}
	return s, nil
}

// Set stores s. When the store is full, expired sessions are dropped first;
// if that frees nothing, ErrFull is returned.
func (m *MemoryStore) Set(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[s.ID]; !exists && m.max > 0 && len(m.sessions) >= m.max {
		m.cleanupLocked()
		if len(m.sessions) >= m.max {
			return ErrFull
		}
	}
	m.sessions[s.ID] = s
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Cleanup(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleanupLocked(), nil
}

func (m *MemoryStore) cleanupLocked() int {
	now := m.now()
	removed := 0
	for id, s := range m.sessions {
		if s.IsExpired(now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

var _ Store = (*MemoryStore)(nil)
