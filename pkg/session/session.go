// Package session keeps interactive treemap sessions for the HTTP server.
//
// Each [Session] owns one [view.Session] and the selection coordinator it is
// attached to. Views are single-threaded, so every access goes through
// [Session.Do], which holds the session's mutex for the duration of the
// callback. Different sessions never block each other.
//
// # Usage
//
//	store := session.NewMemoryStore(session.WithMaxSessions(1000))
//	sess, err := session.New(v, coord, session.DefaultTTL)
//	if err != nil {
//	    return err
//	}
//	store.Set(ctx, sess)
//
//	sess, err = store.Get(ctx, id)
//	if errors.Is(err, session.ErrNotFound) {
//	    // unknown or evicted
//	}
//	sess.Do(func(v *view.Session, _ *selection.Coordinator) { v.Back() })
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/treezoom/pkg/selection"
	"github.com/matzehuels/treezoom/pkg/view"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("not found")

	// ErrExpired is returned when a session has exceeded its TTL.
	ErrExpired = errors.New("expired")

	// ErrFull is returned when the store refuses new sessions.
	ErrFull = errors.New("session limit reached")
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 30 * time.Minute

// Session is one client's interactive treemap.
type Session struct {
	ID        string
	Source    string
	CreatedAt time.Time

	ttl time.Duration

	mu        sync.Mutex
	expiresAt time.Time
	view      *view.Session
	selection *selection.Coordinator
}

// New wraps v in a session with a fresh random ID. coord must be the
// coordinator v is attached to; nil creates and attaches a new one.
func New(v *view.Session, coord *selection.Coordinator, source string, ttl time.Duration) (*Session, error) {
	if coord == nil {
		coord = selection.NewCoordinator()
		if err := v.Attach(coord); err != nil {
			return nil, err
		}
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Source:    source,
		CreatedAt: now,
		ttl:       ttl,
		expiresAt: now.Add(ttl),
		view:      v,
		selection: coord,
	}, nil
}

// Do runs fn with exclusive access to the view and its coordinator and
// extends the session's lifetime.
func (s *Session) Do(fn func(v *view.Session, c *selection.Coordinator)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expiresAt = time.Now().Add(s.ttl)
	fn(s.view, s.selection)
}

// ExpiresAt returns the current expiry time.
func (s *Session) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiresAt
}

// IsExpired reports whether the session has been idle past its TTL at now.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt())
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID. It returns ErrNotFound for unknown IDs
	// and ErrExpired (after removing it) for sessions past their TTL.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, s *Session) error

	// Delete removes a session. Unknown IDs are not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions and reports how many were removed.
	Cleanup(ctx context.Context) (int, error)

	// Len returns the number of stored sessions.
	Len() int
}
