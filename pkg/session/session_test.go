package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/treezoom/pkg/hierarchy"
	"github.com/matzehuels/treezoom/pkg/selection"
	"github.com/matzehuels/treezoom/pkg/view"
)

func newSession(t *testing.T, ttl time.Duration) *Session {
	t.Helper()
	v := view.New(view.Config{Width: 100, Height: 100, Duration: -1})
	require.NoError(t, v.Load(hierarchy.Group("All",
		hierarchy.Leaf("A", 30),
		hierarchy.Group("B", hierarchy.Leaf("B1", 10), hierarchy.Leaf("B2", 60)),
	)))
	s, err := New(v, nil, "test.json", ttl)
	require.NoError(t, err)
	return s
}

func TestNewAttachesCoordinator(t *testing.T) {
	s := newSession(t, time.Hour)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "test.json", s.Source)
	s.Do(func(v *view.Session, c *selection.Coordinator) {
		assert.Equal(t, []string{view.ViewName}, c.Views())
		assert.Equal(t, "All", c.State().Focus)

		b, _ := v.Root().Find("B")
		require.True(t, v.Click(b))
		assert.Equal(t, "B", c.State().Focus)
	})
}

func TestSessionIDsAreUnique(t *testing.T) {
	a, b := newSession(t, time.Hour), newSession(t, time.Hour)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestDoExtendsExpiry(t *testing.T) {
	s := newSession(t, time.Minute)
	before := s.ExpiresAt()
	time.Sleep(5 * time.Millisecond)

	s.Do(func(*view.Session, *selection.Coordinator) {})

	assert.True(t, s.ExpiresAt().After(before))
	assert.False(t, s.IsExpired(time.Now()))
	assert.True(t, s.IsExpired(time.Now().Add(2*time.Minute)))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := newSession(t, time.Hour)

	_, err := store.Get(ctx, s.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, store.Set(ctx, s))
	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, store.Len())

	require.NoError(t, store.Delete(ctx, s.ID))
	require.NoError(t, store.Delete(ctx, s.ID))
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	store := NewMemoryStore(WithNow(func() time.Time { return now }))
	short := newSession(t, time.Minute)
	long := newSession(t, time.Hour)
	require.NoError(t, store.Set(ctx, short))
	require.NoError(t, store.Set(ctx, long))

	now = now.Add(10 * time.Minute)

	_, err := store.Get(ctx, short.ID)
	assert.True(t, errors.Is(err, ErrExpired))
	assert.Equal(t, 1, store.Len(), "expired session should be removed on Get")

	now = now.Add(2 * time.Hour)
	n, err := store.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStoreMaxSessions(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	store := NewMemoryStore(WithMaxSessions(1), WithNow(func() time.Time { return now }))

	first := newSession(t, time.Minute)
	require.NoError(t, store.Set(ctx, first))
	require.NoError(t, store.Set(ctx, first), "replacing an existing session is allowed")

	err := store.Set(ctx, newSession(t, time.Minute))
	assert.True(t, errors.Is(err, ErrFull))

	now = now.Add(time.Hour)
	assert.NoError(t, store.Set(ctx, newSession(t, time.Minute)), "expired sessions make room")
}
