package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/estate-listing-api/pkg/helpers"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestMemorySessionStore_Rotate(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessionStore(time.Hour)
	require.NoError(t, s.Start(ctx, Session{UserID: "u1", SessionID: "a", Role: "USER"}))

	ok, err := s.Rotate(ctx, "u1", "stale", "b")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Rotate(ctx, "u1", "a", "b")
	require.NoError(t, err)
	assert.True(t, ok)

	got, found, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "b", got.SessionID)
	assert.Equal(t, "USER", got.Role)
}

func TestMemorySessionStore_ExpiresAndRevokes(t *testing.T) {
	ctx := context.Background()
	clk := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := newMemorySessionStore(time.Minute, clk.now)
	require.NoError(t, s.Start(ctx, Session{UserID: "u1", SessionID: "a"}))

	clk.t = clk.t.Add(2 * time.Minute)
	_, found, _ := s.Get(ctx, "u1")
	assert.False(t, found)

	require.NoError(t, s.Start(ctx, Session{UserID: "u1", SessionID: "c"}))
	require.NoError(t, s.Revoke(ctx, "u1"))
	_, found, _ = s.Get(ctx, "u1")
	assert.False(t, found)
}

func TestMemoryTokenStore_TakeIsSingleUse(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTokenStore()
	require.NoError(t, s.Put(ctx, "k", "u1", time.Minute))

	v, ok, err := s.Take(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "u1", v)

	_, ok, _ = s.Take(ctx, "k")
	assert.False(t, ok)
}

// Runs against a real Redis when TEST_REDIS_ADDR is set.
func TestRedisSessionStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb := helpers.NewRedisClient(addr, "", 0)
	defer func() { _ = rdb.Close() }()

	uid := uuid.NewString()
	s := NewRedisSessionStore(rdb, time.Minute, nil)
	require.NoError(t, s.Start(ctx, Session{UserID: uid, SessionID: "a", Role: "AGENT"}))
	defer func() { _ = s.Revoke(ctx, uid) }()

	ok, err := s.Rotate(ctx, uid, "x", "b")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = s.Rotate(ctx, uid, "a", "b")
	require.NoError(t, err)
	assert.True(t, ok)

	got, found, err := s.Get(ctx, uid)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "b", got.SessionID)
	assert.Equal(t, "AGENT", got.Role)

	tokens := NewRedisTokenStore(rdb)
	key := helpers.KeyPasswordReset(uid)
	require.NoError(t, tokens.Put(ctx, key, uid, time.Minute))
	v, ok, err := tokens.Take(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uid, v)
}
