package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStateStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStateStore()
	s.SetClock(func() time.Time { return now })

	require.NoError(t, s.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, s.Set(ctx, "b", []byte("2"), 0))

	ok, err := s.Exists(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	v, err := s.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), v)

	now = now.Add(time.Minute)
	ok, err = s.Exists(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok, "entry should expire at its deadline")

	v, err = s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, v)

	ok, _ = s.Exists(ctx, "b")
	assert.True(t, ok, "zero ttl never expires")

	require.NoError(t, s.Delete(ctx, "b"))
	ok, _ = s.Exists(ctx, "b")
	assert.False(t, ok)
}

func TestMemoryStateStoreSweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStateStore()
	s.SetClock(func() time.Time { return now })

	require.NoError(t, s.Set(ctx, "x", nil, time.Second))
	require.NoError(t, s.Set(ctx, "y", nil, time.Hour))
	now = now.Add(time.Minute)

	assert.Equal(t, 1, s.Sweep())
	ok, _ := s.Exists(ctx, "y")
	assert.True(t, ok)
}
