package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"user-admin/internal/entity"
)

func newRedis(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedis(rdb, ttl), mr
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c Noop

	require.NoError(t, c.SetUsers(ctx, 0, []entity.User{{ID: 1}}))
	users, ok, err := c.GetUsers(ctx, 0)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, users)
	assert.NoError(t, c.Invalidate(ctx))
}

func TestRedis_Miss(t *testing.T) {
	c, _ := newRedis(t, time.Minute)

	v, err := c.Version(context.Background())
	require.NoError(t, err)
	assert.Zero(t, v)

	users, ok, err := c.GetUsers(context.Background(), v)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, users)
}

func TestRedis_SetThenHit(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedis(t, time.Minute)

	want := []entity.User{
		{ID: 2, Name: "B", Email: "b@x.com", CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
		{ID: 1, Name: "A", Email: "a@x.com", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, c.SetUsers(ctx, 0, want))

	users, ok, err := c.GetUsers(ctx, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, users)
	assert.Equal(t, time.Minute, mr.TTL("users:all:0"))
}

func TestRedis_EmptyListIsAHit(t *testing.T) {
	ctx := context.Background()
	c, _ := newRedis(t, time.Minute)

	require.NoError(t, c.SetUsers(ctx, 0, []entity.User{}))

	users, ok, err := c.GetUsers(ctx, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestRedis_Expires(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedis(t, time.Minute)

	require.NoError(t, c.SetUsers(ctx, 0, []entity.User{{ID: 1}}))
	mr.FastForward(time.Minute + time.Second)

	_, ok, err := c.GetUsers(ctx, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_InvalidateThenMiss(t *testing.T) {
	ctx := context.Background()
	c, _ := newRedis(t, time.Minute)

	require.NoError(t, c.SetUsers(ctx, 0, []entity.User{{ID: 1}}))
	require.NoError(t, c.Invalidate(ctx))

	v, err := c.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	_, ok, err := c.GetUsers(ctx, v)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_StaleWriteIsNotServed(t *testing.T) {
	ctx := context.Background()
	c, _ := newRedis(t, time.Minute)

	// a reader picks up version 0, then a write bumps it before the reader stores its list
	before, err := c.Version(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx))
	require.NoError(t, c.SetUsers(ctx, before, []entity.User{{ID: 1, Name: "stale"}}))

	now, err := c.Version(ctx)
	require.NoError(t, err)
	_, ok, err := c.GetUsers(ctx, now)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_Unreachable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	defer rdb.Close()

	c := NewRedis(rdb, time.Minute)
	_, err := c.Version(context.Background())
	assert.Error(t, err)

	users, ok, err := c.GetUsers(context.Background(), 0)
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Nil(t, users)

	assert.Error(t, c.SetUsers(context.Background(), 0, []entity.User{{ID: 1}}))
	assert.Error(t, c.Invalidate(context.Background()))
}
