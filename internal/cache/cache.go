package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"user-admin/internal/entity"
)

const (
	versionKey = "users:version"
	usersKey   = "users:all"
)

// Redis caches the full user list as one JSON value per version. Invalidate bumps
// the version, so a list read from the database before a write can only land under
// a version nobody reads anymore.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl}
}

// Version returns the current list version, 0 before the first write.
func (c *Redis) Version(ctx context.Context) (int64, error) {
	v, err := c.rdb.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading user list version: %w", err)
	}
	return v, nil
}

// GetUsers returns the list cached for version. ok is false on a cache miss.
func (c *Redis) GetUsers(ctx context.Context, version int64) (users []entity.User, ok bool, err error) {
	data, err := c.rdb.Get(ctx, listKey(version)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading user list from cache: %w", err)
	}

	if err := json.Unmarshal(data, &users); err != nil {
		return nil, false, fmt.Errorf("could not unmarshal cached user list: %w", err)
	}
	return users, true, nil
}

func (c *Redis) SetUsers(ctx context.Context, version int64, users []entity.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listKey(version), data, c.ttl).Err()
}

func (c *Redis) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, versionKey).Err()
}

func listKey(version int64) string {
	return fmt.Sprintf("%s:%d", usersKey, version)
}

// Noop never holds anything. It stands in when no Redis address is configured.
type Noop struct{}

func (Noop) Version(context.Context) (int64, error)                       { return 0, nil }
func (Noop) GetUsers(context.Context, int64) ([]entity.User, bool, error) { return nil, false, nil }
func (Noop) SetUsers(context.Context, int64, []entity.User) error         { return nil }
func (Noop) Invalidate(context.Context) error                             { return nil }
