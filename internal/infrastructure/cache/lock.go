package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/pkg/logger"
)

// DefaultLockTTL bounds how long a crashed holder can block a document.
const DefaultLockTTL = 30 * time.Second

// Locker obtains short-lived exclusive locks in redis.
type Locker struct {
	client *redislock.Client
	ttl    time.Duration
}

// NewLocker creates a Locker.
func NewLocker(client *redis.Client, ttl time.Duration) *Locker {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &Locker{client: redislock.New(client), ttl: ttl}
}

// Obtain takes lock:<key> without waiting. A held lock is a ConflictError.
func (l *Locker) Obtain(ctx context.Context, key string) (func(), error) {
	lockKey := "lock:" + key
	lock, err := l.client.Obtain(ctx, lockKey, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, apperror.NewConflict("resource is being modified by another request").
			WithDetail("lock", lockKey)
	}
	if err != nil {
		return nil, fmt.Errorf("obtain %s: %w", lockKey, err)
	}

	return func() {
		// the request context may already be done
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			logger.Warn(ctx, "lock release failed", "lock", lockKey, "error", err)
		}
	}, nil
}
