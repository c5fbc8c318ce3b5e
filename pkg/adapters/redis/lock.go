package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/makebuild-code/slidenav/pkg/ports"
)

// ErrLockAcquire is returned when the lock cannot be acquired.
var ErrLockAcquire = errors.New("failed to acquire distributed lock")

// unlockScript releases the lock only when the stored token still matches,
// so a replica never deletes a lock a later holder re-acquired.
const unlockScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`

// Locker implements ports.SessionLocker using Redis SET NX PX.
type Locker struct {
	client *backend.Client
	prefix string
	retry  time.Duration
}

// NewLocker creates a Redis locker. The prefix namespaces lock keys next to
// the store's position keys.
func NewLocker(client *backend.Client, prefix string) *Locker {
	return &Locker{
		client: client,
		prefix: prefix,
		retry:  100 * time.Millisecond,
	}
}

// Lock acquires a distributed lock for the given key, polling until it
// succeeds or the context is canceled.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	lockKey := l.prefix + "lock:" + key
	token := fmt.Sprintf("%d", time.Now().UnixNano())

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		success, err := l.client.SetNX(ctx, lockKey, token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("redis error acquiring lock: %w", err)
		}
		if success {
			return func(ctx context.Context) error {
				return l.client.Eval(ctx, unlockScript, []string{lockKey}, token).Err()
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrLockAcquire, ctx.Err())
		case <-ticker.C:
		}
	}
}
