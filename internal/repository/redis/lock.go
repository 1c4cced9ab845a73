package redis

import (
	"context"
	"errors"
	"myBizHub/domain"
	"myBizHub/pkg/logger"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockNotHeld is returned when releasing a lock that expired or was taken
// over by another owner.
var ErrLockNotHeld = errors.New("lock not held")

var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// Locker serializes usage updates across processes with SET NX locks.
type Locker struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	wait      time.Duration
}

func NewLocker(client *redis.Client, keyPrefix string, ttl, wait time.Duration) *Locker {
	if keyPrefix == "" {
		keyPrefix = "lock:"
	}
	return &Locker{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
		wait:      wait,
	}
}

// WithLock runs fn while holding the lock for key. It retries with
// exponential backoff for up to the configured wait and then gives up with
// domain.ErrUsageLocked.
func (l *Locker) WithLock(ctx context.Context, key string, fn func() error) error {
	lockKey := l.keyPrefix + key
	owner := uuid.New().String()

	if err := l.acquire(ctx, lockKey, owner); err != nil {
		return err
	}
	defer func() {
		// release on a fresh context so a cancelled request still frees the lock
		relCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := l.release(relCtx, lockKey, owner); err != nil {
			logger.WithContext(ctx).Warnw("failed to release usage lock", "key", lockKey, "error", err)
		}
	}()

	return fn()
}

func (l *Locker) acquire(ctx context.Context, lockKey, owner string) error {
	deadline := time.Now().Add(l.wait)
	backoff := 10 * time.Millisecond

	for {
		ok, err := l.client.SetNX(ctx, lockKey, owner, l.ttl).Result()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if !time.Now().Before(deadline) {
			return domain.ErrUsageLocked
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
			backoff *= 2
			if backoff > 200*time.Millisecond {
				backoff = 200 * time.Millisecond
			}
		}
	}
}

func (l *Locker) release(ctx context.Context, lockKey, owner string) error {
	n, err := releaseScript.Run(ctx, l.client, []string{lockKey}, owner).Int64()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLockNotHeld
	}
	return nil
}
