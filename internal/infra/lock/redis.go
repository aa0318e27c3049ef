package lock

import (
	"context"
	"log/slog"
	"time"

	"laundry-orders/internal/pkg/errs"
	"laundry-orders/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "lock:"

// releaseScript deletes the lock only when the stored token matches the
// caller's, so a holder whose lock expired and was re-acquired by someone
// else cannot release the new holder's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLockService implements cross-instance mutual exclusion on top of
// SET NX with a TTL and an opaque possession token.
type RedisLockService struct {
	client        redis.UniversalClient
	logger        *slog.Logger
	ttl           time.Duration
	retryInterval time.Duration
}

func NewRedisLockService(client redis.UniversalClient, logger *slog.Logger, ttl, retryInterval time.Duration) *RedisLockService {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if retryInterval <= 0 {
		retryInterval = 100 * time.Millisecond
	}
	return &RedisLockService{
		client:        client,
		logger:        logger,
		ttl:           ttl,
		retryInterval: retryInterval,
	}
}

var _ commands.LockService = (*RedisLockService)(nil)

// Acquire polls SET NX until the lock is obtained or wait elapses. A
// timeout is a failure outcome (errs.ErrLockTimeout), never retried here;
// the caller owns any retry policy.
func (s *RedisLockService) Acquire(ctx context.Context, key string, wait time.Duration) (string, error) {
	token := uuid.NewString()
	redisKey := keyPrefix + key
	deadline := time.Now().Add(wait)

	for {
		ok, err := s.client.SetNX(ctx, redisKey, token, s.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return "", errs.Mark(ctx.Err(), errs.ErrLockTimeout)
			}
			return "", errs.Wrap(err, "failed to contact lock service")
		}
		if ok {
			return token, nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			s.logger.Warn("lock acquisition timed out", "key", key, "wait", wait.String())
			return "", errs.Mark(errs.Newf("lock %q not acquired within %s", key, wait), errs.ErrLockTimeout)
		}

		interval := s.retryInterval
		if interval > remaining {
			interval = remaining
		}
		select {
		case <-ctx.Done():
			return "", errs.Mark(ctx.Err(), errs.ErrLockTimeout)
		case <-time.After(interval):
		}
	}
}

// Release is a no-op when the stored token does not match; it never
// deletes a lock held by someone else.
func (s *RedisLockService) Release(ctx context.Context, key, token string) error {
	redisKey := keyPrefix + key

	deleted, err := releaseScript.Run(ctx, s.client, []string{redisKey}, token).Int()
	if err != nil {
		return errs.Wrap(err, "failed to release lock")
	}
	if deleted == 0 {
		s.logger.Warn("release skipped: token mismatch or lock expired", "key", key)
	}
	return nil
}
