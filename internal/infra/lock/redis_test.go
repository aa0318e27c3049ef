//go:build unit

package lock_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"laundry-orders/internal/infra/lock"
	"laundry-orders/internal/pkg/errs"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLockService(t *testing.T) (*lock.RedisLockService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return lock.NewRedisLockService(client, logger, time.Second, 5*time.Millisecond), mr
}

func TestRedisLockAcquireRelease(t *testing.T) {
	svc, mr := newLockService(t)
	ctx := context.Background()

	token, err := svc.Acquire(ctx, "slot:a:2026-09-07", 100*time.Millisecond)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, mr.Exists("lock:slot:a:2026-09-07"))

	require.NoError(t, svc.Release(ctx, "slot:a:2026-09-07", token))
	assert.False(t, mr.Exists("lock:slot:a:2026-09-07"))
}

func TestRedisLockContention(t *testing.T) {
	svc, _ := newLockService(t)
	ctx := context.Background()

	token, err := svc.Acquire(ctx, "slot:a:2026-09-07", 100*time.Millisecond)
	require.NoError(t, err)

	// held by someone else: waits then fails with the timeout sentinel
	_, err = svc.Acquire(ctx, "slot:a:2026-09-07", 30*time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrLockTimeout)

	// a different slot/date key is unaffected
	other, err := svc.Acquire(ctx, "slot:b:2026-09-07", 30*time.Millisecond)
	require.NoError(t, err)
	require.NotEmpty(t, other)

	// once released, the waiter can get in
	require.NoError(t, svc.Release(ctx, "slot:a:2026-09-07", token))
	token2, err := svc.Acquire(ctx, "slot:a:2026-09-07", 100*time.Millisecond)
	require.NoError(t, err)
	assert.NotEqual(t, token, token2)
}

func TestRedisLockReleaseTokenMismatch(t *testing.T) {
	svc, mr := newLockService(t)
	ctx := context.Background()

	token, err := svc.Acquire(ctx, "slot:a:2026-09-07", 100*time.Millisecond)
	require.NoError(t, err)

	// releasing with the wrong token must leave the lock in place
	require.NoError(t, svc.Release(ctx, "slot:a:2026-09-07", "stale-token"))
	assert.True(t, mr.Exists("lock:slot:a:2026-09-07"))

	require.NoError(t, svc.Release(ctx, "slot:a:2026-09-07", token))
	assert.False(t, mr.Exists("lock:slot:a:2026-09-07"))
}

func TestRedisLockExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := lock.NewRedisLockService(client, logger, 50*time.Millisecond, 5*time.Millisecond)

	ctx := context.Background()
	_, err := svc.Acquire(ctx, "slot:a:2026-09-07", 20*time.Millisecond)
	require.NoError(t, err)

	// a crashed holder frees the slot after the TTL elapses
	mr.FastForward(60 * time.Millisecond)
	_, err = svc.Acquire(ctx, "slot:a:2026-09-07", 20*time.Millisecond)
	require.NoError(t, err)
}

func TestRedisLockContextCancelled(t *testing.T) {
	svc, _ := newLockService(t)

	_, err := svc.Acquire(context.Background(), "slot:a:2026-09-07", time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = svc.Acquire(ctx, "slot:a:2026-09-07", time.Second)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrLockTimeout)
}
