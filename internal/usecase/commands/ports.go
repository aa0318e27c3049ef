package commands

import (
	"context"
	"time"
)

// LockService is a cross-instance mutual-exclusion primitive. Acquire
// blocks up to wait for the keyed lock and returns a possession token;
// Release deletes the lock only when the token still matches, so a caller
// can never release a lock it no longer holds. Acquire failing with
// errs.ErrLockTimeout is a caller-retryable outcome, not a cancellation.
type LockService interface {
	Acquire(ctx context.Context, key string, wait time.Duration) (token string, err error)
	Release(ctx context.Context, key, token string) error
}
