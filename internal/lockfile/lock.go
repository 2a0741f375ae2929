// Package lockfile provides the advisory lock that serializes tix processes
// working on the same data file.
package lockfile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gofrs/flock"
)

// PollInterval is how often a contended lock is retried.
const PollInterval = 50 * time.Millisecond

// ErrLockTimeout is returned when the lock could not be acquired in time.
var ErrLockTimeout = errors.New("timeout waiting for data file lock")

var errLockBusy = errors.New("lock busy")

// Lock is an advisory flock(2)-style lock on a sidecar file.
//
// Exclusive mode is used by mutating commands across load and save;
// shared mode is used by read-only commands so they never observe a
// half-finished save from another process.
type Lock struct {
	flock *flock.Flock
	mode  string // "exclusive" or "shared"
}

// New creates a Lock backed by the file at path. The file is created on first
// acquisition; its parent directory must already exist.
func New(path string) *Lock {
	return &Lock{flock: flock.New(path)}
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.flock.Path()
}

// Mode returns "exclusive", "shared", or "" when not held.
func (l *Lock) Mode() string {
	return l.mode
}

// AcquireExclusive blocks other writers and readers.
func (l *Lock) AcquireExclusive(ctx context.Context, timeout time.Duration) error {
	return l.acquire(ctx, true, timeout)
}

// AcquireShared allows concurrent readers but blocks writers.
func (l *Lock) AcquireShared(ctx context.Context, timeout time.Duration) error {
	return l.acquire(ctx, false, timeout)
}

// Release releases the lock. Safe to call multiple times.
func (l *Lock) Release() error {
	if l.mode == "" {
		return nil
	}
	l.mode = ""
	return l.flock.Unlock()
}

func (l *Lock) acquire(ctx context.Context, exclusive bool, timeout time.Duration) error {
	lockType := "shared"
	if exclusive {
		lockType = "exclusive"
	}

	tryAcquire := func() error {
		var locked bool
		var err error
		if exclusive {
			locked, err = l.flock.TryLock()
		} else {
			locked, err = l.flock.TryRLock()
		}
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to acquire %s lock %s: %w", lockType, l.flock.Path(), err))
		}
		if !locked {
			return errLockBusy
		}
		return nil
	}

	if timeout <= 0 {
		err := tryAcquire()
		if errors.Is(err, errLockBusy) {
			return fmt.Errorf("%w: %s lock %s is held by another process", ErrLockTimeout, lockType, l.flock.Path())
		}
		if err != nil {
			var perm *backoff.PermanentError
			if errors.As(err, &perm) {
				return perm.Err
			}
			return err
		}
		l.mode = lockType
		return nil
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := backoff.Retry(tryAcquire, backoff.WithContext(backoff.NewConstantBackOff(PollInterval), timeoutCtx))
	if err == nil {
		l.mode = lockType
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, errLockBusy) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s lock %s after %v (another tix command may be running)",
			ErrLockTimeout, lockType, l.flock.Path(), time.Since(start).Round(time.Millisecond))
	}
	return err
}
