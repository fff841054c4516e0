// Package lock provides an advisory file lock serializing the
// load-modify-save cycle across concurrent skynet-loop invocations.
//
// Locks are acquired non-blocking and retried until the context is
// canceled or the timeout elapses, so a signal can always interrupt a
// wait on a stuck lock holder.
package lock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrTimeout is returned when the lock is not acquired within the
// configured timeout.
var ErrTimeout = errors.New("lock acquisition timed out")

// retryInterval is the delay between non-blocking acquisition attempts.
const retryInterval = 50 * time.Millisecond

// FileLock is an advisory lock backed by a lock file next to the state
// file. The zero value is not usable; construct with New.
type FileLock struct {
	path    string
	timeout time.Duration
}

// New returns a FileLock for the given lock file path.
func New(path string, timeout time.Duration) *FileLock {
	return &FileLock{path: path, timeout: timeout}
}

// Acquire obtains the lock, retrying until the context is canceled or
// the timeout elapses. The returned release function must be called to
// unlock; it is safe to call exactly once.
func (l *FileLock) Acquire(ctx context.Context) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	deadline := time.Now().Add(l.timeout)
	for {
		err := flockTry(f)
		if err == nil {
			return func() {
				_ = flockUnlock(f)
				f.Close()
			}, nil
		}
		if !isWouldBlock(err) {
			f.Close()
			return nil, fmt.Errorf("acquire lock: %w", err)
		}
		if time.Now().After(deadline) {
			f.Close()
			return nil, fmt.Errorf("%w after %s: %s", ErrTimeout, l.timeout, l.path)
		}

		select {
		case <-ctx.Done():
			f.Close()
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
}
