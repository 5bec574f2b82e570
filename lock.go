package word2pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/sirupsen/logrus"

	"github.com/alnah/go-word2pdf/internal/fileutil"
)

// lockRetryDelay is the polling interval while another process holds the lock.
const lockRetryDelay = 250 * time.Millisecond

// DefaultLockPath returns the engine lock file used unless WithLockFile
// says otherwise.
func DefaultLockPath() string {
	return filepath.Join(os.TempDir(), defaultLockName)
}

// LockHeld reports whether another session currently holds the engine
// lock at path. The lock file is created if missing.
func LockHeld(path string) (bool, error) {
	fl := flock.New(path)
	locked, err := fl.TryLock()
	if err != nil {
		return false, fmt.Errorf("%w: lock file %s: %v", ErrIO, path, err)
	}
	if !locked {
		return true, nil
	}
	if err := fl.Unlock(); err != nil {
		return false, fmt.Errorf("%w: releasing lock file %s: %v", ErrIO, path, err)
	}
	return false, nil
}

// engineLock keeps at most one engine session per machine.
// A zero path disables it.
type engineLock struct {
	path    string
	timeout time.Duration
	logger  *logrus.Logger
}

// acquire blocks until the lock is held, the lock timeout expires or ctx ends.
func (l *engineLock) acquire(ctx context.Context) (release func(), err error) {
	if l.path == "" {
		return func() {}, nil
	}

	if err := fileutil.EnsureParentDir(l.path); err != nil {
		return nil, fmt.Errorf("%w: lock file %s: %v", ErrIO, l.path, err)
	}

	fl := flock.New(l.path)
	lockCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	start := time.Now()
	locked, err := fl.TryLockContext(lockCtx, lockRetryDelay)
	// Cancellation passes through; any deadline means the engine stayed busy.
	if err != nil && errors.Is(ctx.Err(), context.Canceled) {
		return nil, ctx.Err()
	}
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w: lock file %s: %v", ErrIO, l.path, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: waited %s for %s",
			ErrEngineLocked, time.Since(start).Round(time.Millisecond), l.path)
	}

	return func() {
		if err := fl.Unlock(); err != nil {
			l.logger.WithError(err).WithField("lock", l.path).Warn("Failed to release engine lock")
		}
	}, nil
}
