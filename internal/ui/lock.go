package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/gofrs/flock"
)

// InstanceLock keeps a second GUI instance from racing the first over
// dialogs and tag writes.
type InstanceLock struct {
	path string
	lock *flock.Flock
}

// NewInstanceLock prepares a lock file under dir, defaulting to a deaddisco
// directory below the XDG runtime dir.
func NewInstanceLock(dir string) (*InstanceLock, error) {
	if dir == "" {
		dir = filepath.Join(xdg.RuntimeDir, "deaddisco")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	path := filepath.Join(dir, "deaddisco.lock")
	return &InstanceLock{path: path, lock: flock.New(path)}, nil
}

// Acquire takes the lock, failing when another instance holds it.
func (l *InstanceLock) Acquire() error {
	ok, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another deaddisco instance is already running")
	}
	return nil
}

// Release drops the lock. Safe to call when the lock was never acquired.
func (l *InstanceLock) Release() {
	_ = l.lock.Unlock()
}

// Path returns the lock file location.
func (l *InstanceLock) Path() string {
	return l.path
}
