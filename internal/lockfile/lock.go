// Package lockfile guards the ticket data file with an advisory OS lock so two
// tk invocations never interleave their load and save.
package lockfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ErrLockBusy is returned when another process holds the lock.
var ErrLockBusy = errors.New("lock busy: held by another process")

// LockInfo is written into the lock file by the holder.
type LockInfo struct {
	PID       int       `json:"pid"`
	Command   string    `json:"command,omitempty"`
	StartedAt time.Time `json:"started_at"`
}

// Lock is an acquired exclusive lock. Release must be called exactly once.
type Lock struct {
	f    *os.File
	path string
}

// PathFor returns the lock file path guarding dataFile.
func PathFor(dataFile string) string {
	return dataFile + ".lock"
}

// Acquire takes an exclusive lock on path, retrying with exponential backoff
// until timeout elapses or ctx is done. A zero timeout tries exactly once.
func Acquire(ctx context.Context, path, command string, timeout time.Duration) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("lockfile: create directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644) // #nosec G304 - path derived from configured data file
	if err != nil {
		return nil, fmt.Errorf("lockfile: open %s: %w", path, err)
	}

	try := func() error {
		err := flockExclusiveNonBlock(f)
		if err != nil && !errors.Is(err, ErrLockBusy) {
			return backoff.Permanent(err)
		}
		return err
	}

	if timeout <= 0 {
		err = try()
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			err = perm.Err
		}
	} else {
		bo := backoff.NewExponentialBackOff()
		bo.InitialInterval = 10 * time.Millisecond
		bo.MaxInterval = 250 * time.Millisecond
		bo.MaxElapsedTime = timeout
		err = backoff.Retry(try, backoff.WithContext(bo, ctx))
	}
	if err != nil {
		_ = f.Close()
		if errors.Is(err, ErrLockBusy) {
			if info, infoErr := ReadLockInfo(path); infoErr == nil && info.PID > 0 {
				return nil, fmt.Errorf("lockfile: %s (pid %d, %s): %w", path, info.PID, info.Command, err)
			}
		}
		return nil, fmt.Errorf("lockfile: %s: %w", path, err)
	}

	l := &Lock{f: f, path: path}
	l.writeInfo(command)
	return l, nil
}

// writeInfo records the holder in the lock file. Failures only affect the
// diagnostic shown to a blocked process, so they are ignored.
func (l *Lock) writeInfo(command string) {
	data, err := json.Marshal(LockInfo{PID: os.Getpid(), Command: command, StartedAt: time.Now().UTC()})
	if err != nil {
		return
	}
	if err := l.f.Truncate(0); err != nil {
		return
	}
	_, _ = l.f.WriteAt(data, 0)
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks and closes the lock file. The file itself is left in place
// so concurrent openers always lock the same inode.
func (l *Lock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	unlockErr := flockUnlock(l.f)
	closeErr := l.f.Close()
	l.f = nil
	if unlockErr != nil {
		return fmt.Errorf("lockfile: unlock %s: %w", l.path, unlockErr)
	}
	if closeErr != nil {
		return fmt.Errorf("lockfile: close %s: %w", l.path, closeErr)
	}
	return nil
}

// ReadLockInfo reads the holder information from a lock file.
func ReadLockInfo(path string) (*LockInfo, error) {
	data, err := os.ReadFile(path) // #nosec G304 - controlled path
	if err != nil {
		return nil, err
	}
	var info LockInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("lockfile: parse %s: %w", path, err)
	}
	return &info, nil
}
