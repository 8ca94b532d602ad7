package state

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// RunLock is an advisory lock on the data dir. One run is expected to
// finish (including the final persist) before the next starts; the lock
// turns an overlapping scheduler fire into a clean abort instead of an
// interleaved load/save cycle.
type RunLock struct {
	fl *flock.Flock
}

// AcquireRunLock takes the lock without blocking; a second concurrent
// run fails fast rather than queueing behind the first.
func AcquireRunLock(dataDir string) (*RunLock, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	fl := flock.New(filepath.Join(dataDir, "jobdigest.lock"))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another run holds the lock (%s)", fl.Path())
	}
	return &RunLock{fl: fl}, nil
}

func (l *RunLock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}
