// Package instance keeps a single engine running per data directory.
package instance

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockName = "leaddash.lock"

var ErrAlreadyRunning = errors.New("another leaddash engine is using this data dir")

// Acquire takes the data dir lock without blocking. The returned func
// releases it.
func Acquire(dataDir string) (release func() error, err error) {
	fl := flock.New(filepath.Join(dataDir, lockName))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", fl.Path(), err)
	}
	if !ok {
		return nil, ErrAlreadyRunning
	}
	return fl.Unlock, nil
}
