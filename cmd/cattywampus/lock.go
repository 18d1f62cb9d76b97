package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"cattywampus/internal/logging"
)

const (
	lockFileName   = "cattywampus.lock"
	lockRetryDelay = 250 * time.Millisecond
)

// acquireRunLock serialises runs that share a configuration directory. When
// another run holds the lock it waits until that run finishes or ctx ends.
func acquireRunLock(ctx context.Context, configPath string, logger *slog.Logger) (func(), error) {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure lock directory: %w", err)
	}
	lockPath := filepath.Join(dir, lockFileName)
	lock := flock.New(lockPath)

	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		logger.Info("another run is in progress, waiting", logging.String("lock", lockPath))
		ok, err = lock.TryLockContext(ctx, lockRetryDelay)
		if err != nil {
			return nil, fmt.Errorf("acquire run lock: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("acquire run lock: %s is held by another run", lockPath)
		}
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release run lock", logging.String("lock", lockPath), logging.Error(err))
		}
	}, nil
}
