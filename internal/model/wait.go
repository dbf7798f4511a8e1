package model

import (
	"context"
	"fmt"
	"recipe/internal/config"
	"time"

	"github.com/sirupsen/logrus"
)

// Probe reports whether a dependency is reachable.
type Probe func(ctx context.Context) error

// WaitFor calls probe until it succeeds, sleeping interval between attempts.
// It only gives up when ctx is done.
func WaitFor(ctx context.Context, probe Probe, interval time.Duration) error {
	if probe == nil {
		return fmt.Errorf("probe is nil")
	}
	if interval <= 0 {
		interval = time.Second
	}

	attempt := 0
	for {
		attempt++
		err := probe(ctx)
		if err == nil {
			logrus.WithField("attempts", attempt).Info("database is available")
			return nil
		}
		logrus.WithError(err).WithField("attempt", attempt).Warn("database unavailable, waiting")

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("gave up waiting for database after %d attempts: %w", attempt, ctx.Err())
		case <-timer.C:
		}
	}
}

// DatabaseProbe opens a connection with cfg, pings it and closes it again.
func DatabaseProbe(cfg *config.Config) Probe {
	factory := NewRepositoryFactory()
	return func(ctx context.Context) error {
		db, err := factory.OpenDB(cfg)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()
		return sqlDB.PingContext(ctx)
	}
}
