package usecase

import (
	"context"
	"log/slog"
	"time"

	"ReviewScanner/internal/ports"
)

// Retention deletes job artifacts older than a configured age on a
// recurring schedule.
type Retention struct {
	driver ports.Scheduler
	store  ports.JobStore
	maxAge time.Duration
	logger *slog.Logger
}

// NewRetention wires the scheduler driver with the job store.
func NewRetention(driver ports.Scheduler, store ports.JobStore, maxAge time.Duration, logger *slog.Logger) *Retention {
	return &Retention{driver: driver, store: store, maxAge: maxAge, logger: logger}
}

// Start registers the cleanup job with the scheduler.
func (r *Retention) Start(ctx context.Context) error {
	if r.driver == nil || r.store == nil || r.maxAge <= 0 {
		return nil
	}

	job := func(trigger time.Time) {
		cutoff := trigger.Add(-r.maxAge)
		deleted, err := r.store.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			if r.logger != nil {
				r.logger.Error("artifact cleanup failed", "error", err)
			}
			return
		}
		if deleted > 0 && r.logger != nil {
			r.logger.Info("artifact cleanup done", "deleted", deleted, "cutoff", cutoff)
		}
	}

	return r.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (r *Retention) Stop(ctx context.Context) error {
	if r.driver == nil {
		return nil
	}
	return r.driver.Stop(ctx)
}
