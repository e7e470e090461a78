package scheduler

import (
	"context"
	"time"

	"ReviewScanner/internal/ports"
)

// TickerScheduler fires the registered job once at start and then on a
// fixed interval.
type TickerScheduler struct {
	interval time.Duration
	stop     chan struct{}
}

var _ ports.Scheduler = (*TickerScheduler)(nil)

// NewTickerScheduler builds a scheduler with the given interval. Intervals
// below one minute are clamped to one minute.
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	if interval < time.Minute {
		interval = time.Minute
	}
	return &TickerScheduler{interval: interval}
}

// Start begins ticking. Calling Start twice is a no-op.
func (s *TickerScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	if s.stop != nil {
		return nil
	}

	s.stop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		job(time.Now())
		for {
			select {
			case t := <-ticker.C:
				job(t)
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			}
		}
	}()

	return nil
}

// Stop halts the ticker goroutine.
func (s *TickerScheduler) Stop(ctx context.Context) error {
	if s.stop == nil {
		return nil
	}
	close(s.stop)
	s.stop = nil
	return nil
}
