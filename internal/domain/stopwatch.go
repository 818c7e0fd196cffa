package domain

import (
	"context"
	"time"
)

// Stopwatch measures the response time of the current question. It is a value type so
// it travels inside session snapshots.
type Stopwatch struct {
	StartedAt time.Time  `json:"started_at"`
	PausedAt  *time.Time `json:"paused_at,omitempty"`
}

// StartStopwatch returns a running stopwatch started at now.
func StartStopwatch(now time.Time) Stopwatch {
	return Stopwatch{StartedAt: now}
}

// Paused reports whether the stopwatch has been frozen.
func (s Stopwatch) Paused() bool {
	return s.PausedAt != nil
}

// Pause freezes the stopwatch and returns the elapsed time at that instant.
// Pausing an already paused stopwatch keeps the first pause.
func (s *Stopwatch) Pause(now time.Time) time.Duration {
	if s.PausedAt == nil {
		at := now
		s.PausedAt = &at
	}
	return s.Elapsed(now)
}

// Elapsed is the time accrued until now, or until the pause if paused. Never negative.
func (s Stopwatch) Elapsed(now time.Time) time.Duration {
	if s.StartedAt.IsZero() {
		return 0
	}
	end := now
	if s.PausedAt != nil {
		end = *s.PausedAt
	}
	d := end.Sub(s.StartedAt)
	if d < 0 {
		return 0
	}
	return d
}

// RunTicker emits the elapsed time of the stopwatch returned by current at a fixed
// interval until ctx is cancelled, then closes the channel. Ticks are dropped when the
// reader falls behind. The values are for display only.
func RunTicker(ctx context.Context, interval time.Duration, now func() time.Time, current func() Stopwatch) <-chan time.Duration {
	out := make(chan time.Duration, 1)
	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				select {
				case out <- current().Elapsed(now()):
				default:
				}
			}
		}
	}()
	return out
}
