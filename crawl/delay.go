package crawl

import (
	"context"
	"time"
)

// Delayer enforces a fixed pause before each fetch of a crawl session.
// Unlike a token bucket it never lets requests burst: every call waits
// the full delay.
type Delayer struct {
	Delay time.Duration
}

// Wait blocks for the configured delay.
// Returns the context error if ctx is canceled first.
func (d Delayer) Wait(ctx context.Context) error {
	if d.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
