// Package headless runs the game without a terminal, driven by a clock and
// an automatic input source.
package headless

import (
	"context"
	"time"
)

// Clock paces the simulation. Wait blocks until the next tick is due or ctx
// is done.
type Clock interface {
	Wait(ctx context.Context) error
}

// TickerClock fires at a fixed interval.
type TickerClock struct {
	ticker *time.Ticker
}

// NewTickerClock creates a clock that ticks every interval.
func NewTickerClock(interval time.Duration) *TickerClock {
	return &TickerClock{ticker: time.NewTicker(interval)}
}

// Wait blocks until the next tick.
func (c *TickerClock) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ticker.C:
		return nil
	}
}

// Stop releases the ticker.
func (c *TickerClock) Stop() {
	c.ticker.Stop()
}

// ImmediateClock never waits, so the simulation runs as fast as possible.
type ImmediateClock struct{}

// Wait returns at once unless ctx is done.
func (ImmediateClock) Wait(ctx context.Context) error {
	return ctx.Err()
}
