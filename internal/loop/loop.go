// Package loop drives per-frame work at a fixed interval until the caller
// cancels or the work asks to stop.
package loop

import (
	"context"
	"errors"
	"time"
)

// ErrStop can be returned by a step to end Run without an error.
var ErrStop = errors.New("loop: stop")

// Tick describes one step of the loop.
type Tick struct {
	N     uint64        // 1 for the first step
	Time  time.Time     // when the step started
	Delta time.Duration // time since the previous step, 0 on the first
}

// Step is called once per tick.
type Step func(ctx context.Context, t Tick) error

// Scheduler runs a Step repeatedly.
type Scheduler struct {
	interval time.Duration
	now      func() time.Time
}

// New creates a scheduler. A non-positive interval runs steps back to back.
func New(interval time.Duration) *Scheduler {
	return &Scheduler{interval: interval, now: time.Now}
}

// Interval returns the time between steps.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Run calls fn until ctx is done, fn returns ErrStop, or fn fails. The first
// step runs immediately. Cancellation and ErrStop both return nil.
func (s *Scheduler) Run(ctx context.Context, fn Step) error {
	var ticker *time.Ticker
	if s.interval > 0 {
		ticker = time.NewTicker(s.interval)
		defer ticker.Stop()
	}

	var (
		n    uint64
		last time.Time
	)
	for {
		if ctx.Err() != nil {
			return nil
		}

		now := s.now()
		n++
		t := Tick{N: n, Time: now}
		if n > 1 {
			t.Delta = now.Sub(last)
		}
		last = now

		if err := fn(ctx, t); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}

		if ticker == nil {
			continue
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
