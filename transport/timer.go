package transport

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
)

// Timer aligns receive windows with the end of a transmission.
type Timer interface {
	// Reset takes the current instant as the baseline for At.
	Reset()

	// At waits until offset has elapsed since the last Reset. Calls made
	// after the same Reset all measure from that one baseline. At never
	// returns early; late is acceptable.
	At(ctx context.Context, offset time.Duration) error

	// Delay waits for d from the moment it is called.
	Delay(ctx context.Context, d time.Duration) error
}

// ClockTimer implements Timer on a clock.Clock.
type ClockTimer struct {
	clock clock.Clock
	base  time.Time
}

// NewTimer returns a Timer on c, or on the wall clock if c is nil. The
// baseline starts at construction time.
func NewTimer(c clock.Clock) *ClockTimer {
	if c == nil {
		c = clock.New()
	}
	return &ClockTimer{clock: c, base: c.Now()}
}

func (t *ClockTimer) Reset() { t.base = t.clock.Now() }

// Baseline returns the instant of the last Reset.
func (t *ClockTimer) Baseline() time.Time { return t.base }

func (t *ClockTimer) At(ctx context.Context, offset time.Duration) error {
	return t.until(ctx, t.base.Add(offset))
}

func (t *ClockTimer) Delay(ctx context.Context, d time.Duration) error {
	return t.until(ctx, t.clock.Now().Add(d))
}

// until sleeps until deadline, checking the clock again after every wake so
// a timer firing early only costs another round.
func (t *ClockTimer) until(ctx context.Context, deadline time.Time) error {
	for {
		remaining := deadline.Sub(t.clock.Now())
		if remaining <= 0 {
			return nil
		}
		timer := t.clock.Timer(remaining)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
