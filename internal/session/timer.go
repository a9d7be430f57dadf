package session

import (
	"sync"
	"time"
)

// Countdown is a single-shot countdown clock. It emits one strictly
// decreasing tick per elapsed interval, fires the expiry callback exactly
// once when it reaches zero, then halts. Stop is idempotent and safe from
// any goroutine.
//
// Remaining values are derived from a wall-clock deadline rather than a
// decremented counter, so scheduling jitter cannot accumulate drift.
type Countdown struct {
	mu        sync.Mutex
	interval  time.Duration
	remaining int
	started   bool
	stopped   bool
	stopCh    chan struct{}
}

// CountdownOption configures a Countdown.
type CountdownOption func(*Countdown)

// WithInterval overrides the one-second tick interval. Tests use short
// intervals to run real countdowns quickly.
func WithInterval(d time.Duration) CountdownOption {
	return func(c *Countdown) {
		if d > 0 {
			c.interval = d
		}
	}
}

// NewCountdown creates a countdown holding the given number of seconds.
func NewCountdown(seconds int, opts ...CountdownOption) *Countdown {
	if seconds < 0 {
		seconds = 0
	}
	c := &Countdown{
		interval:  time.Second,
		remaining: seconds,
		stopCh:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins ticking. onTick receives the remaining count after each
// elapsed interval, ending with 0; onExpire fires once after the final tick.
// Start on an already started or stopped countdown is a no-op.
func (c *Countdown) Start(onTick func(remaining int), onExpire func()) {
	c.mu.Lock()
	if c.started || c.stopped {
		c.mu.Unlock()
		return
	}
	c.started = true
	total := c.remaining
	interval := c.interval
	c.mu.Unlock()

	if total == 0 {
		if onExpire != nil {
			onExpire()
		}
		c.Stop()
		return
	}

	go c.run(total, interval, onTick, onExpire)
}

func (c *Countdown) run(total int, interval time.Duration, onTick func(int), onExpire func()) {
	deadline := time.Now().Add(time.Duration(total) * interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := total
	for {
		select {
		case <-c.stopCh:
			return
		case now := <-ticker.C:
			remaining := int(time.Until(deadline) / interval)
			if now.After(deadline) || remaining < 0 {
				remaining = 0
			}
			if remaining >= last {
				// Early wakeup; not a full interval yet.
				continue
			}
			last = remaining

			c.mu.Lock()
			c.remaining = remaining
			c.mu.Unlock()

			if onTick != nil {
				onTick(remaining)
			}
			if remaining == 0 {
				c.Stop()
				if onExpire != nil {
					onExpire()
				}
				return
			}
		}
	}
}

// Stop halts the countdown. Safe to call multiple times.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	close(c.stopCh)
}

// Remaining returns the last observed remaining count.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}
