package toast

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Countdown calls onExpire once its duration has elapsed while running.
// Pausing keeps the remaining time; resuming continues from it.
type Countdown struct {
	mu        sync.Mutex
	clock     clockwork.Clock
	duration  time.Duration
	remaining time.Duration
	startedAt time.Time
	timer     clockwork.Timer
	running   bool
	done      bool
	gen       uint64
	onExpire  func()
}

// StartCountdown starts a running countdown of d.
func StartCountdown(clock clockwork.Clock, d time.Duration, onExpire func()) *Countdown {
	if d < 0 {
		d = 0
	}

	c := &Countdown{
		clock:     clock,
		duration:  d,
		remaining: d,
		onExpire:  onExpire,
	}

	c.mu.Lock()
	c.start()
	c.mu.Unlock()

	return c
}

// Pause stops the clock. It reports false if the countdown is already
// paused, stopped or expired.
func (c *Countdown) Pause() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.done {
		return false
	}

	c.timer.Stop()
	c.gen++
	c.remaining = c.left()
	c.running = false

	return true
}

// Resume restarts the clock from the remaining time.
func (c *Countdown) Resume() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running || c.done {
		return false
	}

	c.start()

	return true
}

// Stop cancels the countdown for good. onExpire will not be called.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
	c.gen++
	c.running = false
	c.done = true
}

func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return c.left()
	}
	return c.remaining
}

// Progress is the remaining fraction, from 1 at start down to 0.
func (c *Countdown) Progress() float64 {
	if c.duration == 0 {
		return 0
	}
	return float64(c.Remaining()) / float64(c.duration)
}

func (c *Countdown) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return !c.running && !c.done
}

// start must be called with mu held.
func (c *Countdown) start() {
	c.gen++
	gen := c.gen
	c.startedAt = c.clock.Now()
	c.running = true
	c.timer = c.clock.AfterFunc(c.remaining, func() {
		c.fire(gen)
	})
}

// left must be called with mu held.
func (c *Countdown) left() time.Duration {
	left := c.remaining - c.clock.Since(c.startedAt)
	if left < 0 {
		return 0
	}
	return left
}

func (c *Countdown) fire(gen uint64) {
	c.mu.Lock()
	if c.done || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.done = true
	c.running = false
	c.remaining = 0
	c.mu.Unlock()

	if c.onExpire != nil {
		c.onExpire()
	}
}
