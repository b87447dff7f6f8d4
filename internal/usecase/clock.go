package usecase

import (
	"sync"
	"time"
)

// durationClock ticks at a fixed interval, reports elapsed recording time
// and requests exactly one auto-stop when the configured maximum is
// reached. Paused intervals are excluded by the elapsed closure, so while
// the session is paused the reported time freezes and the maximum cannot
// trigger.
type durationClock struct {
	interval time.Duration
	max      time.Duration
	elapsed  func() time.Duration
	onTick   func(seconds float64)
	onMax    func()

	done     chan struct{}
	stopOnce sync.Once
}

func newDurationClock(
	interval time.Duration,
	max time.Duration,
	elapsed func() time.Duration,
	onTick func(seconds float64),
	onMax func(),
) *durationClock {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	return &durationClock{
		interval: interval,
		max:      max,
		elapsed:  elapsed,
		onTick:   onTick,
		onMax:    onMax,
		done:     make(chan struct{}),
	}
}

// run drives the tick loop until stop() or the maximum duration. The
// auto-stop callback fires at most once because run returns immediately
// after invoking it.
func (c *durationClock) run() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			elapsed := c.elapsed()
			if c.max > 0 && elapsed >= c.max {
				if c.onTick != nil {
					c.onTick(c.max.Seconds())
				}
				if c.onMax != nil {
					c.onMax()
				}
				return
			}
			if c.onTick != nil {
				c.onTick(elapsed.Seconds())
			}
		}
	}
}

// stop halts ticking; safe to call repeatedly and on any terminal path.
func (c *durationClock) stop() {
	c.stopOnce.Do(func() {
		close(c.done)
	})
}
