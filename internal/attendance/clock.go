package attendance

import (
	"sync"
	"time"

	"presensi/internal/localtime"
)

// Clock keeps the check-in screen's day and time-of-day strings current on a
// fixed interval, independent of network state. Close stops the ticker; a
// torn-down screen must not leak its timer.
type Clock struct {
	mu        sync.Mutex
	day       string
	timeOfDay string
	ticker    *time.Ticker
	done      chan struct{}
	closeOnce sync.Once
}

// NewClock starts a clock ticking at the given interval.
func NewClock(interval time.Duration) *Clock {
	if interval <= 0 {
		interval = time.Second
	}
	c := &Clock{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	c.set(time.Now())
	go c.run()
	return c
}

func (c *Clock) run() {
	for {
		select {
		case t := <-c.ticker.C:
			c.set(t)
		case <-c.done:
			return
		}
	}
}

func (c *Clock) set(t time.Time) {
	c.mu.Lock()
	c.day = localtime.Day(t)
	c.timeOfDay = localtime.TimeOfDay(t)
	c.mu.Unlock()
}

// Now returns the current display strings.
func (c *Clock) Now() (day, timeOfDay string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.day, c.timeOfDay
}

// Close stops the ticker.
func (c *Clock) Close() {
	c.closeOnce.Do(func() {
		c.ticker.Stop()
		close(c.done)
	})
}
