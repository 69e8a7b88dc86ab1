package clock

import (
	"sync"
	"time"
)

// FakeClock is a Clock whose time only moves when Advance is called.
// Tickers scheduled on it fire synchronously inside Advance.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
}

// NewFakeClock creates a FakeClock starting at the given time
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now returns the fake current time
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Every registers f to be called each time Advance crosses a multiple of d
func (c *FakeClock) Every(d time.Duration, f func()) Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for Every")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	t := &fakeTicker{
		clock:  c,
		period: d,
		next:   c.now.Add(d),
		fn:     f,
	}
	c.tickers = append(c.tickers, t)
	return t
}

// Advance moves the clock forward by d, firing due callbacks in time order.
// Callbacks run without the clock lock held, so they may stop tickers or
// schedule new ones.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)

	for {
		due := c.nextDue(target)
		if due == nil {
			break
		}
		if due.next.After(c.now) {
			c.now = due.next
		}
		due.next = due.next.Add(due.period)
		fn := due.fn

		c.mu.Unlock()
		fn()
		c.mu.Lock()
	}

	// a nested or concurrent Advance may already have moved past target
	if target.After(c.now) {
		c.now = target
	}
	c.mu.Unlock()
}

// TickerCount returns the number of tickers that have not been stopped
func (c *FakeClock) TickerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

// nextDue returns the earliest ticker due at or before target. Caller holds c.mu.
func (c *FakeClock) nextDue(target time.Time) *fakeTicker {
	var due *fakeTicker
	for _, t := range c.tickers {
		if t.next.After(target) {
			continue
		}
		if due == nil || t.next.Before(due.next) {
			due = t
		}
	}
	return due
}

func (c *FakeClock) remove(t *fakeTicker) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, other := range c.tickers {
		if other == t {
			c.tickers = append(c.tickers[:i], c.tickers[i+1:]...)
			return
		}
	}
}

type fakeTicker struct {
	clock  *FakeClock
	period time.Duration
	next   time.Time
	fn     func()
}

func (t *fakeTicker) Stop() {
	t.clock.remove(t)
}
