package clock

import (
	"sync"
	"time"
)

// Clock provides time-related functions that can be mocked for testing
type Clock interface {
	Now() time.Time

	// Every calls f once per period d until the returned Ticker is stopped.
	Every(d time.Duration, f func()) Ticker
}

// Ticker is a handle to a repeating callback scheduled with Clock.Every
type Ticker interface {
	// Stop cancels the callback. It is safe to call more than once.
	Stop()
}

// RealClock implements Clock using actual system time
type RealClock struct{}

// Now returns the current system time
func (RealClock) Now() time.Time {
	return time.Now()
}

// Every runs f on a dedicated goroutine driven by a time.Ticker.
// Calls to f never overlap. If f runs longer than d, the ticker drops the
// ticks that were missed meanwhile, so f runs fewer times than the number
// of elapsed periods.
func (RealClock) Every(d time.Duration, f func()) Ticker {
	rt := &realTicker{
		ticker: time.NewTicker(d),
		done:   make(chan struct{}),
	}

	go func() {
		defer rt.ticker.Stop()
		for {
			select {
			case <-rt.done:
				return
			case <-rt.ticker.C:
				// done may have been closed while the tick was pending
				select {
				case <-rt.done:
					return
				default:
				}
				f()
			}
		}
	}()

	return rt
}

type realTicker struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *realTicker) Stop() {
	t.once.Do(func() {
		close(t.done)
	})
}
