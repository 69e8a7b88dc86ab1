// Package stopwatch implements a whole-second stopwatch with a single observer.
//
// A Stopwatch starts stopped at zero. While running it adds one to its
// total once per elapsed second and notifies its observer after every
// change. Stop pauses accumulation; Reset stops and zeroes the total.
//
// State machine:
//   - Stopped --Start--> Running
//   - Running --Stop--> Stopped
//   - Running --Reset--> Stopped (total zeroed)
//   - Stopped --Reset--> Stopped (total zeroed)
//
// Start on a running stopwatch and Stop on a stopped one are no-ops. Reset
// always notifies the observer, including when the total was already zero.
//
// The one-second tick is scheduled through a clock.Clock. Once Stop, Reset
// or Close returns, no further tick from the cancelled schedule is counted
// or notified.
//
// Notifications are delivered one at a time and never concurrently. An
// observer may call Start, Stop or Reset from inside OnTimeChanged; the
// resulting notification follows once the callback returns.
//
// Example usage:
//
//	sw := stopwatch.New(log)
//	sw.SetObserver(stopwatch.ObserverFunc(func(sw *stopwatch.Stopwatch) {
//		fmt.Printf("elapsed: %ds\n", sw.TotalSeconds())
//	}))
//	sw.Start()
//	defer sw.Close()
package stopwatch
