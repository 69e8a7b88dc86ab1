package clock

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeClock_Now(t *testing.T) {
	c := NewFakeClock(epoch)

	if !c.Now().Equal(epoch) {
		t.Errorf("Now() = %v, want %v", c.Now(), epoch)
	}

	c.Advance(90 * time.Second)
	if want := epoch.Add(90 * time.Second); !c.Now().Equal(want) {
		t.Errorf("Now() after Advance = %v, want %v", c.Now(), want)
	}
}

func TestFakeClock_EveryFiresPerPeriod(t *testing.T) {
	c := NewFakeClock(epoch)
	calls := 0
	c.Every(time.Second, func() { calls++ })

	c.Advance(500 * time.Millisecond)
	if calls != 0 {
		t.Errorf("calls after 0.5s = %d, want 0", calls)
	}

	c.Advance(500 * time.Millisecond)
	if calls != 1 {
		t.Errorf("calls after 1s = %d, want 1", calls)
	}

	c.Advance(3 * time.Second)
	if calls != 4 {
		t.Errorf("calls after 4s = %d, want 4", calls)
	}
}

func TestFakeClock_CallbackSeesTickTime(t *testing.T) {
	c := NewFakeClock(epoch)
	var seen []time.Time
	c.Every(time.Second, func() { seen = append(seen, c.Now()) })

	c.Advance(2 * time.Second)

	if len(seen) != 2 {
		t.Fatalf("Expected 2 ticks, got %d", len(seen))
	}
	for i, ts := range seen {
		want := epoch.Add(time.Duration(i+1) * time.Second)
		if !ts.Equal(want) {
			t.Errorf("tick %d at %v, want %v", i, ts, want)
		}
	}
}

func TestFakeClock_StopInsideCallback(t *testing.T) {
	c := NewFakeClock(epoch)
	calls := 0
	var tk Ticker
	tk = c.Every(time.Second, func() {
		calls++
		tk.Stop()
	})

	c.Advance(5 * time.Second)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if c.TickerCount() != 0 {
		t.Errorf("TickerCount() = %d, want 0", c.TickerCount())
	}
}

func TestFakeClock_StopIsIdempotent(t *testing.T) {
	c := NewFakeClock(epoch)
	tk := c.Every(time.Second, func() {})

	tk.Stop()
	tk.Stop()

	if c.TickerCount() != 0 {
		t.Errorf("TickerCount() = %d, want 0", c.TickerCount())
	}
}

func TestFakeClock_InterleavesTickers(t *testing.T) {
	c := NewFakeClock(epoch)
	var order []string
	c.Every(2*time.Second, func() { order = append(order, "slow") })
	c.Every(time.Second, func() { order = append(order, "fast") })

	c.Advance(2 * time.Second)

	// ties at 2s go to the ticker registered first
	want := []string{"fast", "slow", "fast"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, order[i], want[i])
		}
	}
}

func TestFakeClock_NestedAdvanceNeverRewinds(t *testing.T) {
	c := NewFakeClock(epoch)
	nested := false
	c.Every(time.Second, func() {
		if !nested {
			nested = true
			c.Advance(10 * time.Second)
		}
	})

	// the outer call targets 4s but the nested one already reached 11s
	c.Advance(4 * time.Second)

	if want := epoch.Add(11 * time.Second); !c.Now().Equal(want) {
		t.Errorf("Now() = %v, want %v", c.Now(), want)
	}
}

func TestFakeClock_ConcurrentAdvanceIsMonotonic(t *testing.T) {
	c := NewFakeClock(epoch)
	c.Every(time.Second, func() {})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				before := c.Now()
				c.Advance(time.Second)
				if c.Now().Before(before) {
					t.Errorf("Now() moved backwards from %v to %v", before, c.Now())
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestRealClock_Every(t *testing.T) {
	var calls atomic.Int32
	tk := RealClock{}.Every(10*time.Millisecond, func() { calls.Add(1) })

	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	tk.Stop()
	tk.Stop()

	if calls.Load() < 3 {
		t.Fatalf("Expected at least 3 calls, got %d", calls.Load())
	}

	// allow an in-flight callback to finish, then make sure nothing else arrives
	time.Sleep(30 * time.Millisecond)
	stopped := calls.Load()
	time.Sleep(50 * time.Millisecond)
	if calls.Load() != stopped {
		t.Errorf("callback fired after Stop: %d -> %d", stopped, calls.Load())
	}
}
