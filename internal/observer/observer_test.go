package observer

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/zgpcy/stopwatch/internal/clock"
	"github.com/zgpcy/stopwatch/internal/logger"
	"github.com/zgpcy/stopwatch/internal/stopwatch"
)

func newStopwatch() (*stopwatch.Stopwatch, *clock.FakeClock) {
	clk := clock.NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	return stopwatch.NewWithClock(clk, logger.New("error")), clk
}

func TestMulti_ForwardsInOrder(t *testing.T) {
	sw, clk := newStopwatch()

	var calls []string
	first := stopwatch.ObserverFunc(func(sw *stopwatch.Stopwatch) { calls = append(calls, "first") })
	second := stopwatch.ObserverFunc(func(sw *stopwatch.Stopwatch) { calls = append(calls, "second") })

	sw.SetObserver(Multi(first, nil, second))
	sw.Start()
	clk.Advance(time.Second)

	want := []string{"first", "second"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %s, want %s", i, calls[i], want[i])
		}
	}
}

func TestMulti_Empty(t *testing.T) {
	sw, _ := newStopwatch()
	sw.SetObserver(Multi())

	// must not panic
	sw.Reset()
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	sw, clk := newStopwatch()
	sw.SetObserver(NewLogObserver(logger.NewWithWriter("debug", &buf)))

	sw.Start()
	clk.Advance(time.Second)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to decode log line %q: %v", buf.String(), err)
	}
	if entry["msg"] != "Stopwatch time changed" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["stopwatch_id"] != sw.ID() {
		t.Errorf("stopwatch_id = %v, want %s", entry["stopwatch_id"], sw.ID())
	}
	if entry["total_seconds"] != float64(1) {
		t.Errorf("total_seconds = %v, want 1", entry["total_seconds"])
	}
	if entry["running"] != true {
		t.Errorf("running = %v, want true", entry["running"])
	}
}
