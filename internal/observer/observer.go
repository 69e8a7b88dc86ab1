// Package observer provides stopwatch.Observer implementations that can be
// combined in the stopwatch's single observer slot.
package observer

import (
	"github.com/zgpcy/stopwatch/internal/logger"
	"github.com/zgpcy/stopwatch/internal/stopwatch"
)

type multi []stopwatch.Observer

// Multi returns an observer that forwards each notification to every
// non-nil observer in order
func Multi(observers ...stopwatch.Observer) stopwatch.Observer {
	m := make(multi, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			m = append(m, o)
		}
	}
	return m
}

func (m multi) OnTimeChanged(sw *stopwatch.Stopwatch) {
	for _, o := range m {
		o.OnTimeChanged(sw)
	}
}

// LogObserver logs every time change at debug level
type LogObserver struct {
	logger *logger.Logger
}

// NewLogObserver creates a LogObserver writing to log
func NewLogObserver(log *logger.Logger) *LogObserver {
	return &LogObserver{logger: log}
}

// OnTimeChanged implements stopwatch.Observer
func (l *LogObserver) OnTimeChanged(sw *stopwatch.Stopwatch) {
	snap := sw.Snapshot()
	l.logger.Debug("Stopwatch time changed",
		"stopwatch_id", snap.ID,
		"total_seconds", snap.TotalSeconds,
		"running", snap.Running)
}
