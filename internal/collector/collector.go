package collector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/zgpcy/stopwatch/internal/stopwatch"
	"github.com/zgpcy/stopwatch/internal/version"
)

// StopwatchCollector implements prometheus.Collector for a stopwatch.
// It is also a stopwatch.Observer that counts time changes.
type StopwatchCollector struct {
	stopwatch *stopwatch.Stopwatch

	totalSecondsMetric *prometheus.Desc
	runningMetric      *prometheus.Desc
	timeChangesTotal   prometheus.Counter
	buildInfo          *prometheus.GaugeVec
}

// NewStopwatchCollector creates a collector reading from sw
func NewStopwatchCollector(sw *stopwatch.Stopwatch) *StopwatchCollector {
	constLabels := prometheus.Labels{"stopwatch_id": sw.ID()}

	buildInfo := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stopwatch_build_info",
			Help: "Build version information",
		},
		[]string{"version", "git_commit", "build_date", "go_version"},
	)

	versionInfo := version.Info()
	buildInfo.With(prometheus.Labels{
		"version":    versionInfo["version"],
		"git_commit": versionInfo["git_commit"],
		"build_date": versionInfo["build_date"],
		"go_version": versionInfo["go_version"],
	}).Set(1)

	return &StopwatchCollector{
		stopwatch: sw,
		totalSecondsMetric: prometheus.NewDesc(
			"stopwatch_total_seconds",
			"Whole seconds accumulated by the stopwatch since the last reset",
			nil,
			constLabels,
		),
		runningMetric: prometheus.NewDesc(
			"stopwatch_running",
			"Whether the stopwatch is running (1 = running, 0 = stopped)",
			nil,
			constLabels,
		),
		timeChangesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "stopwatch_time_changes_total",
			Help:        "Total number of observer notifications (ticks and resets)",
			ConstLabels: constLabels,
		}),
		buildInfo: buildInfo,
	}
}

// OnTimeChanged implements stopwatch.Observer
func (c *StopwatchCollector) OnTimeChanged(*stopwatch.Stopwatch) {
	c.timeChangesTotal.Inc()
}

// Describe implements prometheus.Collector
func (c *StopwatchCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalSecondsMetric
	ch <- c.runningMetric
	c.timeChangesTotal.Describe(ch)
	c.buildInfo.Describe(ch)
}

// Collect implements prometheus.Collector
func (c *StopwatchCollector) Collect(ch chan<- prometheus.Metric) {
	snap := c.stopwatch.Snapshot()

	ch <- prometheus.MustNewConstMetric(
		c.totalSecondsMetric,
		prometheus.GaugeValue,
		float64(snap.TotalSeconds),
	)

	running := 0.0
	if snap.Running {
		running = 1.0
	}
	ch <- prometheus.MustNewConstMetric(
		c.runningMetric,
		prometheus.GaugeValue,
		running,
	)

	c.timeChangesTotal.Collect(ch)
	c.buildInfo.Collect(ch)
}
