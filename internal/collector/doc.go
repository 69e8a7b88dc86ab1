// Package collector implements a Prometheus collector for a stopwatch.
//
// The collector exposes the following metrics, each labelled with the
// stopwatch_id of the instance:
//   - stopwatch_total_seconds: Whole seconds accumulated since the last reset
//   - stopwatch_running: 1 while running, 0 while stopped
//   - stopwatch_time_changes_total: Number of observer notifications seen
//   - stopwatch_build_info: Build version information
//
// Gauges are read from the stopwatch at scrape time. The change counter is
// driven by registering the collector as (part of) the stopwatch observer.
//
// Example usage:
//
//	sw := stopwatch.New(log)
//	c := collector.NewStopwatchCollector(sw)
//	sw.SetObserver(c)
//	prometheus.MustRegister(c)
package collector
