// Package server provides the HTTP surface of the stopwatch daemon.
//
// Available endpoints:
//   - /                     : Status page showing elapsed time and state
//   - /metrics              : Prometheus metrics endpoint
//   - /health               : Liveness probe (always returns 200)
//   - /api/stopwatch        : Current state as JSON (GET)
//   - /api/stopwatch/start  : Start the stopwatch (POST)
//   - /api/stopwatch/stop   : Stop the stopwatch (POST)
//   - /api/stopwatch/reset  : Reset the stopwatch (POST)
//
// Control endpoints reply with the state after the operation, e.g.
//
//	{"id":"5f0c...","total_seconds":12,"running":true}
//
// The server is configured with the following timeouts:
//   - Read timeout: 15 seconds
//   - Write timeout: 15 seconds
//   - Idle timeout: 60 seconds
package server
