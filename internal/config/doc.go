// Package config provides configuration management for the stopwatch daemon.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (highest priority)
//  2. YAML configuration file
//  3. Default values (lowest priority)
//
// Supported environment variables:
//   - STOPWATCH_HTTP_PORT: HTTP server port (1-65535)
//   - STOPWATCH_LOG_LEVEL: Log level (debug, info, warn, error)
//   - STOPWATCH_AUTOSTART: Start the stopwatch at boot (true/false)
//   - STOPWATCH_SHUTDOWN_TIMEOUT: Graceful shutdown timeout in seconds (1-300)
//
// Example configuration file (config.yaml):
//
//	http_port: 8080
//	log_level: "info"
//	autostart: false
//	shutdown_timeout: 30
//
// Example usage:
//
//	cfg, err := config.LoadOrDefault("config.yaml")
//	if err != nil {
//		log.Fatalf("Failed to load config: %v", err)
//	}
package config
