package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/zgpcy/stopwatch/internal/collector"
	"github.com/zgpcy/stopwatch/internal/config"
	"github.com/zgpcy/stopwatch/internal/logger"
	"github.com/zgpcy/stopwatch/internal/observer"
	"github.com/zgpcy/stopwatch/internal/server"
	"github.com/zgpcy/stopwatch/internal/stopwatch"
	"github.com/zgpcy/stopwatch/internal/version"
)

var (
	configPath  = flag.String("config", "config.yaml", "Path to configuration file")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	// An explicit -config must exist; the default path is optional
	load := config.LoadOrDefault
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			load = config.Load
		}
	})

	cfg, err := load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logger.New(cfg.LogLevel)
	logger.Info("Stopwatch daemon starting",
		"version", version.Version,
		"config_path", *configPath,
		"http_port", cfg.HTTPPort,
		"autostart", cfg.Autostart)

	sw := stopwatch.New(logger)
	defer sw.Close()

	metricsCollector := collector.NewStopwatchCollector(sw)
	sw.SetObserver(observer.Multi(
		metricsCollector,
		observer.NewLogObserver(logger),
	))

	reg := prometheus.NewRegistry()
	if err := reg.Register(metricsCollector); err != nil {
		logger.Error("Failed to register collector", "error", err)
		os.Exit(1)
	}

	// Go runtime metrics (memory, goroutines, GC stats)
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		logger.Warn("Failed to register Go collector", "error", err)
	}

	// Process metrics (CPU, memory, file descriptors)
	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		logger.Warn("Failed to register process collector", "error", err)
	}

	if cfg.Autostart {
		sw.Start()
		logger.Info("Stopwatch started automatically", "stopwatch_id", sw.ID())
	}

	srv := server.NewServer(cfg, sw, reg, logger)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("Server error", "error", err)
		sw.Close()
		os.Exit(1)

	case sig := <-shutdown:
		logger.Info("Received shutdown signal, starting graceful shutdown", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error during server shutdown", "error", err)
			sw.Close()
			os.Exit(1)
		}

		sw.Close()
		logger.Info("Server stopped gracefully", "total_seconds", sw.TotalSeconds())
	}
}
