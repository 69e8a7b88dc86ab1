package version

import (
	"fmt"
	"runtime"
)

// Build information. Populated at build-time via ldflags, e.g.
//
//	-ldflags "-X github.com/zgpcy/stopwatch/internal/version.Version=v1.2.0"
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns version information
func Info() map[string]string {
	return map[string]string{
		"version":    Version,
		"git_commit": GitCommit,
		"build_date": BuildDate,
		"go_version": runtime.Version(),
	}
}

// String returns a one-line summary for -version output
func String() string {
	return fmt.Sprintf("stopwatchd %s (commit %s, built %s, %s)", Version, GitCommit, BuildDate, runtime.Version())
}
