// Package config handles application configuration and setup
package config

import (
	"time"

	"github.com/retroenv/retrogolib/log"
)

// RefreshRate is the display and timer update frequency in Hz.
const RefreshRate = 60

// FrameInterval is the duration of a single display frame.
const FrameInterval = time.Second / RefreshRate

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// StepsPerFrame returns the number of instructions to execute per
// display frame for the given instructions per second rate. At least
// one instruction is executed per frame.
func StepsPerFrame(ips int) int {
	steps := ips / RefreshRate
	if steps < 1 {
		steps = 1
	}
	return steps
}
