// Package config implements the layered YAML configuration governing
// ambient run parameters: parameters orthogonal to the declarative
// registration data the core engine consumes, and never read by the
// core directly — only by the cmd-level driver that wires engine and
// observers together.
package config

import "time"

// RunnerConfig is the top-level configuration structure.
type RunnerConfig struct {
	Waiting  WaitingSettings  `yaml:"waiting"`
	Reporter ReporterSettings `yaml:"reporter"`
}

// WaitingSettings holds timing settings for the expectation/waiter
// subsystem. Both fields are loaded and merged, but nothing in the
// runtime reads them: every Wait call passes its own timeout, and
// internal/expect uses a fixed 100ms suspension slice.
type WaitingSettings struct {
	// DefaultTimeout is a default wait timeout; no call site reads it.
	DefaultTimeout time.Duration `yaml:"defaultTimeout,omitempty"`
	// SuspensionSliceCeiling is a ceiling on how long a Waiter sleeps
	// between wake checks; the Waiter does not read it and always uses
	// its own 100ms ceiling.
	SuspensionSliceCeiling time.Duration `yaml:"suspensionSliceCeiling,omitempty"`
}

// ReporterMode selects which ObservationHub observer the driver wires
// up by default.
type ReporterMode string

const (
	ReporterModeCLI ReporterMode = "cli"
	ReporterModeTUI ReporterMode = "tui"
)

// ReporterSettings governs which observer runs by default and how
// verbose its diagnostic logging is.
type ReporterSettings struct {
	Mode  ReporterMode `yaml:"mode,omitempty"`
	Debug bool         `yaml:"debug,omitempty"`
}

// DefaultConfig returns the built-in baseline, layered under any
// user/project file found by Load.
func DefaultConfig() RunnerConfig {
	return RunnerConfig{
		Waiting: WaitingSettings{
			DefaultTimeout:         5 * time.Second,
			SuspensionSliceCeiling: 100 * time.Millisecond,
		},
		Reporter: ReporterSettings{
			Mode:  ReporterModeCLI,
			Debug: false,
		},
	}
}
