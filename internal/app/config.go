package app

import "xctestgo/internal/config"

// Config holds the process-level settings a cmd entry point gathers
// from flags, as distinct from the layered YAML config it then loads.
type Config struct {
	// BundleName labels the root "<BundleName>.xctest" suite for a
	// selector-less run (spec.md §4.G).
	BundleName string

	// Selectors is the raw "ClassName" / "ClassName/methodName" list
	// from the command line; empty means "run everything".
	Selectors []string

	// TUIMode selects the bubbletea progress observer over the plain
	// console one.
	TUIMode bool

	// Debug raises the xlog floor to LevelDebug regardless of what the
	// loaded RunnerConfig says.
	Debug bool

	// ConfigPath, when set, bypasses the layered user/project config
	// discovery and loads this file directly.
	ConfigPath string

	// RunnerConfig is populated by NewApplication once loaded.
	RunnerConfig config.RunnerConfig
}
