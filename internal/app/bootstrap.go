// Package app bootstraps the runtime: loading configuration,
// initializing logging, and wiring the registration/engine/observe
// packages together behind the single Run entry point a cmd driver
// calls. It is the only package that consults internal/config — the
// core engine never does.
package app

import (
	"context"
	"fmt"
	"os"

	"xctestgo/internal/config"
	"xctestgo/internal/observe"
	"xctestgo/internal/registration"
	"xctestgo/internal/result"
	"xctestgo/pkg/xlog"
)

// Application bootstraps and runs a test bundle.
type Application struct {
	config *Config
}

// NewApplication loads the layered configuration, initializes xlog for
// CLI output, and returns an Application ready to Run. TUI mode
// re-initializes xlog onto a channel when it starts; nothing reads
// that channel, so diagnostics logged during a TUI run are not shown.
func NewApplication(cfg *Config) (*Application, error) {
	level := xlog.LevelInfo
	if cfg.Debug {
		level = xlog.LevelDebug
	}
	xlog.InitForCLI(level, os.Stderr)

	var runtimeConfig config.RunnerConfig
	var err error
	if cfg.ConfigPath != "" {
		runtimeConfig, err = config.LoadFromPath(cfg.ConfigPath)
		if err != nil {
			xlog.Error("bootstrap", err, "failed to load config from %s", cfg.ConfigPath)
			return nil, fmt.Errorf("loading config from %s: %w", cfg.ConfigPath, err)
		}
	} else {
		runtimeConfig, err = config.Load()
		if err != nil {
			xlog.Error("bootstrap", err, "failed to load layered config")
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}
	cfg.RunnerConfig = runtimeConfig

	if cfg.Debug {
		cfg.RunnerConfig.Reporter.Debug = true
	}
	if cfg.RunnerConfig.Reporter.Mode == config.ReporterModeTUI {
		cfg.TUIMode = true
	}

	return &Application{config: cfg}, nil
}

// Run filters entries per the configured selectors, builds the root
// suite, executes it against the wired observer(s), and returns the
// process exit code spec.md §6 prescribes: 0 if every case passed, 1
// if any case recorded a failure.
func (a *Application) Run(ctx context.Context, entries []registration.Entry) (int, error) {
	filter := registration.All()
	if len(a.config.Selectors) > 0 {
		filter = registration.NewFilter(a.config.Selectors...)
	}

	filtered := registration.Apply(entries, filter)
	root := registration.Build(filtered, filter, a.config.BundleName)

	hub := observe.NewHub()

	var record result.Accumulator
	var err error
	if a.config.TUIMode {
		record, err = a.runTUIMode(ctx, hub, root)
	} else {
		record, err = a.runCLIMode(ctx, hub, root)
	}
	if err != nil {
		return 1, err
	}

	if record.TotalFailureCount() > 0 {
		return 1, nil
	}
	return 0, nil
}
