package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/xctestgo"
	projectConfigDir = ".xctestgo"
	configFileName   = "config.yaml"
)

// Load layers the built-in defaults, a user config file, and a
// project config file, in that order, with later layers overriding
// earlier ones. Either file being absent is not an error.
func Load() (RunnerConfig, error) {
	cfg := DefaultConfig()

	if path, err := getUserConfigPath(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not determine user config path: %v\n", err)
	} else if overlay, ok, err := loadIfExists(path); err != nil {
		return RunnerConfig{}, fmt.Errorf("loading user config from %s: %w", path, err)
	} else if ok {
		cfg = merge(cfg, overlay)
	}

	if path, err := getProjectConfigPath(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not determine project config path: %v\n", err)
	} else if overlay, ok, err := loadIfExists(path); err != nil {
		return RunnerConfig{}, fmt.Errorf("loading project config from %s: %w", path, err)
	} else if ok {
		cfg = merge(cfg, overlay)
	}

	return cfg, nil
}

// LoadFromPath loads a single config file verbatim, layered over the
// built-in defaults, bypassing the user/project discovery in Load.
func LoadFromPath(path string) (RunnerConfig, error) {
	overlay, ok, err := loadIfExists(path)
	if err != nil {
		return RunnerConfig{}, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if !ok {
		return RunnerConfig{}, fmt.Errorf("config file does not exist: %s", path)
	}
	return merge(DefaultConfig(), overlay), nil
}

func getUserConfigPath() (string, error) {
	home, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, userConfigDir, configFileName), nil
}

func getProjectConfigPath() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

func loadIfExists(path string) (RunnerConfig, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return RunnerConfig{}, false, nil
		}
		return RunnerConfig{}, false, err
	}
	var cfg RunnerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunnerConfig{}, false, err
	}
	return cfg, true, nil
}

// merge overlays non-zero fields of overlay onto base.
func merge(base, overlay RunnerConfig) RunnerConfig {
	merged := base

	if overlay.Waiting.DefaultTimeout != 0 {
		merged.Waiting.DefaultTimeout = overlay.Waiting.DefaultTimeout
	}
	if overlay.Waiting.SuspensionSliceCeiling != 0 {
		merged.Waiting.SuspensionSliceCeiling = overlay.Waiting.SuspensionSliceCeiling
	}
	if overlay.Reporter.Mode != "" {
		merged.Reporter.Mode = overlay.Reporter.Mode
	}
	// Debug has no "unset" sentinel distinct from false; an overlay
	// file that sets it true always wins, matching the teacher's
	// Aggregator.Enabled merge in spirit.
	if overlay.Reporter.Debug {
		merged.Reporter.Debug = true
	}

	return merged
}
