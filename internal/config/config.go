// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads the tool settings file. Missing files fall back to
// defaults so a checkout works with zero configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the settings file location when set.
const EnvConfigPath = "WINAUTO_CONFIG"

// DefaultPath is where settings are looked up when neither the flag nor the
// environment names a file.
const DefaultPath = "config/settings.yaml"

// Duration is a time.Duration that unmarshals from YAML strings like "30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the setting as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Settings is the process-wide configuration.
type Settings struct {
	// ScriptsRoot is the directory scanned for script metadata files.
	ScriptsRoot string `yaml:"scripts_root"`
	// RegistryConfig is the per-script enable/disable mapping.
	RegistryConfig string `yaml:"registry_config"`
	// HistoryDir is where run records are kept.
	HistoryDir string `yaml:"history_dir"`
	// DefaultTimeout bounds a run when the request carries no timeout.
	DefaultTimeout Duration `yaml:"default_timeout"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// Backend forces a capability backend: "mock", "real", or "" for the
	// platform default.
	Backend string `yaml:"backend"`
}

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{
		ScriptsRoot:    "scripts",
		RegistryConfig: "config/scripts.yaml",
		HistoryDir:     ".winauto",
		DefaultTimeout: Duration(30 * time.Second),
		LogLevel:       "info",
	}
}

// Load reads settings from path, layering the file over defaults. A missing
// file yields the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("reading settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	return s, nil
}

// ResolvePath picks the settings file: explicit flag value, then the
// environment, then the default location.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	return DefaultPath
}
