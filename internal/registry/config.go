// SPDX-License-Identifier: AGPL-3.0-or-later

package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScriptConfig is the per-script stanza of the registry configuration.
type ScriptConfig struct {
	// Path optionally pins the script to a metadata file; informational for
	// operators, the scan itself decides what exists.
	Path string `yaml:"path,omitempty"`
	// Enabled defaults to true when omitted. A disabled script is excluded
	// from listing and resolves as not found even with valid metadata.
	Enabled *bool `yaml:"enabled,omitempty"`
}

// Config is the process-wide registry configuration: which discovered scripts
// are actually switched on.
type Config struct {
	Scripts map[string]ScriptConfig `yaml:"scripts"`
}

// LoadConfig reads a registry configuration file. A missing file is an empty
// configuration, not an error — a bare scripts root needs no config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading registry config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing registry config %s: %w", path, err)
	}
	return &cfg, nil
}

// Enabled reports whether the named script is switched on. Scripts without a
// stanza are enabled.
func (c *Config) Enabled(name string) bool {
	if c == nil {
		return true
	}
	sc, ok := c.Scripts[name]
	if !ok || sc.Enabled == nil {
		return true
	}
	return *sc.Enabled
}
