// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "settings.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
	assert.Equal(t, 30*time.Second, s.DefaultTimeout.Std())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scripts_root: my/scripts
default_timeout: 2m
backend: mock
`), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "my/scripts", s.ScriptsRoot)
	assert.Equal(t, 2*time.Minute, s.DefaultTimeout.Std())
	assert.Equal(t, "mock", s.Backend)
	// Untouched fields keep their defaults.
	assert.Equal(t, Default().RegistryConfig, s.RegistryConfig)
	assert.Equal(t, Default().LogLevel, s.LogLevel)
}

func TestLoad_BadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_timeout: soonish\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scripts_root: [\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "explicit.yaml", ResolvePath("explicit.yaml"))

	t.Setenv(EnvConfigPath, "from-env.yaml")
	assert.Equal(t, "from-env.yaml", ResolvePath(""))
	assert.Equal(t, "explicit.yaml", ResolvePath("explicit.yaml"), "flag beats environment")

	t.Setenv(EnvConfigPath, "")
	assert.Equal(t, DefaultPath, ResolvePath(""))
}
