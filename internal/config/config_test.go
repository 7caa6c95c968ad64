package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 5000, cfg.Port)
	assert.False(t, cfg.Pretty)
	assert.False(t, cfg.ExcludeEmpty)
	assert.Equal(t, "0.0.0.0:5000", cfg.Addr())
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x12.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"host: 127.0.0.1\nport: 8080\npretty: true\n",
	), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.Pretty)
	// unset keys keep their defaults
	assert.False(t, cfg.ExcludeEmpty)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x12.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 8080\n"), 0o600))

	t.Setenv("X12_PORT", "9090")
	t.Setenv("X12_EXCLUDE_EMPTY", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.ExcludeEmpty)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestInvalidPort(t *testing.T) {
	t.Setenv("X12_PORT", "70000")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")
}
