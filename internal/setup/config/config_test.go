package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[discord]
token = "secret-token"

[logging]
level = "debug"
development = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "secret-token", cfg.Discord.Token)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
}

func TestLoadDefaultsLevel(t *testing.T) {
	path := writeConfig(t, `
[discord]
token = "secret-token"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadSearchesPaths(t *testing.T) {
	path := writeConfig(t, `
[discord]
token = "secret-token"
`)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), path)
	require.NoError(t, err)
	assert.Equal(t, "secret-token", cfg.Discord.Token)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, ErrConfigFileNotFound)
}

func TestLoadMissingToken(t *testing.T) {
	path := writeConfig(t, `
[logging]
level = "info"
`)

	_, err := Load(path)
	require.Error(t, err)
}
