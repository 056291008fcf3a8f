package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliserve/cliserve/internal/utils"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 64, cfg.Server.MaxLimit)
	assert.Equal(t, 512, cfg.Server.MaxLine)
	assert.Empty(t, cfg.Dict.Path)
	assert.Equal(t, 24, cfg.CLI.DefaultLimit)
}

func TestInitConfigCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cliserve", "config.toml")

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Server, cfg.Server)
	assert.True(t, utils.FileExists(path))

	// A second init reads the file it just wrote.
	again, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Server, again.Server)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
max_limit = 16
max_line = 128

[dict]
path = "/opt/dialects/nxos.yaml"

[cli]
default_limit = 8
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Server.MaxLimit)
	assert.Equal(t, 128, cfg.Server.MaxLine)
	assert.Equal(t, "/opt/dialects/nxos.yaml", cfg.Dict.Path)
	assert.Equal(t, 8, cfg.CLI.DefaultLimit)
}

func TestLoadConfigBrokenFileDegradesToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_limit = = 12 ["), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Server, cfg.Server)
}
