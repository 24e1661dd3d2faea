package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chainrocks.yaml")
	contents := `
dataDir: /var/lib/chainrocks
logLevel: debug
logJSON: true
backend:
  paranoidChecks: true
  increaseParallelism: 8
  writeBufferBytes: 134217728
  disableWAL: false
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/chainrocks", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogJSON)
	assert.Equal(t, 8, cfg.Backend.IncreaseParallelism)
	assert.EqualValues(t, 134217728, cfg.Backend.WriteBufferBytes)
	assert.False(t, cfg.Backend.DisableWAL)
	assert.EqualValues(t, "debug", cfg.LogLevelValue())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotEmpty(t, cfg.DataDir)
	assert.EqualValues(t, "info", cfg.LogLevelValue())
}
