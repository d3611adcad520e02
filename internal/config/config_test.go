package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsComplete(t *testing.T) {
	cfg := Default()
	// The default marker must actually match the carrier names it is
	// meant to recognize in legacy payloads.
	assert.Equal(t, "Sompo", cfg.Carrier.OwnMarker)
	assert.NotEmpty(t, cfg.Server.Listen)
	assert.NotEmpty(t, cfg.Output.DefaultFormat)
	assert.Greater(t, cfg.Tower.DefaultRetention, 0.0)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
carrier:
  own_marker: Acme
tower:
  default_retention: 50000
server:
  listen: ":9090"
logging:
  level: debug
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Acme", cfg.Carrier.OwnMarker)
	assert.Equal(t, 50000.0, cfg.Tower.DefaultRetention)
	assert.Equal(t, ":9090", cfg.Server.Listen)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, "pretty", cfg.Output.DefaultFormat)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGetSetGlobal(t *testing.T) {
	orig := Get()
	defer Set(orig)

	cfg := Default()
	cfg.Carrier.OwnMarker = "Elsewhere"
	Set(cfg)
	assert.Equal(t, "Elsewhere", Get().Carrier.OwnMarker)
}
