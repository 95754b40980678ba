package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, 20.0, cfg.StartHz)
	assert.Equal(t, 20000.0, cfg.StopHz)
	assert.Equal(t, 61, cfg.Points)
	assert.Equal(t, "log", cfg.Mode)
	assert.Equal(t, 0.5, cfg.AmplitudeVpp)
	assert.Equal(t, 1, cfg.Channel)
	assert.Equal(t, 150, cfg.DwellMs)
	assert.False(t, cfg.THD)
	assert.Equal(t, "hann", cfg.Window)
	assert.Equal(t, 10, cfg.Harmonics)
	assert.False(t, cfg.Knees)
	assert.Equal(t, "max", cfg.KneeRef)
	assert.Equal(t, 3.0, cfg.KneeDropDB)
	assert.Empty(t, cfg.Output)
	assert.Empty(t, cfg.Database)
}

func TestLoadFlagsOverrideDefaults(t *testing.T) {
	cfg, err := Load([]string{
		"--start", "100",
		"--stop", "5000",
		"--points", "21",
		"--mode", "linear",
		"--thd",
		"--knees",
		"--knee-drop-db", "6",
		"--output", "run.csv",
	})
	require.NoError(t, err)

	assert.Equal(t, 100.0, cfg.StartHz)
	assert.Equal(t, 5000.0, cfg.StopHz)
	assert.Equal(t, 21, cfg.Points)
	assert.Equal(t, "linear", cfg.Mode)
	assert.True(t, cfg.THD)
	assert.True(t, cfg.Knees)
	assert.Equal(t, 6.0, cfg.KneeDropDB)
	assert.Equal(t, "run.csv", cfg.Output)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
start = 50.0
stop = 15000.0
points = 31
amplitude = 1.0
thd = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load([]string{"--config", path})
	require.NoError(t, err)

	assert.Equal(t, 50.0, cfg.StartHz)
	assert.Equal(t, 15000.0, cfg.StopHz)
	assert.Equal(t, 31, cfg.Points)
	assert.Equal(t, 1.0, cfg.AmplitudeVpp)
	assert.True(t, cfg.THD)

	// Untouched keys keep their flag defaults.
	assert.Equal(t, "log", cfg.Mode)
	assert.Equal(t, 150, cfg.DwellMs)
}

func TestLoadFlagsBeatConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, os.WriteFile(path, []byte("points = 5\n"), 0o644))

	cfg, err := Load([]string{"--config", path, "--points", "99"})
	require.NoError(t, err)

	assert.Equal(t, 99, cfg.Points)
}

func TestLoadMissingExplicitConfigFails(t *testing.T) {
	_, err := Load([]string{"--config", filepath.Join(t.TempDir(), "absent.toml")})
	require.Error(t, err)
}

func TestLoadBadFlag(t *testing.T) {
	_, err := Load([]string{"--points", "not-a-number"})
	require.Error(t, err)
}
