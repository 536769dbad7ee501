package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func setupTempHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("USERPROFILE", dir)
	t.Setenv(EnvPath, "")
	return dir
}

func writeConfig(t *testing.T, home, payload string) {
	t.Helper()
	dir := filepath.Join(home, ".stamp")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(payload), 0o600))
}

func TestDefault(t *testing.T) {
	home := setupTempHome(t)
	cfg := Default()

	assert.Empty(t, cfg.Timezone)
	assert.False(t, cfg.AlwaysExtension)
	assert.Equal(t, filepath.Join(home, ".stamp", "counters.json"), cfg.CounterFile)
	assert.Equal(t, 1, cfg.ProjectStart)
	assert.Equal(t, SuffixClock, cfg.FleetingSuffix)
	assert.True(t, cfg.Obsidian)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoConfigFile(t *testing.T) {
	setupTempHome(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_WithConfigFile(t *testing.T) {
	home := setupTempHome(t)

	data, err := yaml.Marshal(&Config{
		Timezone:        "Asia/Tokyo",
		AlwaysExtension: true,
		CounterFile:     "~/.stamp/test_counters.json",
		ProjectStart:    395,
		FleetingSuffix:  SuffixRandom,
		Obsidian:        false,
	})
	require.NoError(t, err)
	writeConfig(t, home, string(data))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Asia/Tokyo", cfg.Timezone)
	assert.True(t, cfg.AlwaysExtension)
	assert.Equal(t, filepath.Join(home, ".stamp", "test_counters.json"), cfg.CounterFile)
	assert.Equal(t, 395, cfg.ProjectStart)
	assert.Equal(t, SuffixRandom, cfg.FleetingSuffix)
	assert.False(t, cfg.Obsidian)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", loc.String())
}

func TestLoad_PartialConfig(t *testing.T) {
	home := setupTempHome(t)
	writeConfig(t, home, "timezone: America/New_York\n")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "America/New_York", cfg.Timezone)
	assert.False(t, cfg.AlwaysExtension)
	assert.True(t, cfg.Obsidian)
	assert.Equal(t, SuffixClock, cfg.FleetingSuffix)
}

func TestLoad_EnvOverride(t *testing.T) {
	setupTempHome(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("project_start: 42\n"), 0o600))
	t.Setenv(EnvPath, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.ProjectStart)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr error
	}{
		{"bad yaml", "invalid: yaml: content:", nil},
		{"bad timezone", "timezone: Invalid/Zone\n", ErrInvalidTimezone},
		{"bad suffix", "fleeting_suffix: dice\n", ErrInvalidSuffix},
		{"negative start", "project_start: -3\n", ErrInvalidProject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := setupTempHome(t)
			writeConfig(t, home, tt.payload)

			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestSave(t *testing.T) {
	home := setupTempHome(t)

	cfg := Default()
	cfg.Timezone = "UTC"
	cfg.AlwaysExtension = true
	require.NoError(t, cfg.Save())

	_, err := os.Stat(filepath.Join(home, ".stamp", "config.yaml"))
	require.NoError(t, err)

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFile_Missing(t *testing.T) {
	setupTempHome(t)
	path := filepath.Join(t.TempDir(), "typo.yaml")

	cfg, err := LoadFile(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Nil(t, cfg)

	// Load treats the same missing file as "no config".
	t.Setenv(EnvPath, path)
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
