package platform

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totocaster/stamp/pkg/config"
	"github.com/totocaster/stamp/pkg/core"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Timezone = "UTC"
	cfg.CounterFile = filepath.Join(t.TempDir(), "counters.json")
	return cfg
}

func fixedClock() time.Time {
	return time.Date(2025, 11, 12, 9, 7, 3, 0, time.UTC)
}

func TestNew_WiresSources(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "P0041 Garden.md"), nil, 0o644))

	rt, err := New(WithConfig(testConfig(t)), WithWorkDir(dir), WithClock(fixedClock))
	require.NoError(t, err)
	assert.Nil(t, rt.Vault)

	tests := []struct {
		kind core.Kind
		want string
	}{
		{core.KindDaily, "2025-11-12"},
		{core.KindDefault, "2025-11-12-0907"},
		{core.KindFleeting, "2025-11-12-F090703"},
		{core.KindAnalog, "2025-11-12-A1"},
		{core.KindProject, "P0042"},
	}
	for _, tt := range tests {
		got, err := rt.Stamper.Stamp(tt.kind)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.kind.String())
	}

	// Analog numbers are persisted through the counter file.
	assert.Equal(t, 1, rt.Counters.AnalogCounter("2025-11-12"))
}

func TestNew_ProjectStart(t *testing.T) {
	cfg := testConfig(t)
	cfg.ProjectStart = 395

	rt, err := New(WithConfig(cfg), WithWorkDir(t.TempDir()), WithClock(fixedClock))
	require.NoError(t, err)

	got, err := rt.Stamper.Stamp(core.KindProject)
	require.NoError(t, err)
	assert.Equal(t, "P0395", got)
}

func TestNew_ObsidianLayouts(t *testing.T) {
	vault := t.TempDir()
	obsidianDir := filepath.Join(vault, ".obsidian")
	require.NoError(t, os.MkdirAll(obsidianDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(obsidianDir, "core-plugins.json"), []byte(`["daily-notes"]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(obsidianDir, "daily-notes.json"), []byte(`{"format":"DD-MM-YYYY"}`), 0o644))

	rt, err := New(WithConfig(testConfig(t)), WithWorkDir(vault), WithClock(fixedClock))
	require.NoError(t, err)
	require.NotNil(t, rt.Vault)

	got, err := rt.Stamper.Stamp(core.KindDaily)
	require.NoError(t, err)
	assert.Equal(t, "12-11-2025", got)

	rt, err = New(WithConfig(testConfig(t)), WithWorkDir(vault), WithClock(fixedClock), WithObsidian(false))
	require.NoError(t, err)

	got, err = rt.Stamper.Stamp(core.KindDaily)
	require.NoError(t, err)
	assert.Equal(t, "2025-11-12", got)
}

func TestNew_InvalidTimezone(t *testing.T) {
	cfg := testConfig(t)
	cfg.Timezone = "Invalid/Zone"

	_, err := New(WithConfig(cfg), WithWorkDir(t.TempDir()))
	assert.ErrorIs(t, err, config.ErrInvalidTimezone)
}

func TestFleetingSource(t *testing.T) {
	for scheme, want := range map[string]any{
		"":                    &core.ClockSource{},
		config.SuffixClock:    &core.ClockSource{},
		config.SuffixSequence: &core.SequenceSource{},
		config.SuffixRandom:   &core.RandomSource{},
	} {
		src, err := FleetingSource(scheme)
		require.NoError(t, err)
		assert.IsType(t, want, src, scheme)
	}

	_, err := FleetingSource("dice")
	assert.ErrorIs(t, err, config.ErrInvalidSuffix)
}

func TestNew_FleetingOverride(t *testing.T) {
	rt, err := New(
		WithConfig(testConfig(t)),
		WithWorkDir(t.TempDir()),
		WithClock(fixedClock),
		WithFleetingSource(core.NewSequenceSource(7)),
	)
	require.NoError(t, err)

	got, err := rt.Stamper.Stamp(core.KindFleeting)
	require.NoError(t, err)
	assert.Equal(t, "2025-11-12-F000007", got)
}
