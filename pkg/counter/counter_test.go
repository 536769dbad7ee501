package counter

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totocaster/stamp/pkg/core"
)

func newManager(t *testing.T) (*Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "counters.json")
	m, err := New(path, nil)
	require.NoError(t, err)
	return m, path
}

func TestNew_LazyFile(t *testing.T) {
	m, path := newManager(t)
	assert.Equal(t, path, m.Path())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "file should not exist before the first write")

	_, err = m.NextAnalog("2025-11-12")
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestManager_AnalogCounters(t *testing.T) {
	m, _ := newManager(t)
	date := "2025-11-12"

	n, err := m.NextAnalog(date)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = m.NextAnalog(date)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, 3, m.CheckAnalog(date))
	assert.Equal(t, 2, m.AnalogCounter(date))

	require.NoError(t, m.ResetAnalog(date))
	assert.Equal(t, 0, m.AnalogCounter(date))

	n, err = m.NextAnalog(date)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestManager_MultipleDates(t *testing.T) {
	m, _ := newManager(t)

	_, _ = m.NextAnalog("2025-11-12")
	_, _ = m.NextAnalog("2025-11-12")

	n, err := m.NextAnalog("2025-11-13")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = m.NextAnalog("2025-11-12")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestManager_Persistence(t *testing.T) {
	m1, path := newManager(t)
	_, _ = m1.NextAnalog("2025-11-12")
	_, _ = m1.NextAnalog("2025-11-12")

	m2, err := New(path, nil)
	require.NoError(t, err)

	n, err := m2.NextAnalog("2025-11-12")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestManager_CorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counters.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	m, err := New(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, m.AnalogCounter("2025-11-12"))

	n, err := m.NextAnalog("2025-11-12")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestManager_Source(t *testing.T) {
	m, _ := newManager(t)
	now := time.Date(2025, 11, 12, 10, 0, 0, 0, time.UTC)

	id, err := core.Generate(core.KindAnalog, now, m.Peek())
	require.NoError(t, err)
	assert.Equal(t, "2025-11-12-A1", id)

	id, err = core.Generate(core.KindAnalog, now, m)
	require.NoError(t, err)
	assert.Equal(t, "2025-11-12-A1", id)

	id, err = core.Generate(core.KindAnalog, now, m)
	require.NoError(t, err)
	assert.Equal(t, "2025-11-12-A2", id)
}

func TestManager_Concurrent(t *testing.T) {
	m, _ := newManager(t)

	var wg sync.WaitGroup
	results := make(chan int, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := m.NextAnalog("2025-11-12")
			assert.NoError(t, err)
			results <- n
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int]bool)
	for n := range results {
		assert.False(t, seen[n], "duplicate %d", n)
		seen[n] = true
	}
	assert.Len(t, seen, 50)
	assert.Equal(t, 50, m.AnalogCounter("2025-11-12"))
}
