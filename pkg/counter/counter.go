// Package counter persists the per-day analog note numbers.
package counter

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/totocaster/stamp/internal/fsutil"
	"github.com/totocaster/stamp/pkg/core"
)

const dataVersion = 1

// Data is the on-disk counter document.
type Data struct {
	Version int            `json:"version"`
	Analog  map[string]int `json:"analog"` // date -> last issued number
}

// Manager handles counter persistence. It is safe for concurrent use within
// one process.
type Manager struct {
	mu     sync.Mutex
	file   string
	data   *Data
	logger *slog.Logger
}

// New opens the counter file. A missing file starts empty and is created on
// the first write; a corrupted one is logged and replaced on the next write.
func New(counterFile string, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}

	path, err := fsutil.ExpandHome(counterFile)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		file:   path,
		data:   emptyData(),
		logger: logger,
	}

	if err := m.load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("counter file corrupted, starting fresh", "path", path, "error", err)
		}
		m.data = emptyData()
	}

	return m, nil
}

func emptyData() *Data {
	return &Data{Version: dataVersion, Analog: make(map[string]int)}
}

// Path returns the counter file location.
func (m *Manager) Path() string {
	return m.file
}

func (m *Manager) load() error {
	raw, err := os.ReadFile(m.file)
	if err != nil {
		return err
	}

	data := emptyData()
	if err := json.Unmarshal(raw, data); err != nil {
		return err
	}
	if data.Analog == nil {
		data.Analog = make(map[string]int)
	}
	m.data = data
	return nil
}

func (m *Manager) save() error {
	raw, err := json.MarshalIndent(m.data, "", "  ")
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(m.file, raw, 0o600); err != nil {
		return fmt.Errorf("save counters: %w", err)
	}
	return nil
}

// NextAnalog increments and returns the analog number for date.
func (m *Manager) NextAnalog(date string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.data.Analog[date]
	m.data.Analog[date] = current + 1

	if err := m.save(); err != nil {
		m.data.Analog[date] = current
		return 0, err
	}

	m.logger.Debug("analog counter incremented", "date", date, "value", current+1)
	return current + 1, nil
}

// CheckAnalog returns what NextAnalog would return without incrementing.
func (m *Manager) CheckAnalog(date string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.Analog[date] + 1
}

// AnalogCounter returns the last issued number for date (0 if none).
func (m *Manager) AnalogCounter(date string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.Analog[date]
}

// ResetAnalog forgets the counter for date.
func (m *Manager) ResetAnalog(date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	previous, had := m.data.Analog[date]
	delete(m.data.Analog, date)

	if err := m.save(); err != nil {
		if had {
			m.data.Analog[date] = previous
		}
		return err
	}
	return nil
}

// Next implements core.Source for analog notes.
func (m *Manager) Next(_ core.Kind, now time.Time) (int, error) {
	return m.NextAnalog(core.DateStamp(now))
}

// Peek returns a source that reports the next analog number without
// consuming it.
func (m *Manager) Peek() core.Source {
	return core.SourceFunc(func(_ core.Kind, now time.Time) (int, error) {
		return m.CheckAnalog(core.DateStamp(now)), nil
	})
}

// ComponentType implements introspection.Component.
func (m *Manager) ComponentType() string {
	return "counter"
}

var _ core.Source = (*Manager)(nil)
