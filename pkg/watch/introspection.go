package watch

import (
	"time"

	"github.com/aretw0/introspection"
)

// WatcherState exposes internal state for observability.
type WatcherState struct {
	Dir        string        `json:"dir"`
	Recursive  bool          `json:"recursive"`
	Debounce   time.Duration `json:"debounce"`
	Active     bool          `json:"active"`
	Changes    int           `json:"changes"`
	LastChange *time.Time    `json:"last_change,omitempty"`
}

// State implements introspection.Introspectable.
func (w *Watcher) State() any {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return WatcherState{
		Dir:        w.dir,
		Recursive:  w.recursive,
		Debounce:   w.debounce,
		Active:     w.active,
		Changes:    w.changes,
		LastChange: w.lastChange,
	}
}

// ComponentType implements introspection.Component.
func (w *Watcher) ComponentType() string {
	return "watcher"
}

var _ introspection.Introspectable = (*Watcher)(nil)
var _ introspection.Component = (*Watcher)(nil)
