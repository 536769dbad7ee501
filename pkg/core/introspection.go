package core

import (
	"fmt"
	"sort"

	"github.com/aretw0/introspection"
)

// StamperState exposes internal state for observability.
type StamperState struct {
	Location string            `json:"location"`
	Layouts  Layouts           `json:"layouts"`
	Sources  map[string]string `json:"sources,omitempty"`
	Kinds    []string          `json:"kinds"`
}

// State implements introspection.Introspectable.
func (s *Stamper) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sources := make(map[string]string, len(s.sources))
	for kind, src := range s.sources {
		name := fmt.Sprintf("%T", src)
		// Try to get component type if the source implements introspection.Component
		if comp, ok := src.(introspection.Component); ok {
			name = comp.ComponentType()
		}
		sources[kind.String()] = name
	}

	kinds := make([]string, 0, kindCount)
	for _, k := range Kinds() {
		kinds = append(kinds, k.String())
	}
	sort.Strings(kinds)

	return StamperState{
		Location: s.location.String(),
		Layouts:  s.layouts,
		Sources:  sources,
		Kinds:    kinds,
	}
}

// ComponentType implements introspection.Component.
func (s *Stamper) ComponentType() string {
	return "stamper"
}

var _ introspection.Introspectable = (*Stamper)(nil)
var _ introspection.Component = (*Stamper)(nil)
