// Package sequential derives prefixed, zero-padded codes (P0001, X07, ...)
// from the entries already present in a workspace.
package sequential

import (
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/totocaster/stamp/pkg/core"
)

// Spec describes how to detect and format sequential IDs.
type Spec struct {
	Prefix string
	Width  int
	Start  int
	// Pattern is an optional doublestar glob (e.g. "**/P*") selecting the
	// entries to scan. Empty scans the top level only.
	Pattern string
}

func (s Spec) normalized() Spec {
	normalized := s
	if normalized.Prefix == "" {
		normalized.Prefix = "P"
	}
	if normalized.Width <= 0 {
		normalized.Width = 4
	}
	if normalized.Start <= 0 {
		normalized.Start = 1
	}
	return normalized
}

// Highest returns the highest numeric component matching spec in fsys,
// or 0 when nothing matches.
func Highest(fsys fs.FS, spec Spec) (int, error) {
	spec = spec.normalized()

	names, err := candidates(fsys, spec.Pattern)
	if err != nil {
		return 0, err
	}

	maxValue := 0
	for _, name := range names {
		value, ok := parseName(name, spec.Prefix)
		if !ok {
			continue
		}
		if value > maxValue {
			maxValue = value
		}
	}

	return maxValue, nil
}

// Next returns the next sequential ID and its numeric value.
func Next(fsys fs.FS, spec Spec) (string, int, error) {
	spec = spec.normalized()

	highest, err := Highest(fsys, spec)
	if err != nil {
		return "", 0, err
	}

	nextValue := spec.Start
	if highest >= spec.Start {
		nextValue = highest + 1
	}

	return Format(spec, nextValue), nextValue, nil
}

// Format renders a numeric value into the prefixed, zero-padded code.
func Format(spec Spec, value int) string {
	spec = spec.normalized()
	return fmt.Sprintf("%s%0*d", spec.Prefix, spec.Width, value)
}

func candidates(fsys fs.FS, pattern string) ([]string, error) {
	if pattern == "" {
		entries, err := fs.ReadDir(fsys, ".")
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		return names, nil
	}

	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob %q: %w", pattern, doublestar.ErrBadPattern)
	}
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, path.Base(m))
	}
	return names, nil
}

// parseName extracts the number following a case-insensitive prefix.
func parseName(name, prefix string) (int, bool) {
	if len(name) <= len(prefix) {
		return 0, false
	}
	if !strings.EqualFold(name[:len(prefix)], prefix) {
		return 0, false
	}

	rest := name[len(prefix):]
	digitsEnd := 0
	for digitsEnd < len(rest) && rest[digitsEnd] >= '0' && rest[digitsEnd] <= '9' {
		digitsEnd++
	}
	if digitsEnd == 0 {
		return 0, false
	}

	value, err := strconv.Atoi(rest[:digitsEnd])
	if err != nil {
		return 0, false
	}
	return value, true
}

// Source scans FS on every call and returns the next free number.
// It never reserves a number: two calls without a new entry in between
// return the same value.
type Source struct {
	FS   fs.FS
	Spec Spec
}

// Next implements core.Source.
func (s Source) Next(_ core.Kind, _ time.Time) (int, error) {
	_, n, err := Next(s.FS, s.Spec)
	return n, err
}

// ComponentType implements introspection.Component.
func (s Source) ComponentType() string {
	return "workspace-scan"
}

var _ core.Source = Source{}
