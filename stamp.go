package stamp

import (
	"time"

	"github.com/totocaster/stamp/internal/platform"
	"github.com/totocaster/stamp/pkg/core"
)

// --- Types ---

// Kind is a public alias for the note kind enumeration.
type Kind = core.Kind

// Source is a public alias for the disambiguator interface.
type Source = core.Source

// Runtime is a public alias for the wired application.
type Runtime = platform.Runtime

// Note kinds.
const (
	Default  = core.KindDefault
	Daily    = core.KindDaily
	Fleeting = core.KindFleeting
	Voice    = core.KindVoice
	Analog   = core.KindAnalog
	Monthly  = core.KindMonthly
	Yearly   = core.KindYearly
	Project  = core.KindProject
)

// --- Configuration ---

// Option defines a functional option for configuring the runtime.
type Option = platform.Option

// WithWorkDir sets the workspace scanned for project numbers.
func WithWorkDir(dir string) Option {
	return platform.WithWorkDir(dir)
}

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return platform.WithClock(clock)
}

// WithObsidian forces vault detection on or off.
func WithObsidian(enabled bool) Option {
	return platform.WithObsidian(enabled)
}

// --- Factory ---

// New loads the configuration file and wires a Runtime.
func New(opts ...Option) (*Runtime, error) {
	return platform.New(opts...)
}

// --- Operations ---

// Generate renders an identifier without any configuration or state.
// Pass the same Source to every call (for example core.NewClockSource()) to
// keep Fleeting names distinct; with a nil src, calls in the same second
// collide.
func Generate(kind Kind, now time.Time, src Source) (string, error) {
	return core.Generate(kind, now, src)
}
