package platform

import (
	"log/slog"
	"time"

	"github.com/totocaster/stamp/pkg/config"
	"github.com/totocaster/stamp/pkg/core"
)

// options holds the internal configuration for building a Runtime.
type options struct {
	config   *config.Config
	logger   *slog.Logger
	clock    func() time.Time
	workDir  string
	obsidian *bool
	fleeting core.Source
}

// Option defines a functional option for configuring the Runtime.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		config: nil,
		logger: nil,
		clock:  time.Now,
	}
}

// WithConfig uses cfg instead of loading the configuration file.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithLogger sets the logger for the runtime and the components it builds.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithWorkDir sets the workspace scanned for project numbers and vault
// detection. Defaults to the process working directory.
func WithWorkDir(dir string) Option {
	return func(o *options) {
		o.workDir = dir
	}
}

// WithObsidian forces Obsidian vault detection on or off, regardless of the
// configuration file.
func WithObsidian(enabled bool) Option {
	return func(o *options) {
		o.obsidian = &enabled
	}
}

// WithFleetingSource overrides the fleeting suffix scheme from the configuration.
func WithFleetingSource(src core.Source) Option {
	return func(o *options) {
		o.fleeting = src
	}
}
