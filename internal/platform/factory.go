package platform

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/totocaster/stamp/pkg/config"
	"github.com/totocaster/stamp/pkg/core"
	"github.com/totocaster/stamp/pkg/counter"
	"github.com/totocaster/stamp/pkg/obsidian"
	"github.com/totocaster/stamp/pkg/sequential"
)

// ProjectPrefix is the prefix of project codes.
const ProjectPrefix = "P"

// Runtime is the wired application: a Stamper with its sources registered
// plus the components commands need direct access to.
type Runtime struct {
	Stamper  *core.Stamper
	Counters *counter.Manager
	Config   *config.Config
	WorkDir  string
	Vault    *obsidian.Result
	Logger   *slog.Logger
}

// New builds a Runtime.
//
//	rt, err := platform.New(platform.WithWorkDir(dir), platform.WithLogger(logger))
func New(opts ...Option) (*Runtime, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg := o.config
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			logger.Warn("config unreadable, using defaults", "error", err)
			loaded = config.Default()
		}
		cfg = loaded
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	workDir := o.workDir
	if workDir == "" {
		if workDir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	counters, err := counter.New(cfg.CounterFile, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize counters: %w", err)
	}

	fleeting := o.fleeting
	if fleeting == nil {
		if fleeting, err = FleetingSource(cfg.FleetingSuffix); err != nil {
			return nil, err
		}
	}

	stamper := core.NewStamper(loc, o.clock)
	stamper.SetSource(core.KindFleeting, fleeting)
	stamper.SetSource(core.KindAnalog, counters)
	stamper.SetSource(core.KindProject, sequential.Source{
		FS:   os.DirFS(workDir),
		Spec: ProjectSpec(cfg),
	})

	rt := &Runtime{
		Stamper:  stamper,
		Counters: counters,
		Config:   cfg,
		WorkDir:  workDir,
		Logger:   logger,
	}

	detect := cfg.Obsidian
	if o.obsidian != nil {
		detect = *o.obsidian
	}
	if detect {
		rt.detectVault()
	}

	logger.Debug("runtime ready", "location", loc.String(), "workdir", workDir, "fleeting", cfg.FleetingSuffix)
	return rt, nil
}

// detectVault applies layouts from an enclosing Obsidian vault. Plugin
// read failures are warnings: whatever layouts were found still apply.
func (rt *Runtime) detectVault() {
	result, err := obsidian.Detect(rt.WorkDir)
	if err != nil {
		rt.Logger.Warn("obsidian detection", "error", err)
	}
	if result == nil || !result.InVault {
		return
	}

	rt.Vault = result
	rt.Stamper.ApplyLayouts(result.Layouts)
	rt.Logger.Debug("obsidian vault detected", "path", result.VaultPath, "daily", result.Layouts.Daily, "default", result.Layouts.Default)
}

// ProjectSpec is the sequential spec used for project codes.
func ProjectSpec(cfg *config.Config) sequential.Spec {
	return sequential.Spec{Prefix: ProjectPrefix, Width: 4, Start: cfg.ProjectStart}
}

// FleetingSource maps a fleeting_suffix setting to its Source.
func FleetingSource(scheme string) (core.Source, error) {
	switch scheme {
	case "", config.SuffixClock:
		return core.NewClockSource(), nil
	case config.SuffixSequence:
		return core.NewSequenceSource(1), nil
	case config.SuffixRandom:
		return core.NewRandomSource(nil), nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrInvalidSuffix, scheme)
}
