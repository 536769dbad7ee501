// Package config loads and saves the stamp configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/totocaster/stamp/internal/fsutil"
)

// EnvPath overrides the location of the configuration file.
const EnvPath = "STAMP_CONFIG"

// Fleeting suffix schemes.
const (
	SuffixClock    = "clock"
	SuffixSequence = "sequence"
	SuffixRandom   = "random"
)

var (
	ErrInvalidTimezone = errors.New("invalid timezone")
	ErrInvalidSuffix   = errors.New("invalid fleeting_suffix")
	ErrInvalidProject  = errors.New("invalid project settings")
)

// Config represents the application configuration.
type Config struct {
	Timezone        string `yaml:"timezone" json:"timezone"`
	AlwaysExtension bool   `yaml:"always_extension" json:"always_extension"`
	CounterFile     string `yaml:"counter_file" json:"counter_file"`
	ProjectStart    int    `yaml:"project_start" json:"project_start"`
	FleetingSuffix  string `yaml:"fleeting_suffix" json:"fleeting_suffix"`
	Obsidian        bool   `yaml:"obsidian" json:"obsidian"`
}

// Default returns the default configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		Timezone:        "", // system time zone
		AlwaysExtension: false,
		CounterFile:     filepath.Join(home, ".stamp", "counters.json"),
		ProjectStart:    1,
		FleetingSuffix:  SuffixClock,
		Obsidian:        true,
	}
}

// DefaultPath returns $STAMP_CONFIG or ~/.stamp/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return fsutil.ExpandHome(p)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".stamp", "config.yaml"), nil
}

// Load reads the configuration from DefaultPath.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile reads the configuration at path, overlaying it on the defaults.
// Unlike Load, a missing file is an error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.CounterFile, err = fsutil.ExpandHome(cfg.CounterFile); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values that Load cannot coerce.
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	switch c.FleetingSuffix {
	case SuffixClock, SuffixSequence, SuffixRandom:
	default:
		return fmt.Errorf("%w: %q (want %s, %s or %s)", ErrInvalidSuffix, c.FleetingSuffix, SuffixClock, SuffixSequence, SuffixRandom)
	}
	if c.ProjectStart < 0 {
		return fmt.Errorf("%w: project_start %d is negative", ErrInvalidProject, c.ProjectStart)
	}
	return nil
}

// Location resolves Timezone; empty means the system zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrInvalidTimezone, c.Timezone, err)
	}
	return loc, nil
}

// Save writes the configuration to DefaultPath.
func (c *Config) Save() error {
	path, err := DefaultPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the configuration to path atomically.
func (c *Config) SaveFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0o644)
}
