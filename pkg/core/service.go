package core

import (
	"sync"
	"time"
)

// Layouts holds Go time layouts that replace the built-in Default and Daily
// formats, for example when running inside an Obsidian vault.
type Layouts struct {
	Default string `json:"default,omitempty"`
	Daily   string `json:"daily,omitempty"`
}

// Stamper binds Generate to a clock, a time zone and per-kind sources.
type Stamper struct {
	mu       sync.RWMutex
	location *time.Location
	clock    func() time.Time
	layouts  Layouts
	sources  map[Kind]Source
}

// NewStamper creates a Stamper reading time from clock in loc.
// A nil loc means time.Local and a nil clock means time.Now.
func NewStamper(loc *time.Location, clock func() time.Time) *Stamper {
	if loc == nil {
		loc = time.Local
	}
	if clock == nil {
		clock = time.Now
	}
	return &Stamper{
		location: loc,
		clock:    clock,
		sources:  make(map[Kind]Source),
	}
}

// Now returns the current time in the configured location.
// It returns the zero time when the clock does.
func (s *Stamper) Now() time.Time {
	now := s.clock()
	if now.IsZero() {
		return now
	}
	return now.In(s.location)
}

// Location returns the configured time zone.
func (s *Stamper) Location() *time.Location {
	return s.location
}

// SetSource registers the disambiguator used for kind. A nil src removes it.
func (s *Stamper) SetSource(kind Kind, src Source) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if src == nil {
		delete(s.sources, kind)
		return
	}
	s.sources[kind] = src
}

// Source returns the disambiguator registered for kind, or nil.
func (s *Stamper) Source(kind Kind) Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sources[kind]
}

// ApplyLayouts overrides the Default and Daily layouts. Empty fields keep
// the current value.
func (s *Stamper) ApplyLayouts(l Layouts) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l.Default != "" {
		s.layouts.Default = l.Default
	}
	if l.Daily != "" {
		s.layouts.Daily = l.Daily
	}
}

// Stamp generates an identifier of kind for the current time using the
// registered source.
func (s *Stamper) Stamp(kind Kind) (string, error) {
	return s.StampWith(kind, s.Source(kind))
}

// StampWith is Stamp with an explicit source.
func (s *Stamper) StampWith(kind Kind, src Source) (string, error) {
	now := s.Now()

	s.mu.RLock()
	layouts := s.layouts
	s.mu.RUnlock()

	if !now.IsZero() {
		switch {
		case kind == KindDefault && layouts.Default != "":
			return now.Format(layouts.Default), nil
		case kind == KindDaily && layouts.Daily != "":
			return now.Format(layouts.Daily), nil
		}
	}

	return Generate(kind, now, src)
}

// Date returns today's canonical YYYY-MM-DD, ignoring layout overrides.
func (s *Stamper) Date() (string, error) {
	return Generate(KindDaily, s.Now(), nil)
}
