// Package stamp generates note filenames from the current date and time.
//
// Every identifier is produced by a pure function of a note kind, a
// timestamp and an optional disambiguator source:
//
//	daily     2025-11-12
//	fleeting  2025-11-12-F093015
//	voice     2025-11-12-VT093015
//	analog    2025-11-12-A3
//	monthly   2025-11
//	yearly    2025
//	project   P0396
//	default   2025-11-12-0930
//
// State that the CLI keeps (per-day analog counters, the configuration file,
// project numbers found in the workspace) lives in separate packages that
// implement core.Source and are wired together by New.
//
// Usage:
//
//	id, err := stamp.Generate(stamp.Daily, time.Now(), nil)
//
//	rt, err := stamp.New(stamp.WithWorkDir("."))
//	project, err := rt.Stamper.Stamp(stamp.Project)
package stamp
