package core

import (
	"fmt"
	"time"
)

const (
	// DailyLayout is the Go layout of a Daily identifier.
	DailyLayout = "2006-01-02"

	// MaxFleetingSuffix is the largest value that still renders as six digits.
	MaxFleetingSuffix = 999999

	defaultProjectWidth = 4
)

// Source supplies the disambiguating number for kinds that need one:
// the six digit Fleeting suffix, the Project number and the per-day Analog
// number. Implementations must be safe for concurrent use.
type Source interface {
	Next(kind Kind, now time.Time) (int, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(kind Kind, now time.Time) (int, error)

// Next calls f(kind, now).
func (f SourceFunc) Next(kind Kind, now time.Time) (int, error) {
	return f(kind, now)
}

// Generate renders the identifier of the given kind for now.
//
// src may be nil. Without a source, Fleeting uses the HHMMSS of now, Project
// uses number 1 and Analog uses number 1, which keeps Generate deterministic.
// Generate never reads the clock and never writes anywhere; all state lives
// in the Source.
//
// Distinct Fleeting names are guaranteed only through a shared Source such
// as a ClockSource: two nil-source calls for the same second return the
// same name.
func Generate(kind Kind, now time.Time, src Source) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidKind, kind)
	}
	if now.IsZero() {
		return "", ErrInvalidTimestamp
	}

	switch kind {
	case KindDefault:
		return fmt.Sprintf("%s-%02d%02d", dateStamp(now), now.Hour(), now.Minute()), nil
	case KindDaily:
		return dateStamp(now), nil
	case KindFleeting:
		suffix := clockSuffix(now)
		if src != nil {
			n, err := next(src, kind, now)
			if err != nil {
				return "", err
			}
			if n > MaxFleetingSuffix {
				return "", fmt.Errorf("%w: fleeting suffix %d", ErrSuffixRange, n)
			}
			suffix = n
		}
		return fmt.Sprintf("%s-F%06d", dateStamp(now), suffix), nil
	case KindVoice:
		return fmt.Sprintf("%s-VT%06d", dateStamp(now), clockSuffix(now)), nil
	case KindAnalog:
		n := 1
		if src != nil {
			var err error
			if n, err = next(src, kind, now); err != nil {
				return "", err
			}
		}
		return FormatAnalog(dateStamp(now), n), nil
	case KindMonthly:
		return fmt.Sprintf("%04d-%02d", now.Year(), now.Month()), nil
	case KindYearly:
		return fmt.Sprintf("%04d", now.Year()), nil
	case KindProject:
		n := 1
		if src != nil {
			var err error
			if n, err = next(src, kind, now); err != nil {
				return "", err
			}
		}
		return FormatProject(n, ""), nil
	}

	// Unreachable while the switch covers every kind below kindCount.
	return "", fmt.Errorf("%w: %s", ErrInvalidKind, kind)
}

func next(src Source, kind Kind, now time.Time) (int, error) {
	n, err := src.Next(kind, now)
	if err != nil {
		return 0, fmt.Errorf("%s source: %w", kind, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %s number %d", ErrSuffixRange, kind, n)
	}
	return n, nil
}

// DateStamp returns the YYYY-MM-DD form of t.
func DateStamp(t time.Time) string {
	return dateStamp(t)
}

func dateStamp(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), t.Month(), t.Day())
}

// clockSuffix packs the time of day as the decimal HHMMSS.
func clockSuffix(t time.Time) int {
	return t.Hour()*10000 + t.Minute()*100 + t.Second()
}

// FormatAnalog formats an analog note for the given date and number.
func FormatAnalog(date string, n int) string {
	return fmt.Sprintf("%s-A%d", date, n)
}

// FormatProject formats a project number with an optional title.
func FormatProject(n int, title string) string {
	result := fmt.Sprintf("P%0*d", defaultProjectWidth, n)
	if title != "" {
		result += " " + title
	}
	return result
}

// ParseDaily parses a Daily identifier back into a date at midnight UTC.
func ParseDaily(id string) (time.Time, error) {
	t, err := time.Parse(DailyLayout, id)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse daily %q: %w", id, err)
	}
	return t, nil
}
