package core

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
)

// maxClockSeconds is the first seconds-of-day value that no longer fits in HHMMSS.
const maxClockSeconds = 100 * 3600

// trackedDays bounds how many dates a source remembers. Callers racing
// across midnight only ever touch neighbouring dates.
const trackedDays = 3

// pruneDays drops the oldest dates once more than trackedDays are held.
// YYYY-MM-DD keys sort chronologically.
func pruneDays[V any](days map[string]V) {
	for len(days) > trackedDays {
		oldest := ""
		for day := range days {
			if oldest == "" || day < oldest {
				oldest = day
			}
		}
		delete(days, oldest)
	}
}

// ClockSource hands out time-of-day suffixes (HHMMSS). Two requests for the
// same second get distinct values: the later one moves on to the next second
// that has not been issued yet on that date.
//
// The zero value is ready to use.
type ClockSource struct {
	mu   sync.Mutex
	last map[string]int // date -> highest second issued
}

// NewClockSource returns an empty ClockSource.
func NewClockSource() *ClockSource {
	return &ClockSource{}
}

// Next implements Source.
func (c *ClockSource) Next(_ Kind, now time.Time) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.last == nil {
		c.last = make(map[string]int)
	}

	day := dateStamp(now)
	sec := now.Hour()*3600 + now.Minute()*60 + now.Second()
	if last, ok := c.last[day]; ok && sec <= last {
		sec = last + 1
	}
	if sec >= maxClockSeconds {
		return 0, ErrSuffixExhausted
	}
	c.last[day] = sec
	pruneDays(c.last)

	return (sec/3600)*10000 + (sec%3600/60)*100 + sec%60, nil
}

// SequenceSource is an in-process counter starting at 1.
type SequenceSource struct {
	n atomic.Int64
}

// NewSequenceSource returns a counter whose first value is start.
func NewSequenceSource(start int) *SequenceSource {
	s := &SequenceSource{}
	if start > 0 {
		s.n.Store(int64(start - 1))
	}
	return s
}

// Next implements Source.
func (s *SequenceSource) Next(kind Kind, _ time.Time) (int, error) {
	n := s.n.Add(1)
	if kind == KindFleeting && n > MaxFleetingSuffix {
		return 0, ErrSuffixExhausted
	}
	return int(n), nil
}

const maxRandomAttempts = 64

// RandomSource draws suffixes from ULID entropy and never repeats a value
// it has already returned for the same date.
type RandomSource struct {
	mu      sync.Mutex
	entropy io.Reader
	seen    map[string]map[int]struct{} // date -> issued suffixes
}

// NewRandomSource uses entropy for ULID generation. A nil reader selects
// ulid.DefaultEntropy().
func NewRandomSource(entropy io.Reader) *RandomSource {
	if entropy == nil {
		entropy = ulid.DefaultEntropy()
	}
	return &RandomSource{
		entropy: entropy,
		seen:    make(map[string]map[int]struct{}),
	}
}

// Next implements Source.
func (r *RandomSource) Next(_ Kind, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := dateStamp(now)
	seen, ok := r.seen[day]
	if !ok {
		seen = make(map[int]struct{})
		r.seen[day] = seen
		pruneDays(r.seen)
	}
	if len(seen) > MaxFleetingSuffix {
		return 0, ErrSuffixExhausted
	}

	for attempt := 0; attempt < maxRandomAttempts; attempt++ {
		id, err := ulid.New(ulidTime(now), r.entropy)
		if err != nil {
			return 0, fmt.Errorf("draw ulid: %w", err)
		}
		entropy := id.Entropy()
		n := int(binary.BigEndian.Uint64(entropy[len(entropy)-8:]) % (MaxFleetingSuffix + 1))
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		return n, nil
	}

	return 0, ErrSuffixExhausted
}

// ulidTime clamps t to the millisecond range a ULID can carry. Only the
// entropy half is used for suffixes, so dates outside the range still work.
func ulidTime(t time.Time) uint64 {
	if t.Before(time.UnixMilli(0)) {
		return 0
	}
	if ms := ulid.Timestamp(t); ms <= ulid.MaxTime() {
		return ms
	}
	return ulid.MaxTime()
}

var (
	_ Source = (*ClockSource)(nil)
	_ Source = (*SequenceSource)(nil)
	_ Source = (*RandomSource)(nil)
	_ Source = SourceFunc(nil)
)
