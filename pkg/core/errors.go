package core

import "errors"

// Common errors.
var (
	ErrInvalidKind      = errors.New("unknown note type")
	ErrInvalidTimestamp = errors.New("current time unavailable")
	ErrSuffixRange      = errors.New("disambiguator out of range")
	ErrSuffixExhausted  = errors.New("no fleeting suffix left for this day")
)
