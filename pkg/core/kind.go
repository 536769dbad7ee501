package core

import (
	"fmt"
	"strings"
)

// Kind is the category of note whose filename is being generated.
// The set is closed: adding a kind means adding a constant here, a name in
// kindNames and a case in Generate.
type Kind uint8

const (
	KindDefault Kind = iota
	KindDaily
	KindFleeting
	KindVoice
	KindAnalog
	KindMonthly
	KindYearly
	KindProject

	kindCount
)

var kindNames = [kindCount]string{
	KindDefault:  "default",
	KindDaily:    "daily",
	KindFleeting: "fleeting",
	KindVoice:    "voice",
	KindAnalog:   "analog",
	KindMonthly:  "monthly",
	KindYearly:   "yearly",
	KindProject:  "project",
}

// Kinds returns every recognized kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Valid reports whether k is one of the recognized kinds.
func (k Kind) Valid() bool {
	return k < kindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// ParseKind maps a subcommand name (case-insensitive) to its Kind.
func ParseKind(name string) (Kind, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == lower {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidKind, name)
}
