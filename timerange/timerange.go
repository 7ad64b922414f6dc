// Package timerange defines the value kinds a time editor can govern and the
// inclusive bounds of each kind.
//
// A Table is read-only after construction and may be shared by any number of
// editors. Default returns the standard table:
//
//	hour24    "00" .. "23"
//	hour12    "00" .. "11"
//	minute    "00" .. "59"
//	second    "00" .. "59"
//	meridian  "am" .. "pm"
package timerange

import (
	"errors"
	"fmt"
)

// Kind tags the discrete domain an editor governs.
type Kind string

const (
	Hour24   Kind = "hour24"
	Hour12   Kind = "hour12"
	Minute   Kind = "minute"
	Second   Kind = "second"
	Meridian Kind = "meridian"
)

var (
	// ErrUnknownKind is returned by ParseKind for tags outside the enumeration.
	ErrUnknownKind = errors.New("timerange: unknown kind")

	// ErrInvalidBounds is returned by Bounds.Validate.
	ErrInvalidBounds = errors.New("timerange: invalid bounds")
)

var kinds = []Kind{Hour24, Hour12, Minute, Second, Meridian}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// ParseKind resolves a serialized tag to a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Label returns a short human description of the kind.
func (k Kind) Label() string {
	switch k {
	case Hour24:
		return "24 hour range"
	case Hour12:
		return "12 hour range"
	case Minute:
		return "minute range"
	case Second:
		return "second range"
	case Meridian:
		return "am/pm meridian range"
	}
	return string(k)
}

// IsNumeric reports whether values of kind k are two-digit decimals.
// Meridian is the only token kind.
func IsNumeric(k Kind) bool {
	switch k {
	case Hour24, Hour12, Minute, Second:
		return true
	}
	return false
}

// Bounds is the inclusive minimum and maximum canonical value of a kind.
type Bounds struct {
	Min string
	Max string
}

// Contains reports whether token equals one of the bounds. It is only
// meaningful for token kinds.
func (b Bounds) Contains(token string) bool {
	return token == b.Min || token == b.Max
}

// Validate checks that b can serve kind k. Numeric kinds need two ASCII
// digits each with Min <= Max, so stepping always yields canonical values.
// Meridian needs two distinct lowercase tokens.
func (b Bounds) Validate(k Kind) error {
	if IsNumeric(k) {
		if !twoDigits(b.Min) || !twoDigits(b.Max) {
			return fmt.Errorf("%w: %s bounds must be two digits, got %q..%q", ErrInvalidBounds, k, b.Min, b.Max)
		}
		if b.Min > b.Max {
			return fmt.Errorf("%w: %s min %q is above max %q", ErrInvalidBounds, k, b.Min, b.Max)
		}
		return nil
	}
	if k != Meridian {
		return fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
	}
	if !lowerToken(b.Min) || !lowerToken(b.Max) {
		return fmt.Errorf("%w: %s tokens must be lowercase letters, got %q/%q", ErrInvalidBounds, k, b.Min, b.Max)
	}
	if b.Min == b.Max {
		return fmt.Errorf("%w: %s tokens must differ, got %q twice", ErrInvalidBounds, k, b.Min)
	}
	return nil
}

func twoDigits(s string) bool {
	return len(s) == 2 && s[0] >= '0' && s[0] <= '9' && s[1] >= '0' && s[1] <= '9'
}

func lowerToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Table maps each kind to its bounds.
type Table struct {
	bounds map[Kind]Bounds
}

var defaultTable = NewTable(map[Kind]Bounds{
	Hour24:   {Min: "00", Max: "23"},
	Hour12:   {Min: "00", Max: "11"},
	Minute:   {Min: "00", Max: "59"},
	Second:   {Min: "00", Max: "59"},
	Meridian: {Min: "am", Max: "pm"},
})

// Default returns the shared standard table.
func Default() *Table {
	return defaultTable
}

// NewTable builds a table from the given bounds. The map is copied.
func NewTable(bounds map[Kind]Bounds) *Table {
	t := &Table{bounds: make(map[Kind]Bounds, len(bounds))}
	for k, b := range bounds {
		t.bounds[k] = b
	}
	return t
}

// BoundsFor returns the bounds of kind k. Kinds missing from the table
// yield the zero Bounds.
func (t *Table) BoundsFor(k Kind) Bounds {
	return t.bounds[k]
}

// BoundsFor looks k up in the default table.
func BoundsFor(k Kind) Bounds {
	return defaultTable.BoundsFor(k)
}
