// Package timeparse provides the duration grammar and reference time parsing
// used by the ms package.
package timeparse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrUnmappedUnit is returned when the grammar accepts a unit token that the
// spelling table does not know. It indicates the two have drifted apart.
var ErrUnmappedUnit = errors.New("unit matched but has no canonical mapping")

// durationRe matches a lower-cased duration string. The unit alternatives must
// stay in sync with the units table.
var durationRe = regexp.MustCompile(`^(-?(?:\d+)?\.?\d+) *(milliseconds?|msecs?|ms|seconds?|secs?|s|minutes?|mins?|m|hours?|hrs?|h|days?|d|weeks?|w|months?|mon?|mo|years?|yrs?|y)?$`)

// Quantity is a parsed magnitude and its canonical unit.
type Quantity struct {
	Value float64
	Unit  Unit
}

// ParseQuantity matches s against the duration grammar:
//
//	value := "-"? digits? "."? digits
//	s     := value " "* unit?
//
// Unit spellings are case-insensitive. A missing unit means milliseconds.
// Strings that do not match the grammar report ok == false with a nil error;
// a mismatch is not a failure.
func ParseQuantity(s string) (q Quantity, ok bool, err error) {
	m := durationRe.FindStringSubmatch(toLowerASCII(s))
	if m == nil {
		return Quantity{}, false, nil
	}

	// The grammar admits only finite decimal syntax, so the only possible
	// error is a range error, in which case the value is already ±Inf.
	v, perr := strconv.ParseFloat(m[1], 64)
	if perr != nil && !errors.Is(perr, strconv.ErrRange) {
		return Quantity{}, false, fmt.Errorf("invalid duration %q: %w", s, perr)
	}

	if m[2] == "" {
		return Quantity{Value: v, Unit: Millisecond}, true, nil
	}

	unit, found := LookupUnit(m[2])
	if !found {
		return Quantity{}, false, fmt.Errorf("invalid duration %q: unit %q: %w", s, m[2], ErrUnmappedUnit)
	}

	return Quantity{Value: v, Unit: unit}, true, nil
}
