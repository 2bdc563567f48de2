package ms

import (
	"math"
	"time"

	"github.com/jparise/ms/internal/calendar"
	"github.com/jparise/ms/internal/timeparse"
)

// Spec is a structured duration. Years, quarters, months, weeks and days are
// applied on the calendar relative to the reference instant; the remaining
// fields are exact.
type Spec calendar.Duration

// FromDuration returns the number of milliseconds between the reference
// instant and the reference instant advanced by d. The result is NaN when the
// advanced instant is out of range.
func FromDuration(d Spec, opts *Options) (float64, error) {
	if err := opts.validate(); err != nil {
		return 0, err
	}
	from, err := opts.instant()
	if err != nil {
		return 0, err
	}
	return offset(from, calendar.Duration(d)), nil
}

// resolve converts a parsed quantity to milliseconds. Fixed-length units are
// multiplied out; months and years are measured on the calendar from the
// reference instant.
func resolve(q timeparse.Quantity, opts *Options) (float64, error) {
	if err := opts.validate(); err != nil {
		return 0, err
	}

	if unitMs, ok := q.Unit.Milliseconds(); ok {
		if q.Unit == timeparse.Millisecond {
			return q.Value, nil
		}
		return q.Value * unitMs, nil
	}

	from, err := opts.instant()
	if err != nil {
		return 0, err
	}

	switch q.Unit {
	case timeparse.Month:
		return offset(from, calendar.Duration{Months: q.Value}), nil
	case timeparse.Year:
		return offset(from, calendar.Duration{Years: q.Value}), nil
	}
	return 0, timeparse.ErrUnmappedUnit
}

func offset(from time.Time, d calendar.Duration) float64 {
	to, err := calendar.Add(from, d)
	if err != nil {
		return math.NaN()
	}
	return calendar.Between(from, to)
}
