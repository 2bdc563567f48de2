package ms

import (
	"fmt"
	"math"
	"time"

	"github.com/jparise/ms/internal/timeparse"
)

// maxEpochMillis is the largest magnitude accepted by FromMillis.
const maxEpochMillis = 8.64e15

type fromKind int

const (
	fromUnset fromKind = iota
	fromTime
	fromISO
	fromMillis
)

// From is the reference instant that anchors calendar-relative units (months
// and years). The zero From means no instant was supplied and the current time
// is used instead.
type From struct {
	kind   fromKind
	t      time.Time
	iso    string
	millis int64
}

// FromTime anchors conversions at t. Calendar arithmetic happens in t's
// location.
func FromTime(t time.Time) From {
	return From{kind: fromTime, t: t}
}

// FromISO anchors conversions at an ISO-8601 date or date-time. Values without
// an offset are read as UTC. The string is validated when it is used.
func FromISO(s string) From {
	return From{kind: fromISO, iso: s}
}

// FromMillis anchors conversions at a Unix epoch timestamp in milliseconds,
// in UTC.
func FromMillis(ms int64) From {
	return From{kind: fromMillis, millis: ms}
}

// IsZero reports whether no reference instant was supplied.
func (f From) IsZero() bool {
	return f.kind == fromUnset
}

func (f From) String() string {
	switch f.kind {
	case fromTime:
		return f.t.Format(time.RFC3339Nano)
	case fromISO:
		return f.iso
	case fromMillis:
		return fmt.Sprintf("%d", f.millis)
	}
	return "now"
}

// Validate reports whether f names a usable instant. The zero From is valid.
// Errors wrap ErrInvalidReferenceInstant.
func (f From) Validate() error {
	if f.IsZero() {
		return nil
	}
	_, err := f.resolve()
	return err
}

func (f From) resolve() (time.Time, error) {
	switch f.kind {
	case fromTime:
		return f.t, nil
	case fromISO:
		t, err := timeparse.ParseTime(f.iso)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidReferenceInstant, err)
		}
		return t, nil
	case fromMillis:
		if math.Abs(float64(f.millis)) > maxEpochMillis {
			return time.Time{}, fmt.Errorf("%w: %d is out of range", ErrInvalidReferenceInstant, f.millis)
		}
		return time.UnixMilli(f.millis).UTC(), nil
	}
	return time.Time{}, ErrInvalidReferenceInstant
}

// Options controls parsing and formatting. A nil *Options uses the defaults:
// the current time as reference instant and short formatting.
type Options struct {
	// From is the reference instant for months and years.
	From From
	// Long selects the verbose format ("1 day" rather than "1d").
	Long bool
	// Now reads the clock when From is unset. Defaults to time.Now.
	Now func() time.Time
}

// validate checks a supplied reference instant without reading the clock.
func (o *Options) validate() error {
	if o == nil {
		return nil
	}
	return o.From.Validate()
}

// instant returns the reference instant, falling back to the clock.
func (o *Options) instant() (time.Time, error) {
	if o == nil {
		return time.Now(), nil
	}
	if !o.From.IsZero() {
		return o.From.resolve()
	}
	if o.Now != nil {
		return o.Now(), nil
	}
	return time.Now(), nil
}

func (o *Options) long() bool {
	return o != nil && o.Long
}
