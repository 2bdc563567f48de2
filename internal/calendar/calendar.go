// Package calendar adds calendar-relative amounts to instants and measures the
// exact elapsed time between instants.
package calendar

import (
	"errors"
	"math"
	"time"
)

// ErrOutOfRange is returned by Add when a field is not finite or the result
// falls outside the representable range of ±8.64e15 ms around the Unix epoch.
var ErrOutOfRange = errors.New("calendar amount out of range")

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour

	// maxEpochMs bounds results the same way ECMAScript dates are bounded.
	maxEpochMs = 8.64e15
	// maxField rejects fields that could not produce an in-range result
	// before they are converted to int.
	maxField = 1e9
)

// Duration is a structured duration. Fields may be fractional and negative.
type Duration struct {
	Years        float64 `json:"years,omitempty"`
	Quarters     float64 `json:"quarters,omitempty"`
	Months       float64 `json:"months,omitempty"`
	Weeks        float64 `json:"weeks,omitempty"`
	Days         float64 `json:"days,omitempty"`
	Hours        float64 `json:"hours,omitempty"`
	Minutes      float64 `json:"minutes,omitempty"`
	Seconds      float64 `json:"seconds,omitempty"`
	Milliseconds float64 `json:"milliseconds,omitempty"`
}

func (d Duration) fields() []float64 {
	return []float64{d.Years, d.Quarters, d.Months, d.Weeks, d.Days, d.Hours, d.Minutes, d.Seconds, d.Milliseconds}
}

// Add advances t by d.
//
// Whole years, quarters, months, weeks and days move the wall clock in t's
// location the way time.AddDate does, so an overflowing day of month rolls
// into the next month: Jan 31 plus one month is Mar 2 or Mar 3. Everything
// else is added as absolute time, converting fractional calendar parts with a
// year of 365 days, a quarter of 91 days, a month of 30 days and a week of 7
// days.
func Add(t time.Time, d Duration) (time.Time, error) {
	for _, f := range d.fields() {
		if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > maxField*msPerDay {
			return time.Time{}, ErrOutOfRange
		}
	}

	years, fracYears := math.Modf(d.Years)
	quarters, fracQuarters := math.Modf(d.Quarters)
	months, fracMonths := math.Modf(d.Months)
	weeks, fracWeeks := math.Modf(d.Weeks)
	days, fracDays := math.Modf(d.Days)

	totalMonths := years*12 + quarters*3 + months
	totalDays := weeks*7 + days
	if math.Abs(totalMonths) > maxField || math.Abs(totalDays) > maxField {
		return time.Time{}, ErrOutOfRange
	}

	rest := fracYears*365*msPerDay +
		fracQuarters*91*msPerDay +
		fracMonths*30*msPerDay +
		fracWeeks*7*msPerDay +
		fracDays*msPerDay +
		d.Hours*msPerHour +
		d.Minutes*msPerMinute +
		d.Seconds*msPerSecond +
		d.Milliseconds
	if math.Abs(rest) > 2*maxEpochMs {
		return time.Time{}, ErrOutOfRange
	}

	shifted := t.AddDate(0, int(totalMonths), int(totalDays))

	restSec, restFrac := math.Modf(rest / msPerSecond)
	nsec := int64(shifted.Nanosecond()) + int64(math.Round(restFrac*float64(time.Second)))
	out := time.Unix(shifted.Unix()+int64(restSec), nsec).In(t.Location())

	if ms := epochMillis(out); math.Abs(ms) > maxEpochMs {
		return time.Time{}, ErrOutOfRange
	}
	return out, nil
}

// Between returns the exact number of milliseconds from a to b, including any
// sub-millisecond remainder.
func Between(a, b time.Time) float64 {
	secs := float64(b.Unix() - a.Unix())
	nanos := float64(b.Nanosecond() - a.Nanosecond())
	return secs*msPerSecond + nanos/float64(time.Millisecond)
}

func epochMillis(t time.Time) float64 {
	return float64(t.Unix())*msPerSecond + float64(t.Nanosecond())/float64(time.Millisecond)
}
