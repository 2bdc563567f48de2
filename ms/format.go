package ms

import (
	"math"
	"strconv"
	"strings"

	"github.com/jparise/ms/internal/timeparse"
)

// formatUnits lists the units Format may choose, largest first. Months and
// years have no fixed length and are never used for display.
var formatUnits = []struct {
	unit   timeparse.Unit
	length float64
	abbrev string
}{
	{timeparse.Day, 24 * 60 * 60 * 1000, "d"},
	{timeparse.Hour, 60 * 60 * 1000, "h"},
	{timeparse.Minute, 60 * 1000, "m"},
	{timeparse.Second, 1000, "s"},
}

// Format renders a millisecond count using the largest of days, hours,
// minutes and seconds that fits, or milliseconds when none does.
//
// The short style rounds to a whole count and appends an abbreviation: "2d",
// "-1h", "500ms". The long style spells the unit out and pluralizes when the
// magnitude is at least one and a half units: "1 minute", "2 minutes",
// "500 ms".
func Format(v float64, opts *Options) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", ErrNonFiniteDuration
	}
	if err := opts.validate(); err != nil {
		return "", err
	}
	if opts.long() {
		return formatLong(v), nil
	}
	return formatShort(v), nil
}

func formatShort(v float64) string {
	abs := math.Abs(v)
	for _, u := range formatUnits {
		if abs >= u.length {
			return formatNumber(round(v/u.length)) + u.abbrev
		}
	}
	return formatNumber(v) + "ms"
}

func formatLong(v float64) string {
	abs := math.Abs(v)
	for _, u := range formatUnits {
		if abs >= u.length {
			return plural(v, abs, u.length, u.unit.String())
		}
	}
	return formatNumber(v) + " ms"
}

// plural decides on the magnitude, not the rounded count, so 1.4 minutes is
// "1 minute" while 1.5 minutes is "2 minutes".
func plural(v, abs, length float64, name string) string {
	s := formatNumber(round(v/length)) + " " + name
	if abs >= length*1.5 {
		s += "s"
	}
	return s
}

// round rounds half toward positive infinity.
func round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// formatNumber prints the shortest decimal that reads back as x, switching to
// exponent notation at 1e21 and below 1e-6.
func formatNumber(x float64) string {
	if x == 0 {
		return "0"
	}
	abs := math.Abs(x)
	if abs < 1e21 && abs >= 1e-6 {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	s := strconv.FormatFloat(x, 'g', -1, 64)
	s = strings.Replace(s, "e+0", "e+", 1)
	s = strings.Replace(s, "e-0", "e-", 1)
	return s
}
