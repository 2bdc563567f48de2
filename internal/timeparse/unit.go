package timeparse

// Unit is a canonical duration unit.
type Unit int

const (
	Millisecond Unit = iota
	Second
	Minute
	Hour
	Day
	Week
	Month
	Year
)

var unitNames = [...]string{
	Millisecond: "millisecond",
	Second:      "second",
	Minute:      "minute",
	Hour:        "hour",
	Day:         "day",
	Week:        "week",
	Month:       "month",
	Year:        "year",
}

func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return "unknown"
	}
	return unitNames[u]
}

// Milliseconds returns the fixed length of u in milliseconds. Calendar units
// (month and year) have no fixed length and report ok == false.
func (u Unit) Milliseconds() (ms float64, ok bool) {
	switch u {
	case Millisecond:
		return 1, true
	case Second:
		return 1000, true
	case Minute:
		return 60 * 1000, true
	case Hour:
		return 60 * 60 * 1000, true
	case Day:
		return 24 * 60 * 60 * 1000, true
	case Week:
		return 7 * 24 * 60 * 60 * 1000, true
	}
	return 0, false
}

// units maps every lower-case unit spelling accepted by the grammar to its
// canonical unit. "m" is minute; "mo" and "mon" are month.
var units = map[string]Unit{
	"ms":           Millisecond,
	"msec":         Millisecond,
	"msecs":        Millisecond,
	"millisecond":  Millisecond,
	"milliseconds": Millisecond,

	"s":       Second,
	"sec":     Second,
	"secs":    Second,
	"second":  Second,
	"seconds": Second,

	"m":       Minute,
	"min":     Minute,
	"mins":    Minute,
	"minute":  Minute,
	"minutes": Minute,

	"h":     Hour,
	"hr":    Hour,
	"hrs":   Hour,
	"hour":  Hour,
	"hours": Hour,

	"d":    Day,
	"day":  Day,
	"days": Day,

	"w":     Week,
	"week":  Week,
	"weeks": Week,

	"mo":     Month,
	"mon":    Month,
	"month":  Month,
	"months": Month,

	"y":     Year,
	"yr":    Year,
	"yrs":   Year,
	"year":  Year,
	"years": Year,
}

// LookupUnit resolves a unit spelling, ignoring case.
func LookupUnit(s string) (Unit, bool) {
	u, ok := units[toLowerASCII(s)]
	return u, ok
}

func toLowerASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
