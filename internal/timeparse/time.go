package timeparse

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Layouts tried by ParseTime, in order. Layouts without an offset are
// interpreted as UTC. Fractional seconds are accepted after any seconds field.
var timeLayouts = []string{
	// Calendar dates, extended and reduced precision.
	time.DateOnly,
	"2006-01",
	"2006",

	// Ordinal dates.
	"2006-002",

	// Date-times, extended format.
	time.DateTime,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15",
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05Z07",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04Z07",
	"2006-01-02T15Z07:00",
	"2006-01-02T15Z0700",
	"2006-01-02T15Z07",

	// Basic format.
	"20060102",
	"2006002",
	"20060102T150405",
	"20060102T1504",
	"20060102T150405Z0700",
	"20060102T1504Z0700",
}

// weekDateRes match ISO week dates in extended (2024-W05-3, 2024-W05) and
// basic (2024W053, 2024W05) format.
var weekDateRes = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{4})-W(\d{2})(?:-([1-7]))?$`),
	regexp.MustCompile(`^(\d{4})W(\d{2})([1-7])?$`),
}

// ParseTime parses an ISO-8601 date or date-time. Values without an offset are
// read as UTC.
// Supported formats:
//   - YYYY, YYYY-MM, YYYY-MM-DD and YYYYMMDD (midnight UTC)
//   - YYYY-DDD and YYYYDDD ordinal dates
//   - YYYY-Www and YYYY-Www-D week dates
//   - YYYY-MM-DD HH:MM:SS (UTC)
//   - YYYY-MM-DDTHH, THH:MM and THH:MM:SS with optional fractional seconds,
//     each with an optional Z, ±HH, ±HHMM or ±HH:MM offset
//   - the basic forms YYYYMMDDTHHMM and YYYYMMDDTHHMMSS, optionally with Z or
//     ±HHMM
//
// Returns the parsed time or an error if the format is invalid.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	if t, ok := parseWeekDate(s); ok {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid time format %q (expected an ISO-8601 date or date-time such as YYYY-MM-DD or RFC3339)", s)
}

// parseWeekDate parses an ISO week date. A missing weekday means Monday.
func parseWeekDate(s string) (time.Time, bool) {
	var m []string
	for _, re := range weekDateRes {
		if m = re.FindStringSubmatch(s); m != nil {
			break
		}
	}
	if m == nil {
		return time.Time{}, false
	}

	year, _ := strconv.Atoi(m[1])
	week, _ := strconv.Atoi(m[2])
	weekday := 1
	if m[3] != "" {
		weekday, _ = strconv.Atoi(m[3])
	}

	// Week 1 is the week containing January 4th.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	monday := jan4.AddDate(0, 0, -((int(jan4.Weekday()) + 6) % 7))
	t := monday.AddDate(0, 0, (week-1)*7+weekday-1)

	if y, w := t.ISOWeek(); y != year || w != week {
		return time.Time{}, false
	}
	return t, true
}
