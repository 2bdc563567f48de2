package ms

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	second = 1000
	minute = 60 * second
	hour   = 60 * minute
	day    = 24 * hour
	week   = 7 * day
)

func utc(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"100", 100},
		{"1000", 1000},
		{"1.5", 1.5},
		{".5ms", 0.5},
		{"-100", -100},
		{"100ms", 100},
		{"3 msecs", 3},
		{"1 millisecond", 1},
		{"1s", second},
		{"1.5 sec", 1.5 * second},
		{"10 seconds", 10 * second},
		{"1m", minute},
		{"5 mins", 5 * minute},
		{"1h", hour},
		{"1.5h", 1.5 * hour},
		{"-1h", -hour},
		{"-.5h", -0.5 * hour},
		{"2 days", 2 * day},
		{"1d", day},
		{"1w", week},
		{"2 weeks", 2 * week},
		{"1   d", day},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCaseAndAbbreviation(t *testing.T) {
	for _, s := range []string{"2h", "2 hours", "2 HOURS", "2hrs", "2 Hr", "2hour"} {
		got, err := Parse(s, nil)
		require.NoError(t, err, s)
		assert.Equal(t, float64(7200000), got, s)
	}
}

func TestParseMismatchReturnsNaN(t *testing.T) {
	inputs := []string{
		"abc",
		"☃",
		"10-.5",
		"ms",
		"1h30m",
		"1.2.3",
		" 1s",
		"1 fortnight",
		"1e3",
		"--1",
		"1 h s",
		strings.Repeat("x", MaxLength),
	}
	for _, s := range inputs {
		got, err := Parse(s, nil)
		require.NoError(t, err, s)
		assert.True(t, math.IsNaN(got), "Parse(%q) = %v, want NaN", s, got)
	}
}

func TestParseLength(t *testing.T) {
	_, err := Parse("", nil)
	assert.ErrorIs(t, err, ErrInvalidStringLength)

	_, err = Parse(strings.Repeat("1", MaxLength+1), nil)
	assert.ErrorIs(t, err, ErrInvalidStringLength)

	got, err := Parse("1"+strings.Repeat(" ", MaxLength-2)+"s", nil)
	require.NoError(t, err)
	assert.Equal(t, float64(second), got)

	// Length is counted in characters, not bytes.
	got, err = Parse(strings.Repeat("é", MaxLength), nil)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))
}

func TestParseCalendarUnits(t *testing.T) {
	tests := []struct {
		name  string
		input string
		from  time.Time
		want  float64
	}{
		{"month from jan 31", "1 month", utc(2023, time.January, 31), 31 * day},
		{"month from feb 1", "1 month", utc(2023, time.February, 1), 28 * day},
		{"month from feb 1 leap year", "1mo", utc(2024, time.February, 1), 29 * day},
		{"negative month", "-1 mon", utc(2023, time.March, 1), -28 * day},
		{"fractional months", "1.5 months", utc(2024, time.January, 1), 46 * day},
		{"year", "1y", utc(2023, time.January, 1), 365 * day},
		{"leap year", "1 year", utc(2024, time.January, 1), 366 * day},
		{"two years", "2 yrs", utc(2023, time.January, 1), (365 + 366) * day},
		{"half year", "0.5yr", utc(2023, time.January, 1), 182.5 * day},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input, &Options{From: FromTime(tt.from)})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCalendarSensitivity(t *testing.T) {
	jan31, err := Parse("1 month", &Options{From: FromISO("2023-01-31")})
	require.NoError(t, err)
	feb1, err := Parse("1 month", &Options{From: FromISO("2023-02-01")})
	require.NoError(t, err)

	assert.NotEqual(t, jan31, feb1)
}

func TestParseIdempotent(t *testing.T) {
	opts := &Options{From: FromMillis(utc(2024, time.May, 31).UnixMilli())}
	for _, s := range []string{"1 month", "3y", "2.25 mo", "1h"} {
		a, err := Parse(s, opts)
		require.NoError(t, err)
		b, err := Parse(s, opts)
		require.NoError(t, err)
		assert.Equal(t, a, b, s)
	}
}

func TestParseUsesClock(t *testing.T) {
	calls := 0
	opts := &Options{Now: func() time.Time {
		calls++
		return utc(2023, time.February, 1)
	}}

	got, err := Parse("1 month", opts)
	require.NoError(t, err)
	assert.Equal(t, float64(28*day), got)
	assert.Equal(t, 1, calls)

	// Fixed-length units never read the clock.
	_, err = Parse("1 week", opts)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestParseFrom(t *testing.T) {
	tests := []struct {
		name string
		from From
		want float64
	}{
		{"time", FromTime(utc(2023, time.February, 1)), 28 * day},
		{"iso date", FromISO("2023-02-01"), 28 * day},
		{"iso date-time", FromISO("2023-02-01T10:00:00Z"), 28 * day},
		{"iso year and month", FromISO("2023-02"), 28 * day},
		{"iso basic date", FromISO("20230201"), 28 * day},
		{"iso ordinal date", FromISO("2023-032"), 28 * day},
		{"iso week date", FromISO("2023-W05-3"), 28 * day},
		{"iso hour only", FromISO("2023-02-01T10"), 28 * day},
		{"iso minutes with Z", FromISO("2023-02-01T10:00Z"), 28 * day},
		{"iso basic offset", FromISO("2023-02-01T10:00:00+0200"), 28 * day},
		{"iso year only", FromISO("2023"), 31 * day},
		{"epoch millis", FromMillis(utc(2023, time.February, 1).UnixMilli()), 28 * day},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse("1 month", &Options{From: tt.from})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInvalidFrom(t *testing.T) {
	for _, from := range []From{FromISO("not a date"), FromISO(""), FromMillis(math.MaxInt64)} {
		_, err := Parse("1 month", &Options{From: from})
		assert.ErrorIs(t, err, ErrInvalidReferenceInstant, from.String())

		// A bad reference instant is rejected even for fixed-length units.
		_, err = Parse("1h", &Options{From: from})
		assert.ErrorIs(t, err, ErrInvalidReferenceInstant, from.String())
	}
}

func TestFromValidate(t *testing.T) {
	assert.NoError(t, From{}.Validate())
	assert.NoError(t, FromISO("2024-01-31T10:00+02:00").Validate())
	assert.NoError(t, FromMillis(0).Validate())
	assert.NoError(t, FromTime(time.Time{}).Validate())

	assert.ErrorIs(t, FromISO("someday").Validate(), ErrInvalidReferenceInstant)
	assert.ErrorIs(t, FromMillis(math.MaxInt64).Validate(), ErrInvalidReferenceInstant)
}

func TestParseOutOfRangeCalendar(t *testing.T) {
	got, err := Parse(strings.Repeat("9", 30)+"y", &Options{From: FromTime(utc(2024, time.January, 1))})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))
}

func TestParseStrict(t *testing.T) {
	got, err := ParseStrict("1d", nil)
	require.NoError(t, err)
	assert.Equal(t, float64(day), got)

	_, err = ParseStrict("", nil)
	assert.ErrorIs(t, err, ErrInvalidStringLength)
}

func TestFromDuration(t *testing.T) {
	opts := &Options{From: FromTime(utc(2023, time.January, 31))}

	got, err := FromDuration(Spec{Months: 1}, opts)
	require.NoError(t, err)
	assert.Equal(t, float64(31*day), got)

	got, err = FromDuration(Spec{Days: 1, Hours: 2, Milliseconds: 5}, opts)
	require.NoError(t, err)
	assert.Equal(t, float64(day+2*hour+5), got)

	got, err = FromDuration(Spec{}, opts)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	got, err = FromDuration(Spec{Years: math.Inf(1)}, opts)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))

	_, err = FromDuration(Spec{Months: 1}, &Options{From: FromISO("yesterday")})
	assert.ErrorIs(t, err, ErrInvalidReferenceInstant)
}

func TestFormatShort(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0ms"},
		{math.Copysign(0, -1), "0ms"},
		{1, "1ms"},
		{2.5, "2.5ms"},
		{500, "500ms"},
		{-500, "-500ms"},
		{999, "999ms"},
		{second, "1s"},
		{1500, "2s"},
		{10 * second, "10s"},
		{minute, "1m"},
		{-minute, "-1m"},
		{10 * minute, "10m"},
		{hour, "1h"},
		{-hour, "-1h"},
		{-1.5 * hour, "-1h"},
		{10 * hour, "10h"},
		{day, "1d"},
		{-day, "-1d"},
		{week, "7d"},
		{234234234, "3d"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := Format(tt.input, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatLong(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{500, "500 ms"},
		{-500, "-500 ms"},
		{second, "1 second"},
		{1200, "1 second"},
		{1500, "2 seconds"},
		{10 * second, "10 seconds"},
		{minute, "1 minute"},
		{1.4 * minute, "1 minute"},
		{1.5 * minute, "2 minutes"},
		{-1.5 * minute, "-1 minutes"},
		{10 * minute, "10 minutes"},
		{hour, "1 hour"},
		{-hour, "-1 hour"},
		{10 * hour, "10 hours"},
		{day, "1 day"},
		{1.5 * day, "2 days"},
		{-day, "-1 day"},
		{234234234, "3 days"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := Format(tt.input, &Options{Long: true})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := Format(v, nil)
		assert.ErrorIs(t, err, ErrNonFiniteDuration)
	}
}

func TestFormatInvalidFrom(t *testing.T) {
	_, err := Format(1000, &Options{From: FromISO("bogus")})
	assert.ErrorIs(t, err, ErrInvalidReferenceInstant)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "1.5", formatNumber(1.5))
	assert.Equal(t, "-42", formatNumber(-42))
	assert.Equal(t, "1e+21", formatNumber(1e21))
	assert.Equal(t, "1e-7", formatNumber(1e-7))
	assert.Equal(t, "NaN", formatNumber(math.NaN()))
}

func TestRoundTrip(t *testing.T) {
	units := []struct {
		name   string
		length float64
	}{
		{"ms", 1},
		{"s", second},
		{"m", minute},
		{"h", hour},
		{"d", day},
	}

	// displayUnit is the unit Format picks for v.
	displayUnit := func(v float64) float64 {
		for _, l := range []float64{day, hour, minute, second} {
			if math.Abs(v) >= l {
				return l
			}
		}
		return 1
	}

	for _, u := range units {
		for n := -100; n <= 100; n++ {
			v := float64(n) * u.length
			for _, long := range []bool{false, true} {
				s, err := Format(v, &Options{Long: long})
				require.NoError(t, err)
				back, err := Parse(s, nil)
				require.NoError(t, err, s)
				assert.InDelta(t, v, back, displayUnit(v)/2, "%s -> %q", u.name, s)
			}
		}
	}
}

func TestConvert(t *testing.T) {
	opts := &Options{From: FromTime(utc(2023, time.January, 31))}

	r, err := Convert(String("1h"), opts)
	require.NoError(t, err)
	assert.Equal(t, Result{Kind: KindMillis, Millis: hour}, r)
	assert.Equal(t, "3600000", r.String())

	r, err = Convert(Number(minute), nil)
	require.NoError(t, err)
	assert.Equal(t, Result{Kind: KindText, Text: "1m"}, r)
	assert.Equal(t, "1m", r.String())

	r, err = Convert(Number(2*minute), &Options{Long: true})
	require.NoError(t, err)
	assert.Equal(t, "2 minutes", r.Text)

	r, err = Convert(Spec{Months: 1}, opts)
	require.NoError(t, err)
	assert.Equal(t, float64(31*day), r.Millis)

	r, err = Convert(String("nope"), nil)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(r.Millis))
	assert.Equal(t, "NaN", r.String())
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name    string
		value   Value
		opts    *Options
		wantErr error
		wantMsg string
	}{
		{
			name:    "nil value",
			value:   nil,
			wantErr: ErrInvalidArgumentShape,
			wantMsg: "value must be a duration spec, string, or number. value=null",
		},
		{
			name:    "empty string",
			value:   String(""),
			wantErr: ErrInvalidStringLength,
			wantMsg: `value must be a string with length between 1 and 99. value=""`,
		},
		{
			name:    "NaN",
			value:   Number(math.NaN()),
			wantErr: ErrNonFiniteDuration,
			wantMsg: "value must be a finite number. value=null",
		},
		{
			name:    "infinity",
			value:   Number(math.Inf(-1)),
			wantErr: ErrNonFiniteDuration,
			wantMsg: "value must be a finite number. value=null",
		},
		{
			name:    "bad from",
			value:   Spec{Months: 1},
			opts:    &Options{From: FromISO("tomorrow")},
			wantErr: ErrInvalidReferenceInstant,
			wantMsg: `value={"months":1}`,
		},
		{
			name:    "html is not escaped",
			value:   String(strings.Repeat("<", 100)),
			wantErr: ErrInvalidStringLength,
			wantMsg: `value="` + strings.Repeat("<", 100) + `"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Convert(tt.value, tt.opts)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var convErr *Error
			require.True(t, errors.As(err, &convErr))
			assert.Equal(t, tt.value, convErr.Value)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestFromString(t *testing.T) {
	assert.Equal(t, "now", From{}.String())
	assert.Equal(t, "2024-01-01", FromISO("2024-01-01").String())
	assert.Equal(t, "1700000000000", FromMillis(1700000000000).String())
	assert.Equal(t, "2024-01-01T00:00:00Z", FromTime(utc(2024, time.January, 1)).String())
	assert.True(t, From{}.IsZero())
	assert.False(t, FromMillis(0).IsZero())
}
