package ms

import (
	"math"
	"unicode/utf8"

	"github.com/jparise/ms/internal/timeparse"
)

// MaxLength is the longest string, in characters, that Parse accepts.
const MaxLength = 99

// StringValue is a duration string already known to match the grammar, such
// as a constant written in source code.
type StringValue string

// Parse converts a duration string such as "2 days", "100ms" or "1.5h" to
// milliseconds. A number without a unit is read as milliseconds.
//
// Parse returns NaN with a nil error when s does not match the duration
// grammar; callers must check for it with math.IsNaN. An empty string or one
// longer than MaxLength characters is an error.
func Parse(s string, opts *Options) (float64, error) {
	if n := utf8.RuneCountInString(s); n == 0 || n > MaxLength {
		return 0, ErrInvalidStringLength
	}

	q, ok, err := timeparse.ParseQuantity(s)
	if err != nil {
		return 0, err
	}
	if !ok {
		return math.NaN(), nil
	}

	return resolve(q, opts)
}

// ParseStrict is Parse for a StringValue.
func ParseStrict(v StringValue, opts *Options) (float64, error) {
	return Parse(string(v), opts)
}
