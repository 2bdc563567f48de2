// Package ms converts between human-readable duration strings and
// milliseconds.
//
//	ms.Parse("2 days", nil)                    // 172800000
//	ms.Parse("1 month", &ms.Options{From: ms.FromISO("2024-01-31")})
//	ms.Format(60000, nil)                      // "1m"
//	ms.Format(120000, &ms.Options{Long: true}) // "2 minutes"
//
// Months and years are calendar units: their length in milliseconds depends on
// the reference instant in Options.From, or on the current time when none is
// given. All other units have a fixed length.
package ms

// Value is the input to Convert: a String to parse, a Number to format, or a
// Spec to measure.
type Value interface {
	value()
}

// String is a duration string for Convert to parse.
type String string

// Number is a millisecond count for Convert to format.
type Number float64

func (String) value() {}
func (Number) value() {}
func (Spec) value()   {}

// Kind identifies which field of a Result is set.
type Kind int

const (
	// KindMillis marks a Result holding a millisecond count.
	KindMillis Kind = iota
	// KindText marks a Result holding a formatted string.
	KindText
)

// Result is the output of Convert.
type Result struct {
	Kind   Kind
	Millis float64
	Text   string
}

func (r Result) String() string {
	if r.Kind == KindText {
		return r.Text
	}
	return formatNumber(r.Millis)
}

// Convert parses a String, formats a Number, or measures a Spec. Every failure
// is returned as an *Error that echoes v; errors.Is still matches the
// underlying sentinel.
func Convert(v Value, opts *Options) (Result, error) {
	r, err := convert(v, opts)
	if err != nil {
		return Result{}, &Error{Err: err, Value: v}
	}
	return r, nil
}

func convert(v Value, opts *Options) (Result, error) {
	switch v := v.(type) {
	case Spec:
		n, err := FromDuration(v, opts)
		return Result{Kind: KindMillis, Millis: n}, err
	case String:
		n, err := Parse(string(v), opts)
		return Result{Kind: KindMillis, Millis: n}, err
	case Number:
		s, err := Format(float64(v), opts)
		return Result{Kind: KindText, Text: s}, err
	}
	return Result{}, ErrInvalidArgumentShape
}
