package ms

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgumentShape is returned by Convert for a nil Value.
	ErrInvalidArgumentShape = errors.New("value must be a duration spec, string, or number")
	// ErrInvalidStringLength is returned when a string to parse is empty or
	// longer than MaxLength characters.
	ErrInvalidStringLength = errors.New("value must be a string with length between 1 and 99")
	// ErrInvalidReferenceInstant is returned when Options.From cannot be
	// resolved to an instant.
	ErrInvalidReferenceInstant = errors.New("from must be a time, ISO-8601 string, or epoch milliseconds")
	// ErrNonFiniteDuration is returned when formatting NaN or an infinity.
	ErrNonFiniteDuration = errors.New("value must be a finite number")
)

// Error is the single error type returned by Convert. It carries the
// underlying failure and the value that caused it.
type Error struct {
	Err   error
	Value Value
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v. value=%s", e.Err, echo(e.Value))
}

func (e *Error) Unwrap() error {
	return e.Err
}

// echo serializes v as JSON. Values JSON cannot represent, such as a nil
// Value or a NaN, echo as null.
func echo(v Value) string {
	if v == nil {
		return "null"
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "null"
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
