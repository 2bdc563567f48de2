// Package convert runs batches of duration conversions and reports the results.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hako/durafmt"
	"github.com/jparise/ms/ms"
	"golang.org/x/sync/semaphore"
)

// ErrNotDuration is reported for inputs that do not match the duration
// grammar.
var ErrNotDuration = errors.New("not a duration")

// maxBreakdownMillis is the largest magnitude that fits in a time.Duration.
const maxBreakdownMillis = float64(math.MaxInt64 / int64(time.Millisecond))

// Converter orchestrates a batch of conversions.
type Converter struct {
	output *Output
}

// New creates a new Converter.
func New(stdout, stderr io.Writer, colorize bool) *Converter {
	return &Converter{
		output: NewOutput(stdout, stderr, colorize),
	}
}

type result struct {
	text string
	err  error
}

// Convert converts every input and writes the results in input order. It
// returns an error only when no input could be converted.
func (c *Converter) Convert(ctx context.Context, opts *Options) error {
	if len(opts.Inputs) == 0 {
		c.output.Infof("No values to convert")
		return nil
	}

	msOpts := &ms.Options{From: opts.From, Long: opts.Long}
	results := make([]result, len(opts.Inputs))

	// Convert values concurrently with bounded parallelism
	var wg sync.WaitGroup
	sem := semaphore.NewWeighted(int64(max(opts.Jobs, 1)))

	for i, input := range opts.Inputs {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return err
		}

		wg.Add(1)
		go func(i int, input string) {
			defer wg.Done()
			defer sem.Release(1)

			text, err := convertOne(input, opts, msOpts)
			results[i] = result{text: text, err: err}
		}(i, input)
	}

	wg.Wait()

	errorCount := 0
	for i, r := range results {
		input := opts.Inputs[i]
		switch {
		case errors.Is(r.err, ErrNotDuration):
			errorCount++
			c.output.Warningf("%q: %v", input, r.err)
		case r.err != nil:
			errorCount++
			c.output.Errorf("%v", r.err)
		case len(opts.Inputs) == 1:
			c.output.Value(r.text)
		default:
			c.output.Result(input, r.text)
		}
	}

	if errorCount == len(opts.Inputs) {
		return fmt.Errorf("failed to convert all %d values", len(opts.Inputs))
	}

	return nil
}

func convertOne(input string, opts *Options, msOpts *ms.Options) (string, error) {
	v, err := valueFor(input, opts.Mode)
	if err != nil {
		return "", err
	}

	r, err := ms.Convert(v, msOpts)
	if err != nil {
		return "", err
	}

	if r.Kind != ms.KindMillis {
		return r.Text, nil
	}
	if math.IsNaN(r.Millis) {
		return "", ErrNotDuration
	}
	if opts.Breakdown {
		if b, ok := breakdown(r.Millis); ok {
			return fmt.Sprintf("%s (%s)", r, b), nil
		}
	}
	return r.String(), nil
}

// valueFor chooses the conversion for input. In auto mode anything that reads
// as a plain number is formatted.
func valueFor(input string, mode Mode) (ms.Value, error) {
	switch mode {
	case ModeParse:
		return ms.String(input), nil
	case ModeFormat:
		n, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", input, err)
		}
		return ms.Number(n), nil
	default:
		if n, err := strconv.ParseFloat(input, 64); err == nil {
			return ms.Number(n), nil
		}
		return ms.String(input), nil
	}
}

// breakdown renders millis across several units, e.g. "1 day 2 hours".
func breakdown(millis float64) (string, bool) {
	abs := math.Abs(millis)
	if abs > maxBreakdownMillis {
		return "", false
	}

	d := time.Duration(math.Round(abs)) * time.Millisecond
	s := durafmt.Parse(d).String()
	if millis < 0 {
		s = "-" + s
	}
	return s, true
}
