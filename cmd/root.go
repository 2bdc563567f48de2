package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/jparise/ms/internal/convert"
	"github.com/jparise/ms/ms"
	"github.com/spf13/cobra"
)

// colorMode represents when to use colored output.
type colorMode string

const (
	colorAuto   colorMode = "auto"
	colorAlways colorMode = "always"
	colorNever  colorMode = "never"
)

// String is used both by fmt.Print and by Cobra in help text.
func (c *colorMode) String() string {
	return string(*c)
}

// Set must have pointer receiver to validate and set the value.
func (c *colorMode) Set(v string) error {
	switch v {
	case "auto", "always", "never":
		*c = colorMode(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"auto\", \"always\", or \"never\"")
	}
}

// Type is only used in help text.
func (c *colorMode) Type() string {
	return "colorMode"
}

var (
	version = "dev"

	// Flags.
	color      = colorAuto
	long       bool
	from       string
	parseOnly  bool
	formatOnly bool
	breakdown  bool
	jobs       int

	// reference is the --from value, resolved by PreRunE.
	reference ms.From
)

var rootCmd = &cobra.Command{
	Use:   "ms [<value>...]",
	Short: "Convert between duration strings and milliseconds",
	Long: `ms converts human-readable durations to milliseconds and back.

A <value> that is a plain number is formatted as a duration. Anything else
is parsed as a duration string:
  <number>[ ]<unit>  e.g. "100ms", "1.5h", "2 days", "-1 week"

Units (case-insensitive):
  ms, msec, millisecond   s, sec, second   m, min, minute
  h, hr, hour             d, day           w, week
  mo, mon, month          y, yr, year

A number without a unit is milliseconds. Months and years are measured on
the calendar starting at --from (default: now).

When no values are given, they are read from standard input, one per line.
Use -- before negative values so they are not read as flags.

Examples:
  ms 2d
  ms 1.5h 90s
  ms 60000
  ms --long 120000
  ms --from 2024-01-31 "1 month"
  ms --parse 1000
  ms -- -1h
  ms -b 26h`,
	Version: version,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if jobs < 1 || jobs > 100 {
			return fmt.Errorf("--jobs must be between 1 and 100, got %d", jobs)
		}

		if from != "" {
			f, err := parseFrom(from)
			if err != nil {
				return fmt.Errorf("invalid --from %q: %w", from, err)
			}
			reference = f
		}

		return nil
	},
	RunE: run,
}

func init() {
	rootCmd.Flags().Var(&color, "color",
		"colorize output: auto, always, never")
	rootCmd.Flags().BoolVarP(&long, "long", "l", false,
		"use verbose formatting (e.g., \"2 minutes\" instead of \"2m\")")
	rootCmd.Flags().StringVar(&from, "from", "",
		"reference instant for months and years: ISO-8601 date or epoch milliseconds")
	rootCmd.Flags().BoolVar(&parseOnly, "parse", false,
		"parse every value as a duration string")
	rootCmd.Flags().BoolVar(&formatOnly, "format", false,
		"format every value as milliseconds")
	rootCmd.Flags().BoolVarP(&breakdown, "breakdown", "b", false,
		"also show parsed values broken down into units")
	rootCmd.Flags().IntVarP(&jobs, "jobs", "j", 10,
		"maximum concurrent conversions")
	rootCmd.MarkFlagsMutuallyExclusive("parse", "format")
}

func Execute() error {
	return rootCmd.Execute()
}

// parseFrom interprets a --from value as epoch milliseconds when it is an
// integer and as an ISO-8601 date or date-time otherwise. All-digit ISO forms
// such as 2024 or 20240131 therefore read as epoch milliseconds.
func parseFrom(s string) (ms.From, error) {
	f := ms.FromISO(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		f = ms.FromMillis(n)
	}
	if err := f.Validate(); err != nil {
		return ms.From{}, err
	}
	return f, nil
}

// readInputs reads one value per line, skipping blank lines. Surrounding
// whitespace is removed.
func readInputs(r io.Reader) ([]string, error) {
	var inputs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			inputs = append(inputs, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading values: %w", err)
	}
	return inputs, nil
}

// mode converts the validated --parse and --format flags.
func mode() convert.Mode {
	switch {
	case parseOnly:
		return convert.ModeParse
	case formatOnly:
		return convert.ModeFormat
	default:
		return convert.ModeAuto
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var colorize bool
	switch color {
	case colorAlways:
		colorize = true
	case colorNever:
		colorize = false
	case colorAuto:
		terminal := term.FromEnv()
		colorize = terminal.IsColorEnabled()
	}

	inputs := args
	if len(inputs) == 0 {
		var err error
		inputs, err = readInputs(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}

	// Build conversion options
	opts := &convert.Options{
		Inputs:    inputs,
		Mode:      mode(),
		Long:      long,
		Breakdown: breakdown,
		From:      reference,
		Jobs:      jobs,
	}

	c := convert.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), colorize)
	return c.Convert(ctx, opts)
}
