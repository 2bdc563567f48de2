package convert

import (
	"github.com/jparise/ms/ms"
)

// Mode selects how inputs are interpreted.
type Mode string

const (
	// ModeAuto formats inputs that are plain numbers and parses the rest.
	ModeAuto Mode = "auto"
	// ModeParse parses every input as a duration string.
	ModeParse Mode = "parse"
	// ModeFormat formats every input as a millisecond count.
	ModeFormat Mode = "format"
)

// Options contains all conversion parameters.
type Options struct {
	Inputs    []string
	Mode      Mode
	Long      bool    // Verbose formatting ("2 minutes" rather than "2m")
	Breakdown bool    // Append a multi-unit rendering to parsed values
	From      ms.From // Reference instant for months and years (zero = now)
	Jobs      int     // Maximum concurrent conversions
}
