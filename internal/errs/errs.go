// Package errs defines the error taxonomy shared by the analysis pipeline.
package errs

import (
	"fmt"
	"strings"
)

// DataError reports that an input table is missing required columns, most
// importantly the museum_id/museum_name join keys.
type DataError struct {
	Source  string
	Missing []string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("data error in %s: missing required columns: %s",
		e.Source, strings.Join(e.Missing, ", "))
}

// InvalidGranularityError reports an unsupported bucketing unit. Callers get
// the allowed set back and decide retry policy themselves; the pipeline never
// prompts for input.
type InvalidGranularityError struct {
	Requested string
	Allowed   []string
}

func (e *InvalidGranularityError) Error() string {
	return fmt.Sprintf("invalid granularity %q, allowed: %s",
		e.Requested, strings.Join(e.Allowed, ", "))
}
