package dictionary

import (
	"errors"
	"fmt"
	"strings"

	"datadict/schema"
)

var (
	// ErrMismatch reports a table whose column set or order does not
	// line up with the dictionary entries.
	ErrMismatch = errors.New("table columns do not match the dictionary")
	// ErrValidation reports columns that failed their declared checks.
	ErrValidation = errors.New("there were issues with the following columns")
)

// Report aggregates one whole-table validation: the column placement
// check plus a verdict per checked question.
type Report struct {
	// Mismatch carries the column presence/order failure, empty when
	// the table lines up with the dictionary. When set, the per-column
	// checks never ran.
	Mismatch string

	// Failures and Passes hold the per-column verdicts in dictionary
	// order. Free-response questions are descriptive only and are not
	// checked.
	Failures []schema.Verdict
	Passes   []schema.Verdict
}

func (r *Report) addVerdict(v schema.Verdict) {
	if v.Passed {
		r.Passes = append(r.Passes, v)
	} else {
		r.Failures = append(r.Failures, v)
	}
}

// IsValid returns true when the table lined up and every checked
// column passed.
func (r *Report) IsValid() bool {
	return r.Mismatch == "" && len(r.Failures) == 0
}

// FailingColumns lists the names of the failed columns, dictionary
// order kept.
func (r *Report) FailingColumns() []string {
	out := make([]string, len(r.Failures))
	for i, f := range r.Failures {
		out[i] = f.Column
	}
	return out
}

// Err combines the failures into one error, nil when everything
// passed. The error unwraps to ErrMismatch or ErrValidation.
func (r *Report) Err() error {
	if r.Mismatch != "" {
		return fmt.Errorf("%w: %s", ErrMismatch, r.Mismatch)
	}
	if len(r.Failures) == 0 {
		return nil
	}

	lines := make([]string, len(r.Failures))
	for i, f := range r.Failures {
		lines[i] = fmt.Sprintf("\t%s - %s", f.Column, f.Message)
	}
	return fmt.Errorf("%w:\n%s", ErrValidation, strings.Join(lines, "\n"))
}
