package schema

import (
	"fmt"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"datadict/dataset"
	"datadict/internal/suggest"
	"datadict/primitive"
	"datadict/provenance"
	"datadict/utils"
)

// Phase names the validation stage a verdict stopped in.
type Phase string

const (
	PhaseType  Phase = "type check"
	PhaseValue Phase = "value check"
)

// Verdict is the outcome of checking one column against its schema.
type Verdict struct {
	Column  string
	Passed  bool
	Phase   Phase
	Message string

	// Failing lists the offending raw values, deduplicated and sorted by
	// display form.
	Failing []primitive.Value

	// Suggestions maps an offending value to its closest admissible one,
	// when something plausible exists.
	Suggestions map[string]string
}

// ValidationError is the signaled form of a failed verdict. It unwraps to
// ErrCoercion or ErrDomain, so callers can branch on the failure class.
type ValidationError struct {
	Verdict Verdict
	class   error
}

func (e *ValidationError) Error() string {
	return e.Verdict.Column + ": " + e.Verdict.Message
}

func (e *ValidationError) Unwrap() error { return e.class }

// Validate checks col and signals failure as an error. The provenance
// trail always records the outcome before the error is returned.
func (q *Question) Validate(col *dataset.Column) error {
	v := q.Check(col)
	if v.Passed {
		return nil
	}

	class := ErrDomain
	if v.Phase == PhaseType {
		class = ErrCoercion
	}
	return &ValidationError{Verdict: v, class: class}
}

// Check runs the validation state machine: cast every cell, then check
// the substantive cells against the response constraints. Placeholders
// and nulls bypass both phases. Each phase appends one provenance entry.
func (q *Question) Check(col *dataset.Column) Verdict {
	caster := q.Caster()
	raw := col.Values()
	results := caster.CastAll(raw)

	if failing := castFailures(raw, results); len(failing) > 0 {
		msg := fmt.Sprintf("the data cannot be cast to %s", q.Kind.Code())
		return q.fail(PhaseType, msg, failing, nil)
	}
	q.pass(PhaseType, fmt.Sprintf("the data can be cast to %s", q.Kind.Code()))

	switch q.Response {
	default:
		// free response constrains nothing beyond the kind
		return Verdict{Column: q.Name, Passed: true, Phase: PhaseType,
			Message: fmt.Sprintf("the data can be cast to %s", q.Kind.Code())}
	case ResponseCategorical, ResponseBool:
		return q.checkDomain(raw, results, caster)
	case ResponseContinuous:
		return q.checkLimits(raw, results)
	}
}

// checkDomain compares coerced substantive cells against the coerced
// admissible order.
func (q *Question) checkDomain(raw []primitive.Value, results []primitive.Result, caster *primitive.Caster) Verdict {
	admissible := primitive.NewSet()
	for _, o := range q.Order {
		r := caster.Cast(o)
		if r.Class == primitive.Coerced {
			admissible.Add(r.Value)
		} else {
			admissible.Add(o)
		}
	}

	offending := primitive.NewSet()
	for i, r := range results {
		if r.Class != primitive.Coerced {
			continue
		}
		if !admissible.Contains(r.Value) {
			offending.Add(raw[i])
		}
	}

	if offending.Len() == 0 {
		return q.passVerdict("The column meets requirements.")
	}

	failing := sortValues(offending.Values())
	msg := "The following are not valid values: " + joinDisplay(failing)
	return q.fail(PhaseValue, msg, failing, q.suggestFor(failing))
}

// checkLimits compares coerced numeric cells against the inclusive
// limits. Without limits the phase passes vacuously.
func (q *Question) checkLimits(raw []primitive.Value, results []primitive.Result) Verdict {
	if q.Lower.IsNull() && q.Upper.IsNull() {
		return q.passVerdict("there were no limits specified")
	}

	lo, hasLower := q.Lower.AsFloat()
	hi, hasUpper := q.Upper.AsFloat()

	var tooLow, tooHigh bool
	offending := primitive.NewSet()
	for i, r := range results {
		if r.Class != primitive.Coerced {
			continue
		}
		f, ok := r.Value.AsFloat()
		if !ok {
			continue
		}
		if hasLower && hasUpper && utils.IsInRange(lo, f, hi) {
			continue
		}
		if hasLower && f < lo {
			tooLow = true
			offending.Add(raw[i])
		}
		if hasUpper && f > hi {
			tooHigh = true
			offending.Add(raw[i])
		}
	}

	if !tooLow && !tooHigh {
		return q.passVerdict(q.withUnits(limitsPassMessage(hasLower, hasUpper, q.Lower, q.Upper)))
	}

	msg := q.withUnits(limitsFailMessage(tooLow, tooHigh, q.Lower, q.Upper))
	return q.fail(PhaseValue, msg, sortValues(offending.Values()), nil)
}

func limitsPassMessage(hasLower, hasUpper bool, lower, upper primitive.Value) string {
	switch {
	default:
		return fmt.Sprintf("The values were between %s and %s", lower, upper)
	case hasLower && !hasUpper:
		return fmt.Sprintf("The values were greater than or equal to %s", lower)
	case !hasLower && hasUpper:
		return fmt.Sprintf("The values were less than or equal to %s", upper)
	}
}

func limitsFailMessage(tooLow, tooHigh bool, lower, upper primitive.Value) string {
	switch {
	default:
		return fmt.Sprintf("There are values less than %s and greater than %s", lower, upper)
	case tooLow && !tooHigh:
		return fmt.Sprintf("There are values less than %s", lower)
	case tooHigh && !tooLow:
		return fmt.Sprintf("There are values greater than %s", upper)
	}
}

func (q *Question) withUnits(msg string) string {
	if q.Units == "" {
		return msg
	}
	return msg + " " + q.Units
}

// suggestFor pairs offending values with their closest admissible ones.
func (q *Question) suggestFor(failing []primitive.Value) map[string]string {
	candidates := make([]string, len(q.Order))
	for i, o := range q.Order {
		candidates[i] = o.String()
	}

	var out map[string]string
	for _, v := range failing {
		best, _, ok := suggest.Closest(v.String(), candidates, 0)
		if !ok {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[v.String()] = best
	}
	return out
}

func (q *Question) pass(phase Phase, msg string) {
	q.log.Append(q.Name, "validate", provenance.CategoryPass, msg)
	log.Debugf("column %s %s passed: %s", q.Name, phase, msg)
}

func (q *Question) passVerdict(msg string) Verdict {
	q.pass(PhaseValue, msg)
	return Verdict{Column: q.Name, Passed: true, Phase: PhaseValue, Message: msg}
}

func (q *Question) fail(phase Phase, msg string, failing []primitive.Value, suggestions map[string]string) Verdict {
	q.log.Append(q.Name, "validate", provenance.CategoryError, msg)
	log.Debugf("column %s %s failed: %s", q.Name, phase, msg)
	return Verdict{
		Column:      q.Name,
		Phase:       phase,
		Message:     msg,
		Failing:     failing,
		Suggestions: suggestions,
	}
}

func castFailures(raw []primitive.Value, results []primitive.Result) []primitive.Value {
	failed := primitive.NewSet()
	for i, r := range results {
		if r.Class == primitive.Failed {
			failed.Add(raw[i])
		}
	}
	if failed.Len() == 0 {
		return nil
	}
	return sortValues(failed.Values())
}

func sortValues(values []primitive.Value) []primitive.Value {
	sort.Slice(values, func(i, j int) bool {
		return values[i].String() < values[j].String()
	})
	return values
}

func joinDisplay(values []primitive.Value) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, " | ")
}
