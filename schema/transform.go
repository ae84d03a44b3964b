package schema

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"datadict/dataset"
	"datadict/internal/common"
	"datadict/primitive"
	"datadict/provenance"
	"datadict/utils"
)

// Transformation operations rewrite a column cell by cell and keep the
// schema consistent with the rewrite: the admissible values pass through
// the same mapping, the extremes follow, and one provenance entry records
// the before/after form of every value the mapping touched.

// CastColumn rewrites every substantive cell into the declared kind and
// writes the coerced form back. A single cell the kind cannot represent
// fails the whole column with ErrCoercion, recorded before signaling.
func (q *Question) CastColumn(col *dataset.Column) error {
	caster := q.Caster()
	if err := q.requireCastable(col, caster, "cast data type"); err != nil {
		return err
	}
	fn := func(v primitive.Value) primitive.Value {
		if r := caster.Cast(v); r.Class == primitive.Coerced {
			return r.Value
		}
		return v
	}
	detail := fmt.Sprintf("cast to %s", q.Kind.Code())
	q.applyRemap(col, "cast data type", provenance.CategoryReplace, detail, fn)
	return nil
}

// DropAmbiguous nulls every cell carrying an ambiguous marker, so the
// column only holds interpretable responses.
func (q *Question) DropAmbiguous(col *dataset.Column) {
	amb := q.Placeholders.Ambiguous
	fn := func(v primitive.Value) primitive.Value {
		if v.IsNull() || amb.Contains(v) {
			return primitive.Null
		}
		return v
	}
	detail := remapDetail(amb.Values(), fn)
	q.applyRemap(col, "remove ambiguous values", provenance.CategoryDrop, detail, fn)
}

// DropInfrequent nulls every admissible value observed at most
// FrequencyCutoff times, including values absent from the column
// entirely. Groups that small rarely support analysis.
func (q *Question) DropInfrequent(col *dataset.Column) error {
	if q.FrequencyCutoff.IsNull() {
		return fmt.Errorf("%s: %w: no frequency cutoff set", q.Name, ErrState)
	}
	cutoff, _ := q.FrequencyCutoff.AsFloat()

	caster := q.Caster()
	dropped := primitive.NewSet()
	for _, o := range q.Order {
		n := 0
		for _, cell := range col.Values() {
			if !cell.IsNull() && cellEquals(caster, cell, o) {
				n++
			}
		}
		if float64(n) <= cutoff {
			dropped.Add(coercedForm(caster, o))
		}
	}

	fn := func(v primitive.Value) primitive.Value {
		if v.IsNull() || dropped.Contains(coercedForm(caster, v)) {
			return primitive.Null
		}
		return v
	}
	detail := remapDetail(q.Order, fn)
	q.applyRemap(col, "drop infrequent values", provenance.CategoryDrop, detail, fn)
	return nil
}

// ConvertToCodes replaces each admissible value with its numeric code:
// the matching entry of the code table when one is set, the value's rank
// in the admissible order otherwise. Numeric cells pass through, anything
// else unmatched becomes null.
func (q *Question) ConvertToCodes(col *dataset.Column) error {
	if common.IsEmpty(q.Order) {
		return fmt.Errorf("%s: %w: no admissible values to rank", q.Name, ErrState)
	}

	caster := q.Caster()
	order := append([]primitive.Value(nil), q.Order...)
	codes := make([]primitive.Value, len(order))
	for i, o := range order {
		codes[i] = primitive.Int(int64(i))
		for _, c := range q.Codes {
			if c.Label == o.String() {
				codes[i] = c.Code
				break
			}
		}
	}

	fn := func(v primitive.Value) primitive.Value {
		if v.IsNull() {
			return primitive.Null
		}
		if v.IsNumeric() {
			return v
		}
		for i, o := range order {
			if cellEquals(caster, v, o) {
				return codes[i]
			}
		}
		return primitive.Null
	}
	detail := remapDetail(order, fn)
	q.applyRemap(col, "convert to numeric", provenance.CategoryReplace, detail, fn)
	return nil
}

// ConvertToLabels replaces coded cells with the label of the matching
// code table entry. Cells matching no entry keep their current form.
func (q *Question) ConvertToLabels(col *dataset.Column) error {
	if len(q.Codes) == 0 {
		return fmt.Errorf("%s: %w: no code table set", q.Name, ErrState)
	}

	caster := q.Caster()
	codes := append([]Coding(nil), q.Codes...)
	fn := func(v primitive.Value) primitive.Value {
		if v.IsNull() {
			return primitive.Null
		}
		for _, c := range codes {
			if cellEquals(caster, v, c.Code) {
				return primitive.Text(c.Label)
			}
		}
		return v
	}

	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = fmt.Sprintf("%s >>> %s", c.Code, c.Label)
	}
	q.applyRemap(col, "convert to labels", provenance.CategoryReplace,
		strings.Join(parts, " | "), fn)
	return nil
}

// LabelOrder prefixes each admissible value with its rank, so string
// sorting reproduces the declared order. Numeric cells pass through,
// anything else unmatched becomes null.
func (q *Question) LabelOrder(col *dataset.Column) error {
	if common.IsEmpty(q.Order) {
		return fmt.Errorf("%s: %w: no admissible values to label", q.Name, ErrState)
	}

	caster := q.Caster()
	order := append([]primitive.Value(nil), q.Order...)
	labels := make([]primitive.Value, len(order))
	for i, o := range order {
		labels[i] = primitive.Text(fmt.Sprintf("(%d) %s", i, o))
	}

	fn := func(v primitive.Value) primitive.Value {
		if v.IsNull() {
			return primitive.Null
		}
		if v.IsNumeric() {
			return v
		}
		for i, o := range order {
			if cellEquals(caster, v, o) {
				return labels[i]
			}
		}
		return primitive.Null
	}
	detail := remapDetail(order, fn)
	q.applyRemap(col, "label order", provenance.CategoryReplace, detail, fn)
	return nil
}

// RemapNull nulls every cell carrying a declared missing marker and
// drops those markers from the admissible values.
func (q *Question) RemapNull(col *dataset.Column) {
	missing := q.Placeholders.Missing
	fn := func(v primitive.Value) primitive.Value {
		if v.IsNull() || missing.Contains(v) {
			return primitive.Null
		}
		return v
	}
	detail := remapDetail(missing.Values(), fn)
	q.applyRemap(col, "correct null values", provenance.CategoryDrop, detail, fn)
}

// Remap rewrites cells through an arbitrary function. The log entry
// records the mapping for every distinct value the column held.
func (q *Question) Remap(col *dataset.Column, fn primitive.RemapFunc) {
	detail := remapDetail(col.Unique(), fn)
	q.applyRemap(col, "remap values", provenance.CategoryReplace, detail, fn)
}

// RemapTable rewrites cells through a lookup table. Values absent from
// the table keep their current form.
func (q *Question) RemapTable(col *dataset.Column, mappings []Mapping) {
	q.Remap(col, tableFunc(mappings))
}

// DropOutliers nulls coerced values outside the declared limits. Both
// limits are required, and the column must coerce cleanly first.
func (q *Question) DropOutliers(col *dataset.Column) error {
	if q.Response != ResponseContinuous {
		return fmt.Errorf("%s: %w: not a continuous question", q.Name, ErrState)
	}
	if q.Lower.IsNull() || q.Upper.IsNull() {
		return fmt.Errorf("%s: %w: both limits are required", q.Name, ErrState)
	}

	caster := q.Caster()
	if err := q.requireCastable(col, caster, "drop outliers"); err != nil {
		return err
	}

	lo, _ := q.Lower.AsFloat()
	hi, _ := q.Upper.AsFloat()
	fn := func(v primitive.Value) primitive.Value {
		r := caster.Cast(v)
		if r.Class != primitive.Coerced {
			return v
		}
		if f, ok := r.Value.AsFloat(); !ok || !utils.IsInRange(lo, f, hi) {
			return primitive.Null
		}
		return r.Value
	}
	detail := fmt.Sprintf("values outside [%s, %s]", q.Lower, q.Upper)
	q.applyRemap(col, "drop outliers", provenance.CategoryDrop, detail, fn)
	return nil
}

// ConvertToWords rewrites boolean cells as "yes" and "no" for display.
// The admissible values follow, so "true"/"false" tokens become
// "yes"/"no" as well.
func (q *Question) ConvertToWords(col *dataset.Column) error {
	if q.Response != ResponseBool {
		return fmt.Errorf("%s: %w: not a boolean question", q.Name, ErrState)
	}

	caster := q.Caster()
	if err := q.requireCastable(col, caster, "convert boolean"); err != nil {
		return err
	}

	fn := func(v primitive.Value) primitive.Value {
		r := caster.Cast(v)
		if r.Class != primitive.Coerced {
			return v
		}
		if truth, _ := r.Value.AsBool(); truth {
			return primitive.Text("yes")
		}
		return primitive.Text("no")
	}
	q.applyRemap(col, "convert boolean", provenance.CategoryReplace,
		"standardize to yes/no", fn)
	return nil
}

// applyRemap runs one logged transformation: rewrite the cells, pull the
// admissible values and extremes through the same mapping, then append
// the provenance entry.
func (q *Question) applyRemap(col *dataset.Column, command string,
	category provenance.Category, detail string, fn primitive.RemapFunc) {
	col.Apply(fn)
	q.Order = remapOrder(q.Order, fn)
	q.Extremes = remapExtremes(q.Extremes, q.Order, fn)
	q.log.Append(q.Name, command, category, detail)
	log.Debugf("%s: %s (%s): %s", q.Name, command, category, detail)
}

// requireCastable fails fast when any substantive cell resists the
// declared kind, logging the error entry before signaling it.
func (q *Question) requireCastable(col *dataset.Column, caster *primitive.Caster, command string) error {
	failures := castFailures(col.Values(), caster.CastAll(col.Values()))
	if len(failures) == 0 {
		return nil
	}
	detail := fmt.Sprintf("the data cannot be cast to %s", q.Kind.Code())
	q.log.Append(q.Name, command, provenance.CategoryError, detail)
	log.Debugf("%s: %s (%s): %s", q.Name, command, provenance.CategoryError, detail)
	return fmt.Errorf("%s: %w: %s", q.Name, ErrCoercion, joinDisplay(sortValues(failures)))
}

// remapDetail renders fn over basis as "old >>> new" segments, the
// self-documenting form every transformation entry uses.
func remapDetail(basis []primitive.Value, fn primitive.RemapFunc) string {
	if len(basis) == 0 {
		return "None"
	}
	parts := make([]string, len(basis))
	for i, v := range basis {
		parts[i] = fmt.Sprintf("%s >>> %s", v, fn(v))
	}
	return strings.Join(parts, " | ")
}

// coercedForm resolves v into the declared kind when possible, keeping
// the original form for placeholders and failures.
func coercedForm(c *primitive.Caster, v primitive.Value) primitive.Value {
	if r := c.Cast(v); r.Class == primitive.Coerced {
		return r.Value
	}
	return v
}

// cellEquals compares two values in their coerced forms, so a raw "2"
// cell still matches an admissible integer 2.
func cellEquals(c *primitive.Caster, a, b primitive.Value) bool {
	return coercedForm(c, a).Equal(coercedForm(c, b))
}
