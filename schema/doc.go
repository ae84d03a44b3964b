// Package schema defines the per-column metadata record, the Question,
// together with its validation engine and transformation operations.
//
// # Key capabilities
//
//   - Declarative construction from Params with normalization and defaults
//   - Two-phase validation: cast check, then domain or bounds check
//   - Remapping operations that rewrite a column, its admissible order and
//     the provenance trail in one step
//   - Flat-record encoding for storage inside tabular dictionaries
//
// # Record overview
//
// A Question flattens to an ordered record of string cells. Multi-valued
// fields use the delimited wire form, for example:
//
//	name: position
//	description: Playing position
//	type: categorical
//	dtype: str
//	clean_name: Position
//	order: Striker | D-man | Goalie
//	extremes: Striker | Goalie
//	ref_value: Striker
//	missing: not applicable | missing: not provided | ...
//
// Mappings are key-coded ("0=female | 1=male") and absent fields encode
// as "None". Decoding such a record reproduces the schema exactly, the
// provenance log aside.
//
// # Validation phases
//
// Validate walks a fixed state machine: the cast phase coerces every cell
// through the declared kind (placeholders pass through untouched), then
// the value phase checks coerced cells against the admissible order for
// categorical and boolean schemas, or against the inclusive limits for
// continuous ones. Each phase appends exactly one provenance entry, and a
// failed phase logs before it signals.
package schema
