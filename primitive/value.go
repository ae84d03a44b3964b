package primitive

import (
	"strconv"
	"strings"
)

// RemapFunc rewrites a single cell value. Returning Null drops the cell.
type RemapFunc func(Value) Value

// Value is an immutable tagged cell value. The zero Value is the null
// marker used for absent or dropped cells.
type Value struct {
	kind  Kind
	str   string
	i     int64
	f     float64
	b     bool
	items []Value
}

// Null is the absent-cell marker.
var Null = Value{}

func Text(s string) Value { return Value{kind: KindText, str: s} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func Int(i int64) Value { return Value{kind: KindInt, i: i} }

func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Tuple builds a tuple value from the given elements.
func Tuple(items ...Value) Value {
	return Value{kind: KindTuple, items: append([]Value(nil), items...)}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == 0 }

func (v Value) IsNumeric() bool { return v.kind.IsNumeric() }

func (v Value) AsText() (string, bool) { return v.str, v.kind == KindText }

func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsFloat widens integers, so both numeric kinds compare on one axis.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	default:
		return 0, false
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	}
}

// Items returns the tuple elements, nil for non-tuples.
func (v Value) Items() []Value {
	if v.kind != KindTuple {
		return nil
	}
	return append([]Value(nil), v.items...)
}

// Equal reports value equality. Int and float values compare numerically,
// every other comparison requires matching kinds.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		if v.IsNumeric() && o.IsNumeric() {
			a, _ := v.AsFloat()
			b, _ := o.AsFloat()
			return a == b
		}
		return false
	}
	switch v.kind {
	default:
		return true // both null
	case KindText:
		return v.str == o.str
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindTuple:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	}
}

// Compare orders two values on the numeric axis. ok is false when either
// side is not numeric.
func (v Value) Compare(o Value) (cmp int, ok bool) {
	a, aok := v.AsFloat()
	b, bok := o.AsFloat()
	if !aok || !bok {
		return 0, false
	}
	switch {
	case a < b:
		return -1, true
	case a > b:
		return 1, true
	default:
		return 0, true
	}
}

// String renders the display form used in messages, log details and
// records. Null renders as "None".
func (v Value) String() string {
	switch v.kind {
	default:
		return "None"
	case KindText:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindTuple:
		parts := make([]string, len(v.items))
		for i, it := range v.items {
			parts[i] = it.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
}
