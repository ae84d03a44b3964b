package primitive

import (
	"math"
	"strconv"
	"strings"
)

//go:generate go tool stringer -type=Class -output=class_string.go

// Class labels the outcome of casting a single cell.
type Class int

const (
	_ Class = iota // skip zero value, use it as a default (invalid) value for Class

	// Coerced marks a substantive value rewritten into the declared kind.
	Coerced
	// Passthrough marks nulls and placeholder values, forwarded untouched.
	Passthrough
	// Failed marks a substantive value the declared kind cannot represent.
	Failed
)

// Result carries the outcome of casting one cell. Value holds the coerced
// form for Coerced, the original form for Passthrough and Null for Failed.
type Result struct {
	Class Class
	Value Value
}

// Caster rewrites raw cells into a declared kind. Placeholder members skip
// casting entirely and keep their original form. A Caster never panics and
// never returns errors, failures are ordinary results.
type Caster struct {
	kind         Kind
	placeholders *Set
	vocab        BoolVocab
}

type castFunc func(*Caster, Value) Result

// casters is the dispatch table keyed by the declared kind.
var casters = map[Kind]castFunc{
	KindText:  (*Caster).castText,
	KindBool:  (*Caster).castBool,
	KindInt:   (*Caster).castInt,
	KindFloat: (*Caster).castFloat,
	KindTuple: (*Caster).castTuple,
}

// NewCaster builds a caster for kind. placeholders may be nil. A zero
// vocab falls back to DefaultBoolVocab.
func NewCaster(kind Kind, placeholders *Set, vocab BoolVocab) *Caster {
	if vocab.isZero() {
		vocab = DefaultBoolVocab()
	}
	return &Caster{kind: kind, placeholders: placeholders, vocab: vocab}
}

func (c *Caster) Kind() Kind { return c.kind }

// Cast resolves one raw cell.
func (c *Caster) Cast(v Value) Result {
	if v.IsNull() || c.placeholders.Contains(v) {
		return Result{Class: Passthrough, Value: v}
	}
	fn, ok := casters[c.kind]
	if !ok {
		return Result{Class: Failed}
	}
	return fn(c, v)
}

// CastAll resolves a whole column worth of cells, in order.
func (c *Caster) CastAll(values []Value) []Result {
	out := make([]Result, len(values))
	for i, v := range values {
		out[i] = c.Cast(v)
	}
	return out
}

func (c *Caster) castText(v Value) Result {
	return Result{Class: Coerced, Value: Text(v.String())}
}

func (c *Caster) castBool(v Value) Result {
	truth, ok := c.vocab.Classify(v)
	if !ok {
		return Result{Class: Failed}
	}
	return Result{Class: Coerced, Value: Bool(truth)}
}

func (c *Caster) castInt(v Value) Result {
	switch v.Kind() {
	default:
		return Result{Class: Failed}
	case KindInt:
		return Result{Class: Coerced, Value: v}
	case KindFloat:
		f, _ := v.AsFloat()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Result{Class: Failed}
		}
		// truncation toward zero, matching integer construction semantics
		return Result{Class: Coerced, Value: Int(int64(f))}
	case KindText:
		s, _ := v.AsText()
		i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return Result{Class: Failed}
		}
		return Result{Class: Coerced, Value: Int(i)}
	}
}

func (c *Caster) castFloat(v Value) Result {
	if f, ok := v.AsFloat(); ok {
		return Result{Class: Coerced, Value: Float(f)}
	}
	s, ok := v.AsText()
	if !ok {
		return Result{Class: Failed}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Result{Class: Failed}
	}
	return Result{Class: Coerced, Value: Float(f)}
}

func (c *Caster) castTuple(v Value) Result {
	if v.Kind() == KindTuple {
		return Result{Class: Coerced, Value: v}
	}
	return Result{Class: Failed}
}
