// Package codec implements the flat delimited encoding used when schema
// fields travel inside single-string record cells.
//
// Conventions:
//   - multi-value fields join on " | "
//   - key-coded mappings join "key=value" pairs, e.g. "0=female | 1=male"
//   - absent or empty fields encode as the null literal "None"
package codec

import (
	"strings"

	"datadict/internal/common"
	"datadict/utils"
)

// Options carries the wire conventions. Zero fields fall back to the
// defaults, so Options{} always behaves.
type Options struct {
	VarDelim  string
	CodeDelim string
	Null      string
}

// Defaults returns the standard conventions.
func Defaults() Options {
	return Options{VarDelim: " | ", CodeDelim: "=", Null: "None"}
}

func (o Options) normalized() Options {
	d := Defaults()
	if o.VarDelim == "" {
		o.VarDelim = d.VarDelim
	}
	if o.CodeDelim == "" {
		o.CodeDelim = d.CodeDelim
	}
	if o.Null == "" {
		o.Null = d.Null
	}
	return o
}

// Pair is one key-coded element.
type Pair struct {
	Key   string
	Value string
}

// JoinValues encodes a plain list. Empty lists encode as the null literal.
func JoinValues(items []string, o Options) string {
	o = o.normalized()
	if common.IsEmpty(items) {
		return o.Null
	}
	return strings.Join(items, o.VarDelim)
}

// JoinPairs encodes a key-coded mapping, insertion order preserved.
func JoinPairs(pairs []Pair, o Options) string {
	o = o.normalized()
	if common.IsEmpty(pairs) {
		return o.Null
	}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.Key + o.CodeDelim + p.Value
	}
	return strings.Join(parts, o.VarDelim)
}

// Decoded is the parsed form of one encoded field.
type Decoded struct {
	IsNull bool
	Pairs  []Pair   // set when every element was key-coded
	Items  []string // set otherwise
}

// Parse decodes one field. A lone element without delimiters comes back as
// a one-item list, the caller decides whether that means a scalar.
func Parse(s string, o Options) Decoded {
	o = o.normalized()
	s = strings.TrimSpace(s)
	if s == "" || s == o.Null {
		return Decoded{IsNull: true}
	}

	parts := strings.Split(s, o.VarDelim)
	coded := true
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		coded = coded && strings.Contains(parts[i], o.CodeDelim)
	}
	if !coded {
		return Decoded{Items: parts}
	}

	pairs := make([]Pair, len(parts))
	for i, part := range parts {
		k, v := utils.Unpack2(strings.SplitN(part, o.CodeDelim, 2))
		pairs[i] = Pair{Key: strings.TrimSpace(k), Value: strings.TrimSpace(v)}
	}
	return Decoded{Pairs: pairs}
}
