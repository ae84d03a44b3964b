package primitive

import "strings"

// BoolVocab lists the raw values accepted as true and false when casting
// to KindBool. Text members are matched case-insensitively and must be
// stored lower case.
type BoolVocab struct {
	True  *Set
	False *Set
}

// DefaultBoolVocab accepts the yes/no and true/false words, the 1/0
// numerics and native booleans.
func DefaultBoolVocab() BoolVocab {
	return BoolVocab{
		True:  NewSet(Text("yes"), Text("true"), Int(1), Bool(true)),
		False: NewSet(Text("no"), Text("false"), Int(0), Bool(false)),
	}
}

// Classify resolves a raw value against the vocabulary. ok is false when
// the value belongs to neither side.
func (bv BoolVocab) Classify(v Value) (truth, ok bool) {
	if s, isText := v.AsText(); isText {
		v = Text(strings.ToLower(s))
	}
	switch {
	default:
		return false, false
	case bv.True.Contains(v):
		return true, true
	case bv.False.Contains(v):
		return false, true
	}
}

func (bv BoolVocab) isZero() bool {
	return bv.True.Len() == 0 && bv.False.Len() == 0
}

// StandardMissing is the controlled vocabulary of missing-value markers
// customary in survey and sample metadata.
func StandardMissing() *Set {
	return NewSet(
		Text("not applicable"),
		Text("missing: not provided"),
		Text("missing: not collected"),
		Text("missing: restricted"),
		Text("not provided"),
		Text("not collected"),
		Text("restricted"),
	)
}
