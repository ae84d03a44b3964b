package schema

import (
	"datadict/internal/common"
	"datadict/primitive"
)

// Mapping rewrites one value into another inside RemapTable.
type Mapping struct {
	From primitive.Value
	To   primitive.Value
}

// tableFunc turns a lookup table into a remap function. Values without an
// entry keep their identity.
func tableFunc(mappings []Mapping) primitive.RemapFunc {
	return func(v primitive.Value) primitive.Value {
		for _, m := range mappings {
			if m.From.Equal(v) {
				return m.To
			}
		}
		return v
	}
}

// remapOrder rewrites the admissible values through fn. Nulls drop out and
// only the first occurrence of each rewritten value survives, holding the
// position of its earliest pre-image.
func remapOrder(order []primitive.Value, fn primitive.RemapFunc) []primitive.Value {
	seen := primitive.NewSet()
	out := make([]primitive.Value, 0, len(order))
	for _, v := range order {
		nv := fn(v)
		if nv.IsNull() || seen.Contains(nv) {
			continue
		}
		seen.Add(nv)
		out = append(out, nv)
	}
	return out
}

// remapExtremes rewrites the endpoints, refreshing them from the order
// ends when everything mapped away.
func remapExtremes(extremes, order []primitive.Value, fn primitive.RemapFunc) []primitive.Value {
	out := make([]primitive.Value, 0, len(extremes))
	for _, v := range extremes {
		if nv := fn(v); !nv.IsNull() {
			out = append(out, nv)
		}
	}
	if common.IsEmpty(out) {
		return defaultExtremes(order)
	}
	return out
}
