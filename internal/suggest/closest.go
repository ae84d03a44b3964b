package suggest

import (
	"strings"
	"unicode"
)

// DefaultThreshold is the minimum similarity a candidate needs before it
// is worth showing to a human.
const DefaultThreshold = 0.5

// NormalizeValue prepares a raw cell value for comparison: case-fold to
// lower and drop separator runes (space, underscore, hyphen). Survey data
// mixes these freely ("D-man", "d man", "D_Man").
func NormalizeValue(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			continue
		}
		out.WriteRune(r)
	}

	return out.String()
}

// Score rates one candidate against a raw value after normalization.
func Score(raw, candidate string) float64 {
	return Similarity(NormalizeValue(raw), NormalizeValue(candidate))
}

// Closest returns the candidate most similar to raw. ok is false when no
// candidate reaches the threshold. Ties keep the earliest candidate, so
// admissible-order position breaks them deterministically.
func Closest(raw string, candidates []string, threshold float64) (best string, score float64, ok bool) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	for _, c := range candidates {
		s := Score(raw, c)
		if s > score {
			best, score = c, s
		}
	}

	if score < threshold {
		return "", score, false
	}
	return best, score, true
}
