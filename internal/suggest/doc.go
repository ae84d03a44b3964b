// Package suggest scores raw cell values against a column's admissible
// values, so a domain violation can carry a "closest admissible" hint.
//
// Key functions:
//   - NormalizeValue: case-folds and strips separators before comparison
//   - Levenshtein: computes edit distance between strings
//   - Closest: picks the best-scoring admissible candidate
package suggest
