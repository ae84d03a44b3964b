package primitive

import (
	"errors"
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind identifies the declared type of the cells in a column.
type Kind int

const (
	_ Kind = iota // skip zero value, use it as a default (invalid) value for Kind

	KindText
	KindBool
	KindInt
	KindFloat
	KindTuple

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// ErrUnknownKind reports a kind code outside the supported vocabulary.
var ErrUnknownKind = errors.New("unknown value kind")

func (k Kind) IsValid() bool {
	return k > 0 && int(k) < KindTotal
}

func (k Kind) IsNumeric() bool {
	return k == KindInt || k == KindFloat
}

// Code returns the short code used in records and validation messages.
func (k Kind) Code() string {
	switch k {
	default:
		return ""
	case KindText:
		return "str"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindTuple:
		return "tuple"
	}
}

// ParseKind resolves a kind code. Long-form aliases are accepted alongside
// the short codes produced by Code.
func ParseKind(code string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, code)
	case "str", "string", "text":
		return KindText, nil
	case "bool", "boolean":
		return KindBool, nil
	case "int", "integer":
		return KindInt, nil
	case "float", "double":
		return KindFloat, nil
	case "tuple":
		return KindTuple, nil
	}
}
