package schema

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Response -output=response_string.go

// Response identifies how a question constrains its answers.
type Response int

const (
	_ Response = iota // skip zero value, use it as a default (invalid) value for Response

	// ResponseFree places no constraint beyond the declared kind.
	ResponseFree
	// ResponseBool admits a true token and a false token.
	ResponseBool
	// ResponseCategorical admits a closed, ordered set of values.
	ResponseCategorical
	// ResponseContinuous admits numbers, optionally inside inclusive limits.
	ResponseContinuous

	// ResponseTotal is a constant that represents the total number of responses defined
	ResponseTotal = int(iota)
)

// Code returns the canonical code written into records.
func (r Response) Code() string {
	switch r {
	default:
		return ""
	case ResponseFree:
		return "free"
	case ResponseBool:
		return "bool"
	case ResponseCategorical:
		return "categorical"
	case ResponseContinuous:
		return "continuous"
	}
}

// ParseResponse resolves a response code. The accepted vocabulary covers
// the synonyms found in circulating dictionaries, including the common
// "continous" misspelling.
func ParseResponse(code string) (Response, error) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	default:
		return 0, fmt.Errorf("%w: unknown response type %q", ErrInvalidSchema, code)
	case "free", "question":
		return ResponseFree, nil
	case "bool", "boolean", "yes/no":
		return ResponseBool, nil
	case "categorical", "multiple choice", "ordinal":
		return ResponseCategorical, nil
	case "continuous", "continous":
		return ResponseContinuous, nil
	}
}
