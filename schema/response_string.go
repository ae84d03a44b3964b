// Code generated by "stringer -type=Response -output=response_string.go"; DO NOT EDIT.

package schema

import "strconv"

func _() {
	// An "invalid array index" compiler error signifies that the constant values have changed.
	// Re-run the stringer command to generate them again.
	var x [1]struct{}
	_ = x[ResponseFree-1]
	_ = x[ResponseBool-2]
	_ = x[ResponseCategorical-3]
	_ = x[ResponseContinuous-4]
}

const _Response_name = "ResponseFreeResponseBoolResponseCategoricalResponseContinuous"

var _Response_index = [...]uint8{0, 12, 24, 43, 61}

func (i Response) String() string {
	i -= 1
	if i < 0 || i >= Response(len(_Response_index)-1) {
		return "Response(" + strconv.FormatInt(int64(i+1), 10) + ")"
	}
	return _Response_name[_Response_index[i]:_Response_index[i+1]]
}
