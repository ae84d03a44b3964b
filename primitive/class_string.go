// Code generated by "stringer -type=Class -output=class_string.go"; DO NOT EDIT.

package primitive

import "strconv"

func _() {
	// An "invalid array index" compiler error signifies that the constant values have changed.
	// Re-run the stringer command to generate them again.
	var x [1]struct{}
	_ = x[Coerced-1]
	_ = x[Passthrough-2]
	_ = x[Failed-3]
}

const _Class_name = "CoercedPassthroughFailed"

var _Class_index = [...]uint8{0, 7, 18, 24}

func (i Class) String() string {
	i -= 1
	if i < 0 || i >= Class(len(_Class_index)-1) {
		return "Class(" + strconv.FormatInt(int64(i+1), 10) + ")"
	}
	return _Class_name[_Class_index[i]:_Class_index[i+1]]
}
