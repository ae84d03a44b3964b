// Code generated by "stringer -type=Kind -output=kind_string.go"; DO NOT EDIT.

package primitive

import "strconv"

func _() {
	// An "invalid array index" compiler error signifies that the constant values have changed.
	// Re-run the stringer command to generate them again.
	var x [1]struct{}
	_ = x[KindText-1]
	_ = x[KindBool-2]
	_ = x[KindInt-3]
	_ = x[KindFloat-4]
	_ = x[KindTuple-5]
}

const _Kind_name = "KindTextKindBoolKindIntKindFloatKindTuple"

var _Kind_index = [...]uint8{0, 8, 16, 23, 32, 41}

func (i Kind) String() string {
	i -= 1
	if i < 0 || i >= Kind(len(_Kind_index)-1) {
		return "Kind(" + strconv.FormatInt(int64(i+1), 10) + ")"
	}
	return _Kind_name[_Kind_index[i]:_Kind_index[i+1]]
}
