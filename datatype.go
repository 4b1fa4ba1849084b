package pufu

import (
	"reflect"

	"github.com/tiannian/pufu/internal/common"
)

// FixedType is the set of Go primitive kinds this package can write
// directly into a fixed region or a Var1-fixed-elements segment. It stands
// in for a trait bound: Go generics carry no notion of "every native
// integer/float/bool width", so the type set is spelled out explicitly.
// Go has no equivalent of a 128-bit integer or a machine-word-sized
// int/uint that this package treats as fixed-width, so isize/usize/i128/u128
// have no member here.
type FixedType interface {
	~bool |
		~int8 | ~uint8 |
		~int16 | ~uint16 |
		~int32 | ~uint32 |
		~int64 | ~uint64 |
		~float32 | ~float64
}

// fixedWidth returns the byte width of T. Reflection here is over the type
// parameter's zero value, not per-element, so callers pay this once per
// call site rather than once per encoded value.
func fixedWidth[T FixedType]() int {
	var zero T
	return common.FixedSize(reflect.TypeOf(zero).Kind())
}
