// Package common holds the reflect-based field classification and
// fixed-value marshaling helpers shared by the codec's schema walker.
package common

import (
	"encoding/binary"
	"math"
	"reflect"
	"unsafe"
)

// IsFixedKind reports whether k is a fixed-width primitive kind.
func IsFixedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// FixedSize returns the byte width of a fixed-width primitive kind, or -1.
func FixedSize(k reflect.Kind) int {
	switch k {
	case reflect.Bool, reflect.Int8, reflect.Uint8:
		return 1
	case reflect.Int16, reflect.Uint16:
		return 2
	case reflect.Int32, reflect.Uint32, reflect.Float32:
		return 4
	case reflect.Int64, reflect.Uint64, reflect.Float64:
		return 8
	default:
		return -1
	}
}

// ByteOrder resolves a byte order for one of the three endian modes. Native
// is resolved through the standard library rather than unsafe pointer games.
func ByteOrder(little, big bool) binary.ByteOrder {
	if big {
		return binary.BigEndian
	}
	if little {
		return binary.LittleEndian
	}
	return binary.NativeEndian
}

// PutFixed writes the fixed-width value held in v (a non-pointer reflect.Value
// of a fixed primitive kind) into dst using order, returning the bytes used.
func PutFixed(dst []byte, v reflect.Value, order binary.ByteOrder) int {
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			dst[0] = 1
		} else {
			dst[0] = 0
		}
		return 1
	case reflect.Int8:
		dst[0] = byte(v.Int())
		return 1
	case reflect.Uint8:
		dst[0] = byte(v.Uint())
		return 1
	case reflect.Int16:
		order.PutUint16(dst, uint16(v.Int()))
		return 2
	case reflect.Uint16:
		order.PutUint16(dst, uint16(v.Uint()))
		return 2
	case reflect.Int32:
		order.PutUint32(dst, uint32(v.Int()))
		return 4
	case reflect.Uint32:
		order.PutUint32(dst, uint32(v.Uint()))
		return 4
	case reflect.Int64:
		order.PutUint64(dst, uint64(v.Int()))
		return 8
	case reflect.Uint64:
		order.PutUint64(dst, v.Uint())
		return 8
	case reflect.Float32:
		order.PutUint32(dst, math.Float32bits(float32(v.Float())))
		return 4
	case reflect.Float64:
		order.PutUint64(dst, math.Float64bits(v.Float()))
		return 8
	default:
		panic("common: not a fixed kind")
	}
}

// SetFixed decodes a fixed-width primitive from b (exactly FixedSize(k)
// bytes) using order and stores it into dst, a settable reflect.Value of
// kind k.
func SetFixed(dst reflect.Value, b []byte, k reflect.Kind, order binary.ByteOrder) {
	switch k {
	case reflect.Bool:
		dst.SetBool(b[0] != 0)
	case reflect.Int8:
		dst.SetInt(int64(int8(b[0])))
	case reflect.Uint8:
		dst.SetUint(uint64(b[0]))
	case reflect.Int16:
		dst.SetInt(int64(int16(order.Uint16(b))))
	case reflect.Uint16:
		dst.SetUint(uint64(order.Uint16(b)))
	case reflect.Int32:
		dst.SetInt(int64(int32(order.Uint32(b))))
	case reflect.Uint32:
		dst.SetUint(uint64(order.Uint32(b)))
	case reflect.Int64:
		dst.SetInt(int64(order.Uint64(b)))
	case reflect.Uint64:
		dst.SetUint(order.Uint64(b))
	case reflect.Float32:
		dst.SetFloat(float64(math.Float32frombits(order.Uint32(b))))
	case reflect.Float64:
		dst.SetFloat(math.Float64frombits(order.Uint64(b)))
	default:
		panic("common: not a fixed kind")
	}
}

// UnsafeString aliases b as a string without copying. The caller must
// guarantee b outlives the returned string, exactly like the borrowed
// byte-slice views the decoder returns elsewhere.
func UnsafeString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}
