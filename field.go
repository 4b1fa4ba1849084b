package pufu

import (
	"reflect"

	"github.com/tiannian/pufu/internal/common"
)

// EncodeFixed appends a single fixed-width value to the encoder's fixed
// region.
func EncodeFixed[T FixedType](e *Encoder, v T) {
	w := fixedWidth[T]()
	var buf [8]byte
	putFixedGeneric(buf[:w], v, e.endian)
	e.PushFixed(buf[:w])
}

// DecodeFixed reads a single fixed-width value from the decoder's fixed
// region.
func DecodeFixed[T FixedType](d *Decoder) (T, error) {
	w := fixedWidth[T]()
	b, err := d.NextFixed(uint32(w))
	if err != nil {
		var zero T
		return zero, err
	}
	return getFixedGeneric[T](b, d.endian), nil
}

// EncodeFixedArray appends a fixed-length array of fixed-width values to
// the fixed region, packed with no padding or length prefix. Its length is
// part of the schema (the Go array type), never carried on the wire.
func EncodeFixedArray[T FixedType](e *Encoder, vs []T) {
	w := fixedWidth[T]()
	buf := make([]byte, w*len(vs))
	for i, v := range vs {
		putFixedGeneric(buf[i*w:i*w+w], v, e.endian)
	}
	e.PushFixed(buf)
}

// DecodeFixedArray reads n fixed-width values from the fixed region. n
// comes from the schema (the Go array length), not from the wire.
func DecodeFixedArray[T FixedType](d *Decoder, n int) ([]T, error) {
	w := fixedWidth[T]()
	b, err := d.NextFixed(uint32(w * n))
	if err != nil {
		return nil, err
	}
	out := make([]T, n)
	for i := range out {
		out[i] = getFixedGeneric[T](b[i*w:i*w+w], d.endian)
	}
	return out, nil
}

// EncodeBytes writes an opaque Var1-bytes segment: an offset is pushed to
// the VarEntry region and the raw bytes are appended to the data region.
func EncodeBytes(e *Encoder, b []byte) {
	e.PushVarIdx(e.DataLen())
	e.PushData(b)
}

// DecodeBytes returns the idx-th Var1-bytes segment, a slice aliasing the
// decoder's input buffer.
func DecodeBytes(d *Decoder, idx uint32) ([]byte, error) {
	return d.NextVar(idx)
}

// DecodeString returns the idx-th Var1-bytes segment viewed as a string
// with no copy, aliasing the decoder's input buffer exactly like
// DecodeBytes. The caller must not mutate the backing buffer afterward.
func DecodeString(d *Decoder, idx uint32) (string, error) {
	b, err := d.NextVar(idx)
	if err != nil {
		return "", err
	}
	return common.UnsafeString(b), nil
}

// EncodeFixedList writes a Var1-fixed-elements segment: a packed run of
// fixed-width values with no per-element or list length prefix, addressed
// by a single VarEntry offset. Element count is recovered on decode purely
// from the segment's own byte bounds, never stored explicitly.
func EncodeFixedList[T FixedType](e *Encoder, vs []T) {
	w := fixedWidth[T]()
	buf := make([]byte, w*len(vs))
	for i, v := range vs {
		putFixedGeneric(buf[i*w:i*w+w], v, e.endian)
	}
	e.PushVarIdx(e.DataLen())
	e.PushData(buf)
}

// DecodeFixedList returns the idx-th Var1-fixed-elements segment, its
// element count computed from the segment's byte length. A segment length
// not divisible by sizeof(T) means the schema and wire disagree.
func DecodeFixedList[T FixedType](d *Decoder, idx uint32) ([]T, error) {
	w := fixedWidth[T]()
	seg, err := d.NextVar(idx)
	if err != nil {
		return nil, err
	}
	if len(seg)%w != 0 {
		return nil, ErrInvalidLength
	}
	n := len(seg) / w
	out := make([]T, n)
	for i := range out {
		out[i] = getFixedGeneric[T](seg[i*w:i*w+w], d.endian)
	}
	return out, nil
}

// EncodeBytesList writes a Var2 field: a list of Var1 byte segments, one
// per element. Each element consumes its own VarEntry slot exactly like a
// plain EncodeBytes call; the list carries no explicit count on the wire.
// This must only be called for a record's last variable field, since the
// decode side recovers the element count from how many VarEntry slots
// remain — the field "owns the tail" of the VarEntry region.
func EncodeBytesList(e *Encoder, elems [][]byte) {
	for _, el := range elems {
		EncodeBytes(e, el)
	}
}

// DecodeBytesList returns every Var1 element starting at VarEntry slot
// startIdx through the end of the VarEntry region, aliasing the decoder's
// input buffer. Only valid when startIdx is a record's last variable
// field, matching EncodeBytesList's placement rule.
func DecodeBytesList(d *Decoder, startIdx uint32) ([][]byte, error) {
	if startIdx > d.VarCount() {
		return nil, ErrInvalidLength
	}
	n := d.VarCount() - startIdx
	out := make([][]byte, n)
	for i := uint32(0); i < n; i++ {
		b, err := d.NextVar(startIdx + i)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

// EncodeFixedListList writes a Var2 field whose elements are themselves
// Var1-fixed-elements segments, such as a list of variable-length integer
// runs. Each element consumes its own VarEntry slot; placement rules match
// EncodeBytesList.
func EncodeFixedListList[T FixedType](e *Encoder, elems [][]T) {
	for _, el := range elems {
		EncodeFixedList(e, el)
	}
}

// DecodeFixedListList returns every Var1-fixed-elements element starting
// at VarEntry slot startIdx through the end of the VarEntry region.
func DecodeFixedListList[T FixedType](d *Decoder, startIdx uint32) ([][]T, error) {
	if startIdx > d.VarCount() {
		return nil, ErrInvalidLength
	}
	n := d.VarCount() - startIdx
	out := make([][]T, n)
	for i := uint32(0); i < n; i++ {
		vs, err := DecodeFixedList[T](d, startIdx+i)
		if err != nil {
			return nil, err
		}
		out[i] = vs
	}
	return out, nil
}

func putFixedGeneric[T FixedType](dst []byte, v T, endian Endian) {
	rv := reflect.ValueOf(v)
	common.PutFixed(dst, rv, endian.order())
}

func getFixedGeneric[T FixedType](b []byte, endian Endian) T {
	var zero T
	rv := reflect.New(reflect.TypeOf(zero)).Elem()
	common.SetFixed(rv, b, rv.Kind(), endian.order())
	return rv.Interface().(T)
}
