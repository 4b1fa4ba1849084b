package pufu

import "math"

// headerFieldsLen is the size, in bytes, of the body header this package
// writes: total_len (4) + var_idx_offset (4). data_offset is inferred from
// the first VarEntry rather than stored explicitly (spec's 8-byte variant).
const headerFieldsLen = 8

// Encoder accumulates a payload body as three parallel regions: fixed
// bytes, a variable-entry offset list, and variable-length data. It writes
// no magic or version; those are the Codec facade's concern.
//
// An Encoder is mutated only by its owner and is not safe for concurrent
// use. It is created empty, mutated by appends in declaration order, and
// consumed by Finalize.
type Encoder struct {
	fixed  []byte
	varIdx []uint32 // data-relative offsets; translated to payload-absolute on Finalize
	data   []byte
	endian Endian
}

// NewEncoder returns an empty Encoder using the given endianness for every
// multi-byte value it writes.
func NewEncoder(endian Endian) *Encoder {
	return &Encoder{endian: endian}
}

// LittleEncoder returns an empty little-endian Encoder.
func LittleEncoder() *Encoder { return NewEncoder(Little) }

// BigEncoder returns an empty big-endian Encoder.
func BigEncoder() *Encoder { return NewEncoder(Big) }

// NativeEncoder returns an empty native-endian Encoder.
func NativeEncoder() *Encoder { return NewEncoder(Native) }

// Endian reports the endianness this encoder writes multi-byte values in.
func (e *Encoder) Endian() Endian { return e.endian }

// Reset clears all three regions so the Encoder can be reused.
func (e *Encoder) Reset() {
	e.fixed = e.fixed[:0]
	e.varIdx = e.varIdx[:0]
	e.data = e.data[:0]
}

// PushFixed appends exactly len(b) bytes to the fixed region. There is no
// bounds check here: the caller (field-encode code, §4.5) is responsible
// for appending precisely the byte width its type dictates.
func (e *Encoder) PushFixed(b []byte) {
	e.fixed = append(e.fixed, b...)
}

// PushVarIdx records a data-relative start offset for one variable-length
// segment. It does not itself append any data; call PushData with the
// segment's bytes (in the same order) to keep the offset meaningful.
func (e *Encoder) PushVarIdx(offset uint32) {
	e.varIdx = append(e.varIdx, offset)
}

// PushData appends bytes to the data region.
func (e *Encoder) PushData(b []byte) {
	e.data = append(e.data, b...)
}

// DataLen returns the current length of the data region, the offset a
// caller should record via PushVarIdx before appending a new segment.
func (e *Encoder) DataLen() uint32 {
	return uint32(len(e.data))
}

// Finalize appends the body-only framing — no magic or version — to out
// and returns the resulting slice. Body layout is:
//
//	total_len(4) | var_idx_offset(4) | FixedRegion | VarEntry | Data
//
// VarEntry offsets are translated from data-relative to payload-body-
// relative here. Finalize fails with ErrInvalidLength if any resulting
// offset or length would not fit in a uint32.
func (e *Encoder) Finalize(out []byte) ([]byte, error) {
	fixedLen := len(e.fixed)
	varEntryLen := len(e.varIdx) * 4
	dataLen := len(e.data)

	total := headerFieldsLen + fixedLen + varEntryLen + dataLen
	if total > math.MaxUint32 {
		return out, ErrInvalidLength
	}
	varIdxOffset := headerFieldsLen + fixedLen
	dataOffset := varIdxOffset + varEntryLen
	if dataOffset > math.MaxUint32 {
		return out, ErrInvalidLength
	}

	order := e.endian.order()

	var hdr [8]byte
	order.PutUint32(hdr[0:4], uint32(total))
	order.PutUint32(hdr[4:8], uint32(varIdxOffset))
	out = append(out, hdr[:]...)

	out = append(out, e.fixed...)

	var entry [4]byte
	for _, dataRelOffset := range e.varIdx {
		if uint64(dataOffset)+uint64(dataRelOffset) > math.MaxUint32 {
			return out, ErrInvalidLength
		}
		order.PutUint32(entry[:], uint32(dataOffset)+dataRelOffset)
		out = append(out, entry[:]...)
	}

	out = append(out, e.data...)
	return out, nil
}

// FinalizeWithMagicVersion appends cfg's 4-byte magic and 1-byte version,
// then the body-only framing exactly as Finalize does.
func (e *Encoder) FinalizeWithMagicVersion(cfg Config, out []byte) ([]byte, error) {
	out = append(out, cfg.Magic[:]...)
	out = append(out, cfg.Version)
	return e.Finalize(out)
}
