package pufu

// Decoder is a cursor over a borrowed buffer holding one body (magic and
// version already stripped). Every accessor is bounds-checked against the
// header's own declared lengths, never against attacker-controlled trust;
// a Decoder never copies the buffer it was given, so every returned slice
// aliases the caller's memory.
type Decoder struct {
	buf          []byte
	endian       Endian
	varIdxOffset uint32
	dataOffset   uint32
	totalLen     uint32
	varCount     uint32
	fixedCursor  uint32
}

// NewDecoder parses buf's 8-byte header (total_len, var_idx_offset) and
// validates the resulting layout before returning a ready-to-use Decoder.
// data_offset is inferred from the first VarEntry rather than stored in the
// header. buf must hold exactly one body: bytes beyond total_len are
// rejected, not silently ignored.
func NewDecoder(buf []byte, endian Endian) (*Decoder, error) {
	if len(buf) < headerFieldsLen {
		return nil, ErrInvalidLength
	}
	order := endian.order()
	totalLen := order.Uint32(buf[0:4])
	varIdxOffset := order.Uint32(buf[4:8])

	if uint64(totalLen) != uint64(len(buf)) {
		return nil, ErrInvalidLength
	}
	if varIdxOffset < headerFieldsLen || varIdxOffset > totalLen {
		return nil, ErrInvalidLength
	}

	d := &Decoder{
		buf:          buf,
		endian:       endian,
		varIdxOffset: varIdxOffset,
		totalLen:     totalLen,
		fixedCursor:  headerFieldsLen,
	}

	if varIdxOffset == totalLen {
		// No variable fields at all: data region is empty and starts
		// right where the (empty) VarEntry region would have.
		d.dataOffset = totalLen
		return d, nil
	}

	if totalLen-varIdxOffset < 4 {
		return nil, ErrInvalidLength
	}
	first := order.Uint32(buf[varIdxOffset : varIdxOffset+4])
	if first < varIdxOffset || first > totalLen {
		return nil, ErrInvalidLength
	}
	d.dataOffset = first

	varEntryLen := d.dataOffset - varIdxOffset
	if varEntryLen%4 != 0 {
		return nil, ErrInvalidLength
	}
	d.varCount = varEntryLen / 4
	return d, nil
}

// Endian reports the endianness this decoder reads multi-byte values in.
func (d *Decoder) Endian() Endian { return d.endian }

// VarCount reports how many VarEntry slots this payload declares.
func (d *Decoder) VarCount() uint32 { return d.varCount }

// FixedRegion returns the full fixed-region slice, aliasing the input buffer.
func (d *Decoder) FixedRegion() []byte {
	return d.buf[headerFieldsLen:d.varIdxOffset]
}

// NextFixed returns the next n bytes from the fixed region, advancing the
// fixed cursor. It fails with ErrInvalidLength if fewer than n bytes remain
// before the VarEntry region begins.
func (d *Decoder) NextFixed(n uint32) ([]byte, error) {
	end := d.fixedCursor + n
	if end < d.fixedCursor || end > d.varIdxOffset {
		return nil, ErrInvalidLength
	}
	b := d.buf[d.fixedCursor:end]
	d.fixedCursor = end
	return b, nil
}

// segmentBounds returns the [start, end) byte range of the idx-th variable
// segment (0-based), where end is either the next entry's offset or, for
// the last declared entry, totalLen (the tail of the Data region belongs
// to the last variable field, unmarked by any explicit length).
func (d *Decoder) segmentBounds(idx uint32) (uint32, uint32, error) {
	if idx >= d.varCount {
		return 0, 0, ErrInvalidLength
	}
	order := d.endian.order()
	entryOff := d.varIdxOffset + idx*4
	start := order.Uint32(d.buf[entryOff : entryOff+4])

	var end uint32
	if idx+1 < d.varCount {
		nextOff := entryOff + 4
		end = order.Uint32(d.buf[nextOff : nextOff+4])
	} else {
		end = d.totalLen
	}

	if start < d.dataOffset || end < start || end > d.totalLen {
		return 0, 0, ErrInvalidLength
	}
	return start, end, nil
}

// NextVar returns the idx-th variable segment's raw bytes, aliasing the
// input buffer. Use this for Var1-bytes and Var1-fixed-elements fields.
func (d *Decoder) NextVar(idx uint32) ([]byte, error) {
	start, end, err := d.segmentBounds(idx)
	if err != nil {
		return nil, err
	}
	return d.buf[start:end], nil
}

// Remaining reports how many fixed-region bytes have not yet been consumed
// by NextFixed.
func (d *Decoder) Remaining() uint32 {
	return d.varIdxOffset - d.fixedCursor
}
