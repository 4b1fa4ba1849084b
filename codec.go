package pufu

import (
	"reflect"
	"sync"

	"github.com/tiannian/pufu/internal/common"
)

// fieldKind classifies one struct field per the four-row wire taxonomy,
// with Var1/Var2 split by their concrete Go shape.
type fieldKind int

const (
	kindFixedPrimitive fieldKind = iota
	kindFixedArray
	kindVar1Bytes
	kindVar1FixedList
	kindVar1Nested
	kindVar2BytesList
	kindVar2FixedList
	kindVar2NestedList
)

func (k fieldKind) isVariable() bool {
	return k != kindFixedPrimitive && k != kindFixedArray
}

func (k fieldKind) isVar2() bool {
	switch k {
	case kindVar2BytesList, kindVar2FixedList, kindVar2NestedList:
		return true
	default:
		return false
	}
}

type fieldPlan struct {
	structIdx int
	kind      fieldKind
	primKind  reflect.Kind // fixed element kind, for primitive/array/fixed-list/fixed-list-list
	arrayLen  int          // Go array length, for kindFixedArray
	elemType  reflect.Type // nested struct element type, for kindVar1Nested/kindVar2NestedList
}

// plan is the cached, per-reflect.Type field layout: declaration order,
// each field's classification, and which field (if any) is the record's
// last variable field.
type plan struct {
	fields     []fieldPlan
	lastVarIdx int // index into fields, or -1 if the record has no variable field
}

// Codec is the reflection-driven facade over Encoder/Decoder: it walks a
// struct's fields in declaration order exactly as the field-level
// contracts in field.go would be hand-called, memoizing the walk plan per
// reflect.Type the way the teacher's HighPerfFractus memoizes its own.
type Codec struct {
	cfg   Config
	mu    sync.RWMutex
	plans map[reflect.Type]*plan
}

// NewCodec returns a Codec that frames every payload with cfg's magic,
// version, and endianness.
func NewCodec(cfg Config) *Codec {
	return &Codec{cfg: cfg, plans: make(map[reflect.Type]*plan)}
}

// Config returns the Codec's configuration.
func (c *Codec) Config() Config { return c.cfg }

func (c *Codec) getPlan(t reflect.Type) (*plan, error) {
	c.mu.RLock()
	if p, ok := c.plans[t]; ok {
		c.mu.RUnlock()
		return p, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.plans[t]; ok {
		return p, nil
	}

	p, err := buildPlan(t)
	if err != nil {
		return nil, err
	}
	c.plans[t] = p
	return p, nil
}

func buildPlan(t reflect.Type) (*plan, error) {
	if t.Kind() != reflect.Struct {
		return nil, ErrInvalidLength
	}

	p := &plan{lastVarIdx: -1}

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" && !sf.Anonymous {
			continue
		}

		fp, err := classifyField(sf.Type)
		if err != nil {
			return nil, err
		}
		fp.structIdx = i
		p.fields = append(p.fields, fp)
	}

	for i, fp := range p.fields {
		if fp.kind.isVariable() {
			p.lastVarIdx = i
		}
	}
	if p.lastVarIdx == -1 && len(p.fields) > 0 {
		p.lastVarIdx = len(p.fields) - 1
	}

	for i, fp := range p.fields {
		if fp.kind.isVar2() && i != p.lastVarIdx {
			return nil, ErrInvalidLength
		}
	}

	return p, nil
}

func classifyField(t reflect.Type) (fieldPlan, error) {
	switch {
	case common.IsFixedKind(t.Kind()):
		return fieldPlan{kind: kindFixedPrimitive, primKind: t.Kind()}, nil

	case t.Kind() == reflect.Array && common.IsFixedKind(t.Elem().Kind()):
		return fieldPlan{kind: kindFixedArray, primKind: t.Elem().Kind(), arrayLen: t.Len()}, nil

	case t.Kind() == reflect.String:
		return fieldPlan{kind: kindVar1Bytes}, nil

	case t.Kind() == reflect.Struct:
		return fieldPlan{kind: kindVar1Nested, elemType: t}, nil

	case t.Kind() == reflect.Slice:
		elem := t.Elem()
		switch {
		case elem.Kind() == reflect.Uint8:
			return fieldPlan{kind: kindVar1Bytes}, nil
		case common.IsFixedKind(elem.Kind()):
			return fieldPlan{kind: kindVar1FixedList, primKind: elem.Kind()}, nil
		case elem.Kind() == reflect.String:
			return fieldPlan{kind: kindVar2BytesList}, nil
		case elem.Kind() == reflect.Slice && elem.Elem().Kind() == reflect.Uint8:
			return fieldPlan{kind: kindVar2BytesList}, nil
		case elem.Kind() == reflect.Slice && common.IsFixedKind(elem.Elem().Kind()):
			return fieldPlan{kind: kindVar2FixedList, primKind: elem.Elem().Kind()}, nil
		case elem.Kind() == reflect.Struct:
			return fieldPlan{kind: kindVar2NestedList, elemType: elem}, nil
		default:
			return fieldPlan{}, ErrInvalidLength
		}

	default:
		return fieldPlan{}, ErrInvalidLength
	}
}

// Encode walks val's fields in declaration order per its cached plan and
// returns a payload framed with the Codec's magic, version, and
// endianness.
func (c *Codec) Encode(val any) ([]byte, error) {
	v := reflect.ValueOf(val)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, ErrInvalidLength
	}

	e := NewEncoder(c.cfg.Endian)
	if err := c.encodeStruct(e, v); err != nil {
		return nil, err
	}
	return e.FinalizeWithMagicVersion(c.cfg, nil)
}

func (c *Codec) encodeStruct(e *Encoder, v reflect.Value) error {
	p, err := c.getPlan(v.Type())
	if err != nil {
		return err
	}
	for _, fp := range p.fields {
		if err := c.encodeField(e, v.Field(fp.structIdx), fp); err != nil {
			return err
		}
	}
	return nil
}

func (c *Codec) encodeField(e *Encoder, fv reflect.Value, fp fieldPlan) error {
	order := c.cfg.Endian.order()

	switch fp.kind {
	case kindFixedPrimitive:
		buf := make([]byte, common.FixedSize(fp.primKind))
		common.PutFixed(buf, fv, order)
		e.PushFixed(buf)
		return nil

	case kindFixedArray:
		w := common.FixedSize(fp.primKind)
		buf := make([]byte, w*fp.arrayLen)
		for i := 0; i < fp.arrayLen; i++ {
			common.PutFixed(buf[i*w:i*w+w], fv.Index(i), order)
		}
		e.PushFixed(buf)
		return nil

	case kindVar1Bytes:
		EncodeBytes(e, bytesOf(fv))
		return nil

	case kindVar1FixedList:
		w := common.FixedSize(fp.primKind)
		n := fv.Len()
		buf := make([]byte, w*n)
		for i := 0; i < n; i++ {
			common.PutFixed(buf[i*w:i*w+w], fv.Index(i), order)
		}
		e.PushVarIdx(e.DataLen())
		e.PushData(buf)
		return nil

	case kindVar1Nested:
		body, err := c.encodeNested(fv)
		if err != nil {
			return err
		}
		EncodeBytes(e, body)
		return nil

	case kindVar2BytesList:
		n := fv.Len()
		for i := 0; i < n; i++ {
			EncodeBytes(e, bytesOf(fv.Index(i)))
		}
		return nil

	case kindVar2FixedList:
		w := common.FixedSize(fp.primKind)
		n := fv.Len()
		for i := 0; i < n; i++ {
			elem := fv.Index(i)
			m := elem.Len()
			buf := make([]byte, w*m)
			for j := 0; j < m; j++ {
				common.PutFixed(buf[j*w:j*w+w], elem.Index(j), order)
			}
			e.PushVarIdx(e.DataLen())
			e.PushData(buf)
		}
		return nil

	case kindVar2NestedList:
		n := fv.Len()
		for i := 0; i < n; i++ {
			body, err := c.encodeNested(fv.Index(i))
			if err != nil {
				return err
			}
			EncodeBytes(e, body)
		}
		return nil

	default:
		return ErrInvalidLength
	}
}

func (c *Codec) encodeNested(v reflect.Value) ([]byte, error) {
	scratch := NewEncoder(c.cfg.Endian)
	if err := c.encodeStruct(scratch, v); err != nil {
		return nil, err
	}
	return scratch.Finalize(nil)
}

func bytesOf(v reflect.Value) []byte {
	if v.Kind() == reflect.String {
		return []byte(v.String())
	}
	return v.Bytes()
}

// Decode strips the Codec's magic and version from buf, then walks out's
// fields per the same plan Encode used, filling out in place. out must be
// a non-nil pointer to the record's struct type.
func (c *Codec) Decode(buf []byte, out any) error {
	return c.walk(buf, out, true)
}

// Validate performs the identical structural walk Decode does — bounds
// checks on every fixed region, VarEntry offset and data segment — without
// assigning any decoded value into out. Validate(buf, out) == nil exactly
// when Decode(buf, out) == nil, for the same buf and out's type.
func (c *Codec) Validate(buf []byte, out any) error {
	return c.walk(buf, out, false)
}

func (c *Codec) walk(buf []byte, out any, assign bool) error {
	if len(buf) < 5 {
		return ErrInvalidLength
	}
	var magic [4]byte
	copy(magic[:], buf[0:4])
	if magic != c.cfg.Magic {
		return ErrValidationFailed
	}

	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return ErrInvalidLength
	}

	d, err := NewDecoder(buf[5:], c.cfg.Endian)
	if err != nil {
		return err
	}
	return c.decodeStruct(d, v.Elem(), assign)
}

func (c *Codec) decodeStruct(d *Decoder, dst reflect.Value, assign bool) error {
	p, err := c.getPlan(dst.Type())
	if err != nil {
		return err
	}

	var varIdx uint32
	for _, fp := range p.fields {
		fv := dst.Field(fp.structIdx)
		consumed, err := c.decodeField(d, fv, fp, varIdx, assign)
		if err != nil {
			return err
		}
		varIdx += consumed
	}
	return nil
}

func (c *Codec) decodeField(d *Decoder, fv reflect.Value, fp fieldPlan, varIdx uint32, assign bool) (uint32, error) {
	order := c.cfg.Endian.order()

	switch fp.kind {
	case kindFixedPrimitive:
		b, err := d.NextFixed(uint32(common.FixedSize(fp.primKind)))
		if err != nil {
			return 0, err
		}
		if assign {
			common.SetFixed(fv, b, fp.primKind, order)
		}
		return 0, nil

	case kindFixedArray:
		w := common.FixedSize(fp.primKind)
		b, err := d.NextFixed(uint32(w * fp.arrayLen))
		if err != nil {
			return 0, err
		}
		if assign {
			for i := 0; i < fp.arrayLen; i++ {
				common.SetFixed(fv.Index(i), b[i*w:i*w+w], fp.primKind, order)
			}
		}
		return 0, nil

	case kindVar1Bytes:
		b, err := d.NextVar(varIdx)
		if err != nil {
			return 0, err
		}
		if assign {
			setBytesOrString(fv, b)
		}
		return 1, nil

	case kindVar1FixedList:
		w := common.FixedSize(fp.primKind)
		b, err := d.NextVar(varIdx)
		if err != nil {
			return 0, err
		}
		if len(b)%w != 0 {
			return 0, ErrInvalidLength
		}
		if assign {
			n := len(b) / w
			slice := reflect.MakeSlice(fv.Type(), n, n)
			for i := 0; i < n; i++ {
				common.SetFixed(slice.Index(i), b[i*w:i*w+w], fp.primKind, order)
			}
			fv.Set(slice)
		}
		return 1, nil

	case kindVar1Nested:
		b, err := d.NextVar(varIdx)
		if err != nil {
			return 0, err
		}
		if assign {
			if err := c.decodeNestedInto(b, fv); err != nil {
				return 0, err
			}
		} else if err := c.validateNested(b, fp.elemType); err != nil {
			return 0, err
		}
		return 1, nil

	case kindVar2BytesList:
		n := d.VarCount() - varIdx
		if assign {
			slice := reflect.MakeSlice(fv.Type(), int(n), int(n))
			for i := uint32(0); i < n; i++ {
				b, err := d.NextVar(varIdx + i)
				if err != nil {
					return 0, err
				}
				setBytesOrString(slice.Index(int(i)), b)
			}
			fv.Set(slice)
		} else {
			for i := uint32(0); i < n; i++ {
				if _, err := d.NextVar(varIdx + i); err != nil {
					return 0, err
				}
			}
		}
		return n, nil

	case kindVar2FixedList:
		w := common.FixedSize(fp.primKind)
		n := d.VarCount() - varIdx
		if assign {
			outer := reflect.MakeSlice(fv.Type(), int(n), int(n))
			for i := uint32(0); i < n; i++ {
				b, err := d.NextVar(varIdx + i)
				if err != nil {
					return 0, err
				}
				if len(b)%w != 0 {
					return 0, ErrInvalidLength
				}
				m := len(b) / w
				inner := reflect.MakeSlice(fv.Type().Elem(), m, m)
				for j := 0; j < m; j++ {
					common.SetFixed(inner.Index(j), b[j*w:j*w+w], fp.primKind, order)
				}
				outer.Index(int(i)).Set(inner)
			}
			fv.Set(outer)
		} else {
			for i := uint32(0); i < n; i++ {
				b, err := d.NextVar(varIdx + i)
				if err != nil {
					return 0, err
				}
				if len(b)%w != 0 {
					return 0, ErrInvalidLength
				}
			}
		}
		return n, nil

	case kindVar2NestedList:
		n := d.VarCount() - varIdx
		if assign {
			slice := reflect.MakeSlice(fv.Type(), int(n), int(n))
			for i := uint32(0); i < n; i++ {
				b, err := d.NextVar(varIdx + i)
				if err != nil {
					return 0, err
				}
				if err := c.decodeNestedInto(b, slice.Index(int(i))); err != nil {
					return 0, err
				}
			}
			fv.Set(slice)
		} else {
			for i := uint32(0); i < n; i++ {
				b, err := d.NextVar(varIdx + i)
				if err != nil {
					return 0, err
				}
				if err := c.validateNested(b, fp.elemType); err != nil {
					return 0, err
				}
			}
		}
		return n, nil

	default:
		return 0, ErrInvalidLength
	}
}

func (c *Codec) decodeNestedInto(body []byte, dst reflect.Value) error {
	nd, err := NewDecoder(body, c.cfg.Endian)
	if err != nil {
		return err
	}
	return c.decodeStruct(nd, dst, true)
}

func (c *Codec) validateNested(body []byte, t reflect.Type) error {
	nd, err := NewDecoder(body, c.cfg.Endian)
	if err != nil {
		return err
	}
	scratch := reflect.New(t).Elem()
	return c.decodeStruct(nd, scratch, false)
}

func setBytesOrString(fv reflect.Value, b []byte) {
	if fv.Kind() == reflect.String {
		fv.SetString(common.UnsafeString(b))
		return
	}
	fv.SetBytes(b)
}
