package pufu

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mixedRecord struct {
	Mod      int8
	Data     string
	Integers int16
	Float3   float32
	Float6   float64
	Tags     []string
}

func TestCodecEncodeDecodeSimple(t *testing.T) {
	z := mixedRecord{
		Mod: 17, Data: "testing", Integers: 12,
		Float3: 12.3, Float6: 1236.2,
		Tags: []string{"azerty", "loling"},
	}
	c := NewCodec(DefaultConfig())
	data, err := c.Encode(z)
	require.NoError(t, err)

	res := &mixedRecord{}
	require.NoError(t, c.Decode(data, res))
	require.EqualExportedValues(t, z, *res)
}

func TestCodecEncodeDecodeStructPointer(t *testing.T) {
	type structPtr struct {
		Data string
	}
	val := &structPtr{Data: "Hello"}
	c := NewCodec(DefaultConfig())
	data, err := c.Encode(val)
	require.NoError(t, err)

	res := &structPtr{}
	require.NoError(t, c.Decode(data, res))
	require.EqualExportedValues(t, val, res)
}

type fixedListsRecord struct {
	Mod      []int8
	Integers []int16
	Float3   []float32
	Float6   []float64
	Tags     []string
}

func TestCodecFixedListsProperty(t *testing.T) {
	c := NewCodec(DefaultConfig())
	condition := func(z fixedListsRecord) bool {
		data, err := c.Encode(z)
		require.NoError(t, err)
		res := &fixedListsRecord{}
		err = c.Decode(data, res)
		require.NoError(t, err)
		return assert.ObjectsAreEqual(z, *res)
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))
}

type constRecord struct {
	Int1  uint8
	Int2  int8
	Int3  uint16
	Int4  int16
	Int5  uint32
	Int6  int32
	Int7  uint64
	Int9  int64
	Const bool
}

func TestCodecConstantFieldsProperty(t *testing.T) {
	c := NewCodec(DefaultConfig())
	condition := func(z constRecord) bool {
		data, err := c.Encode(z)
		require.NoError(t, err)
		res := &constRecord{}
		err = c.Decode(data, res)
		require.NoError(t, err)
		return assert.ObjectsAreEqual(z, *res)
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))
}

func TestCodecValidateAgreesWithDecode(t *testing.T) {
	z := mixedRecord{Mod: 1, Data: "x", Integers: 2, Float3: 1, Float6: 2, Tags: []string{"a"}}
	c := NewCodec(DefaultConfig())
	data, err := c.Encode(z)
	require.NoError(t, err)

	require.NoError(t, c.Validate(data, &mixedRecord{}))
	require.NoError(t, c.Decode(data, &mixedRecord{}))

	truncated := data[:len(data)-1]
	errValidate := c.Validate(truncated, &mixedRecord{})
	errDecode := c.Decode(truncated, &mixedRecord{})
	require.Error(t, errValidate)
	require.Error(t, errDecode)
}

func TestCodecMagicMismatch(t *testing.T) {
	z := mixedRecord{Tags: []string{"a"}}
	c := NewCodec(DefaultConfig())
	data, err := c.Encode(z)
	require.NoError(t, err)

	data[0] ^= 0xFF
	err = c.Decode(data, &mixedRecord{})
	require.ErrorIs(t, err, ErrValidationFailed)
}

func TestCodecRejectsNonLastVar2Field(t *testing.T) {
	type badRecord struct {
		Tags []string // Var2, but another variable field follows it
		Note string   // Var1, comes after the Var2 field
	}
	c := NewCodec(DefaultConfig())
	_, err := c.Encode(badRecord{Tags: []string{"a"}, Note: "x"})
	require.ErrorIs(t, err, ErrInvalidLength)
}

func TestCodecAllowsVar2FollowedByFixedFields(t *testing.T) {
	type okRecord struct {
		Tags []string // Var2, the record's last *variable* field
		Mod  int8     // trailing fixed field, fine
	}
	c := NewCodec(DefaultConfig())
	z := okRecord{Tags: []string{"a", "b"}, Mod: 5}
	data, err := c.Encode(z)
	require.NoError(t, err)

	res := &okRecord{}
	require.NoError(t, c.Decode(data, res))
	require.EqualExportedValues(t, z, *res)
}

func TestCodecRejectsNonStruct(t *testing.T) {
	c := NewCodec(DefaultConfig())
	_, err := c.Encode("not a struct")
	require.ErrorIs(t, err, ErrInvalidLength)
}

type inner struct {
	X    int32
	Y    int32
	Name string
}

type outerNested struct {
	ID    uint64
	Point inner
	Notes []string
}

func TestCodecNestedRecordRoundTrip(t *testing.T) {
	z := outerNested{
		ID:    42,
		Point: inner{X: 1, Y: -1, Name: "origin"},
		Notes: []string{"a", "b", "c"},
	}
	c := NewCodec(DefaultConfig())
	data, err := c.Encode(z)
	require.NoError(t, err)

	res := &outerNested{}
	require.NoError(t, c.Decode(data, res))
	require.EqualExportedValues(t, z, *res)
}

type outerNestedList struct {
	Count uint32
	Items []inner
}

func TestCodecNestedListRoundTrip(t *testing.T) {
	z := outerNestedList{
		Count: 2,
		Items: []inner{
			{X: 1, Y: 2, Name: "a"},
			{X: 3, Y: 4, Name: "b"},
		},
	}
	c := NewCodec(DefaultConfig())
	data, err := c.Encode(z)
	require.NoError(t, err)

	res := &outerNestedList{}
	require.NoError(t, c.Decode(data, res))
	require.EqualExportedValues(t, z, *res)
}

func TestCodecBigEndianRoundTrip(t *testing.T) {
	cfg := NewConfigBuilder().Big().Build()
	c := NewCodec(cfg)
	z := mixedRecord{Mod: -3, Data: "big", Integers: -100, Float3: 9.5, Float6: -3.25, Tags: []string{"z"}}
	data, err := c.Encode(z)
	require.NoError(t, err)

	res := &mixedRecord{}
	require.NoError(t, c.Decode(data, res))
	require.EqualExportedValues(t, z, *res)
}
