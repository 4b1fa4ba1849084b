package pufu

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type benchRecord struct {
	Mod      []int8
	Integers []int16
	Float3   []float32
	Float6   []float64
	Tags     []string
}

func benchRecordSample() benchRecord {
	return benchRecord{
		Mod:      []int8{12, 10, 13, 0},
		Integers: []int16{100, 250, 300},
		Float3:   []float32{12.13, 16.23, 75.1},
		Float6:   []float64{100.5, 165.63, 153.5},
		Tags:     []string{"azerty", "hello", "world", "random"},
	}
}

func BenchmarkCodecZeroAllocs(b *testing.B) {
	type zeroAllocs struct {
		Int int8
	}
	z := zeroAllocs{Int: 1}
	c := NewCodec(DefaultConfig())
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = c.Encode(z)
	}
}

func BenchmarkCodecEncoding(b *testing.B) {
	z := benchRecordSample()
	c := NewCodec(DefaultConfig())
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = c.Encode(z)
	}
}

func BenchmarkCodecDecoding(b *testing.B) {
	z := benchRecordSample()
	c := NewCodec(DefaultConfig())
	res, err := c.Encode(z)
	require.NoError(b, err)
	y := &benchRecord{}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = c.Decode(res, y)
	}
}

func BenchmarkCodecRoundTrip(b *testing.B) {
	type constRecord struct {
		Int1 uint8
		Int2 int8
		Int3 uint16
		Int4 int16
		Int5 uint32
		Int6 int32
		Int7 uint64
		Int9 int64
	}
	z := constRecord{Int1: 1, Int2: 2, Int3: 16, Int4: 18, Int5: 1586, Int6: 15262, Int7: 1547544565, Int9: 15484565656}
	y := &constRecord{}
	c := NewCodec(DefaultConfig())
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		res, _ := c.Encode(z)
		_ = c.Decode(res, y)
	}
	require.EqualValues(b, z, *y)
}

func BenchmarkYaml(b *testing.B) {
	type constRecord struct {
		Int1 uint8
		Int2 int8
		Int3 uint16
		Int4 int16
		Int5 uint32
		Int6 int32
		Int7 uint64
		Int9 int64
	}
	z := constRecord{Int1: 1, Int2: 2, Int3: 16, Int4: 18, Int5: 1586, Int6: 15262, Int7: 1547544565, Int9: 15484565656}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = yaml.Marshal(z)
	}
}
