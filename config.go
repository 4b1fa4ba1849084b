package pufu

import "encoding/binary"

// Endian selects the byte order used for every multi-byte value this
// package writes or reads: header fields, VarEntry offsets, and fixed-width
// primitives. It is never itself written to the wire.
type Endian int

const (
	// Little is little-endian byte order.
	Little Endian = iota
	// Big is big-endian byte order.
	Big
	// Native is the host's byte order, resolved via encoding/binary.NativeEndian.
	Native
)

func (e Endian) order() binary.ByteOrder {
	switch e {
	case Big:
		return binary.BigEndian
	case Native:
		return binary.NativeEndian
	default:
		return binary.LittleEndian
	}
}

// DefaultMagic is the magic prefix used when a ConfigBuilder leaves Magic unset.
var DefaultMagic = [4]byte{'s', 'v', 's', 'd'}

// DefaultVersion is the version byte used when a ConfigBuilder leaves Version unset.
const DefaultVersion uint8 = 1

// Config carries the magic, version, and endianness shared by an Encoder,
// a Decoder, and the Codec facade built on top of them. Two equal Configs
// produce byte-identical framing for equal input; Config is a plain value
// type and may be copied freely.
type Config struct {
	Magic   [4]byte
	Version uint8
	Endian  Endian
}

// DefaultConfig returns the Config a zero-value ConfigBuilder would build.
func DefaultConfig() Config {
	return Config{Magic: DefaultMagic, Version: DefaultVersion, Endian: Little}
}

// Builder returns a new ConfigBuilder.
func (Config) Builder() *ConfigBuilder {
	return NewConfigBuilder()
}

// ConfigBuilder builds a Config via fluent setters; unset fields fall back
// to the package defaults on Build.
type ConfigBuilder struct {
	magic   *[4]byte
	version *uint8
	endian  *Endian
}

// NewConfigBuilder returns an empty ConfigBuilder.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

// Magic sets the 4-byte magic prefix.
func (b *ConfigBuilder) Magic(magic [4]byte) *ConfigBuilder {
	b.magic = &magic
	return b
}

// Version sets the protocol version byte.
func (b *ConfigBuilder) Version(version uint8) *ConfigBuilder {
	b.version = &version
	return b
}

// Endian sets the endianness.
func (b *ConfigBuilder) Endian(endian Endian) *ConfigBuilder {
	b.endian = &endian
	return b
}

// Big sets endianness to big-endian.
func (b *ConfigBuilder) Big() *ConfigBuilder { return b.Endian(Big) }

// Little sets endianness to little-endian.
func (b *ConfigBuilder) Little() *ConfigBuilder { return b.Endian(Little) }

// Native sets endianness to the host's native byte order.
func (b *ConfigBuilder) Native() *ConfigBuilder { return b.Endian(Native) }

// Build returns the assembled Config, substituting defaults for unset fields.
func (b *ConfigBuilder) Build() Config {
	cfg := DefaultConfig()
	if b.magic != nil {
		cfg.Magic = *b.magic
	}
	if b.version != nil {
		cfg.Version = *b.version
	}
	if b.endian != nil {
		cfg.Endian = *b.endian
	}
	return cfg
}
