// Package pufu implements compact, schema-driven binary serialization with
// zero-copy decoding. A record's wire layout is entirely determined by its
// Go struct definition: there are no type tags and no length prefixes.
//
// An Encoder accumulates a payload as three parallel regions — fixed
// bytes, a table of offsets into the data region, and the data itself —
// and Finalize reifies that into one contiguous buffer. A Decoder walks a
// borrowed buffer and returns slices that alias it directly, so decoding a
// []byte or string field costs no allocation.
//
// Two ways to drive it: call the field-level Encode*/Decode* functions in
// field.go directly (what a schema compiler would emit), or build a Codec
// and let reflection walk a struct's fields in declaration order for you.
package pufu
