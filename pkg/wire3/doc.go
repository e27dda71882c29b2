// Package wire3 implements the host's binary value codec.
//
// Wire3 is optimized for the common case of small non-negative integers and
// short strings: a zigzag map folds signed integers onto unsigned ones, and
// a range-partitioned unsigned varint spends one byte on anything up to 215
// and only grows the encoding for larger magnitudes. On top of the varint,
// length-prefixed strings and a one-byte-tag-plus-string message envelope
// give the single wire shape this adapter speaks to the host: a tagged
// string payload.
//
// # Wire format
//
// Unsigned varint, by range of the encoded value N:
//
//	N in [0, 215]        1 byte:  [N]
//	N in [216, 9431]     2 bytes: [216 + (N-216)/256, (N-216)%256]
//	N in [9432, 65535]   3 bytes: [252, hi, lo]
//	N in [65536, 2^24)   4 bytes: [253, b2, b1, b0]
//	N in [2^24, 2^32)    5 bytes: [254, b3, b2, b1, b0]
//	N >= 2^32            9 bytes: [255, float64 bits, little-endian]
//
// Signed varint is the unsigned varint of the zigzag mapping. Strings are a
// signed-varint byte length followed by UTF-8 bytes. A message is a single
// discriminator byte followed by one string.
//
// # File structure
//
//   - zigzag.go: the signed/unsigned integer bijection
//   - varint.go: the range-partitioned varint codec
//   - string.go: length-prefixed UTF-8 strings
//   - message.go: the tagged single-string envelope
//   - errors.go: shared decode/encode error sentinels
package wire3
