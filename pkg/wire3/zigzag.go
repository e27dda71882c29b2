package wire3

// ZigZagEncode maps a signed integer to an unsigned one so that small
// magnitudes, positive or negative, produce small unsigned values: 0->0,
// -1->1, 1->2, -2->3, 2->4, and so on. This is what lets EncodeSvarint spend
// one byte on small negatives instead of inflating them to the top of the
// unsigned range.
//
// Implemented as the standard zigzag bit trick; the source's floating-point
// arithmetic keeps an exact round trip only for |n| <= 2^52, so callers
// working with the host's representable range should stay within that
// bound (see DecodeUvarint's 9-byte float64 form).
func ZigZagEncode(n int64) uint64 {
	return uint64((n << 1) ^ (n >> 63))
}

// ZigZagDecode reverses ZigZagEncode: odd u maps to -((u+1)/2), even u maps
// to u/2.
func ZigZagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}
