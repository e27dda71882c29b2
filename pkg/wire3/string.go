package wire3

// EncodeString appends the Wire3 encoding of s (a signed-varint byte
// length followed by the UTF-8 bytes of s) to buf. The length prefix
// counts bytes, not code points. Invalid lone-surrogate input cannot occur
// in a Go string and is therefore not a case this function handles; it is
// a caller precondition that s is well-formed UTF-8.
func EncodeString(buf []byte, s string) []byte {
	buf = EncodeSvarint(buf, int64(len(s)))
	return append(buf, s...)
}

// StringLen returns the number of bytes EncodeString(s) would append.
func StringLen(s string) int {
	return SvarintLen(int64(len(s))) + len(s)
}

// DecodeString decodes a Wire3 string from the front of buf, returning the
// string, the number of bytes consumed, and an error. ErrTruncated is
// returned when the declared length extends past the end of buf.
func DecodeString(buf []byte) (string, int, error) {
	length, n, err := DecodeSvarint(buf)
	if err != nil {
		return "", 0, err
	}
	if length < 0 {
		return "", 0, ErrTruncated
	}
	end := n + int(length)
	if end > len(buf) || end < n {
		return "", 0, ErrTruncated
	}
	return string(buf[n:end]), end, nil
}
