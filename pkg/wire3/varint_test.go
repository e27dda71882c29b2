package wire3

import (
	"bytes"
	"math"
	"testing"
)

func TestEncodeUvarintBoundaryVectors(t *testing.T) {
	tests := []struct {
		name string
		n    uint64
		want []byte
	}{
		{"max_1byte", 215, []byte{0xD7}},
		{"min_2byte", 216, []byte{0xD8, 0x00}},
		{"max_2byte_len", 9431, nil}, // length checked separately below
		{"min_3byte", 9432, nil},
		{"min_4byte", 65536, []byte{0xFD, 0x01, 0x00, 0x00}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := EncodeUvarint(nil, tc.n)
			if tc.want != nil && !bytes.Equal(got, tc.want) {
				t.Errorf("EncodeUvarint(%d) = % X, want % X", tc.n, got, tc.want)
			}
		})
	}

	if got := EncodeUvarint(nil, 9431); len(got) != 2 {
		t.Errorf("EncodeUvarint(9431) length = %d, want 2", len(got))
	}
	if got := EncodeUvarint(nil, 9432); len(got) != 3 || got[0] != 0xFC {
		t.Errorf("EncodeUvarint(9432) = % X, want 3 bytes starting 0xFC", got)
	}
	if got := EncodeUvarint(nil, 65536); len(got) != 4 || got[0] != 0xFD {
		t.Errorf("EncodeUvarint(65536) = % X, want 4 bytes starting 0xFD", got)
	}
}

func TestEncodeInt64BoundaryVectors(t *testing.T) {
	tests := []struct {
		n    int64
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x02}},
		{-1, []byte{0x01}},
		{100, []byte{0xC8}},
		{-100, []byte{0xC7}},
		{107, []byte{0xD6}},
		{108, []byte{0xD8, 0x00}},
	}
	for _, tc := range tests {
		got := EncodeSvarint(nil, tc.n)
		if !bytes.Equal(got, tc.want) {
			t.Errorf("EncodeSvarint(%d) = % X, want % X", tc.n, got, tc.want)
		}
	}
}

func TestVarintRangeFirstByte(t *testing.T) {
	tests := []struct {
		n         uint64
		wantLen   int
		firstByte func(b byte) bool
	}{
		{0, 1, func(b byte) bool { return b <= 215 }},
		{215, 1, func(b byte) bool { return b <= 215 }},
		{216, 2, func(b byte) bool { return b >= 216 && b <= 251 }},
		{9431, 2, func(b byte) bool { return b >= 216 && b <= 251 }},
		{9432, 3, func(b byte) bool { return b == 252 }},
		{65535, 3, func(b byte) bool { return b == 252 }},
		{65536, 4, func(b byte) bool { return b == 253 }},
		{1<<24 - 1, 4, func(b byte) bool { return b == 253 }},
		{1 << 24, 5, func(b byte) bool { return b == 254 }},
		{1<<32 - 1, 5, func(b byte) bool { return b == 254 }},
		{1 << 32, 9, func(b byte) bool { return b == 255 }},
	}
	for _, tc := range tests {
		got := EncodeUvarint(nil, tc.n)
		if len(got) != tc.wantLen {
			t.Errorf("EncodeUvarint(%d) length = %d, want %d", tc.n, len(got), tc.wantLen)
		}
		if !tc.firstByte(got[0]) {
			t.Errorf("EncodeUvarint(%d) first byte = 0x%02X, out of expected range", tc.n, got[0])
		}
	}
}

func TestUvarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 100, 215, 216, 217, 9431, 9432, 65535, 65536,
		1<<24 - 1, 1 << 24, 1<<32 - 1, 1 << 32, 1 << 40, math.MaxUint32,
		1 << 52}
	for _, v := range values {
		enc := EncodeUvarint(nil, v)
		got, n, err := DecodeUvarint(enc)
		if err != nil {
			t.Fatalf("DecodeUvarint(encode(%d)) error: %v", v, err)
		}
		if n != len(enc) {
			t.Errorf("DecodeUvarint(encode(%d)) read %d bytes, want %d", v, n, len(enc))
		}
		if got != v {
			t.Errorf("DecodeUvarint(encode(%d)) = %d", v, got)
		}
	}
}

func TestSvarintRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 2, -2, 100, -100, 107, -107, 108, -108,
		1 << 20, -(1 << 20), 1 << 52, -(1 << 52), math.MaxInt32, math.MinInt32}
	for _, v := range values {
		enc := EncodeSvarint(nil, v)
		got, n, err := DecodeSvarint(enc)
		if err != nil {
			t.Fatalf("DecodeSvarint(encode(%d)) error: %v", v, err)
		}
		if n != len(enc) {
			t.Errorf("DecodeSvarint(encode(%d)) read %d bytes, want %d", v, n, len(enc))
		}
		if got != v {
			t.Errorf("DecodeSvarint(encode(%d)) = %d, want %d", v, got, v)
		}
	}
}

func TestReencodeIsByteIdentical(t *testing.T) {
	values := []uint64{0, 215, 216, 9431, 9432, 65535, 65536, 1<<32 - 1, 1 << 40}
	for _, v := range values {
		enc := EncodeUvarint(nil, v)
		decoded, _, err := DecodeUvarint(enc)
		if err != nil {
			t.Fatalf("decode(%d): %v", v, err)
		}
		reenc := EncodeUvarint(nil, decoded)
		if !bytes.Equal(enc, reenc) {
			t.Errorf("re-encode(%d) = % X, want % X", v, reenc, enc)
		}
	}
}

func TestLexicographicMonotonicitySmallInputs(t *testing.T) {
	var prev []byte
	for n := uint64(0); n <= 10000; n++ {
		cur := EncodeUvarint(nil, n)
		if prev != nil {
			if cmp := compareLenThenLex(prev, cur); cmp >= 0 {
				t.Fatalf("encoding not increasing at n=%d: prev=% X cur=% X", n, prev, cur)
			}
		}
		prev = cur
	}
}

func compareLenThenLex(a, b []byte) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return bytes.Compare(a, b)
}

func TestDecodeTruncated(t *testing.T) {
	full := EncodeUvarint(nil, 1<<24) // 5-byte form
	for i := 1; i < len(full); i++ {
		if _, _, err := DecodeUvarint(full[:i]); err != ErrTruncated {
			t.Errorf("DecodeUvarint(truncated to %d bytes) = %v, want ErrTruncated", i, err)
		}
	}
}

func TestDecodeUvarintEmptyBuffer(t *testing.T) {
	if _, _, err := DecodeUvarint(nil); err != ErrTruncated {
		t.Errorf("DecodeUvarint(nil) = %v, want ErrTruncated", err)
	}
}

func TestEncodeUvarintChecked(t *testing.T) {
	if _, err := EncodeUvarintChecked(nil, -1); err != ErrNegativeInput {
		t.Errorf("EncodeUvarintChecked(-1) error = %v, want ErrNegativeInput", err)
	}
	got, err := EncodeUvarintChecked(nil, 215)
	if err != nil || !bytes.Equal(got, []byte{0xD7}) {
		t.Errorf("EncodeUvarintChecked(215) = % X, %v", got, err)
	}
}

func TestUvarintLenMatchesEncodedLength(t *testing.T) {
	values := []uint64{0, 215, 216, 9431, 9432, 65535, 65536, 1<<24 - 1,
		1 << 24, 1<<32 - 1, 1 << 32}
	for _, v := range values {
		want := len(EncodeUvarint(nil, v))
		if got := UvarintLen(v); got != want {
			t.Errorf("UvarintLen(%d) = %d, want %d", v, got, want)
		}
	}
}

func TestConcatenatedStreamDecode(t *testing.T) {
	ints := []int64{0, -1, 1, 107, -107, 108, 1 << 20}
	var buf []byte
	for _, n := range ints {
		buf = EncodeSvarint(buf, n)
	}
	pos := 0
	for _, want := range ints {
		got, n, err := DecodeSvarint(buf[pos:])
		if err != nil {
			t.Fatalf("DecodeSvarint at pos %d: %v", pos, err)
		}
		if got != want {
			t.Errorf("decoded %d, want %d", got, want)
		}
		pos += n
	}
	if pos != len(buf) {
		t.Errorf("residual bytes after decoding sequence: %d", len(buf)-pos)
	}
}
