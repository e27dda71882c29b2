package wire3

import "testing"

func TestZigZagRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 2, -2, 100, -100, 107, -107, 108, -108,
		1 << 20, -(1 << 20), 1 << 52, -(1 << 52)}
	for _, v := range values {
		u := ZigZagEncode(v)
		got := ZigZagDecode(u)
		if got != v {
			t.Errorf("ZigZagDecode(ZigZagEncode(%d)) = %d", v, got)
		}
	}
}

func TestZigZagBoundaryValues(t *testing.T) {
	tests := []struct {
		n    int64
		want uint64
	}{
		{0, 0},
		{-1, 1},
		{1, 2},
		{-2, 3},
		{2, 4},
		{100, 200},
		{-100, 199},
		{107, 214},
		{-107, 213},
		{108, 216},
	}
	for _, tc := range tests {
		if got := ZigZagEncode(tc.n); got != tc.want {
			t.Errorf("ZigZagEncode(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}

func TestZigZagOrderPreservingOnNonNegatives(t *testing.T) {
	for n := int64(0); n < 1000; n++ {
		if ZigZagEncode(n) >= ZigZagEncode(n+1) {
			t.Fatalf("ZigZagEncode not increasing at n=%d", n)
		}
	}
}
