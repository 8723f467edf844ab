package bytesize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 Bytes"},
		{1, "1 Bytes"},
		{10, "10 Bytes"},
		{1023, "1023 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1000 * 1024, "1000 KB"},
		{MB, "1 MB"},
		{5*MB + 256*KB, "5.25 MB"},
		{GB, "1 GB"},
		{25 * GB, "25 GB"},
		{3000 * GB, "3000 GB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.in), "Format(%d)", tt.in)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0 Bytes", 0},
		{"10 Bytes", 10},
		{"1.5 KB", 1536},
		{"2 MB", 2 * MB},
		{"25 GB", 25 * GB},
		{"  7   KB ", 7 * KB},
		// неизвестная единица и мусор дают 0
		{"10 TB", 0},
		{"10 kb", 0},
		{"ten KB", 0},
		{"10", 0},
		{"", 0},
		{"-1 KB", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Parse(tt.in), "Parse(%q)", tt.in)
	}
}

func TestRoundTripWithinTolerance(t *testing.T) {
	samples := []int64{0, 1, 999, 1023, 1024, 1025, 4095, 1048575, 1048577,
		123456789, GB - 1, GB + 1, 7*GB + 123456, 25 * GB}
	for n := int64(1); n < 1<<40; n = n*3 + 7 {
		samples = append(samples, n)
	}

	for _, n := range samples {
		factor := unitFor(n)
		got := Parse(Format(n))
		assert.LessOrEqual(t, math.Abs(float64(got-n)), 0.01*float64(factor), "n=%d formatted=%q", n, Format(n))
	}
}

func TestAccountedNeverBelowActual(t *testing.T) {
	for _, n := range []int64{0, 10, 1025, 1048575, 1536*KB + 3, 10*GB - 1} {
		acc := Accounted(n)
		assert.GreaterOrEqual(t, acc, n)
		assert.GreaterOrEqual(t, acc, Parse(Format(n)))
	}
}

func unitFor(n int64) int64 {
	switch {
	case n >= GB:
		return GB
	case n >= MB:
		return MB
	case n >= KB:
		return KB
	default:
		return B
	}
}
