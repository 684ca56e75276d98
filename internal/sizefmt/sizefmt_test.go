package sizefmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"12", 12},
		{"12B", 12},
		{"500b", 500},
		{"1.5 MB", 1_500_000},
		{"1.5MB", 1_500_000},
		{"12.5gb", 12_500_000_000},
		{"3 kb", 3000},
		{"2TB", 2_000_000_000_000},
		{"  7 MB  ", 7_000_000},
		{"0", 0},
		{"bogus", Invalid},
		{"", Invalid},
		{"MB", Invalid},
		{"12 XB", Invalid},
		{"12 34 MB", Invalid},
		{"1.2.3 MB", Invalid},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.in))
		})
	}
}

func TestParseZeroIsNotInvalid(t *testing.T) {
	assert.Equal(t, int64(0), Parse("0B"))
	assert.NotEqual(t, Invalid, Parse("0B"))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{999, "999 B"},
		{1000, "1.00 KB"},
		{1_500_000, "1.50 MB"},
		{2_000_000_000, "2.00 GB"},
		{1_230_000_000_000, "1.23 TB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.in))
	}
}
