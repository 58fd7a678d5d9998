package buf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddOverflowSafe(t *testing.T) {
	tests := []struct {
		name string
		a, b int64
		want int64
		ok   bool
	}{
		{"simple", 10, 20, 30, true},
		{"zero", 0, 0, 0, true},
		{"negative delta", 100, -40, 60, true},
		{"max plus zero", math.MaxInt64, 0, math.MaxInt64, true},
		{"overflow", math.MaxInt64, 1, 0, false},
		{"underflow", math.MinInt64, -1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AddOverflowSafe(tt.a, tt.b)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCheckRange(t *testing.T) {
	tests := []struct {
		name                 string
		size, offset, length int64
		end                  int64
		ok                   bool
	}{
		{"inside", 100, 10, 20, 30, true},
		{"exact end", 100, 90, 10, 100, true},
		{"past end", 100, 95, 10, 0, false},
		{"negative offset", 100, -1, 4, 0, false},
		{"negative length", 100, 0, -4, 0, false},
		{"overflowing end", 100, math.MaxInt64, 8, 0, false},
		{"empty at end", 100, 100, 0, 100, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, ok := CheckRange(tt.size, tt.offset, tt.length)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.end, end)
			}
		})
	}
}
