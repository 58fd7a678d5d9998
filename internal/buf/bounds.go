package buf

import "math"

// AddOverflowSafe adds a and b, returning ok = false when the result would
// overflow int64. Offsets and access widths go through this before any
// bounds comparison so a hostile offset cannot wrap past a check.
func AddOverflowSafe(a, b int64) (int64, bool) {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return 0, false
	case b < 0 && a < math.MinInt64-b:
		return 0, false
	default:
		return a + b, true
	}
}

// CheckRange validates that length bytes starting at offset fit inside a
// region of size bytes. Returns the end offset when valid.
func CheckRange(size, offset, length int64) (int64, bool) {
	if offset < 0 || length < 0 {
		return 0, false
	}
	end, ok := AddOverflowSafe(offset, length)
	if !ok || end > size {
		return 0, false
	}
	return end, true
}
