// Package helpers holds small numeric conversions shared by config and the API.
// Each one clamps instead of wrapping when the value does not fit.
package helpers

import "math"

// ClampInt restricts v to [lowerLimit, upperLimit].
func ClampInt(v, lowerLimit, upperLimit int) int {
	return max(lowerLimit, min(v, upperLimit))
}

// ClampIntToUint16 converts v to uint16, clamping to 0..math.MaxUint16.
func ClampIntToUint16(v int) uint16 {
	return uint16(ClampInt(v, 0, math.MaxUint16)) //nolint:gosec // clamped to valid range
}

// ClampInt64ToUint32 converts v to uint32, clamping to 0..math.MaxUint32.
// TTLs are configured as int64 so out-of-range values can be reported
// before they reach the wire.
func ClampInt64ToUint32(v int64) uint32 {
	if v < 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
