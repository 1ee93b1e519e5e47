package box

import (
	"fortio.org/safecast"
)

// Bit-pattern reinterpretation between signed and unsigned fixed widths.

func i16bits(n int16) uint16 { return uint16(n) } //nolint:gosec // G115: intentional

func i32bits(n int32) uint32 { return uint32(n) } //nolint:gosec // G115: intentional

func i64bits(n int64) uint64 { return uint64(n) } //nolint:gosec // G115: intentional

func bitsI16(u uint16) int16 { return int16(u) } //nolint:gosec // G115: intentional

func bitsI32(u uint32) int32 { return int32(u) } //nolint:gosec // G115: intentional

func bitsI64(u uint64) int64 { return int64(u) } //nolint:gosec // G115: intentional

// narrowLong checks that n fits a 4-byte C long.
func narrowLong(n int64) (int32, error) {
	return safecast.Conv[int32](n)
}

// narrowULong checks that n fits a 4-byte C unsigned long.
func narrowULong(n uint64) (uint32, error) {
	return safecast.Conv[uint32](n)
}
