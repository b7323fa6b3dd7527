/*
Package bitint provides power-of-2 helpers used for FFT frame sizing and
capture buffer validation. All operations are O(1), allocation-free, and
safe to call from the audio hot path.
*/
package bitint

import "math/bits"

// NextPowerOfTwo returns the next power of 2 >= size. Powers of 2 are
// returned unchanged; the subtraction of 1 before measuring the bit length
// is what preserves them (without it, 8 would become 16). Non-positive
// input returns 1.
func NextPowerOfTwo(size int) int {
	if size <= 0 {
		return 1
	}
	return 1 << bits.Len64(uint64(size-1))
}

// IsPowerOfTwo reports whether n is a positive power of 2. Powers of 2 have
// exactly one bit set, so n&(n-1) clears it and leaves zero.
func IsPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}
