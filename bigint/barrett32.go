package bigint

// BarrettParam32 returns floor(2^32/p), the reciprocal used by the
// classifier's pass-1 reduction. p must fit in 31 bits (a factor-base
// prime), and the returned reciprocal is sized so that x*reciprocal never
// overflows a signed 64-bit register for any signed 32-bit x.
func BarrettParam32(p uint32) uint64 {
	return (uint64(1) << 32) / uint64(p)
}

// ReduceSigned32 computes x mod p for a signed 32-bit x and an odd prime (or
// prime power) p, using the 32-bit Barrett reciprocal u = floor(2^32/p).
// The result is normalized into [0, p).
//
// q = (x*u) >> 32 approximates x/p with error at most 1 in either direction,
// so a single conditional correction after the subtraction suffices — see
// https://en.wikipedia.org/wiki/Barrett_reduction. x*u fits in a signed
// 64-bit register because |x| < 2^31 and u <= 2^32.
func ReduceSigned32(x int32, p uint32, u uint64) int32 {
	q := int64(int64(x)*int64(u)) >> 32
	r := int32(int64(x) - q*int64(p))
	if r < 0 {
		r += int32(p)
	} else if r >= int32(p) {
		r -= int32(p)
	}
	return r
}
