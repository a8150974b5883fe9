package bigint

import "golang.org/x/exp/constraints"

// Min returns the smaller of a and b, shared by every batched-gcd block-size
// clamp in this module (Brent's rho over uint64 and over *big.Int alike):
// "lim := blockSize; if remaining < lim { lim = remaining }" written once
// instead of once per integer type.
func Min[T constraints.Integer](a, b T) T {
	if a < b {
		return a
	}
	return b
}
