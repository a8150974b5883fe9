package bigint

import "math/big"

// IsPrime reports whether n is prime, using the standard library's
// Baillie-PSW-equivalent test (math/big.Int.ProbablyPrime(0) runs a
// Miller-Rabin base-2 round followed by a Lucas test, giving a result that
// is known-correct below 2^64 and overwhelmingly likely correct above it —
// the same guarantee the probable-prime oracle of spec.md names).
func IsPrime(n *big.Int) bool {
	return n.ProbablyPrime(0)
}

// IsPrimeUint64 is IsPrime specialized to the 63-bit domain the Lehman
// search and the small-factor engines operate in.
func IsPrimeUint64(n uint64) bool {
	return new(big.Int).SetUint64(n).ProbablyPrime(0)
}

// NextProbablePrime returns the smallest probable prime strictly greater
// than n, advancing by 2 after an initial parity fixup (n+2 if n is odd,
// else n+1; 2 for any n < 2), mirroring the teacher's NextNTTPrime/PreviousNTTPrime walk
// over a stride, specialized here to a stride of 2 instead of NthRoot.
func NextProbablePrime(n *big.Int) *big.Int {
	cand := new(big.Int).Set(n)
	two := big.NewInt(2)

	if cand.Cmp(two) < 0 {
		return new(big.Int).Set(two)
	}

	// Move to the next odd candidate strictly greater than n.
	if cand.Bit(0) == 0 {
		cand.Add(cand, big.NewInt(1))
	} else {
		cand.Add(cand, two)
	}

	for !IsPrime(cand) {
		cand.Add(cand, two)
	}
	return cand
}
