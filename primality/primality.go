// Package primality implements the probable-prime oracle (C1): a named
// collaborator the classifier and the generator both depend on but never
// implement themselves, per spec.md §1.
package primality

import (
	"math/big"

	"github.com/Pascal66/siqs/bigint"
)

// Oracle answers "is this integer prime?" for the classifier and the
// generator. It is satisfied by *BPSWOracle; callers that already hold a
// *big.Int can also call IsProbablePrime directly.
type Oracle interface {
	IsProbablePrime(n *big.Int) bool
}

// BPSWOracle is the default Oracle: math/big's ProbablyPrime(0), which runs
// a Baillie-PSW-equivalent test (Miller-Rabin base 2 + a strong Lucas test).
// No third-party BPSW implementation in the example pack improves on this —
// see DESIGN.md for why this one concern is deliberately left on the
// standard library.
type BPSWOracle struct{}

// IsProbablePrime reports whether n passes the BPSW-equivalent test.
func (BPSWOracle) IsProbablePrime(n *big.Int) bool {
	return bigint.IsPrime(n)
}

// IsProbablePrimeUint64 is the 63-bit-domain convenience form of the oracle
// for uint64 callers; it converts n to a *big.Int internally.
func IsProbablePrimeUint64(n uint64) bool {
	return bigint.IsPrimeUint64(n)
}
