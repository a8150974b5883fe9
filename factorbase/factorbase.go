// Package factorbase defines the factor-base view (§3 of SPEC_FULL.md): the
// ordered sequence of small primes selected for the current k·N, exposed to
// the classifier as parallel slices the way the teacher's ring.Ring exposes
// its RNS moduli as parallel slices rather than a slice of structs.
package factorbase

import (
	"math/big"

	"github.com/Pascal66/siqs/bigint"
)

// Base is the factor-base view for one polynomial, built by New from the
// driver's entries. SolveSolutions rewrites X1/X2 for each new polynomial;
// the classifier only reads the slices. Index 0 is always the prime 2.
type Base struct {
	Primes     []int64  // the prime itself
	PArray     []uint32 // same prime, or a small power of it, used in pass 2
	Exponents  []int    // exponent contribution per hit
	PInv       []uint64 // floor(2^32/p), the pass-1 Barrett reciprocal
	X1, X2     []int32  // solutions of Q(x) == 0 (mod p) for the current polynomial
	Unsieved   []int    // indices excluded from sieving but still trial-divided
	SqrtModP   []int64  // a square root of kN mod p, fixed for the life of kN
}

// Len returns the number of entries in the base.
func (b *Base) Len() int { return len(b.Primes) }

// PMax returns the largest prime in the base (primes are stored ascending).
func (b *Base) PMax() int64 {
	return b.Primes[len(b.Primes)-1]
}

// PMaxSquare returns pMax² as a 63-bit integer, the threshold below which a
// residue is provably prime without consulting the probable-prime oracle.
func (b *Base) PMaxSquare() int64 {
	p := b.PMax()
	return p * p
}

// Entry is one factor-base row, used by New below and by tests that want
// to construct a Base from a plain list.
type Entry struct {
	Prime    int64
	Power    uint32
	Exponent int
	X1, X2   int32
}

// New assembles a Base from precomputed entries, deriving the Barrett
// reciprocal for each power column.
func New(entries []Entry, unsieved []int) *Base {
	n := len(entries)
	b := &Base{
		Primes:    make([]int64, n),
		PArray:    make([]uint32, n),
		Exponents: make([]int, n),
		PInv:      make([]uint64, n),
		X1:        make([]int32, n),
		X2:        make([]int32, n),
		Unsieved:  unsieved,
	}
	for i, e := range entries {
		b.Primes[i] = e.Prime
		b.PArray[i] = e.Power
		b.Exponents[i] = e.Exponent
		b.PInv[i] = bigint.BarrettParam32(e.Power)
		b.X1[i] = e.X1
		b.X2[i] = e.X2
	}
	return b
}

// SolveSolutions fills in X1/X2 for every base entry given the current
// polynomial coefficients da, b over kN: the two roots of
// (da*x+b)^2 == kN (mod p), i.e. x == (±sqrt(kN mod p) - b) * (da)^-1 (mod p).
// base.SqrtModP must already hold a square root of kN mod p per entry (for
// example from Tonelli-Shanks, see siqs.BuildPrimeBase).
func (base *Base) SolveSolutions(da, b *big.Int) {
	for i := range base.Primes {
		p := big.NewInt(base.Primes[i])
		if base.Primes[i] == 2 {
			// p=2 is handled specially by the classifier (power-of-two
			// reduction), so its solution slots are unused.
			continue
		}
		daInv := new(big.Int).ModInverse(new(big.Int).Mod(da, p), p)
		if daInv == nil {
			continue
		}
		bModP := new(big.Int).Mod(b, p)
		root := new(big.Int).SetInt64(base.SqrtModP[i])

		x1 := new(big.Int).Sub(root, bModP)
		x1.Mul(x1, daInv)
		x1.Mod(x1, p)

		x2 := new(big.Int).Neg(root)
		x2.Sub(x2, bModP)
		x2.Mul(x2, daInv)
		x2.Mod(x2, p)

		base.X1[i] = int32(x1.Int64())
		base.X2[i] = int32(x2.Int64())
	}
}
