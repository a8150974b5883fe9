// Package bigint provides the arbitrary-precision integer helpers shared by
// the classifier, the Lehman search and the generator: a thin wrapper around
// math/big for the Q-residue lifecycle, plus the fixed-radix Montgomery and
// Barrett reduction routines the 63-bit paths need.
package bigint

import (
	"crypto/rand"
	"math/big"
)

// Int is a mutable arbitrary-precision integer, matching the lifecycle of a
// Q-residue: reset once per sieve candidate, then divided by a sequence of
// small factors. Each DivSmallExact call allocates its intermediate values.
type Int struct {
	Value big.Int
}

// NewInt creates a new Int with the given int64 value.
func NewInt(v int64) *Int {
	i := new(Int)
	i.Value.SetInt64(v)
	return i
}

// NewUint creates a new Int with the given uint64 value.
func NewUint(v uint64) *Int {
	i := new(Int)
	i.Value.SetUint64(v)
	return i
}

// NewFromBig returns a new Int holding a copy of v's value.
func NewFromBig(v *big.Int) *Int {
	i := new(Int)
	i.Value.Set(v)
	return i
}

// Copy returns a new Int holding a copy of v's value.
func Copy(v *Int) *Int {
	i := new(Int)
	i.Value.Set(&v.Value)
	return i
}

// RandBelow returns a uniform random Int in [0, max).
func RandBelow(max *Int) *Int {
	n, err := rand.Int(rand.Reader, &max.Value)
	if err != nil {
		panic("bigint: crypto/rand failed")
	}
	i := new(Int)
	i.Value = *n
	return i
}

func (i *Int) String() string { return i.Value.String() }

// Set sets i to the value of a.
func (i *Int) Set(a *Int) *Int {
	i.Value.Set(&a.Value)
	return i
}

// SetBig sets i to the value of a standard library big.Int.
func (i *Int) SetBig(a *big.Int) *Int {
	i.Value.Set(a)
	return i
}

// Big returns the underlying *big.Int, shared (not copied) with i.
func (i *Int) Big() *big.Int { return &i.Value }

// Sign extracts the sign of i: if negative, records it in the caller's
// small-factor accumulator is the caller's job; Sign just reports it and
// Abs below performs the in-place negation used by the classifier's sign
// extraction step.
func (i *Int) Sign() int { return i.Value.Sign() }

// Abs sets i to |a|.
func (i *Int) Abs(a *Int) *Int {
	i.Value.Abs(&a.Value)
	return i
}

// TrailingZeroBits returns v_2(i), the 2-adic valuation of i (0 for i==0).
func (i *Int) TrailingZeroBits() uint {
	return uint(i.Value.TrailingZeroBits())
}

// Rsh sets i to a >> n.
func (i *Int) Rsh(a *Int, n uint) *Int {
	i.Value.Rsh(&a.Value, n)
	return i
}

// Lsh sets i to a << n.
func (i *Int) Lsh(a *Int, n uint) *Int {
	i.Value.Lsh(&a.Value, n)
	return i
}

// Mul sets i to a*b.
func (i *Int) Mul(a, b *Int) *Int {
	i.Value.Mul(&a.Value, &b.Value)
	return i
}

// Sub sets i to a-b.
func (i *Int) Sub(a, b *Int) *Int {
	i.Value.Sub(&a.Value, &b.Value)
	return i
}

// Add sets i to a+b.
func (i *Int) Add(a, b *Int) *Int {
	i.Value.Add(&a.Value, &b.Value)
	return i
}

// Mod sets i to a mod m (always non-negative for positive m).
func (i *Int) Mod(a, m *Int) *Int {
	i.Value.Mod(&a.Value, &m.Value)
	return i
}

// IsOne reports whether i == 1.
func (i *Int) IsOne() bool {
	return i.Value.Cmp(big.NewInt(1)) == 0
}

// BitLen returns the bit length of |i|.
func (i *Int) BitLen() int { return i.Value.BitLen() }

// Uint64 returns the low 64 bits of i.
func (i *Int) Uint64() uint64 { return i.Value.Uint64() }

// FitsInt32 reports whether i fits in a signed 32-bit integer (the "large
// factor" width limit every AQ-pair payload must respect).
func (i *Int) FitsInt32() bool {
	return i.Value.BitLen() <= 31
}

// DivSmallExact attempts to divide i by the small prime power p, reporting
// whether the division was exact; on success quotient receives floor(i/p)
// and i is left with its previous value (the caller swaps buffers, matching
// the classifier's buffer-swap divide-in-place scratch discipline).
func (i *Int) DivSmallExact(p uint32, quotient *Int) bool {
	pBig := new(big.Int).SetUint64(uint64(p))
	q, r := new(big.Int).QuoRem(&i.Value, pBig, new(big.Int))
	if r.Sign() != 0 {
		return false
	}
	quotient.Value.Set(q)
	return true
}
