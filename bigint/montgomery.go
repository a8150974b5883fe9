package bigint

import (
	"math/big"
	"math/bits"
)

// MontgomeryParams holds the constants needed to multiply residues modulo an
// odd q in Montgomery form with a radix of 2^64: qInv = q^-1 mod 2^64 and
// r2 = 2^128 mod q (the constant used to lift a plain residue into
// Montgomery form with a single MRed call).
//
// This is the same construction the classifier's polynomial coefficients
// would use under NTT multiplication (see the teacher's ring package); here
// it multiplies residues inside a Pollard-rho cycle instead.
type MontgomeryParams struct {
	Q    uint64
	QInv uint64
	r2   uint64
}

// NewMontgomeryParams derives the Montgomery constants for an odd modulus q.
func NewMontgomeryParams(q uint64) MontgomeryParams {
	qInv := montgomeryQInv(q)
	bigQ := new(big.Int).SetUint64(q)
	r2 := new(big.Int).Lsh(big.NewInt(1), 128)
	r2.Mod(r2, bigQ)
	return MontgomeryParams{Q: q, QInv: qInv, r2: r2.Uint64()}
}

// montgomeryQInv computes the constant qInv used by MRed, by repeated
// squaring in the (2^64, *) monoid of odd residues: 63 rounds of
// qInv *= x; x *= x starting from x=q accumulate q^(2^63-1), the 2-adic
// inverse of q mod 2^64.
func montgomeryQInv(q uint64) (qInv uint64) {
	x := q
	qInv = 1
	for i := 0; i < 63; i++ {
		qInv *= x
		x *= x
	}
	return
}

// MForm returns a*2^64 mod q, lifting a plain residue into Montgomery form.
func (p MontgomeryParams) MForm(a uint64) uint64 {
	return MRed(a, p.r2, p.Q, p.QInv)
}

// InvMForm returns a*2^-64 mod q, the inverse of MForm.
func (p MontgomeryParams) InvMForm(a uint64) uint64 {
	r, _ := bits.Mul64(a*p.QInv, p.Q)
	r = p.Q - r
	if r >= p.Q {
		r -= p.Q
	}
	return r
}

// Mul multiplies two Montgomery-form residues, returning a Montgomery-form
// result: MRed(x,y) = x*y*2^-64, which is exactly a*b in Montgomery form
// when both operands already carry one factor of 2^64.
func (p MontgomeryParams) Mul(x, y uint64) uint64 {
	return MRed(x, y, p.Q, p.QInv)
}

// MRed computes x*y*2^-64 mod q, a 64x64-bit multiplication with Montgomery
// reduction over a radix of 2^64.
func MRed(x, y, q, qInv uint64) (r uint64) {
	ahi, alo := bits.Mul64(x, y)
	R := alo * qInv
	H, _ := bits.Mul64(R, q)
	r = ahi - H + q
	if r >= q {
		r -= q
	}
	return
}

// BarrettParams64 holds the 128-bit-radix Barrett reduction constant for a
// 64-bit modulus q, used to fold a double-width product back to [0,q) without
// a hardware 128-bit divide.
type BarrettParams64 struct {
	Q   uint64
	Mhi uint64
	Mlo uint64
}

// NewBarrettParams64 computes floor(2^128/q) split into high/low 64-bit
// words, following the same big.Int precomputation the teacher's own
// BRedParams performs once per modulus.
func NewBarrettParams64(q uint64) BarrettParams64 {
	bigR := new(big.Int).Lsh(big.NewInt(1), 128)
	bigQ := new(big.Int).SetUint64(q)
	bigR.Div(bigR, bigQ)

	mhi := new(big.Int).Rsh(bigR, 64)
	return BarrettParams64{Q: q, Mhi: mhi.Uint64(), Mlo: bigR.Uint64()}
}

// Reduce folds the double-width product x*y down to [0,q).
func (b BarrettParams64) Reduce(x, y uint64) (r uint64) {
	var s0, s1, mhi, mlo, lhi, carry uint64

	ahi, alo := bits.Mul64(x, y)

	lhi, _ = bits.Mul64(alo, b.Mlo)
	mhi, mlo = bits.Mul64(alo, b.Mhi)
	s0, carry = bits.Add64(mlo, lhi, 0)
	s1 = mhi + carry

	mhi, mlo = bits.Mul64(ahi, b.Mlo)
	_, carry = bits.Add64(mlo, s0, 0)
	lhi = mhi + carry

	s0 = ahi*b.Mhi + s1 + lhi

	r = alo - s0*b.Q
	if r >= b.Q {
		r -= b.Q
	}
	return
}
