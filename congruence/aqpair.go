package congruence

import "math/big"

// AQPair is a relation A² ≡ Q (mod kN) with Q partially or fully factored
// over the factor base — the building block the (out-of-scope) matrix
// solver combines into full relations.
type AQPair interface {
	// A is the polynomial value A(x) the relation was built from.
	A() *big.Int
	// SmallFactors is the base-prime part of Q's factorization.
	SmallFactors() []SmallFactor
	// aqPair is unexported so AQPair has exactly the four variants below.
	aqPair()
}

// SmoothPerfect is an AQ-pair whose Q was fully factored over the base
// (Q_rest == 1).
type SmoothPerfect struct {
	a      *big.Int
	smalls []SmallFactor
}

// NewSmoothPerfect builds a SmoothPerfect relation.
func NewSmoothPerfect(a *big.Int, smalls []SmallFactor) SmoothPerfect {
	return SmoothPerfect{a: a, smalls: smalls}
}

func (p SmoothPerfect) A() *big.Int               { return p.a }
func (p SmoothPerfect) SmallFactors() []SmallFactor { return p.smalls }
func (SmoothPerfect) aqPair()                     {}

// Smooth1LargeSquare is an AQ-pair whose residue is p² for a prime p>pMax:
// effectively smooth, since p appears an even number of times overall.
type Smooth1LargeSquare struct {
	a      *big.Int
	smalls []SmallFactor
	P      uint32
}

// NewSmooth1LargeSquare builds a Smooth1LargeSquare relation.
func NewSmooth1LargeSquare(a *big.Int, smalls []SmallFactor, p uint32) Smooth1LargeSquare {
	return Smooth1LargeSquare{a: a, smalls: smalls, P: p}
}

func (p Smooth1LargeSquare) A() *big.Int               { return p.a }
func (p Smooth1LargeSquare) SmallFactors() []SmallFactor { return p.smalls }
func (Smooth1LargeSquare) aqPair()                     {}

// Partial1Large is an AQ-pair whose residue is a single prime p>pMax,
// fitting in 31 bits. It needs a matching partial sharing the same p to
// combine into a full relation.
type Partial1Large struct {
	a      *big.Int
	smalls []SmallFactor
	P      uint32
}

// NewPartial1Large builds a Partial1Large relation.
func NewPartial1Large(a *big.Int, smalls []SmallFactor, p uint32) Partial1Large {
	return Partial1Large{a: a, smalls: smalls, P: p}
}

func (p Partial1Large) A() *big.Int               { return p.a }
func (p Partial1Large) SmallFactors() []SmallFactor { return p.smalls }
func (Partial1Large) aqPair()                     {}

// Partial2Large is an AQ-pair whose residue is two distinct primes, each
// 31 bits or fewer.
type Partial2Large struct {
	a      *big.Int
	smalls []SmallFactor
	P1, P2 uint32
}

// NewPartial2Large builds a Partial2Large relation.
func NewPartial2Large(a *big.Int, smalls []SmallFactor, p1, p2 uint32) Partial2Large {
	return Partial2Large{a: a, smalls: smalls, P1: p1, P2: p2}
}

func (p Partial2Large) A() *big.Int               { return p.a }
func (p Partial2Large) SmallFactors() []SmallFactor { return p.smalls }
func (Partial2Large) aqPair()                     {}
