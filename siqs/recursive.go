// Package siqs wires the rest of this module into a minimal
// self-initializing quadratic sieve driver (§9 of SPEC_FULL.md), and
// supplies the one implementation tdiv.Factoriser needs to resolve a
// Q-residue too large for the bundled small-factor engines: Pollard-rho
// over *big.Int, falling back to Lenstra's ECM.
//
// This is deliberately not a second, nested copy of the sieve: spec.md's
// Non-goals place polynomial generation, the sieve scanner and the matrix
// solver out of scope, so the reference implementation's recursive
// "qsInternal" call is replaced here by the two general-purpose factoring
// methods the teacher repo already had a toehold in — Pollard-rho and the
// Weierstrass-curve ECM — per the interface-injection design that breaks
// the tdiv/siqs import cycle (see DESIGN.md).
package siqs

import (
	"errors"
	"math/big"

	"github.com/Pascal66/siqs/bigint"
	"github.com/Pascal66/siqs/sampling"
)

// ErrNoFactorFound is returned when neither Pollard-rho nor the bounded
// number of ECM curves surfaced a non-trivial factor of n.
var ErrNoFactorFound = errors.New("siqs: no factor found")

// RecursiveFactoriser implements tdiv.Factoriser for residues at or above
// 63 bits: it is the one place in this module where factoring a >63-bit
// integer is attempted directly, rather than delegating to the 63-bit
// engines in package smallfactor.
type RecursiveFactoriser struct {
	src sampling.Source
}

// NewRecursiveFactoriser builds a RecursiveFactoriser drawing curve
// parameters from the process-scope CSPRNG.
func NewRecursiveFactoriser() *RecursiveFactoriser {
	return &RecursiveFactoriser{src: sampling.NewThreadSafePRNG()}
}

// FindFactor implements tdiv.Factoriser: it returns a non-trivial factor of
// n, or ErrNoFactorFound if neither Pollard-rho nor a bounded number of ECM
// curves found one.
func (r *RecursiveFactoriser) FindFactor(n *big.Int) (*big.Int, error) {
	if n.BitLen() <= 1 {
		return nil, ErrNoFactorFound
	}
	if bigint.IsPrime(n) {
		return nil, ErrNoFactorFound
	}
	if f := pollardRhoBig(n, r.src); f != nil {
		return f, nil
	}
	if f := findFactorECM(n, r.src); f != nil {
		return f, nil
	}
	return nil, ErrNoFactorFound
}

// pollardRhoBigConstants restarts Brent's rho with a fresh constant when a
// cycle collapses to n itself without yielding a proper factor.
var pollardRhoBigConstants = []int64{1, 3, 5, 7, 11, 13}

// pollardRhoBig runs Brent's improvement to Pollard's rho directly over
// *big.Int arithmetic (no Montgomery form: n here may need more than 64
// bits), mirroring smallfactor.brentMontgomery's control flow without its
// fixed-radix reduction.
func pollardRhoBig(n *big.Int, src sampling.Source) *big.Int {
	if n.Bit(0) == 0 {
		return big.NewInt(2)
	}

	for _, c64 := range pollardRhoBigConstants {
		if f := brentRhoBig(n, big.NewInt(c64)); f != nil {
			return f
		}
	}
	return nil
}

func brentRhoBig(n, c *big.Int) *big.Int {
	const blockSize = 128

	one := big.NewInt(1)
	x := big.NewInt(2)
	y := big.NewInt(2)
	q := big.NewInt(1)
	g := big.NewInt(1)
	r := int64(1)

	step := func(v *big.Int) *big.Int {
		t := new(big.Int).Mul(v, v)
		t.Add(t, c)
		t.Mod(t, n)
		return t
	}

	var ys *big.Int
	for g.Cmp(one) == 0 {
		x.Set(y)
		for i := int64(0); i < r; i++ {
			y = step(y)
		}
		k := int64(0)
		for k < r && g.Cmp(one) == 0 {
			ys = new(big.Int).Set(y)
			lim := bigint.Min(int64(blockSize), r-k)
			for i := int64(0); i < lim; i++ {
				y = step(y)
				diff := new(big.Int).Sub(x, y)
				diff.Abs(diff)
				if diff.Sign() == 0 {
					diff.Set(n)
				}
				q.Mul(q, diff)
				q.Mod(q, n)
			}
			g = new(big.Int).GCD(nil, nil, new(big.Int).Set(n), new(big.Int).Set(q))
			k += lim
		}
		r *= 2
		if r > int64(1)<<40 {
			// no cycle found within a generous bound; let the caller retry
			// with a different constant instead of spinning forever.
			return nil
		}
	}

	if g.Cmp(n) == 0 {
		for {
			ys = step(ys)
			diff := new(big.Int).Sub(x, ys)
			diff.Abs(diff)
			if diff.Sign() == 0 {
				diff.Set(n)
			}
			g = new(big.Int).GCD(nil, nil, new(big.Int).Set(n), diff)
			if g.Cmp(one) > 0 {
				break
			}
		}
	}

	if g.Cmp(n) == 0 || g.Sign() == 0 {
		return nil
	}
	return g
}
