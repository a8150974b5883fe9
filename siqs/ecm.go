package siqs

import (
	"math/big"

	"github.com/Pascal66/siqs/sampling"
)

// weierstrass is a random elliptic curve y^2 = x^3 + a*x + b (mod n), the
// curve family Lenstra's ECM runs scalar multiplication over. Adapted from
// the teacher's utils/factorization/weierstrass.go: the point-addition
// formulas are unchanged, but addFactor below replaces every ModInverse call
// with an explicit gcd check so a non-invertible denominator is reported as
// the factor found, instead of panicking on a nil inverse.
type weierstrass struct {
	a, b, n *big.Int
}

type point struct {
	x, y *big.Int
}

var infinity = point{x: big.NewInt(0), y: big.NewInt(1)}

// newRandomCurve draws a random curve and a point known to lie on it, in the
// same rejection-sampling style as the teacher's NewRandomWeierstrassCurve:
// keep redrawing until 4a³+27b² is invertible mod n (a non-singular curve).
func newRandomCurve(n *big.Int, src sampling.Source) (weierstrass, point) {
	for {
		a := sampling.RandBelowBig(src, n)
		xg := sampling.RandBelowBig(src, n)
		yg := sampling.RandBelowBig(src, n)

		yg2 := new(big.Int).Mul(yg, yg)
		yg2.Mod(yg2, n)

		xg3 := new(big.Int).Mul(xg, xg)
		xg3.Mod(xg3, n)
		xg3.Add(xg3, a)
		xg3.Mul(xg3, xg)
		xg3.Mod(xg3, n)

		b := new(big.Int).Sub(yg2, xg3)
		b.Mod(b, n)

		fourACube := new(big.Int).Add(a, a)
		fourACube.Mul(fourACube, fourACube)
		fourACube.Mod(fourACube, n)
		fourACube.Mul(fourACube, a)

		twentySevenBSquare := new(big.Int).Mul(b, b)
		twentySevenBSquare.Mod(twentySevenBSquare, n)
		twentySevenBSquare.Mul(twentySevenBSquare, big.NewInt(27))
		twentySevenBSquare.Mod(twentySevenBSquare, n)

		disc := new(big.Int).Add(fourACube, twentySevenBSquare)
		disc.Mod(disc, n)

		if disc.Sign() == 0 {
			continue
		}
		g := new(big.Int).GCD(nil, nil, new(big.Int).Set(n), disc)
		if g.Cmp(big.NewInt(1)) == 0 {
			return weierstrass{a: a, b: b, n: n}, point{x: xg, y: yg}
		}
	}
}

// addFactor adds P and Q on w, returning either the sum or — if some
// denominator along the way shares a non-trivial factor with n — that
// factor directly, which is the whole point of running the group law modulo
// a composite n in the first place.
func (w *weierstrass) addFactor(p, q point) (point, *big.Int) {
	n := w.n

	if p.x.Sign() == 0 && p.y.Cmp(big.NewInt(1)) == 0 {
		return q, nil
	}
	if q.x.Sign() == 0 && q.y.Cmp(big.NewInt(1)) == 0 {
		return p, nil
	}

	var denom *big.Int
	s := new(big.Int)

	if p.x.Cmp(q.x) != 0 {
		denom = new(big.Int).Sub(q.x, p.x)
		denom.Mod(denom, n)
		s.Sub(q.y, p.y)
	} else {
		sum := new(big.Int).Add(p.y, q.y)
		sum.Mod(sum, n)
		if sum.Sign() == 0 {
			return infinity, nil // P + -P == infinity
		}
		denom = new(big.Int).Add(p.y, p.y)
		denom.Mod(denom, n)

		s.Mul(p.x, p.x)
		s.Mod(s, n)
		s.Mul(s, big.NewInt(3))
		s.Add(s, w.a)
	}

	if denom.Sign() == 0 {
		return infinity, nil
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Set(n), denom)
	if g.Cmp(big.NewInt(1)) != 0 {
		return point{}, g
	}

	inv := new(big.Int).ModInverse(denom, n)
	s.Mul(s, inv)
	s.Mod(s, n)

	xr := new(big.Int).Mul(s, s)
	xr.Mod(xr, n)
	xr.Sub(xr, p.x)
	xr.Sub(xr, q.x)
	xr.Mod(xr, n)

	yr := new(big.Int).Sub(p.x, xr)
	yr.Mul(yr, s)
	yr.Mod(yr, n)
	yr.Sub(yr, p.y)
	yr.Mod(yr, n)

	return point{x: xr, y: yr}, nil
}

// scalarMul computes k*P via double-and-add, stopping early with whatever
// factor addFactor surfaces.
func (w *weierstrass) scalarMul(k *big.Int, p point) (point, *big.Int) {
	result := infinity
	addend := p
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			var f *big.Int
			result, f = w.addFactor(result, addend)
			if f != nil {
				return point{}, f
			}
		}
		var f *big.Int
		addend, f = w.addFactor(addend, addend)
		if f != nil {
			return point{}, f
		}
	}
	return result, nil
}

// ecmSmoothnessBound is stage-1's bound B1: the scalar k multiplied into the
// curve is the product of every prime power <= B1, so any curve whose order
// happens to be B1-smooth yields a factor.
const ecmSmoothnessBound = 50_000

// ecmCurveAttempts bounds how many random curves findFactorECM tries before
// giving up and returning nil, leaving the caller (tdiv's Factoriser) to
// drop the candidate rather than loop forever on a pathological residue.
const ecmCurveAttempts = 25

// findFactorECM runs Lenstra's ECM with a fixed stage-1 bound across several
// random curves, returning the first non-trivial factor found.
func findFactorECM(n *big.Int, src sampling.Source) *big.Int {
	k := stageOneScalar(ecmSmoothnessBound)
	for attempt := 0; attempt < ecmCurveAttempts; attempt++ {
		curve, p := newRandomCurve(n, src)
		_, factor := curve.scalarMul(k, p)
		if factor != nil && factor.Cmp(n) != 0 && factor.Sign() != 0 {
			return factor
		}
	}
	return nil
}

// stageOneScalar returns the product of p^floor(log_p(bound)) for every
// prime p <= bound, the standard ECM stage-1 exponent.
func stageOneScalar(bound int) *big.Int {
	sieve := make([]bool, bound+1)
	k := big.NewInt(1)
	for p := 2; p <= bound; p++ {
		if sieve[p] {
			continue
		}
		for m := p * p; m <= bound; m += p {
			sieve[m] = true
		}
		pw := p
		for pw*p <= bound {
			pw *= p
		}
		k.Mul(k, big.NewInt(int64(pw)))
	}
	return k
}
