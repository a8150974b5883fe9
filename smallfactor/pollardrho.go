package smallfactor

import "github.com/Pascal66/siqs/bigint"

// pollardRhoCycleLimit bounds the batched-gcd block size in Brent's
// improvement to Pollard's rho: the classic choice of 128 amortizes one gcd
// over that many modular multiplications.
const pollardRhoCycleLimit = 128

// brentMontgomery runs Brent's cycle-detection variant of Pollard's rho with
// the inner x_{i+1} = x_i^2+c (mod n) recurrence evaluated in Montgomery
// form, so every step is one Montgomery multiply instead of one division.
// Montgomery form is a ring isomorphism under +/*, and since n is odd here
// R=2^64 is invertible mod n, so gcd(R*d mod n, n) and gcd(d mod n, n) share
// the same prime factors for any d — the cycle can be detected without ever
// leaving Montgomery form until the final gcd.
//
// This is the arithmetic core shared by PollardRhoBrentR64Mul63 and
// PollardRhoBrentMontgomery64; see DESIGN.md for why Go's math/bits.Mul64
// collapses the Java source's two separate 63-bit/64-bit multiplication
// paths into one implementation here.
func brentMontgomery(n, c uint64) uint64 {
	if n%2 == 0 {
		return 2
	}
	if n < 3 {
		return 1
	}

	mont := bigint.NewMontgomeryParams(n)
	cM := mont.MForm(c % n)

	y := mont.MForm(2 % n)
	r, q := uint64(1), mont.MForm(1)
	var x, ys uint64
	g := uint64(1)

	for g == 1 {
		x = y
		for i := uint64(0); i < r; i++ {
			y = montStep(mont, y, cM, n)
		}

		k := uint64(0)
		for k < r && g == 1 {
			ys = y
			lim := bigint.Min(uint64(pollardRhoCycleLimit), r-k)
			for i := uint64(0); i < lim; i++ {
				y = montStep(mont, y, cM, n)
				q = mont.Mul(q, montAbsDiff(x, y, n))
			}
			g = gcdUint64(q, n)
			k += lim
		}
		r *= 2
	}

	if g == n {
		// The batched gcd collapsed the whole block to n; back off to a
		// step-by-step search over the same block to recover the factor.
		for {
			ys = montStep(mont, ys, cM, n)
			g = gcdUint64(montAbsDiff(x, ys, n), n)
			if g > 1 {
				break
			}
		}
	}

	if g == n || g == 0 {
		return 1
	}
	return g
}

func montStep(mont bigint.MontgomeryParams, y, cM, n uint64) uint64 {
	s := mont.Mul(y, y) + cM
	if s >= n {
		s -= n
	}
	return s
}

func montAbsDiff(x, y, n uint64) uint64 {
	if x > y {
		d := x - y
		if d == 0 {
			return n
		}
		return d
	}
	d := y - x
	if d == 0 {
		return n
	}
	return d
}

// pollardRhoEngine wraps brentMontgomery with a handful of restarts over c
// (the starting value stays 2), since Brent's rho can fail for an unlucky
// choice of c.
type pollardRhoEngine struct{}

// restartConstants are the additive constants tried in sequence when a
// cycle collapses without yielding a proper factor.
var restartConstants = []uint64{1, 3, 5, 7, 11, 13, 17, 19}

func (pollardRhoEngine) FindFactor(n uint64) uint64 {
	for _, c := range restartConstants {
		if f := brentMontgomery(n, c); f > 1 && f < n {
			return f
		}
	}
	return 1
}

// PollardRhoBrentR64Mul63 is the Engine the classifier dispatches to for
// Q_rest in [50, 57) bits: Pollard-rho(Brent) with Montgomery multiplication
// over a radix R=2^64, named for the 63-bit-safe multiply path the moduli in
// this range allow.
var PollardRhoBrentR64Mul63 Engine = pollardRhoEngine{}

// PollardRhoBrentMontgomery64 is the Engine the classifier dispatches to for
// Q_rest in [57, 63) bits, where the modular multiply needs the full 64-bit
// Montgomery reduction.
var PollardRhoBrentMontgomery64 Engine = pollardRhoEngine{}
