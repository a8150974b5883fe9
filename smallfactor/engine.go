// Package smallfactor implements C2, the small-factor engines the classifier
// dispatches Q_rest to once it is known composite and too large for trial
// division: Hart's one-line factorization racing trial division, and two
// Pollard-rho(Brent)-with-Montgomery-multiplication variants.
//
// spec.md §1 lists these among the out-of-scope "surrounding subsystems",
// but §4.1 step 5 names their exact contracts and bit-range dispatch, so
// SPEC_FULL.md promotes them to specified components; see DESIGN.md.
package smallfactor

// Engine finds a single non-trivial factor of a composite, odd, ≤63-bit n.
// It returns 1 on failure, never 0 or n itself.
type Engine interface {
	FindFactor(n uint64) uint64
}

// gcdUint64 is the Euclidean GCD used throughout this package; both operands
// are assumed non-zero.
func gcdUint64(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// TrialDivideUpTo checks n against firstPrimes up to and including limit,
// returning the first prime p < n that divides n, or 1 on failure (n itself
// is never returned). Used by lehman's trial-division pass, so it walks the
// same sieved prime ladder as the Hart race.
func TrialDivideUpTo(n, limit uint64) uint64 {
	for _, p := range firstPrimes {
		if p > limit || p >= n {
			break
		}
		if n%p == 0 {
			return p
		}
	}
	return 1
}
