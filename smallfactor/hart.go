package smallfactor

import "math"

// firstPrimes is the small-prime trial-division ladder that races Hart's
// search: whichever of the two finds a factor first wins, which is why the
// classifier's dispatch threshold for this engine (<50 bits, per spec.md
// §4.1 step 5) is named "the Hart race".
var firstPrimes = sieveFirstPrimes(2000)

func sieveFirstPrimes(limit int) []uint64 {
	composite := make([]bool, limit+1)
	var primes []uint64
	for p := 2; p <= limit; p++ {
		if composite[p] {
			continue
		}
		primes = append(primes, uint64(p))
		for m := p * p; m <= limit; m += p {
			composite[m] = true
		}
	}
	return primes
}

// hartEngine implements Engine via Hart's one-line factorization method.
type hartEngine struct{}

// Hart is the Engine the classifier dispatches to for Q_rest below 50 bits.
var Hart Engine = hartEngine{}

// FindFactor implements Engine.
func (hartEngine) FindFactor(n uint64) uint64 {
	if n%2 == 0 {
		return 2
	}
	if n < 2 {
		return 1
	}

	const maxK = 1 << 20
	for k := uint64(1); k <= maxK; k++ {
		// Trial division race: every step also tries the k-th small prime.
		if int(k) <= len(firstPrimes) {
			if p := firstPrimes[k-1]; n%p == 0 {
				return p
			}
		}

		kn := k * n
		s := uint64(math.Ceil(math.Sqrt(float64(kn))))
		m := s*s - kn
		r := isqrt(m)
		if r*r == m {
			if f := gcdUint64(s-r, n); f > 1 && f < n {
				return f
			}
		}
	}
	return 1
}

// isqrt returns floor(sqrt(m)), correcting the float64 approximation's
// rounding error with at most one step in either direction.
func isqrt(m uint64) uint64 {
	if m == 0 {
		return 0
	}
	r := uint64(math.Sqrt(float64(m)))
	for r*r > m {
		r--
	}
	for (r+1)*(r+1) <= m {
		r++
	}
	return r
}
