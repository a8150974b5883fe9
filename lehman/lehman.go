// Package lehman implements Lehman's factoring method with k-values ordered
// into priority buckets (§4.2 of SPEC_FULL.md): multiples of 315/495 are
// tried before 45/105, before 15/63, before 9/21, before plain multiples of
// 3, before everything else, since these multipliers empirically surface a
// factor sooner.
package lehman

import (
	"math"

	"github.com/Pascal66/siqs/smallfactor"
)

// kMax bounds the ordinary multiplier search range; the top bucket (index 0,
// multiples of 315 or 495) is extended to 16*kMax since it is by far the most
// productive.
const kMax = 1 << 20

const bucketCount = 6

// kLimitMultipliers scales kLimit = cbrt(N) per bucket when deciding how much
// of each bucket's array falls inside the current N's search range; entry 0
// also sets bucket 0's extension bound in NewFinder.
var kLimitMultipliers = [bucketCount]float64{16, 1, 1, 1, 1, 1}

// roundUpDouble nudges a ceil() computed via float truncation: adding
// anything below 1 and above the largest representable rounding error forces
// the truncation up without the overhead of math.Ceil.
const roundUpDouble = 0.9999999665

// bucket holds one priority class of k-values together with their
// precomputed sqrt(k) and 1/sqrt(k), so the search loop never calls
// math.Sqrt on k itself.
type bucket struct {
	k        []int32
	sqrtK    []float64
	invSqrtK []float64
}

// Finder runs Lehman's method for a fixed doTDivFirst policy, owning the
// k-value buckets precomputed once at construction (they don't depend on N).
type Finder struct {
	doTDivFirst bool
	buckets     [bucketCount]bucket
}

// NewFinder builds the k-value buckets. If doTDivFirst is true, trial
// division up to cbrt(N) runs before the Lehman search loop, which pays off
// when N is expected to have small factors often.
func NewFinder(doTDivFirst bool) *Finder {
	f := &Finder{doTDivFirst: doTDivFirst}

	add := func(idx int, k int32) {
		b := &f.buckets[idx]
		sq := math.Sqrt(float64(k))
		b.k = append(b.k, k)
		b.sqrtK = append(b.sqrtK, sq)
		b.invSqrtK = append(b.invSqrtK, 1/sq)
	}

	var k int32 = 1
	for ; k <= kMax; k++ {
		switch {
		case k%315 == 0 || k%495 == 0:
			if k%2 == 0 {
				add(1, k)
			} else {
				add(0, k)
			}
		case k%45 == 0 || k%105 == 0:
			if k%2 == 0 {
				add(2, k)
			} else {
				add(1, k)
			}
		case k%15 == 0 || k%63 == 0:
			if k%2 == 0 {
				add(3, k)
			} else {
				add(2, k)
			}
		case k%9 == 0 || k%21 == 0:
			if k%2 == 0 {
				add(4, k)
			} else {
				add(3, k)
			}
		case k%3 == 0:
			if k%2 == 0 {
				add(5, k)
			} else {
				add(4, k)
			}
		default:
			add(5, k)
		}
	}
	kMaxWithMultiplier := int32(kLimitMultipliers[0] * kMax)
	for ; k <= kMaxWithMultiplier; k++ {
		if k%315 == 0 && k%2 == 1 {
			add(0, k)
		}
	}
	return f
}

// FindFactor returns a non-trivial factor of N, or 1 on failure. N must fit
// in 45-63 bits for the search to terminate within the bucket ranges (see
// spec.md's bound on C3's input domain); N==9 is special-cased since gcd
// alone cannot tell 3 apart from a trivial cofactor in that one case.
func (f *Finder) FindFactor(n uint64) uint64 {
	if n == 9 {
		return 3
	}

	cbrt := int32(math.Cbrt(float64(n)))

	if f.doTDivFirst {
		if factor := trialDivide(n, cbrt); factor > 1 {
			return factor
		}
	}

	fourN := n << 2
	sqrt4N := math.Sqrt(float64(fourN))

	kLimit := cbrt
	// kTwoA = kLimit/128: for kTwoA the range for a spans at most 2 values.
	kTwoA := (cbrt + 127) >> 7

	sixthRootTerm := 0.25 * math.Pow(float64(n), 1.0/6.0)

	for i := 0; i < bucketCount; i++ {
		kLimit2 := int32(float64(kLimit) * kLimitMultipliers[i])
		if factor := f.test(n, fourN, sqrt4N, kTwoA, kLimit2, &f.buckets[i], sixthRootTerm); factor > 1 {
			return factor
		}
	}

	if !f.doTDivFirst {
		if factor := trialDivide(n, cbrt); factor > 1 {
			return factor
		}
	}

	// sqrt(4kN) landing exactly on an integer can make the fast
	// aStart computation above miss by one; recheck a-1 directly.
	for i := 0; i < bucketCount; i++ {
		if factor := f.correctionLoop(n, fourN, sqrt4N, kLimit, &f.buckets[i]); factor > 1 {
			return factor
		}
	}

	return 1
}

func (f *Finder) test(n, fourN uint64, sqrt4N float64, kTwoA, kLimit int32, b *bucket, sixthRootTerm float64) uint64 {
	i := 0

	// small k: both +a and -a residue classes of kN+1 are explored to widen
	// the step between candidate a-values.
	for i < len(b.k) && b.k[i] < kTwoA {
		k := b.k[i]
		sqrt4kN := sqrt4N * b.sqrtK[i]
		aStart := int64(sqrt4kN + roundUpDouble)
		aLimit := int64(sqrt4kN + sixthRootTerm*b.invSqrtK[i])

		if k%2 == 0 {
			a := aLimit | 1
			fourkN := int64(k) * int64(fourN)
			for ; a >= aStart; a -= 2 {
				if g, ok := tryA(a, fourkN, n); ok {
					return g
				}
			}
		} else {
			kN := int64(k) * int64(n)
			fourkN := kN << 2
			kNp1 := kN + 1
			switch {
			case kNp1&3 == 0:
				a := aLimit + ((kNp1 - aLimit) & 7)
				for ; a >= aStart; a -= 8 {
					if g, ok := tryA(a, fourkN, n); ok {
						return g
					}
				}
			case kNp1&7 == 6:
				a := aLimit + ((kNp1 - aLimit) & 31)
				for ; a >= aStart; a -= 32 {
					if g, ok := tryA(a, fourkN, n); ok {
						return g
					}
				}
				a = aLimit + ((-kNp1 - aLimit) & 31)
				for ; a >= aStart; a -= 32 {
					if g, ok := tryA(a, fourkN, n); ok {
						return g
					}
				}
			default: // kN+1 == 2 (mod 8)
				a := aLimit + ((kNp1 - aLimit) & 15)
				for ; a >= aStart; a -= 16 {
					if g, ok := tryA(a, fourkN, n); ok {
						return g
					}
				}
				a = aLimit + ((-kNp1 - aLimit) & 15)
				for ; a >= aStart; a -= 16 {
					if g, ok := tryA(a, fourkN, n); ok {
						return g
					}
				}
			}
		}
		i++
	}

	// big k: the window for a has shrunk to essentially one candidate, so
	// only the nearest residue is tried.
	for i < len(b.k) && b.k[i] < kLimit {
		k := b.k[i]
		kN := int64(k) * int64(n)
		a := int64(sqrt4N*b.sqrtK[i] + roundUpDouble)

		if k%2 == 0 {
			a |= 1
		} else {
			kNp1 := kN + 1
			switch {
			case kNp1&3 == 0:
				a += (kNp1 - a) & 7
			case kNp1&7 == 6:
				adjust1 := (kNp1 - a) & 31
				adjust2 := (-kNp1 - a) & 31
				if adjust1 < adjust2 {
					a += adjust1
				} else {
					a += adjust2
				}
			default:
				adjust1 := (kNp1 - a) & 15
				adjust2 := (-kNp1 - a) & 15
				if adjust1 < adjust2 {
					a += adjust1
				} else {
					a += adjust2
				}
			}
		}

		if g, ok := tryA(a, kN<<2, n); ok {
			return g
		}
		i++
	}

	return 1
}

func (f *Finder) correctionLoop(n, fourN uint64, sqrt4N float64, kLimit int32, b *bucket) uint64 {
	for i := 0; i < len(b.k) && b.k[i] < kLimit; i++ {
		a := int64(sqrt4N*b.sqrtK[i]+roundUpDouble) - 1
		test := a*a - int64(b.k[i])*int64(fourN)
		if test < 0 {
			continue
		}
		bb := isqrt64(test)
		if bb*bb == test {
			if g := gcdInt64(a+bb, int64(n)); g > 1 {
				return uint64(g)
			}
		}
	}
	return 1
}

// tryA checks whether a² - fourkN is a perfect square, returning gcd(a+b, n)
// on success.
func tryA(a, fourkN int64, n uint64) (uint64, bool) {
	test := a*a - fourkN
	if test < 0 {
		return 0, false
	}
	b := isqrt64(test)
	if b*b != test {
		return 0, false
	}
	g := gcdInt64(a+b, int64(n))
	if g > 1 {
		return uint64(g), true
	}
	return 0, false
}

func isqrt64(m int64) int64 {
	if m <= 0 {
		return 0
	}
	r := int64(math.Sqrt(float64(m)))
	for r*r > m {
		r--
	}
	for (r+1)*(r+1) <= m {
		r++
	}
	return r
}

func gcdInt64(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// trialDivide checks the small-prime ladder up to limit, delegating to
// smallfactor's sieve so the two packages share one prime table, then tries
// every odd divisor above the ladder (which ends below 2000) up to limit.
func trialDivide(n uint64, limit int32) uint64 {
	if limit < 2 {
		return 1
	}
	if factor := smallfactor.TrialDivideUpTo(n, uint64(limit)); factor > 1 {
		return factor
	}
	for d := uint64(2001); d <= uint64(limit); d += 2 {
		if n%d == 0 {
			return d
		}
	}
	return 1
}
