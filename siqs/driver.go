package siqs

import (
	"math/big"

	"github.com/Pascal66/siqs/bigint"
	"github.com/Pascal66/siqs/congruence"
	"github.com/Pascal66/siqs/factorbase"
	"github.com/Pascal66/siqs/lehman"
	"github.com/Pascal66/siqs/primality"
	"github.com/Pascal66/siqs/tdiv"
)

// multiplier is a fixed stand-in for the Knuth-Schroeppel multiplier
// chooser, out of scope per spec.md §1: k=1 always gives a correct, if not
// optimally smooth, choice of kN.
const multiplier = 1

// Driver is a minimal self-initializing polynomial driver: it builds one
// factor base for kN, then lets the caller push one polynomial's worth of
// sieve candidates through the classifier per call to CollectRelations.
// It exists to exercise factorbase, tdiv and lehman end to end; it performs
// no sieving of its own and no matrix step.
type Driver struct {
	n  *big.Int
	kN *big.Int
	fb *factorbase.Base
	cl *tdiv.Classifier
}

// NewDriver builds the factor base for n (at the fixed multiplier above)
// with baseSize primes, and a Classifier configured with profile.
func NewDriver(n *big.Int, baseSize int, profile tdiv.Profile) (*Driver, error) {
	kN := new(big.Int).Mul(big.NewInt(multiplier), n)

	fb, err := BuildPrimeBase(kN, baseSize)
	if err != nil {
		return nil, err
	}

	lehmanFinder := lehman.NewFinder(false)
	factoriser := NewRecursiveFactoriser()
	cl := tdiv.NewClassifier(profile, primality.BPSWOracle{}, lehmanFinder, factoriser)
	cl.InitialiseForN(kN)

	return &Driver{n: n, kN: kN, fb: fb, cl: cl}, nil
}

// CollectRelations sets the driver's single polynomial to A(x) = da*x + b
// and classifies every x in xs, returning whatever AQ-pairs result.
func (d *Driver) CollectRelations(da, b *big.Int, xs []int32) []congruence.AQPair {
	d.fb.SolveSolutions(da, b)
	d.cl.InitialiseForA(da, b, d.fb)
	return d.cl.TestList(xs)
}

// Report returns the classifier's running statistics.
func (d *Driver) Report() tdiv.Report {
	return d.cl.Report()
}

// BuildPrimeBase collects the first size odd primes for which kN is a
// quadratic residue (plus a synthetic entry for 2), walking odd candidates
// with a probable-prime test rather than a sieve, and computing each prime's
// Tonelli-Shanks square root of kN so X1/X2 can be derived once a
// polynomial's da, b are known. Primes for which kN is a non-residue are
// skipped, matching the standard SIQS factor-base selection criterion.
func BuildPrimeBase(kN *big.Int, size int) (*factorbase.Base, error) {
	entries := make([]factorbase.Entry, 0, size+1)
	entries = append(entries, factorbase.Entry{Prime: 2, Power: 2, Exponent: 1})

	sqrtModP := make([]int64, 1, size+1)
	sqrtModP[0] = 0

	p := int64(1)
	for len(entries) < size+1 {
		p = nextOddPrime(p)
		pBig := big.NewInt(p)
		kNModP := new(big.Int).Mod(kN, pBig)
		if kNModP.Sign() == 0 {
			continue
		}
		if big.Jacobi(kNModP, pBig) != 1 {
			continue
		}
		root := tonelliShanks(kNModP, pBig)
		entries = append(entries, factorbase.Entry{Prime: p, Power: uint32(p), Exponent: 1})
		sqrtModP = append(sqrtModP, root.Int64())
	}

	fb := factorbase.New(entries, nil)
	fb.SqrtModP = sqrtModP
	return fb, nil
}

func nextOddPrime(p int64) int64 {
	if p < 2 {
		return 3
	}
	cand := p + 2
	for !bigint.IsPrimeUint64(uint64(cand)) {
		cand += 2
	}
	return cand
}

// tonelliShanks returns a square root of a mod the odd prime p, assuming a
// is already known to be a quadratic residue mod p.
func tonelliShanks(a, p *big.Int) *big.Int {
	one := big.NewInt(1)
	two := big.NewInt(2)

	if new(big.Int).Mod(p, big.NewInt(4)).Cmp(big.NewInt(3)) == 0 {
		exp := new(big.Int).Add(p, one)
		exp.Div(exp, big.NewInt(4))
		return new(big.Int).Exp(a, exp, p)
	}

	// Factor p-1 = q * 2^s with q odd.
	q := new(big.Int).Sub(p, one)
	s := uint(0)
	for q.Bit(0) == 0 {
		q.Rsh(q, 1)
		s++
	}

	// Find a quadratic non-residue z.
	z := big.NewInt(2)
	for big.Jacobi(z, p) != -1 {
		z.Add(z, one)
	}

	m := s
	c := new(big.Int).Exp(z, q, p)
	t := new(big.Int).Exp(a, q, p)
	expR := new(big.Int).Add(q, one)
	expR.Div(expR, two)
	r := new(big.Int).Exp(a, expR, p)

	for {
		if t.Cmp(one) == 0 {
			return r
		}
		i := uint(0)
		tt := new(big.Int).Set(t)
		for tt.Cmp(one) != 0 {
			tt.Mul(tt, tt)
			tt.Mod(tt, p)
			i++
		}
		b := new(big.Int).Set(c)
		for j := uint(0); j < m-i-1; j++ {
			b.Mul(b, b)
			b.Mod(b, p)
		}
		m = i
		c = new(big.Int).Mul(b, b)
		c.Mod(c, p)
		t.Mul(t, c)
		t.Mod(t, p)
		r.Mul(r, b)
		r.Mod(r, p)
	}
}
