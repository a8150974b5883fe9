// Package tdiv implements C4, the trial-division/relation classifier: the
// centerpiece that turns sieve candidates x into congruence.AQPair relations,
// orchestrating the probable-prime oracle, the small-factor engines, the
// Lehman search, and a recursive factoriser for whatever falls outside all
// of those (§4.1, §6 of SPEC_FULL.md).
package tdiv

import (
	"math/big"

	"github.com/montanaflynn/stats"

	"github.com/Pascal66/siqs/bigint"
	"github.com/Pascal66/siqs/congruence"
	"github.com/Pascal66/siqs/factorbase"
	"github.com/Pascal66/siqs/primality"
	"github.com/Pascal66/siqs/smallfactor"
)

// Factoriser finds a single non-trivial factor of a Q_rest that is too large
// for the bundled small-factor engines (≥63 bits). It is injected rather
// than imported directly so this package never depends on package siqs,
// which would otherwise need to depend back on tdiv to supply its own
// nested factoring step.
type Factoriser interface {
	FindFactor(n *big.Int) (*big.Int, error)
}

// Profile is the immutable, validated configuration for a Classifier,
// mirroring the teacher's literal-then-validated Parameters pattern: callers
// build a ProfileLiteral and turn it into a Profile once, up front.
type Profile struct {
	maxQRest    float64
	doTDivFirst bool
}

// ProfileLiteral is the user-facing, not-yet-validated form of Profile.
type ProfileLiteral struct {
	// MaxQRest is the largest unfactored Q_rest, in absolute value, still
	// considered "sufficiently smooth" for a congruence.
	MaxQRest float64
	// DoTDivFirst is stored in the Profile; the Classifier does not read it,
	// and the LehmanEngine passed to NewClassifier keeps its own
	// trial-division setting.
	DoTDivFirst bool
}

// NewProfile validates lit and returns the corresponding Profile.
func NewProfile(lit ProfileLiteral) (Profile, error) {
	if lit.MaxQRest <= 0 {
		return Profile{}, errMaxQRest
	}
	return Profile{maxQRest: lit.MaxQRest, doTDivFirst: lit.DoTDivFirst}, nil
}

var errMaxQRest = profileError("maxQRest must be positive")

type profileError string

func (e profileError) Error() string { return string(e) }

// Report summarizes classification activity since the last InitialiseForN;
// Classifier.Statistics derives the mean, median and standard deviation of
// QRestBitSizes from it with montanaflynn/stats.
type Report struct {
	TestCount            int64
	SufficientSmoothCount int64
	QRestBitSizes         []float64
}

// Classifier is C4. It is reused across polynomials for one kN: InitialiseForN
// runs once, InitialiseForA/SetB run once per polynomial, TestList runs once
// per sieve block. A Classifier is not safe for concurrent TestList calls:
// every call reuses its small-factor accumulator and report.
type Classifier struct {
	profile Profile
	oracle  primality.Oracle
	lehman  LehmanEngine
	factor  Factoriser

	kN *big.Int

	da *big.Int
	b  *big.Int
	fb *factorbase.Base

	pMax       int64
	pMaxSquare *big.Int

	smallFactors *congruence.SmallFactors

	report Report
}

// LehmanEngine is the contract tdiv needs from C3; lehman.Finder implements
// it directly.
type LehmanEngine interface {
	FindFactor(n uint64) uint64
}

// NewClassifier builds a Classifier around the given profile, probable-prime
// oracle, Lehman engine and recursive factoriser.
func NewClassifier(profile Profile, oracle primality.Oracle, lehman LehmanEngine, factor Factoriser) *Classifier {
	return &Classifier{
		profile:      profile,
		oracle:       oracle,
		lehman:       lehman,
		factor:       factor,
		smallFactors: congruence.NewSmallFactors(32),
	}
}

// InitialiseForN resets per-N state. kN is k times the number being factored.
func (c *Classifier) InitialiseForN(kN *big.Int) {
	c.kN = kN
	c.report = Report{}
}

// InitialiseForA switches to a new polynomial's a-parameter and factor base.
func (c *Classifier) InitialiseForA(da, b *big.Int, fb *factorbase.Base) {
	c.da = da
	c.b = b
	c.fb = fb
	c.pMax = fb.PMax()
	c.pMaxSquare = big.NewInt(c.pMax * c.pMax)
}

// SetB updates only the b-parameter, for the common case of SIQS re-deriving
// b within the same a.
func (c *Classifier) SetB(b *big.Int) {
	c.b = b
}

// TestList classifies every sieve hit in xs, returning the AQ-pairs found
// sufficiently smooth.
func (c *Classifier) TestList(xs []int32) []congruence.AQPair {
	var out []congruence.AQPair
	for _, x := range xs {
		c.smallFactors.Reset()
		c.report.TestCount++

		xBig := big.NewInt(int64(x))
		a := new(big.Int).Mul(c.da, xBig)
		a.Add(a, c.b)
		q := new(big.Int).Mul(a, a)
		q.Sub(q, c.kN)

		pair := c.test(a, q, x)
		if pair != nil {
			out = append(out, pair)
			c.report.SufficientSmoothCount++
		}
	}
	return out
}

// test implements the per-candidate classification algorithm: sign
// extraction, power-of-two reduction, a Barrett-reduction pass-1 scan of
// the solution arrays to find which base primes divide Q, a pass-2 division
// that actually strips those factors, and — for whatever remains — dispatch
// to the probable-prime oracle, C2/C3, or the injected Factoriser.
func (c *Classifier) test(a, q *big.Int, x int32) congruence.AQPair {
	qRest := new(big.Int).Set(q)
	if qRest.Sign() < 0 {
		c.smallFactors.Add(-1, 1)
		qRest.Neg(qRest)
	}

	if lsb := trailingZeroBits(qRest); lsb > 0 {
		c.smallFactors.Add(2, lsb)
		qRest.Rsh(qRest, uint(lsb))
	}

	type pass2Entry struct {
		prime    int64
		power    uint32
		exponent int
	}
	pass2 := make([]pass2Entry, 0, len(c.fb.Unsieved)+8)
	for _, idx := range c.fb.Unsieved {
		p := c.fb.Primes[idx]
		pass2 = append(pass2, pass2Entry{prime: p, power: uint32(p), exponent: 1})
	}

	// Pass 1: scan the solution arrays to see which base primes divide Q,
	// via the candidate's residue mod p. p[0]=2 was already handled above.
	xAbs := x
	if xAbs < 0 {
		xAbs = -xAbs
	}
	for pIndex := c.fb.Len() - 1; pIndex > 0; pIndex-- {
		p := c.fb.PArray[pIndex]
		var xModP int32
		if uint32(xAbs) < p {
			if x < 0 {
				xModP = x + int32(p)
			} else {
				xModP = x
			}
		} else {
			xModP = bigint.ReduceSigned32(x, p, c.fb.PInv[pIndex])
		}
		if xModP == c.fb.X1[pIndex] || xModP == c.fb.X2[pIndex] {
			pass2 = append(pass2, pass2Entry{
				prime:    c.fb.Primes[pIndex],
				power:    p,
				exponent: c.fb.Exponents[pIndex],
			})
		}
	}

	// Pass 2: actually divide Q_rest by every prime power pass 1 flagged.
	qRestInt := bigint.NewFromBig(qRest)
	for _, e := range pass2 {
		for {
			quotient := new(bigint.Int)
			ok := qRestInt.DivSmallExact(e.power, quotient)
			if !ok {
				break
			}
			qRestInt = quotient
			c.smallFactors.Add(e.prime, e.exponent)
		}
	}

	if qRestInt.IsOne() {
		return congruence.NewSmoothPerfect(a, c.smallFactors.Snapshot())
	}
	qRest = qRestInt.Big()

	qRestFloat, _ := new(big.Float).SetInt(qRest).Float64()
	if qRestFloat >= c.profile.maxQRest {
		return nil
	}

	restIsPrime := qRest.Cmp(c.pMaxSquare) < 0 || c.oracle.IsProbablePrime(qRest)
	if restIsPrime {
		if qRest.BitLen() > 31 {
			return nil
		}
		return congruence.NewPartial1Large(a, c.smallFactors.Snapshot(), uint32(qRest.Int64()))
	}

	qRestBits := qRest.BitLen()
	c.report.QRestBitSizes = append(c.report.QRestBitSizes, float64(qRestBits))

	var factor1 *big.Int
	switch {
	case qRestBits < 45:
		factor1 = big.NewInt(int64(smallfactor.Hart.FindFactor(qRest.Uint64())))
	case qRestBits < 63:
		// Lehman's search covers exactly this 45-63 bit range and is tried
		// first; C2's bit-dispatched engines are the fallback when it fails.
		if f := c.lehman.FindFactor(qRest.Uint64()); f > 1 {
			factor1 = big.NewInt(int64(f))
		} else if qRestBits < 50 {
			factor1 = big.NewInt(int64(smallfactor.Hart.FindFactor(qRest.Uint64())))
		} else if qRestBits < 57 {
			factor1 = big.NewInt(int64(smallfactor.PollardRhoBrentR64Mul63.FindFactor(qRest.Uint64())))
		} else {
			factor1 = big.NewInt(int64(smallfactor.PollardRhoBrentMontgomery64.FindFactor(qRest.Uint64())))
		}
	default:
		factor1, _ = c.factor.FindFactor(qRest)
	}
	if factor1 == nil || factor1.Sign() <= 0 || factor1.Cmp(big.NewInt(1)) == 0 || factor1.BitLen() > 31 {
		return nil
	}

	factor2 := new(big.Int).Div(qRest, factor1)
	if factor2.BitLen() > 31 {
		return nil
	}

	if factor1.Cmp(factor2) == 0 {
		return congruence.NewSmooth1LargeSquare(a, c.smallFactors.Snapshot(), uint32(factor1.Int64()))
	}
	return congruence.NewPartial2Large(a, c.smallFactors.Snapshot(), uint32(factor1.Int64()), uint32(factor2.Int64()))
}

// Report returns the classification statistics gathered since the last
// InitialiseForN.
func (c *Classifier) Report() Report {
	return c.report
}

// QRestStatistics summarizes the bit sizes of every Q_rest this Classifier
// had to hand off to a factoring engine: mean, median and standard
// deviation, the same three figures the teacher's own benchmarking code
// (sign/example.go's printAveragedStats) derives from a run's timings.
type QRestStatistics struct {
	Mean, Median, StdDev float64
}

// Statistics computes QRestStatistics over the current report, returning
// the zero value if no residue has needed a factoring engine yet.
func (c *Classifier) Statistics() QRestStatistics {
	if len(c.report.QRestBitSizes) == 0 {
		return QRestStatistics{}
	}
	mean, _ := stats.Mean(c.report.QRestBitSizes)
	median, _ := stats.Median(c.report.QRestBitSizes)
	stddev, _ := stats.StandardDeviation(c.report.QRestBitSizes)
	return QRestStatistics{Mean: mean, Median: median, StdDev: stddev}
}

// CleanUp releases per-N state so a Classifier can be reused for a new kN
// without retaining references to the previous factor base.
func (c *Classifier) CleanUp() {
	c.fb = nil
	c.kN = nil
	c.da = nil
	c.b = nil
}

func trailingZeroBits(n *big.Int) int {
	if n.Sign() == 0 {
		return 0
	}
	count := 0
	for n.Bit(count) == 0 {
		count++
	}
	return count
}
