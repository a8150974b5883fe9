// Package testset implements C5, generation of random test numbers that are
// "not too easy to factor" (§4.3, §5 of SPEC_FULL.md): composites and
// semiprimes of controlled bit length and factor balance.
package testset

import (
	"fmt"
	"math/big"

	"github.com/Pascal66/siqs/bigint"
	"github.com/Pascal66/siqs/sampling"
)

// Nature selects which of the five generation modes Generate runs.
type Nature int

const (
	// RandomComposite draws uniform bits-bit integers, rejecting primes.
	RandomComposite Nature = iota
	// RandomOddComposite draws uniform bits-bit odd integers, rejecting primes.
	RandomOddComposite
	// ModerateSemiprime builds N = n1*n2 with n1 in [cbrt(N), sqrt(N)] and n2
	// derived from a second random draw divided by n1; n1 and n2 may coincide.
	ModerateSemiprime
	// ModerateSemiprime2 builds N = n1*n2 from two independently top-bit-set
	// draws whose bit lengths are chosen to sum to bits.
	ModerateSemiprime2
	// HardSemiprime builds N from two top-bit-set, (close to) equal-length
	// primes: the hardest case for factor-base-bounded methods.
	HardSemiprime
)

func (m Nature) String() string {
	switch m {
	case RandomComposite:
		return "RandomComposite"
	case RandomOddComposite:
		return "RandomOddComposite"
	case ModerateSemiprime:
		return "ModerateSemiprime"
	case ModerateSemiprime2:
		return "ModerateSemiprime2"
	case HardSemiprime:
		return "HardSemiprime"
	default:
		return fmt.Sprintf("Nature(%d)", int(m))
	}
}

// Generate produces count random test numbers of the given bit length and
// nature, drawing from the process-scope CSPRNG.
func Generate(count, bits int, nature Nature) ([]*big.Int, error) {
	return generate(sampling.NewThreadSafePRNG(), count, bits, nature)
}

// GenerateSeeded is Generate's reproducible twin, for test fixtures: it
// draws from a sampling.Deterministic reseeded from seed instead of from the
// process CSPRNG.
func GenerateSeeded(seed []byte, count, bits int, nature Nature) ([]*big.Int, error) {
	return generate(sampling.NewDeterministic(seed), count, bits, nature)
}

func generate(src sampling.Source, count, bits int, nature Nature) ([]*big.Int, error) {
	switch nature {
	case RandomComposite:
		if bits < 3 {
			return nil, fmt.Errorf("testset: no composites with %d bits", bits)
		}
		return generateRandomComposite(src, count, bits, false)
	case RandomOddComposite:
		if bits < 4 {
			return nil, fmt.Errorf("testset: no odd composites with %d bits", bits)
		}
		return generateRandomComposite(src, count, bits, true)
	case ModerateSemiprime:
		if bits < 4 {
			return nil, fmt.Errorf("testset: no odd semiprimes with %d bits", bits)
		}
		return generateModerateSemiprime(src, count, bits)
	case ModerateSemiprime2:
		if bits < 4 {
			return nil, fmt.Errorf("testset: no odd semiprimes with %d bits", bits)
		}
		return generateModerateSemiprime2(src, count, bits)
	case HardSemiprime:
		if bits < 4 {
			return nil, fmt.Errorf("testset: no odd semiprimes with %d bits", bits)
		}
		return generateHardSemiprime(src, count, bits)
	default:
		return nil, fmt.Errorf("testset: unknown nature %v", nature)
	}
}

func generateRandomComposite(src sampling.Source, count, bits int, odd bool) ([]*big.Int, error) {
	out := make([]*big.Int, count)
	for i := 0; i < count; {
		n := sampling.RandBits(src, bits)
		if odd {
			n.SetBit(n, 0, 1)
		}
		if n.BitLen() == bits && !bigint.IsPrime(n) {
			out[i] = n
			i++
		}
	}
	return out, nil
}

// generateModerateSemiprime mirrors the reference generator's "moderate"
// mode exactly, including its allowance for n1==n2: a second, independent
// bits-bit draw is divided by n1 to produce n2's seed, so the two factors
// are not constructed symmetrically and may coincide.
func generateModerateSemiprime(src sampling.Source, count, bits int) ([]*big.Int, error) {
	minBits := (bits + 2) / 3
	maxBits := (bits + 1) / 2

	out := make([]*big.Int, count)
	for i := 0; i < count; {
		n1Bits := sampling.RandBelow(src, minBits, maxBits)
		n1 := sampling.RandBits(src, n1Bits)
		n1 = bigint.NextProbablePrime(n1)
		if n1.BitLen() != n1Bits {
			continue
		}
		nRand := sampling.RandBits(src, bits)
		n2Seed := new(big.Int).Div(nRand, n1)
		n2 := bigint.NextProbablePrime(n2Seed)
		n := new(big.Int).Mul(n1, n2)
		if n.BitLen() != bits {
			continue
		}
		out[i] = n
		i++
	}
	return out, nil
}

func generateModerateSemiprime2(src sampling.Source, count, bits int) ([]*big.Int, error) {
	minBits := (bits + 2) / 3
	maxBits := (bits + 1) / 2

	out := make([]*big.Int, count)
	for i := 0; i < count; {
		n1Bits := sampling.RandBelow(src, minBits, maxBits)
		n1 := sampling.RandBits(src, n1Bits)
		if n1Bits > 0 {
			n1.SetBit(n1, n1Bits-1, 1)
		}
		n1 = bigint.NextProbablePrime(n1)

		n2Bits := bits - n1.BitLen()
		n2 := sampling.RandBits(src, n2Bits)
		if n2Bits > 0 {
			n2.SetBit(n2, n2Bits-1, 1)
		}
		n2 = bigint.NextProbablePrime(n2)

		n := new(big.Int).Mul(n1, n2)
		if n.BitLen() != bits {
			continue
		}
		out[i] = n
		i++
	}
	return out, nil
}

// generateHardSemiprime builds N from two primes of as-equal-as-possible bit
// length, each with its top bit forced: the case hardest for the sieve,
// since neither factor is anywhere near smooth.
func generateHardSemiprime(src sampling.Source, count, bits int) ([]*big.Int, error) {
	minBits := bits / 2

	out := make([]*big.Int, count)
	for i := 0; i < count; {
		n1 := sampling.RandBits(src, minBits)
		n1.SetBit(n1, minBits-1, 1)
		n1 = bigint.NextProbablePrime(n1)

		n2Bits := bits - n1.BitLen()
		n2 := sampling.RandBits(src, n2Bits)
		n2.SetBit(n2, n2Bits-1, 1)
		n2 = bigint.NextProbablePrime(n2)

		n := new(big.Int).Mul(n1, n2)
		if n.BitLen() != bits {
			continue
		}
		out[i] = n
		i++
	}
	return out, nil
}
