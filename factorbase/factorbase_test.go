package factorbase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestBase() *Base {
	return New([]Entry{
		{Prime: 2, Power: 2, Exponent: 1, X1: -1, X2: -1},
		{Prime: 3, Power: 3, Exponent: 1, X1: -1, X2: -1},
		{Prime: 5, Power: 5, Exponent: 1, X1: -1, X2: -1},
		{Prime: 7, Power: 7, Exponent: 1, X1: -1, X2: -1},
	}, nil)
}

func TestLenAndPMax(t *testing.T) {
	b := newTestBase()
	require.Equal(t, 4, b.Len())
	require.Equal(t, int64(7), b.PMax())
	require.Equal(t, int64(49), b.PMaxSquare())
}

func TestSolveSolutionsSatisfiesQuadraticCongruence(t *testing.T) {
	b := newTestBase()
	b.SqrtModP = make([]int64, b.Len())
	kN := big.NewInt(19)

	// Derive the actual square roots of kN mod each odd prime rather than
	// hand-picking values, so the test exercises SolveSolutions against a
	// congruence that is guaranteed solvable.
	for i, p := range b.Primes {
		if p == 2 {
			continue
		}
		pBig := big.NewInt(p)
		kNModP := new(big.Int).Mod(kN, pBig)
		for r := int64(0); r < p; r++ {
			if new(big.Int).Exp(big.NewInt(r), big.NewInt(2), pBig).Cmp(kNModP) == 0 {
				b.SqrtModP[i] = r
				break
			}
		}
	}

	da := big.NewInt(1)
	bCoef := big.NewInt(0)
	b.SolveSolutions(da, bCoef)

	for i, p := range b.Primes {
		if p == 2 {
			continue
		}
		pBig := big.NewInt(p)
		kNModP := new(big.Int).Mod(kN, pBig)

		for _, x := range []int32{b.X1[i], b.X2[i]} {
			q := new(big.Int).Exp(big.NewInt(int64(x)), big.NewInt(2), pBig)
			require.Equal(t, kNModP, q, "prime %d, x %d", p, x)
		}
	}
}
