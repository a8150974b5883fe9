package siqs

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Pascal66/siqs/sampling"
)

func TestAddFactorReturnsInfinityForIdentityOperands(t *testing.T) {
	w := weierstrass{a: big.NewInt(2), b: big.NewInt(3), n: big.NewInt(97)}
	p := point{x: big.NewInt(5), y: big.NewInt(10)}

	sum, factor := w.addFactor(infinity, p)
	require.Nil(t, factor)
	require.Equal(t, p.x, sum.x)
	require.Equal(t, p.y, sum.y)
}

func TestScalarMulStaysOnCurveModuloPrimeN(t *testing.T) {
	// A curve over a prime field should never surface a "factor": every
	// addFactor denominator is invertible, so scalarMul must run to
	// completion and return a point satisfying the curve equation.
	n := big.NewInt(10007) // prime
	src := sampling.NewDeterministic([]byte("ecm-curve-test"))
	w, p := newRandomCurve(n, src)

	result, factor := w.scalarMul(big.NewInt(7), p)
	require.Nil(t, factor)

	lhs := new(big.Int).Mul(result.y, result.y)
	lhs.Mod(lhs, n)

	rhs := new(big.Int).Mul(result.x, result.x)
	rhs.Mod(rhs, n)
	rhs.Add(rhs, w.a)
	rhs.Mul(rhs, result.x)
	rhs.Add(rhs, w.b)
	rhs.Mod(rhs, n)

	if result.x.Sign() == 0 && result.y.Cmp(big.NewInt(1)) == 0 {
		return // landed on the point at infinity, nothing more to check
	}
	require.Equal(t, lhs, rhs)
}

func TestFindFactorECMOnCompositeModulus(t *testing.T) {
	n := new(big.Int).Mul(big.NewInt(3571), big.NewInt(3659)) // two smallish primes
	src := sampling.NewDeterministic([]byte("ecm-factor-test"))

	factor := findFactorECM(n, src)
	require.NotNil(t, factor)

	mod := new(big.Int).Mod(n, factor)
	require.Equal(t, big.NewInt(0), mod)
	require.Greater(t, factor.Cmp(big.NewInt(1)), 0)
	require.Less(t, factor.Cmp(n), 0)
}

func TestStageOneScalarIsDivisibleByEverySmallPrimePower(t *testing.T) {
	k := stageOneScalar(100)
	for _, p := range []int64{2, 3, 5, 7, 97} {
		mod := new(big.Int).Mod(k, big.NewInt(p))
		require.Equal(t, big.NewInt(0), mod, "prime %d", p)
	}
}
