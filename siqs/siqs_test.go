package siqs

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Pascal66/siqs/sampling"
	"github.com/Pascal66/siqs/tdiv"
)

func TestBuildPrimeBaseAllPrimesAreQuadraticResidues(t *testing.T) {
	kN := big.NewInt(8051) // 83 * 97
	fb, err := BuildPrimeBase(kN, 10)
	require.NoError(t, err)
	require.Equal(t, 11, fb.Len()) // the 10 requested plus the synthetic prime 2

	for i := 1; i < fb.Len(); i++ {
		p := big.NewInt(fb.Primes[i])
		root := big.NewInt(fb.SqrtModP[i])
		got := new(big.Int).Mul(root, root)
		got.Mod(got, p)

		want := new(big.Int).Mod(kN, p)
		require.Equal(t, want, got, "prime %d", fb.Primes[i])
	}
}

func TestRecursiveFactoriserPollardRhoOnModerateComposite(t *testing.T) {
	n := new(big.Int).Mul(big.NewInt(999983), big.NewInt(999979)) // two ~20-bit primes
	f := NewRecursiveFactoriser()

	factor, err := f.FindFactor(n)
	require.NoError(t, err)
	require.NotNil(t, factor)

	mod := new(big.Int).Mod(n, factor)
	require.Equal(t, big.NewInt(0), mod)
	require.Greater(t, factor.Cmp(big.NewInt(1)), 0)
	require.Less(t, factor.Cmp(n), 0)
}

func TestDriverCollectRelationsFindsSmoothRelation(t *testing.T) {
	n := big.NewInt(91) // 7 * 13, tiny on purpose so a direct scan is feasible
	profile, err := tdiv.NewProfile(tdiv.ProfileLiteral{MaxQRest: 1e9, DoTDivFirst: false})
	require.NoError(t, err)

	d, err := NewDriver(n, 5, profile)
	require.NoError(t, err)

	xs := make([]int32, 0, 200)
	for x := int32(-100); x <= 100; x++ {
		xs = append(xs, x)
	}

	pairs := d.CollectRelations(big.NewInt(1), big.NewInt(0), xs)
	require.NotEmpty(t, pairs, "expected at least one smooth or partial relation scanning x in [-100,100]")
}

func TestRandBelowBigNeverExceedsMax(t *testing.T) {
	src := sampling.NewDeterministic([]byte("ecm-curve-seed"))
	max := big.NewInt(1 << 20)
	for i := 0; i < 50; i++ {
		n := sampling.RandBelowBig(src, max)
		require.True(t, n.Cmp(max) < 0)
		require.True(t, n.Sign() >= 0)
	}
}
