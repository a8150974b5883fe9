package testset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Pascal66/siqs/bigint"
)

func TestGenerateHardSemiprime(t *testing.T) {
	ns, err := GenerateSeeded([]byte("testset-fixture"), 10, 40, HardSemiprime)
	require.NoError(t, err)
	require.Len(t, ns, 10)

	for _, n := range ns {
		require.Equal(t, 40, n.BitLen())
		require.False(t, bigint.IsPrime(n))
	}
}

func TestGenerateRejectsTooFewBits(t *testing.T) {
	_, err := Generate(1, 2, RandomComposite)
	require.Error(t, err)

	_, err = Generate(1, 3, RandomOddComposite)
	require.Error(t, err)
}

func TestGenerateUnknownNature(t *testing.T) {
	_, err := Generate(1, 40, Nature(99))
	require.Error(t, err)
}

func TestGenerateSeededReproducible(t *testing.T) {
	seed := []byte("reproducible-seed")
	a, err := GenerateSeeded(seed, 5, 32, ModerateSemiprime2)
	require.NoError(t, err)
	b, err := GenerateSeeded(seed, 5, 32, ModerateSemiprime2)
	require.NoError(t, err)

	for i := range a {
		require.Equal(t, a[i].String(), b[i].String())
	}
}
