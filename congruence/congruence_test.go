package congruence

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestSmallFactorsResetReuse(t *testing.T) {
	sf := NewSmallFactors(4)
	sf.Add(2, 3)
	sf.Add(5, 1)
	require.Len(t, sf.Entries(), 2)

	snap := sf.Snapshot()
	sf.Reset()
	require.Empty(t, sf.Entries())
	require.Len(t, snap, 2, "snapshot must survive a Reset of the accumulator")

	want := []SmallFactor{{Prime: 2, Exponent: 3}, {Prime: 5, Exponent: 1}}
	if diff := cmp.Diff(want, snap); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestAQPairVariants(t *testing.T) {
	a := big.NewInt(42)
	factors := []SmallFactor{{Prime: 2, Exponent: 1}}

	var pairs = []AQPair{
		NewSmoothPerfect(a, factors),
		NewSmooth1LargeSquare(a, factors, 101),
		NewPartial1Large(a, factors, 103),
		NewPartial2Large(a, factors, 107, 109),
	}

	for _, p := range pairs {
		require.Equal(t, a, p.A())
		require.Equal(t, factors, p.SmallFactors())
	}
}
