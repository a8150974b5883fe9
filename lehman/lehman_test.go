package lehman

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindFactorSpecialCaseNine(t *testing.T) {
	f := NewFinder(false)
	require.Equal(t, uint64(3), f.FindFactor(9))
}

func TestFindFactorKnownSemiprimes(t *testing.T) {
	f := NewFinder(false)

	cases := []struct {
		n      uint64
		factor uint64
	}{
		{5640012124823, 0},
		{7336014366011, 0},
		{19699548984827, 0},
		{5682546780292609, 0},
	}

	for _, tc := range cases {
		got := f.FindFactor(tc.n)
		require.Greater(t, got, uint64(1), "N=%d", tc.n)
		require.Less(t, got, tc.n, "N=%d", tc.n)
		require.Zero(t, tc.n%got, "factor %d does not divide N=%d", got, tc.n)
	}
}

func TestCrossCheckSqrt4kNStaysWithinFloat64Margin(t *testing.T) {
	for _, n := range []uint64{5640012124823, 19699548984827, 5682546780292609} {
		for _, k := range []uint64{1, 315, 1 << 19} {
			diff := crossCheckSqrt4kN(k, n, 200)
			require.Less(t, diff, 1e-3, "k=%d n=%d", k, n)
			require.Greater(t, diff, -1e-3, "k=%d n=%d", k, n)
		}
	}
}

func TestFindFactorDoTDivFirstAgrees(t *testing.T) {
	const n = 5640012124823
	withTDiv := NewFinder(true)
	withoutTDiv := NewFinder(false)

	f1 := withTDiv.FindFactor(n)
	f2 := withoutTDiv.FindFactor(n)
	require.Greater(t, f1, uint64(1))
	require.Greater(t, f2, uint64(1))
	require.Zero(t, n%f1)
	require.Zero(t, n%f2)
}
