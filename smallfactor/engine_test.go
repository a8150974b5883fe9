package smallfactor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrialDivideUpToFindsSmallestFactor(t *testing.T) {
	require.Equal(t, uint64(7), TrialDivideUpTo(91, 100)) // 91 = 7*13
	require.Equal(t, uint64(1), TrialDivideUpTo(97, 100)) // prime, no divisor found
}

func TestHartFindsFactorOfKnownComposites(t *testing.T) {
	cases := []uint64{
		15, 91, 1000003 * 1000033, 999979 * 999983,
	}
	for _, n := range cases {
		f := Hart.FindFactor(n)
		require.Greater(t, f, uint64(1), "n=%d", n)
		require.Less(t, f, n, "n=%d", n)
		require.Zero(t, n%f, "n=%d", n)
	}
}

func TestPollardRhoBrentVariantsFindFactor(t *testing.T) {
	n := uint64(1000000007) * 3 // a small prime times 3, well within 63 bits
	for _, eng := range []Engine{PollardRhoBrentR64Mul63, PollardRhoBrentMontgomery64} {
		f := eng.FindFactor(n)
		require.Greater(t, f, uint64(1))
		require.Less(t, f, n)
		require.Zero(t, n%f)
	}
}

func TestPollardRhoBrentOnLargerSemiprime(t *testing.T) {
	// Two ~28-bit primes, a 56-bit product.
	n := uint64(228204737) * uint64(228204721)
	f := PollardRhoBrentMontgomery64.FindFactor(n)
	require.Greater(t, f, uint64(1))
	require.Less(t, f, n)
	require.Zero(t, n%f)
}

func TestGcdUint64(t *testing.T) {
	require.Equal(t, uint64(6), gcdUint64(54, 24))
	require.Equal(t, uint64(1), gcdUint64(17, 5))
}
