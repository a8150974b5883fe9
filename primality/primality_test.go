package primality

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBPSWOracleClassifiesKnownPrimesAndComposites(t *testing.T) {
	oracle := BPSWOracle{}

	primes := []int64{2, 3, 97, 7919, 1000000007}
	for _, p := range primes {
		require.True(t, oracle.IsProbablePrime(big.NewInt(p)), "p=%d", p)
	}

	composites := []int64{1, 4, 91, 1000000006, 999979 * 999983}
	for _, c := range composites {
		require.False(t, oracle.IsProbablePrime(big.NewInt(c)), "c=%d", c)
	}
}

func TestIsProbablePrimeUint64AgreesWithBigIntOracle(t *testing.T) {
	oracle := BPSWOracle{}
	for _, n := range []uint64{2, 3, 4, 97, 100, 7919, 7920} {
		require.Equal(t, oracle.IsProbablePrime(big.NewInt(int64(n))), IsProbablePrimeUint64(n), "n=%d", n)
	}
}
