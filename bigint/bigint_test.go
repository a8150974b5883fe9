package bigint

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReduceSigned32MatchesBigMod(t *testing.T) {
	primes := []uint32{3, 5, 17, 65537, 1000003}
	xs := []int32{0, 1, -1, 123456789, -123456789, 2147483, -2147483}

	for _, p := range primes {
		u := BarrettParam32(p)
		for _, x := range xs {
			got := ReduceSigned32(x, p, u)

			want := new(big.Int).Mod(big.NewInt(int64(x)), big.NewInt(int64(p)))
			require.Equal(t, want.Int64(), int64(got), "x=%d p=%d", x, p)
			require.GreaterOrEqual(t, got, int32(0))
			require.Less(t, got, int32(p))
		}
	}
}

func TestMontgomeryRoundTrip(t *testing.T) {
	qs := []uint64{1000000007, 0xffffffffffffffc5}
	for _, q := range qs {
		p := NewMontgomeryParams(q)
		for _, a := range []uint64{0, 1, 2, 12345, q - 1} {
			m := p.MForm(a % q)
			back := p.InvMForm(m)
			require.Equal(t, a%q, back, "q=%d a=%d", q, a)
		}
	}
}

func TestMontgomeryMulMatchesPlainMod(t *testing.T) {
	const q = 1000000007
	p := NewMontgomeryParams(q)

	for _, a := range []uint64{2, 12345, q - 1} {
		for _, b := range []uint64{3, 54321, q - 2} {
			want := new(big.Int).Mod(new(big.Int).Mul(big.NewInt(int64(a)), big.NewInt(int64(b))), big.NewInt(q)).Uint64()

			ma := p.MForm(a)
			mb := p.MForm(b)
			mc := p.Mul(ma, mb)
			got := p.InvMForm(mc)

			require.Equal(t, want, got, "a=%d b=%d", a, b)
		}
	}
}

func TestNextProbablePrime(t *testing.T) {
	require.Equal(t, "2", NextProbablePrime(big.NewInt(0)).String())
	require.Equal(t, "3", NextProbablePrime(big.NewInt(2)).String())
	require.Equal(t, "5", NextProbablePrime(big.NewInt(3)).String())
	require.Equal(t, "11", NextProbablePrime(big.NewInt(10)).String())
}

func TestDivSmallExact(t *testing.T) {
	i := NewInt(2 * 3 * 3 * 7)
	q := new(Int)

	require.True(t, i.DivSmallExact(2, q))
	require.Equal(t, "63", q.String())

	require.False(t, q.DivSmallExact(5, new(Int)))
}
