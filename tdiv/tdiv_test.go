package tdiv

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Pascal66/siqs/factorbase"
	"github.com/Pascal66/siqs/primality"
)

type stubFactoriser struct{}

func (stubFactoriser) FindFactor(n *big.Int) (*big.Int, error) {
	return nil, nil
}

type stubLehman struct{}

func (stubLehman) FindFactor(n uint64) uint64 { return 1 }

func newTestClassifier(t *testing.T, kN *big.Int, fb *factorbase.Base) *Classifier {
	t.Helper()
	profile, err := NewProfile(ProfileLiteral{MaxQRest: 1e18, DoTDivFirst: false})
	require.NoError(t, err)

	cl := NewClassifier(profile, primality.BPSWOracle{}, stubLehman{}, stubFactoriser{})
	cl.InitialiseForN(kN)
	cl.InitialiseForA(big.NewInt(1), big.NewInt(0), fb)
	return cl
}

// An x whose residue mod every base prime matches neither X1 nor X2 yields
// no pass-2 hits at all, so Q_rest is |Q(x)| with only its powers of two
// removed. kN ≡ 3 (mod 8) and near 4e18 keeps that residue above 2e18 for
// every x below, over the 1e18 MaxQRest, so no relation may be emitted.
func TestTestListEmptyWhenNoSolutionsMatch(t *testing.T) {
	kN := big.NewInt(4000000000000000003)
	fb := factorbase.New([]factorbase.Entry{
		{Prime: 2, Power: 2, Exponent: 1, X1: -1, X2: -1},
		{Prime: 3, Power: 3, Exponent: 1, X1: -1, X2: -1},
		{Prime: 5, Power: 5, Exponent: 1, X1: -1, X2: -1},
	}, nil)

	cl := newTestClassifier(t, kN, fb)
	out := cl.TestList([]int32{1, 2, 4, 7, 11})
	require.Empty(t, out)
}

func TestTestListFindsSmoothPerfectRelation(t *testing.T) {
	// Choose kN and x such that Q(x) = x^2 - kN factors completely over
	// {2,3,5}: kN=19, x=8 -> Q=64-19=45=3^2*5.
	kN := big.NewInt(19)
	fb := factorbase.New([]factorbase.Entry{
		{Prime: 2, Power: 2, Exponent: 1, X1: -1, X2: -1},
		{Prime: 3, Power: 3, Exponent: 1, X1: 2, X2: 1}, // 8 mod 3 == 2
		{Prime: 5, Power: 5, Exponent: 1, X1: 3, X2: 2}, // 8 mod 5 == 3
	}, nil)

	cl := newTestClassifier(t, kN, fb)
	out := cl.TestList([]int32{8})
	require.Len(t, out, 1)

	sf := out[0].SmallFactors()
	product := big.NewInt(1)
	for _, f := range sf {
		if f.Prime == -1 {
			continue
		}
		pw := new(big.Int).Exp(big.NewInt(f.Prime), big.NewInt(int64(f.Exponent)), nil)
		product.Mul(product, pw)
	}
	require.Equal(t, big.NewInt(45), product)
}
