package lehman

import (
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
)

// crossCheckSqrt4kN recomputes sqrt(4kN) at arbitrary precision via
// bigfloat.Sqrt and compares it against the float64 fast path the search
// loop actually runs on (sqrt4N * sqrtK). It exists to bound the float
// rounding error the correction loop exists to catch, not to run on the
// hot path: float64 is accurate to roughly 15-17 significant digits, more
// than enough for the 63-bit N this package targets, but a debug build can
// call this to confirm that margin on a specific (k, N) pair.
func crossCheckSqrt4kN(k, n uint64, prec uint) float64 {
	fourKN := new(big.Int).Mul(big.NewInt(0).SetUint64(k), big.NewInt(0).SetUint64(n))
	fourKN.Lsh(fourKN, 2)

	x := new(big.Float).SetPrec(prec).SetInt(fourKN)
	root := bigfloat.Sqrt(x)

	fast := math.Sqrt(float64(n<<2)) * math.Sqrt(float64(k))
	fastBig := new(big.Float).SetPrec(prec).SetFloat64(fast)

	diff := new(big.Float).SetPrec(prec).Sub(root, fastBig)
	f, _ := diff.Float64()
	return f
}
