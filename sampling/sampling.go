// Package sampling implements the process-scope CSPRNG the generator (C5)
// draws test numbers from, plus a deterministic, reseedable variant used
// only to build reproducible test fixtures.
package sampling

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"math/big"
)

// Source is anything that can produce uniformly random bytes. *ThreadSafePRNG
// satisfies it for production use; *Deterministic satisfies it for tests.
type Source interface {
	io.Reader
}

// ThreadSafePRNG wraps crypto/rand.Reader, the process-scope CSPRNG that
// spec.md §5 says C5's random source is: "held at process scope; access is
// assumed thread-safe by convention of the underlying primitive."
type ThreadSafePRNG struct{}

// NewThreadSafePRNG returns the process-scope CSPRNG.
func NewThreadSafePRNG() *ThreadSafePRNG { return &ThreadSafePRNG{} }

// Read implements io.Reader by delegating to crypto/rand.
func (*ThreadSafePRNG) Read(b []byte) (int, error) { return rand.Read(b) }

// RandUint64 returns a uniform random uint64 from src.
func RandUint64(src Source) uint64 {
	var b [8]byte
	if _, err := io.ReadFull(src, b[:]); err != nil {
		panic(err)
	}
	return binary.LittleEndian.Uint64(b[:])
}

// RandBits returns a uniform random non-negative integer in [0, 2^bits), so
// its bit length is at most `bits` (the top bit is not forced); bits<=0
// yields zero. This is the building block behind every "draw a random
// n-bit integer" step of the generator's five modes, whose callers set the
// top bit or reject short draws themselves.
func RandBits(src Source, bits int) *big.Int {
	if bits <= 0 {
		return new(big.Int)
	}
	nBytes := (bits + 7) / 8
	buf := make([]byte, nBytes)
	if _, err := io.ReadFull(src, buf); err != nil {
		panic(err)
	}
	n := new(big.Int).SetBytes(buf)

	// Mask down to `bits` bits, leaving the top bit random: the result's
	// bit length is <= bits, and callers that need exactly `bits` reject
	// or set the top bit themselves.
	excess := nBytes*8 - bits
	if excess > 0 {
		n.Rsh(n, uint(excess))
	}
	return n
}

// RandBelowBig returns a uniform random integer in [0, max), rejecting and
// redrawing whenever the masked draw lands >= max — the arbitrary-precision
// counterpart to RandBelow, used by ECM to sample curve parameters mod n.
// Like RandBits, the draw here does not force the top bit: doing so would
// make max's own bit length unreachable whenever max is an exact power of
// two, looping forever.
func RandBelowBig(src Source, max *big.Int) *big.Int {
	if max.Sign() <= 0 {
		return new(big.Int)
	}
	bits := max.BitLen()
	nBytes := (bits + 7) / 8
	excess := uint(nBytes*8 - bits)
	buf := make([]byte, nBytes)
	for {
		if _, err := io.ReadFull(src, buf); err != nil {
			panic(err)
		}
		n := new(big.Int).SetBytes(buf)
		if excess > 0 {
			n.Rsh(n, excess)
		}
		if n.Cmp(max) < 0 {
			return n
		}
	}
}

// RandBelow returns a uniform random integer in [lo, hi), promoting the
// range width to 1 when hi<=lo so the sampler never panics on a degenerate
// range — the uniform-sampler edge case spec.md §4.3 calls out explicitly.
func RandBelow(src Source, lo, hi int) int {
	width := hi - lo
	if width <= 0 {
		width = 1
	}
	n := RandBits(src, 64)
	return lo + int(new(big.Int).Mod(n, big.NewInt(int64(width))).Int64())
}
