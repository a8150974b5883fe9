package sampling

import (
	"encoding/binary"
	"sync"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
)

// Deterministic is a reseedable PRNG for reproducible test fixtures only —
// production callers use ThreadSafePRNG. It streams bytes from a blake2b XOF
// exactly as the teacher's utils/sampling.KeyedPRNG does, but is reseeded per
// draw by hashing a monotonically increasing counter into the XOF key with
// blake3, the same hash-then-reseed idiom the teacher uses in sign/hash.go
// (PRNGKey, GaussianHash) to turn a secret share into a PRNG key.
//
// Read is serialized by a mutex, but every Read advances the shared reseed
// counter, so concurrent callers receive draws in an unspecified order; a
// reproducible sequence needs a single caller.
type Deterministic struct {
	mutex   sync.Mutex
	seed    []byte
	counter uint64
	xof     blake2b.XOF
}

// NewDeterministic seeds a Deterministic PRNG from an arbitrary-length seed.
func NewDeterministic(seed []byte) *Deterministic {
	d := &Deterministic{seed: append([]byte(nil), seed...)}
	d.reseed()
	return d
}

func (d *Deterministic) reseed() {
	h := blake3.New()
	h.Write(d.seed)
	var ctr [8]byte
	binary.LittleEndian.PutUint64(ctr[:], d.counter)
	h.Write(ctr[:])
	key := h.Sum(nil)

	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, key[:32])
	if err != nil {
		panic(err)
	}
	d.xof = xof
	d.counter++
}

// Read fills b with deterministic pseudo-random bytes, reseeding the
// underlying XOF (via a fresh blake3 digest of the seed and draw counter)
// before every read so that successive Read calls are independent draws
// rather than one long stream — the property the generator's retry loops
// need to stay reproducible regardless of how many candidates were rejected.
func (d *Deterministic) Read(b []byte) (int, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.reseed()
	return d.xof.Read(b)
}
