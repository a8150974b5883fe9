// Package congruence defines the AQ-pair relation types (§3, §6 of
// SPEC_FULL.md) that the classifier emits and the matrix solver (out of
// scope here) would eventually consume.
package congruence

// SmallFactor is one (prime, exponent) pair discovered while reducing a
// Q-residue. The marker prime -1 records a negative sign rather than a true
// factorization term.
type SmallFactor struct {
	Prime    int64
	Exponent int
}

// SmallFactors accumulates the small-factor side of a relation. It is reset
// per sieve candidate and reused across candidates by the classifier,
// matching the teacher's practice of pre-sized, never-shared scratch state
// (see ring.Ring's pooled buffers) rather than allocating per call.
type SmallFactors struct {
	entries []SmallFactor
}

// NewSmallFactors returns an accumulator pre-sized for a typical factor base.
func NewSmallFactors(capacity int) *SmallFactors {
	return &SmallFactors{entries: make([]SmallFactor, 0, capacity)}
}

// Reset empties the accumulator for the next candidate without releasing its
// backing array.
func (s *SmallFactors) Reset() {
	s.entries = s.entries[:0]
}

// Add records one (prime, exponent) pair, or the sign marker -1 with
// exponent 1.
func (s *SmallFactors) Add(prime int64, exponent int) {
	s.entries = append(s.entries, SmallFactor{Prime: prime, Exponent: exponent})
}

// Entries returns the accumulated pairs in the order they were added. The
// returned slice aliases the accumulator's backing array and is only valid
// until the next Reset.
func (s *SmallFactors) Entries() []SmallFactor {
	return s.entries
}

// Snapshot copies the accumulated pairs into a new, independently owned
// slice, for callers (AQ-pair constructors) that must outlive the next Reset.
func (s *SmallFactors) Snapshot() []SmallFactor {
	out := make([]SmallFactor, len(s.entries))
	copy(out, s.entries)
	return out
}
