// Package random holds the randomness sources used for sampling. Callers
// inject a math/rand/v2 Source so that training can be replayed.
package random

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/sampleuv"
)

// NewSource returns a PCG source seeded with seed.
func NewSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// NewEntropySource returns a PCG source seeded from the runtime generator.
func NewEntropySource() rand.Source {
	return rand.NewPCG(rand.Uint64(), rand.Uint64())
}

// WithoutReplacement returns k distinct integers drawn uniformly from [0, n).
// k is clamped to n; k <= 0 or n <= 0 yields nil.
func WithoutReplacement(k, n int, src rand.Source) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	idxs := make([]int, k)
	sampleuv.WithoutReplacement(idxs, n, src)
	return idxs
}

// Sequence is a Source replaying a fixed list of values in a loop. It makes
// sampling reproducible in tests.
type Sequence struct {
	values []uint64
	pos    int
}

// NewSequence creates a Sequence over values. values must not be empty and
// should not be all zero: math/rand/v2 rejects zero draws for most bounds, so
// an all-zero source never terminates IntN.
func NewSequence(values ...uint64) *Sequence {
	if len(values) == 0 {
		panic("random: empty sequence")
	}
	return &Sequence{values: values}
}

// Uint64 implements rand.Source.
func (s *Sequence) Uint64() uint64 {
	v := s.values[s.pos]
	s.pos = (s.pos + 1) % len(s.values)
	return v
}
