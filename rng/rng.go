// SPDX-License-Identifier: EPL-2.0

// Package rng provides the seeded random stream threaded through data
// augmentation. There is no package-level generator; every draw comes from
// a Source passed in by the caller, so a seed fully determines a run.
package rng

import (
	"math/rand/v2"
	"sync"
)

// Source draws uniform integers in [0, n).
type Source interface {
	IntN(n int) int
}

// Stream is a PCG-backed Source. It is safe for concurrent use, though
// concurrent callers make the draw order, and so the output, nondeterministic.
type Stream struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New returns a stream seeded with seed.
func New(seed uint64) *Stream {
	return &Stream{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// IntN returns a uniform integer in [0, n). It returns 0 when n <= 0.
func (s *Stream) IntN(n int) int {
	if n <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.r.IntN(n)
}

// Between draws from [lo, hi). It returns lo without drawing when the
// interval is empty.
func Between(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}

	return lo + src.IntN(hi-lo)
}

// Bool draws a fair coin.
func Bool(src Source) bool {
	return src.IntN(2) == 1
}
