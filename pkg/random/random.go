// Package random defines the bounded uniform-integer contract the topology
// generator draws from, with a goroutine-safe process-wide default and a
// seeded implementation for reproducible topologies.
package random

import (
	"math/rand/v2"
	"sync"

	"github.com/zhangyunhao116/fastrand"
)

// Source draws uniform integers. IntN returns a value in [0, n) and panics when n <= 0,
// matching math/rand. Implementations must be safe for concurrent use.
type Source interface {
	IntN(n int) int
}

type fastSource struct{}

func (fastSource) IntN(n int) int { return fastrand.Intn(n) }

// Default returns the process-wide source. It is lock-free and safe for concurrent use.
func Default() Source { return fastSource{} }

// Seeded is a deterministic Source; two instances built from the same seed yield the same sequence.
type Seeded struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded returns a Seeded source.
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))} //nolint:gosec
}

// IntN implements Source.
func (s *Seeded) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rng.IntN(n)
}

// Between returns a uniform integer in the closed range [lo, hi]. It panics if hi < lo.
func Between(src Source, lo, hi int) int {
	return lo + src.IntN(hi-lo+1)
}
