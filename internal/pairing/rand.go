package pairing

import "math/rand/v2"

// Rand is the random source used wherever the engine picks "one at
// random". Injected so tests can pin selections with a fixed seed.
type Rand interface {
	// IntN returns a uniform value in [0,n). Panics if n <= 0.
	IntN(n int) int
}

// globalRand satisfies Rand with the shared math/rand/v2 source, which
// is safe for concurrent use.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand returns the process-wide random source.
func DefaultRand() Rand { return globalRand{} }
