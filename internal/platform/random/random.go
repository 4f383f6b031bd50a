package random

import "math/rand/v2"

// Source draws uniformly distributed integers. It is injected wherever a
// random pick must be reproducible in tests.
type Source interface {
	// IntN returns a value in [0, n). n is always positive.
	IntN(n int) int
}

type MathSource struct{}

func (MathSource) IntN(n int) int {
	return rand.IntN(n)
}
