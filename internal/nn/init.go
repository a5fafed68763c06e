package nn

import (
	"math/rand"
)

// Uniform fills dst with values drawn from a uniform distribution on [lo, hi).
//
// Values are drawn in index order, so the same rng state always produces the
// same slice.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	nn.Uniform(rng, -1, 1, layer.Bias())
func Uniform(rng *rand.Rand, lo, hi float64, dst []float64) {
	for i := range dst {
		dst[i] = rng.Float64()*(hi-lo) + lo
	}
}
