package dataset

import "math"

// Sine returns n samples of y = sin(x) with x evenly spaced over [0, 2π).
//
// Inputs are raw x values (not normalized), targets lie in [-1, 1], which a
// tanh output layer can represent.
func Sine(n int) *Dataset {
	d := &Dataset{
		Inputs:  make([][]float64, n),
		Targets: make([][]float64, n),
	}
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n) * (2 * math.Pi)
		d.Inputs[i] = []float64{x}
		d.Targets[i] = []float64{math.Sin(x)}
	}
	return d
}
