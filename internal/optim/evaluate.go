package optim

import (
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/dense/internal/nn"
)

// Metrics summarizes a network's predictions over a sample set.
type Metrics struct {
	Loss     float64 // Same definition as the training epoch loss
	MAE      float64 // Mean absolute error over every output value
	Accuracy float64 // Fraction of samples whose argmax prediction matches the argmax target
	Samples  int
}

// Evaluate runs every input through net without updating it.
//
// Accuracy is only meaningful for one-hot (classification) targets; for a
// single output it is always 1.
func Evaluate(net *nn.Network, inputs, targets [][]float64) (Metrics, error) {
	if err := validate(net, inputs, targets); err != nil {
		return Metrics{}, err
	}

	var (
		loss    nn.MSELoss
		errs    = make([]float64, net.OutputSize())
		total   float64
		absSum  float64
		correct int
	)
	for i := range inputs {
		pred, err := net.Forward(inputs[i])
		if err != nil {
			return Metrics{}, err
		}
		total += loss.Forward(pred, targets[i], errs)
		absSum += floats.Norm(errs, 1)
		if floats.MaxIdx(pred) == floats.MaxIdx(targets[i]) {
			correct++
		}
	}

	n := float64(len(inputs))
	return Metrics{
		Loss:     total / n,
		MAE:      absSum / (n * float64(net.OutputSize())),
		Accuracy: float64(correct) / n,
		Samples:  len(inputs),
	}, nil
}
