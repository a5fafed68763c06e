// Package dataset builds training sets for the dense network trainer.
//
// A Dataset is a pair of parallel slices: Inputs[i] is fed to the network and
// Targets[i] is the expected output. Loaders shape the data (pixel scaling,
// one-hot labels) so that it can be passed to optim.SGD.Train unchanged.
package dataset

import (
	"errors"
	"fmt"
	"math"
)

// Common errors.
var (
	ErrInvalidFormat = errors.New("invalid dataset format")
	ErrInvalidLabel  = errors.New("label out of range")
)

// Dataset holds parallel input and target vectors.
type Dataset struct {
	Inputs  [][]float64
	Targets [][]float64
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Inputs)
}

// Split divides the dataset into a training part and a held-out part holding
// roughly frac of the samples (taken from the end, order preserved).
func (d *Dataset) Split(frac float64) (train, held *Dataset) {
	n := d.Len()
	k := int(math.Round(float64(n) * frac))
	k = min(max(k, 0), n)
	cut := n - k
	return &Dataset{Inputs: d.Inputs[:cut], Targets: d.Targets[:cut]},
		&Dataset{Inputs: d.Inputs[cut:], Targets: d.Targets[cut:]}
}

// Head returns the first n samples, or the whole dataset if n <= 0 or n >= Len.
func (d *Dataset) Head(n int) *Dataset {
	if n <= 0 || n >= d.Len() {
		return d
	}
	return &Dataset{Inputs: d.Inputs[:n], Targets: d.Targets[:n]}
}

// Validate checks that inputs and targets pair up with the given widths.
func (d *Dataset) Validate(inputWidth, targetWidth int) error {
	if len(d.Inputs) != len(d.Targets) {
		return fmt.Errorf("%w: %d inputs, %d targets", ErrInvalidFormat, len(d.Inputs), len(d.Targets))
	}
	for i := range d.Inputs {
		if len(d.Inputs[i]) != inputWidth || len(d.Targets[i]) != targetWidth {
			return fmt.Errorf("%w: sample %d is %d->%d, want %d->%d", ErrInvalidFormat,
				i, len(d.Inputs[i]), len(d.Targets[i]), inputWidth, targetWidth)
		}
	}
	return nil
}

// OneHot encodes label as a vector of length classes with a single 1.
func OneHot(label, classes int) ([]float64, error) {
	if label < 0 || label >= classes {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidLabel, label, classes)
	}
	v := make([]float64, classes)
	v[label] = 1
	return v, nil
}
