// Package optim implements the online training loop for dense networks.
//
// This package provides:
//   - SGD: per-sample stochastic gradient descent with squared-error loss
//   - EpochStats and ProgressFunc: per-epoch progress reporting
//   - Evaluate: loss and accuracy over a labelled sample set
//
// Example usage:
//
//	trainer := optim.NewSGD(optim.SGDConfig{
//	    LR:     0.05,
//	    Epochs: 10000,
//	    Progress: func(s optim.EpochStats) {
//	        fmt.Printf("epoch %d/%d loss=%f\n", s.Epoch, s.Epochs, s.Loss)
//	    },
//	})
//	history, err := trainer.Train(net, inputs, targets)
package optim

import (
	"errors"
	"time"
)

// Common errors.
var (
	ErrNoSamples            = errors.New("no training samples")
	ErrSampleMismatch       = errors.New("inputs and targets differ")
	ErrNumericalInstability = errors.New("loss is not finite")
	ErrInvalidConfig        = errors.New("invalid trainer config")
)

// EpochStats describes a finished epoch.
type EpochStats struct {
	Epoch   int           // 1-based epoch number
	Epochs  int           // Total number of epochs
	Loss    float64       // Mean over samples of the summed squared output error
	Elapsed time.Duration // Time since training started
	ETA     time.Duration // Estimated time remaining at the current pace
}

// ProgressFunc receives epoch statistics during training.
//
// It is a notification only; training does not depend on it.
type ProgressFunc func(EpochStats)
