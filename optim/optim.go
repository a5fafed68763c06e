// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/dense/internal/nn"
	"github.com/born-ml/dense/internal/optim"
)

// SGD (Stochastic Gradient Descent)

// SGD represents the online SGD trainer.
type SGD = optim.SGD

// SGDConfig contains configuration for the SGD trainer.
type SGDConfig = optim.SGDConfig

// DefaultSGDConfig returns LR 0.01, one epoch and progress every 100 epochs.
func DefaultSGDConfig() SGDConfig {
	return optim.DefaultSGDConfig()
}

// NewSGD creates a new SGD trainer.
//
// Example:
//
//	trainer := optim.NewSGD(optim.SGDConfig{LR: 0.1, Epochs: 500})
func NewSGD(config SGDConfig) *SGD {
	return optim.NewSGD(config)
}

// Progress reporting

// EpochStats describes a finished epoch.
type EpochStats = optim.EpochStats

// ProgressFunc receives epoch statistics during training.
type ProgressFunc = optim.ProgressFunc

// Evaluation

// Metrics summarizes predictions over a sample set.
type Metrics = optim.Metrics

// Evaluate computes loss, mean absolute error and argmax accuracy without
// updating the network.
func Evaluate(net *nn.Network, inputs, targets [][]float64) (Metrics, error) {
	return optim.Evaluate(net, inputs, targets)
}

// Errors returned by training.
var (
	ErrNoSamples            = optim.ErrNoSamples
	ErrSampleMismatch       = optim.ErrSampleMismatch
	ErrNumericalInstability = optim.ErrNumericalInstability
	ErrInvalidConfig        = optim.ErrInvalidConfig
)
