// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/dense/internal/nn"
)

// Activation selects a layer's elementwise nonlinearity.
type Activation = nn.Activation

// Supported activations. Their numeric values are the codes stored in model files.
const (
	ReLU      = nn.ReLU
	Sigmoid   = nn.Sigmoid
	Tanh      = nn.Tanh
	LeakyReLU = nn.LeakyReLU
	Identity  = nn.Identity
)

// MaxWidth bounds the neuron and input counts of a single layer.
const MaxWidth = nn.MaxWidth

// MaxWeights bounds the size of a single layer's weight matrix.
const MaxWeights = nn.MaxWeights

// ParseActivation converts a name such as "tanh" into an Activation.
func ParseActivation(name string) (Activation, error) {
	return nn.ParseActivation(name)
}

// Layers

// Dense represents a fully connected layer with an activation.
type Dense = nn.Dense

// NewDense creates a Dense layer with the given neuron and input counts.
//
// Example:
//
//	layer, err := nn.NewDense(128, 784, nn.ReLU) // 784 inputs, 128 neurons
func NewDense(neurons, inputs int, act Activation) (*Dense, error) {
	return nn.NewDense(neurons, inputs, act)
}

// Containers

// Network represents an ordered stack of Dense layers.
type Network = nn.Network

// NetworkConfig holds optional limits for a Network.
type NetworkConfig = nn.NetworkConfig

// NewNetwork creates an empty, unbounded Network.
func NewNetwork() *Network {
	return nn.NewNetwork()
}

// NewNetworkWithConfig creates an empty Network with the given limits.
//
// Example:
//
//	net := nn.NewNetworkWithConfig(nn.NetworkConfig{MaxLayers: 100})
func NewNetworkWithConfig(config NetworkConfig) *Network {
	return nn.NewNetworkWithConfig(config)
}

// Loss functions

// MSELoss is the summed squared-error loss used for training.
type MSELoss = nn.MSELoss

// Errors

// Errors returned by layer and network construction and use.
var (
	ErrInvalidDimension  = nn.ErrInvalidDimension
	ErrInvalidActivation = nn.ErrInvalidActivation
	ErrCapacityExceeded  = nn.ErrCapacityExceeded
	ErrDimensionMismatch = nn.ErrDimensionMismatch
	ErrNotPrimed         = nn.ErrNotPrimed
	ErrEmptyNetwork      = nn.ErrEmptyNetwork
)
