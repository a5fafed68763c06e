// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides dense feed-forward networks.
//
// # Overview
//
// This package contains:
//   - Dense: fully connected layer y = f(W·x + b) with in-place SGD Backward
//   - Activations: ReLU, Sigmoid, Tanh, LeakyReLU, Identity
//   - Network: ordered stack of Dense layers with width checks
//   - MSELoss: squared-error loss and its gradient
//
// # Basic Usage
//
//	import (
//	    "math/rand"
//
//	    "github.com/born-ml/dense/nn"
//	)
//
//	func main() {
//	    hidden, _ := nn.NewDense(10, 1, nn.Tanh)
//	    output, _ := nn.NewDense(1, 10, nn.Tanh)
//
//	    net := nn.NewNetwork()
//	    if err := net.Add(hidden, output); err != nil {
//	        panic(err)
//	    }
//	    net.InitUniform(rand.New(rand.NewSource(1)))
//
//	    y, _ := net.Predict([]float64{0.5})
//	}
//
// # Activations
//
// Derivatives are computed from the activation output rather than the
// pre-activation sum, so a layer only keeps its last input and output.
//
// # Buffers
//
// Dense.Forward and Network.Forward return buffers owned by the layer that are
// overwritten by the next call. Network.Predict returns a copy.
package nn
