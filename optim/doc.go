// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the training loop for dense networks.
//
// Training is online stochastic gradient descent: one parameter update per
// sample, samples visited in dataset order, squared-error loss. There is no
// batching, shuffling, momentum, or early stopping.
//
// # Basic Usage
//
//	trainer := optim.NewSGD(optim.SGDConfig{
//	    LR:          0.05,
//	    Epochs:      10000,
//	    ReportEvery: 100,
//	    Progress: func(s optim.EpochStats) {
//	        fmt.Printf("Epoch %d/%d - Loss (MSE): %f\n", s.Epoch, s.Epochs, s.Loss)
//	    },
//	})
//	history, err := trainer.Train(net, inputs, targets)
//
// # Evaluation
//
//	m, err := optim.Evaluate(net, testInputs, testTargets)
//	fmt.Printf("loss=%f accuracy=%.2f%%\n", m.Loss, 100*m.Accuracy)
package optim
