package optim

import (
	"fmt"
	"math"
	"time"

	"github.com/born-ml/dense/internal/nn"
)

// SGD trains a network with online stochastic gradient descent.
//
// Every sample is one update: forward pass, squared-error loss, gradient
// 2·(pred - target) seeded at the output, then Backward on every layer from
// last to first. Samples are visited in dataset order on every epoch; there
// is no shuffling, batching, momentum, or early stopping.
//
// Update rule for each layer (see nn.Dense.Backward):
//
//	param = param - lr * gradient
//
// Example:
//
//	trainer := optim.NewSGD(optim.SGDConfig{LR: 0.1, Epochs: 500})
//	history, err := trainer.Train(net, inputs, targets)
//	fmt.Println("final loss:", history[len(history)-1])
type SGD struct {
	lr          float64
	epochs      int
	reportEvery int
	checkFinite bool
	progress    ProgressFunc

	loss nn.MSELoss
	next []float64 // gradient flowing into the current layer
	prev []float64 // gradient produced for the previous layer
	errs []float64
}

// SGDConfig holds configuration for the SGD trainer.
//
// LR and Epochs are used exactly as given: LR 0 leaves parameters unchanged
// and Epochs 0 runs no epoch. Start from DefaultSGDConfig for the usual
// values.
type SGDConfig struct {
	LR          float64      // Learning rate
	Epochs      int          // Passes over the dataset
	ReportEvery int          // Progress cadence in epochs (default: 100)
	CheckFinite bool         // Stop with ErrNumericalInstability on NaN/Inf epoch loss
	Progress    ProgressFunc // Optional progress sink
}

// DefaultSGDConfig returns a config with LR 0.01, one epoch and progress
// every 100 epochs.
func DefaultSGDConfig() SGDConfig {
	return SGDConfig{
		LR:          0.01,
		Epochs:      1,
		ReportEvery: 100,
	}
}

// NewSGD creates a new SGD trainer.
//
// A zero ReportEvery takes its default. Negative epochs and a negative or
// non-finite learning rate are reported by Train as ErrInvalidConfig.
func NewSGD(config SGDConfig) *SGD {
	if config.ReportEvery <= 0 {
		config.ReportEvery = 100
	}

	return &SGD{
		lr:          config.LR,
		epochs:      config.Epochs,
		reportEvery: config.ReportEvery,
		checkFinite: config.CheckFinite,
		progress:    config.Progress,
	}
}

// LR returns the learning rate.
func (s *SGD) LR() float64 {
	return s.lr
}

// Epochs returns the configured number of epochs.
func (s *SGD) Epochs() int {
	return s.epochs
}

// Train runs the configured number of epochs over inputs/targets and returns
// the loss of every epoch.
//
// Epoch loss is Σ_samples Σ_outputs (pred - target)² divided by the sample
// count. Progress, if set, is called after epoch 1, every ReportEvery
// epochs, and after the last epoch.
//
// Returns ErrInvalidConfig, ErrEmptyNetwork, ErrNoSamples,
// ErrSampleMismatch or ErrDimensionMismatch before touching the network.
// Zero epochs validate the data and return an empty history. With CheckFinite, returns ErrNumericalInstability together with the
// history up to and including the offending epoch.
func (s *SGD) Train(net *nn.Network, inputs, targets [][]float64) ([]float64, error) {
	if s.epochs < 0 {
		return nil, fmt.Errorf("%w: epochs %d", ErrInvalidConfig, s.epochs)
	}
	if s.lr < 0 || math.IsNaN(s.lr) || math.IsInf(s.lr, 0) {
		return nil, fmt.Errorf("%w: learning rate %v", ErrInvalidConfig, s.lr)
	}
	if err := validate(net, inputs, targets); err != nil {
		return nil, err
	}

	history := make([]float64, 0, s.epochs)
	start := time.Now()

	for epoch := 0; epoch < s.epochs; epoch++ {
		total := 0.0
		for i := range inputs {
			loss, err := s.Step(net, inputs[i], targets[i])
			if err != nil {
				return history, fmt.Errorf("epoch %d sample %d: %w", epoch+1, i, err)
			}
			total += loss
		}

		epochLoss := total / float64(len(inputs))
		history = append(history, epochLoss)

		if s.progress != nil && (epoch == 0 || (epoch+1)%s.reportEvery == 0 || epoch == s.epochs-1) {
			s.progress(s.stats(epoch, epochLoss, time.Since(start)))
		}

		if s.checkFinite && (math.IsNaN(epochLoss) || math.IsInf(epochLoss, 0)) {
			return history, fmt.Errorf("%w: epoch %d loss %v", ErrNumericalInstability, epoch+1, epochLoss)
		}
	}

	return history, nil
}

// Step performs one online update with a single sample and returns the
// sample's summed squared error, measured before the update.
func (s *SGD) Step(net *nn.Network, input, target []float64) (float64, error) {
	pred, err := net.Forward(input)
	if err != nil {
		return 0, err
	}
	if len(target) != len(pred) {
		return 0, fmt.Errorf("%w: target has %d values, network outputs %d",
			nn.ErrDimensionMismatch, len(target), len(pred))
	}

	s.ensureBuffers(net.MaxWidth())

	errs := s.errs[:len(pred)]
	loss := s.loss.Forward(pred, target, errs)
	s.loss.Backward(s.next[:len(pred)], errs)

	for l := net.Len() - 1; l >= 0; l-- {
		layer := net.Layer(l)
		if err := layer.Backward(s.next, s.prev, s.lr); err != nil {
			return 0, fmt.Errorf("layer %d: %w", l, err)
		}
		s.next, s.prev = s.prev, s.next
	}

	return loss, nil
}

// ensureBuffers sizes the two gradient buffers to the widest layer.
func (s *SGD) ensureBuffers(width int) {
	if len(s.next) >= width {
		return
	}
	s.next = make([]float64, width)
	s.prev = make([]float64, width)
	s.errs = make([]float64, width)
}

func (s *SGD) stats(epoch int, loss float64, elapsed time.Duration) EpochStats {
	done := epoch + 1
	perEpoch := elapsed / time.Duration(done)
	return EpochStats{
		Epoch:   done,
		Epochs:  s.epochs,
		Loss:    loss,
		Elapsed: elapsed,
		ETA:     perEpoch * time.Duration(s.epochs-done),
	}
}

// validate checks the sample set against the network before training.
func validate(net *nn.Network, inputs, targets [][]float64) error {
	if net.Len() == 0 {
		return nn.ErrEmptyNetwork
	}
	if len(inputs) == 0 {
		return ErrNoSamples
	}
	if len(inputs) != len(targets) {
		return fmt.Errorf("%w: %d inputs, %d targets", ErrSampleMismatch, len(inputs), len(targets))
	}

	in, out := net.InputSize(), net.OutputSize()
	for i := range inputs {
		if len(inputs[i]) != in {
			return fmt.Errorf("%w: sample %d input has %d values, network expects %d",
				nn.ErrDimensionMismatch, i, len(inputs[i]), in)
		}
		if len(targets[i]) != out {
			return fmt.Errorf("%w: sample %d target has %d values, network outputs %d",
				nn.ErrDimensionMismatch, i, len(targets[i]), out)
		}
	}
	return nil
}
