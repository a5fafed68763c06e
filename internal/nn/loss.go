package nn

import (
	"gonum.org/v1/gonum/floats"
)

// MSELoss is the squared-error loss used for online training.
//
// For one sample the loss is the sum over output neurons of (pred - target)²,
// not divided by the output width. Averaging over samples is the caller's job
// (see optim.SGD), giving the usual per-epoch mean squared error.
//
// Example:
//
//	var loss nn.MSELoss
//	l := loss.Forward(pred, target, errBuf)
//	loss.Backward(grad, errBuf)
type MSELoss struct{}

// Forward writes pred - target into errs and returns Σ errs².
//
// errs must have len(pred) entries; pred and target must have equal length.
func (MSELoss) Forward(pred, target, errs []float64) float64 {
	floats.SubTo(errs, pred, target)
	return floats.Dot(errs, errs)
}

// Backward writes ∂loss/∂pred = 2·errs into grad.
func (MSELoss) Backward(grad, errs []float64) {
	floats.ScaleTo(grad, 2.0, errs)
}
