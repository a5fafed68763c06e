package nn

import (
	"fmt"
	"math/rand"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// MaxWidth bounds the neuron and input counts of a single layer.
//
// It is not a storage limit: layers allocate exactly what they declare.
// It keeps a damaged model file from requesting an absurd allocation.
const MaxWidth = 1 << 20

// MaxWeights bounds the size of a single layer's weight matrix.
const MaxWeights = 1 << 28

// Dense implements a fully connected layer with an activation.
//
// Performs the transformation: y = f(W·x + b)
// where:
//   - x is the input vector of length InFeatures
//   - W is the weight matrix with shape [OutFeatures, InFeatures]
//   - b is the bias vector of length OutFeatures
//   - f is the layer's Activation, applied elementwise
//
// A Dense layer remembers the input and output of its most recent Forward call.
// Backward consumes that state, so Forward and Backward must alternate on the
// same sample; a layer must not be shared by concurrent callers.
//
// Example:
//
//	layer, err := nn.NewDense(4, 1, nn.Tanh) // 1 input, 4 neurons
//	if err != nil {
//	    return err
//	}
//	layer.InitUniform(rand.New(rand.NewSource(42)))
//	out := layer.Forward([]float64{0.5})
type Dense struct {
	inFeatures  int
	outFeatures int
	activation  Activation
	weight      *mat.Dense // [out_features, in_features]
	bias        []float64  // [out_features]

	lastInput  []float64 // [in_features]
	lastOutput []float64 // [out_features]
	primed     bool
}

// NewDense creates a Dense layer with the given number of neurons (output width)
// and inputs per neuron.
//
// Weights and biases start at zero. Call InitUniform, or fill them through
// WeightRow and Bias when restoring a saved model.
//
// Returns ErrInvalidDimension if either count is not in [1, MaxWidth] or the
// weight matrix would exceed MaxWeights entries, and
// ErrInvalidActivation if act is not a supported activation.
func NewDense(neurons, inputs int, act Activation) (*Dense, error) {
	if err := ValidateDense(neurons, inputs, act); err != nil {
		return nil, err
	}

	return &Dense{
		inFeatures:  inputs,
		outFeatures: neurons,
		activation:  act,
		weight:      mat.NewDense(neurons, inputs, nil),
		bias:        make([]float64, neurons),
		lastInput:   make([]float64, inputs),
		lastOutput:  make([]float64, neurons),
	}, nil
}

// ValidateDense reports whether NewDense would accept the given shape and
// activation, without allocating the layer.
func ValidateDense(neurons, inputs int, act Activation) error {
	if neurons <= 0 || neurons > MaxWidth || inputs <= 0 || inputs > MaxWidth {
		return fmt.Errorf("%w: neurons=%d inputs=%d (allowed 1..%d)",
			ErrInvalidDimension, neurons, inputs, MaxWidth)
	}
	if int64(neurons)*int64(inputs) > MaxWeights {
		return fmt.Errorf("%w: %dx%d exceeds %d weights", ErrInvalidDimension, neurons, inputs, MaxWeights)
	}
	if !act.Valid() {
		return fmt.Errorf("%w: code %d", ErrInvalidActivation, int32(act))
	}
	return nil
}

// InitUniform draws every bias and weight uniformly from [-1, 1).
//
// Values are drawn neuron by neuron, bias first, then the neuron's weight row,
// so a fixed seed always reproduces the same layer.
func (d *Dense) InitUniform(rng *rand.Rand) {
	for j := 0; j < d.outFeatures; j++ {
		Uniform(rng, -1, 1, d.bias[j:j+1])
		Uniform(rng, -1, 1, d.weight.RawRowView(j))
	}
}

// Forward computes the layer output for a single input vector.
//
// For each neuron j: out[j] = f(b[j] + Σ_i W[j][i]·input[i]).
//
// The returned slice is owned by the layer and is overwritten by the next
// Forward call; copy it to keep it. input is copied, so it may alias the
// output of the previous layer.
//
// Panics if len(input) != InFeatures.
func (d *Dense) Forward(input []float64) []float64 {
	if len(input) != d.inFeatures {
		panic(fmt.Sprintf("Dense.Forward: expected input with %d features, got %d", d.inFeatures, len(input)))
	}

	copy(d.lastInput, input)
	for j := 0; j < d.outFeatures; j++ {
		row := d.weight.RawRowView(j)
		sum := d.bias[j]
		for i, w := range row {
			sum += w * d.lastInput[i]
		}
		d.lastOutput[j] = d.activation.Apply(sum)
	}
	d.primed = true

	return d.lastOutput
}

// Backward applies one gradient descent step to the layer and writes the
// gradient with respect to the layer input into inputGrad.
//
// outputGrad holds ∂L/∂out for the last Forward call; only its first
// OutFeatures entries are read. The first InFeatures entries of inputGrad are
// zeroed and then accumulated; inputGrad must not alias outputGrad.
//
// For each neuron j, with delta = outputGrad[j]·f'(out[j]):
//
//	b[j]       -= lr·delta
//	inputGrad[i] += delta·W[j][i]
//	W[j][i]    -= lr·(in[i]·delta)
//
// The input gradient reads W[j][i] just before that same weight is updated,
// and rows of earlier neurons are already updated when later rows are read.
// This is the usual first-order approximation of sequential online
// backpropagation, not an exact Jacobian transpose.
//
// Returns ErrNotPrimed if Forward has never been called, and
// ErrDimensionMismatch if either buffer is too short.
func (d *Dense) Backward(outputGrad, inputGrad []float64, lr float64) error {
	if !d.primed {
		return ErrNotPrimed
	}
	if len(outputGrad) < d.outFeatures {
		return fmt.Errorf("%w: output gradient has %d entries, layer has %d neurons",
			ErrDimensionMismatch, len(outputGrad), d.outFeatures)
	}
	if len(inputGrad) < d.inFeatures {
		return fmt.Errorf("%w: input gradient has %d entries, layer has %d inputs",
			ErrDimensionMismatch, len(inputGrad), d.inFeatures)
	}

	inputGrad = inputGrad[:d.inFeatures]
	for i := range inputGrad {
		inputGrad[i] = 0
	}

	for j := 0; j < d.outFeatures; j++ {
		delta := outputGrad[j] * d.activation.Derivative(d.lastOutput[j])
		d.bias[j] -= delta * lr

		row := d.weight.RawRowView(j)
		for i := range row {
			inputGrad[i] += delta * row[i]
			row[i] -= d.lastInput[i] * delta * lr
		}
	}

	return nil
}

// InFeatures returns the number of inputs per neuron.
func (d *Dense) InFeatures() int {
	return d.inFeatures
}

// OutFeatures returns the number of neurons.
func (d *Dense) OutFeatures() int {
	return d.outFeatures
}

// Activation returns the layer activation.
func (d *Dense) Activation() Activation {
	return d.activation
}

// Weights returns the live weight matrix with shape [OutFeatures, InFeatures].
func (d *Dense) Weights() *mat.Dense {
	return d.weight
}

// WeightRow returns the live weights of neuron j.
func (d *Dense) WeightRow(j int) []float64 {
	return d.weight.RawRowView(j)
}

// Bias returns the live bias vector.
func (d *Dense) Bias() []float64 {
	return d.bias
}

// LastInput returns the input recorded by the most recent Forward call.
func (d *Dense) LastInput() []float64 {
	return d.lastInput
}

// LastOutput returns the output produced by the most recent Forward call.
func (d *Dense) LastOutput() []float64 {
	return d.lastOutput
}

// Primed reports whether Forward has been called at least once.
func (d *Dense) Primed() bool {
	return d.primed
}

// NumParameters returns the number of trainable values (weights plus biases).
func (d *Dense) NumParameters() int {
	return d.outFeatures*d.inFeatures + d.outFeatures
}

// String describes the layer and lists every neuron's bias and weights.
func (d *Dense) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Dense(in=%d, out=%d, activation=%s)\n", d.inFeatures, d.outFeatures, d.activation)
	for j := 0; j < d.outFeatures; j++ {
		fmt.Fprintf(&sb, "  neuron %d: bias=%f weights=[", j, d.bias[j])
		for i, w := range d.weight.RawRowView(j) {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%f", w)
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
