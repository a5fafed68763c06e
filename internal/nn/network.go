// Package nn implements the dense feed-forward network core.
//
// This package provides:
//   - Activation: ReLU, Sigmoid, Tanh, LeakyReLU, Identity with output-based derivatives
//   - Dense: fully connected layer with in-place gradient descent Backward
//   - Network: ordered stack of Dense layers with validated widths
//
// Training loops live in internal/optim and model files in internal/serialization.
package nn

import (
	"fmt"
	"math/rand"
	"strings"
)

// NetworkConfig holds optional limits for a Network.
type NetworkConfig struct {
	MaxLayers int // Maximum number of layers (default: 0, unbounded)
}

// Network is an ordered stack of Dense layers.
//
// Each layer's output becomes the next layer's input. Add rejects a layer
// whose input width differs from the current last layer's neuron count, so a
// Network is always internally consistent.
//
// Example:
//
//	net := nn.NewNetwork()
//	hidden, _ := nn.NewDense(10, 1, nn.Tanh)
//	output, _ := nn.NewDense(1, 10, nn.Tanh)
//	if err := net.Add(hidden, output); err != nil {
//	    return err
//	}
//	net.InitUniform(rand.New(rand.NewSource(1)))
//	y, err := net.Predict([]float64{0.5})
type Network struct {
	layers    []*Dense
	maxLayers int
}

// NewNetwork creates an empty, unbounded Network.
func NewNetwork() *Network {
	return &Network{}
}

// NewNetworkWithConfig creates an empty Network with the given limits.
func NewNetworkWithConfig(config NetworkConfig) *Network {
	return &Network{maxLayers: config.MaxLayers}
}

// Add appends layers in execution order.
//
// Either every layer is appended or, on error, none is and the network is
// left unchanged.
//
// Returns ErrCapacityExceeded if a MaxLayers limit would be exceeded and
// ErrDimensionMismatch if a layer's InFeatures does not match the preceding
// layer's OutFeatures.
func (n *Network) Add(layers ...*Dense) error {
	prevOut := n.OutputSize()
	for k, layer := range layers {
		index := len(n.layers) + k
		if layer == nil {
			return fmt.Errorf("%w: layer %d is nil", ErrInvalidDimension, index)
		}
		if n.maxLayers > 0 && index >= n.maxLayers {
			return fmt.Errorf("%w: limit is %d", ErrCapacityExceeded, n.maxLayers)
		}
		if index > 0 && prevOut != layer.InFeatures() {
			return fmt.Errorf("%w: layer %d outputs %d values, layer %d expects %d",
				ErrDimensionMismatch, index-1, prevOut, index, layer.InFeatures())
		}
		prevOut = layer.OutFeatures()
	}
	n.layers = append(n.layers, layers...)
	return nil
}

// InitUniform initializes every layer from rng in layer order.
func (n *Network) InitUniform(rng *rand.Rand) {
	for _, layer := range n.layers {
		layer.InitUniform(rng)
	}
}

// Predict runs input through every layer in order and returns a copy of the
// final output.
//
// Returns ErrEmptyNetwork for a network without layers and
// ErrDimensionMismatch if len(input) != InputSize.
func (n *Network) Predict(input []float64) ([]float64, error) {
	out, err := n.forward(input)
	if err != nil {
		return nil, err
	}
	result := make([]float64, len(out))
	copy(result, out)
	return result, nil
}

// Forward runs input through every layer and returns the last layer's live
// output buffer. It is valid until the next Forward or Predict call.
func (n *Network) Forward(input []float64) ([]float64, error) {
	return n.forward(input)
}

func (n *Network) forward(input []float64) ([]float64, error) {
	if len(n.layers) == 0 {
		return nil, ErrEmptyNetwork
	}
	if len(input) != n.layers[0].InFeatures() {
		return nil, fmt.Errorf("%w: input has %d values, network expects %d",
			ErrDimensionMismatch, len(input), n.layers[0].InFeatures())
	}

	output := input
	for _, layer := range n.layers {
		output = layer.Forward(output)
	}
	return output, nil
}

// Len returns the number of layers.
func (n *Network) Len() int {
	return len(n.layers)
}

// Layer returns the layer at the given index.
//
// Panics if index is out of bounds.
func (n *Network) Layer(index int) *Dense {
	if index < 0 || index >= len(n.layers) {
		panic("Network.Layer: index out of bounds")
	}
	return n.layers[index]
}

// Layers returns the layers in execution order. The slice is a copy; the
// layers are not.
func (n *Network) Layers() []*Dense {
	layers := make([]*Dense, len(n.layers))
	copy(layers, n.layers)
	return layers
}

// InputSize returns the first layer's input width, or 0 for an empty network.
func (n *Network) InputSize() int {
	if len(n.layers) == 0 {
		return 0
	}
	return n.layers[0].InFeatures()
}

// OutputSize returns the last layer's neuron count, or 0 for an empty network.
func (n *Network) OutputSize() int {
	if len(n.layers) == 0 {
		return 0
	}
	return n.layers[len(n.layers)-1].OutFeatures()
}

// MaxWidth returns the largest input or output width of any layer.
// Gradient buffers of this size fit every layer.
func (n *Network) MaxWidth() int {
	width := 0
	for _, layer := range n.layers {
		width = max(width, layer.InFeatures(), layer.OutFeatures())
	}
	return width
}

// NumParameters returns the total number of weights and biases.
func (n *Network) NumParameters() int {
	total := 0
	for _, layer := range n.layers {
		total += layer.NumParameters()
	}
	return total
}

// Summary returns a one-line-per-layer description of the network.
func (n *Network) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Network: %d layers, %d parameters\n", len(n.layers), n.NumParameters())
	for i, layer := range n.layers {
		fmt.Fprintf(&sb, "  [%d] Dense %d -> %d (%s)\n", i, layer.InFeatures(), layer.OutFeatures(), layer.Activation())
	}
	return sb.String()
}
