package nn

import (
	"fmt"
	"math"
	"strings"
)

// Activation selects the elementwise nonlinearity applied by a Dense layer.
//
// The numeric values are the codes written to model files and must not be
// reordered.
type Activation int32

// Supported activations.
const (
	ReLU      Activation = 0
	Sigmoid   Activation = 1
	Tanh      Activation = 2
	LeakyReLU Activation = 3
	Identity  Activation = 4
)

// LeakySlope is the negative-side slope of LeakyReLU.
const LeakySlope = 0.01

var activationNames = map[Activation]string{
	ReLU:      "relu",
	Sigmoid:   "sigmoid",
	Tanh:      "tanh",
	LeakyReLU: "leakyrelu",
	Identity:  "identity",
}

// ParseActivation converts a name such as "tanh" or "LeakyReLU" into an Activation.
//
// "linear" and "none" are accepted as aliases of Identity.
func ParseActivation(name string) (Activation, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "linear", "none", "":
		return Identity, nil
	case "leaky_relu", "leaky-relu":
		return LeakyReLU, nil
	}
	for act, n := range activationNames {
		if n == key {
			return act, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidActivation, name)
}

// Valid reports whether a is one of the supported activations.
func (a Activation) Valid() bool {
	_, ok := activationNames[a]
	return ok
}

// String returns the lower-case activation name.
func (a Activation) String() string {
	if n, ok := activationNames[a]; ok {
		return n
	}
	return fmt.Sprintf("activation(%d)", int32(a))
}

// Apply computes f(x).
//
//   - ReLU:      max(0, x)
//   - Sigmoid:   1 / (1 + exp(-x))
//   - Tanh:      tanh(x)
//   - LeakyReLU: x if x > 0, else 0.01 * x
//   - Identity:  x
func (a Activation) Apply(x float64) float64 {
	switch a {
	case ReLU:
		if x > 0 {
			return x
		}
		return 0
	case Sigmoid:
		return 1.0 / (1.0 + math.Exp(-x))
	case Tanh:
		return math.Tanh(x)
	case LeakyReLU:
		if x > 0 {
			return x
		}
		return LeakySlope * x
	default:
		return x
	}
}

// Derivative computes f'(x) from the activation output y = f(x).
//
// Every supported function has a derivative expressible from its own output,
// so layers only need to keep the output of the last forward pass:
//
//   - ReLU:      1 if y > 0, else 0
//   - Sigmoid:   y * (1 - y)
//   - Tanh:      1 - y²
//   - LeakyReLU: 1 if y > 0, else 0.01
//   - Identity:  1
func (a Activation) Derivative(y float64) float64 {
	switch a {
	case ReLU:
		if y > 0 {
			return 1
		}
		return 0
	case Sigmoid:
		return y * (1.0 - y)
	case Tanh:
		return 1.0 - y*y
	case LeakyReLU:
		if y > 0 {
			return 1
		}
		return LeakySlope
	default:
		return 1
	}
}
