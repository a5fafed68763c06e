package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allActivations = []Activation{ReLU, Sigmoid, Tanh, LeakyReLU, Identity}

// TestActivationApply tests forward values of every activation.
func TestActivationApply(t *testing.T) {
	tests := []struct {
		act  Activation
		x    float64
		want float64
	}{
		{Identity, -3.5, -3.5},
		{Identity, 2, 2},
		{ReLU, -2, 0},
		{ReLU, 0, 0},
		{ReLU, 1.5, 1.5},
		{Sigmoid, 0, 0.5},
		{Sigmoid, 2, 1 / (1 + math.Exp(-2))},
		{Tanh, 0, 0},
		{Tanh, -1, math.Tanh(-1)},
		{LeakyReLU, 3, 3},
		{LeakyReLU, -2, -0.02},
		{LeakyReLU, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.act.String(), func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.act.Apply(tt.x), 1e-12, "%s(%v)", tt.act, tt.x)
		})
	}
}

// TestActivationDerivative tests the output-based derivatives at fixed points.
func TestActivationDerivative(t *testing.T) {
	assert.Equal(t, 1.0, Identity.Derivative(-7))
	assert.Equal(t, 1.0, ReLU.Derivative(0.3))
	assert.Equal(t, 0.0, ReLU.Derivative(0))
	assert.Equal(t, 0.25, Sigmoid.Derivative(0.5))
	assert.Equal(t, 1.0, Tanh.Derivative(0))
	assert.InDelta(t, 0.75, Tanh.Derivative(0.5), 1e-15)
	assert.Equal(t, 1.0, LeakyReLU.Derivative(2))
	assert.Equal(t, 0.01, LeakyReLU.Derivative(-0.02))
}

// TestActivationDerivativeMatchesFiniteDifference checks f'(x) computed from f(x)
// against a central difference of Apply, away from the ReLU kinks.
func TestActivationDerivativeMatchesFiniteDifference(t *testing.T) {
	const h = 1e-6
	points := []float64{-2.3, -0.7, 0.4, 1.9}

	for _, act := range allActivations {
		for _, x := range points {
			numeric := (act.Apply(x+h) - act.Apply(x-h)) / (2 * h)
			analytic := act.Derivative(act.Apply(x))
			assert.InDelta(t, numeric, analytic, 1e-6, "%s at x=%v", act, x)
		}
	}
}

// TestActivationCodes pins the on-disk ordinals.
func TestActivationCodes(t *testing.T) {
	assert.Equal(t, Activation(0), ReLU)
	assert.Equal(t, Activation(1), Sigmoid)
	assert.Equal(t, Activation(2), Tanh)
	assert.Equal(t, Activation(3), LeakyReLU)
	assert.Equal(t, Activation(4), Identity)

	assert.False(t, Activation(5).Valid())
	assert.False(t, Activation(-1).Valid())
	assert.Equal(t, "activation(9)", Activation(9).String())
}

func TestParseActivation(t *testing.T) {
	tests := []struct {
		in   string
		want Activation
	}{
		{"relu", ReLU},
		{"Sigmoid", Sigmoid},
		{" TANH ", Tanh},
		{"leakyrelu", LeakyReLU},
		{"leaky_relu", LeakyReLU},
		{"identity", Identity},
		{"linear", Identity},
		{"", Identity},
	}
	for _, tt := range tests {
		got, err := ParseActivation(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, act := range allActivations {
		got, err := ParseActivation(act.String())
		require.NoError(t, err)
		assert.Equal(t, act, got)
	}

	_, err := ParseActivation("softmax")
	assert.ErrorIs(t, err, ErrInvalidActivation)
}
