package optim

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/dense/internal/nn"
)

func newNetwork(t *testing.T, act nn.Activation, seed int64, widths ...int) *nn.Network {
	t.Helper()
	net := nn.NewNetwork()
	for i := 1; i < len(widths); i++ {
		layer, err := nn.NewDense(widths[i], widths[i-1], act)
		require.NoError(t, err)
		require.NoError(t, net.Add(layer))
	}
	net.InitUniform(rand.New(rand.NewSource(seed)))
	return net
}

func TestNewSGDConfig(t *testing.T) {
	sgd := NewSGD(DefaultSGDConfig())
	assert.Equal(t, 0.01, sgd.LR())
	assert.Equal(t, 1, sgd.Epochs())

	sgd = NewSGD(SGDConfig{LR: 0.3, Epochs: 12})
	assert.Equal(t, 0.3, sgd.LR())
	assert.Equal(t, 12, sgd.Epochs())

	sgd = NewSGD(SGDConfig{})
	assert.Equal(t, 0.0, sgd.LR())
	assert.Equal(t, 0, sgd.Epochs())
}

func snapshot(net *nn.Network) [][]float64 {
	var params [][]float64
	for _, layer := range net.Layers() {
		params = append(params, append([]float64(nil), layer.Bias()...))
		params = append(params, append([]float64(nil), layer.Weights().RawMatrix().Data...))
	}
	return params
}

// TestSGDZeroConfigLeavesNetwork tests that explicit zero epochs or a zero
// learning rate are honored rather than replaced by defaults.
func TestSGDZeroConfigLeavesNetwork(t *testing.T) {
	inputs := [][]float64{{0.1, 0.9}, {0.8, 0.3}}
	targets := [][]float64{{0.5}, {-0.5}}

	tests := []struct {
		name       string
		config     SGDConfig
		historyLen int
	}{
		{"zero epochs", SGDConfig{LR: 0.1, Epochs: 0}, 0},
		{"zero learning rate", SGDConfig{LR: 0, Epochs: 3}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net := newNetwork(t, nn.Tanh, 5, 2, 3, 1)
			before := snapshot(net)

			history, err := NewSGD(tt.config).Train(net, inputs, targets)
			require.NoError(t, err)
			assert.Len(t, history, tt.historyLen)
			assert.Equal(t, before, snapshot(net))
		})
	}
}

func TestSGDInvalidConfig(t *testing.T) {
	inputs := [][]float64{{0.5}}
	targets := [][]float64{{0.1}}

	tests := []struct {
		name   string
		config SGDConfig
	}{
		{"negative epochs", SGDConfig{LR: 0.1, Epochs: -1}},
		{"negative learning rate", SGDConfig{LR: -0.1, Epochs: 1}},
		{"NaN learning rate", SGDConfig{LR: math.NaN(), Epochs: 1}},
		{"infinite learning rate", SGDConfig{LR: math.Inf(1), Epochs: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net := newNetwork(t, nn.Tanh, 1, 1, 2, 1)
			before := snapshot(net)

			history, err := NewSGD(tt.config).Train(net, inputs, targets)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Nil(t, history)
			assert.Equal(t, before, snapshot(net))
		})
	}
}

// TestSGDSingleStepArithmetic pins the exact update of a 1→4(tanh)→1(tanh)
// network trained for one epoch on input 0.5, target 0.8, lr 0.1.
func TestSGDSingleStepArithmetic(t *testing.T) {
	const (
		x      = 0.5
		target = 0.8
		lr     = 0.1
	)
	net := newNetwork(t, nn.Tanh, 2024, 1, 4, 1)
	hidden, output := net.Layer(0), net.Layer(1)

	// Snapshot the starting parameters.
	var w1, b1, w2 [4]float64
	for j := 0; j < 4; j++ {
		w1[j] = hidden.WeightRow(j)[0]
		b1[j] = hidden.Bias()[j]
		w2[j] = output.WeightRow(0)[j]
	}
	b2 := output.Bias()[0]

	// Forward.
	var h [4]float64
	for j := 0; j < 4; j++ {
		h[j] = math.Tanh(b1[j] + w1[j]*x)
	}
	sum := b2
	for j := 0; j < 4; j++ {
		sum += w2[j] * h[j]
	}
	o := math.Tanh(sum)

	// Loss and seed gradient.
	e := o - target
	g := 2 * e

	// Output layer backward.
	d2 := g * (1 - o*o)
	b2 -= d2 * lr
	var gin [4]float64
	for j := 0; j < 4; j++ {
		gin[j] += d2 * w2[j]
		w2[j] -= h[j] * d2 * lr
	}

	// Hidden layer backward.
	for j := 0; j < 4; j++ {
		d1 := gin[j] * (1 - h[j]*h[j])
		b1[j] -= d1 * lr
		w1[j] -= x * d1 * lr
	}

	history, err := NewSGD(SGDConfig{LR: lr, Epochs: 1}).Train(net, [][]float64{{x}}, [][]float64{{target}})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, e*e, history[0])

	for j := 0; j < 4; j++ {
		assert.Equal(t, w1[j], hidden.WeightRow(j)[0], "hidden weight %d", j)
		assert.Equal(t, b1[j], hidden.Bias()[j], "hidden bias %d", j)
		assert.Equal(t, w2[j], output.WeightRow(0)[j], "output weight %d", j)
	}
	assert.Equal(t, b2, output.Bias()[0], "output bias")
}

// TestSGDLossDecreases trains a sigmoid neuron on a linearly separable set.
func TestSGDLossDecreases(t *testing.T) {
	net := newNetwork(t, nn.Sigmoid, 7, 2, 1)
	inputs := [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	targets := [][]float64{{0}, {0}, {0}, {1}}

	history, err := NewSGD(SGDConfig{LR: 0.5, Epochs: 300}).Train(net, inputs, targets)
	require.NoError(t, err)
	require.Len(t, history, 300)
	assert.Less(t, history[len(history)-1], history[0])

	m, err := Evaluate(net, inputs, targets)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Samples)
	assert.InDelta(t, history[len(history)-1], m.Loss, 0.05)
}

// TestSGDLearnsXOR checks that hidden layers receive useful gradients.
func TestSGDLearnsXOR(t *testing.T) {
	net := newNetwork(t, nn.Tanh, 3, 2, 8, 1)
	inputs := [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	targets := [][]float64{{-0.8}, {0.8}, {0.8}, {-0.8}}

	history, err := NewSGD(SGDConfig{LR: 0.05, Epochs: 2000}).Train(net, inputs, targets)
	require.NoError(t, err)
	assert.Less(t, history[len(history)-1], 0.5*history[0])
}

// TestSGDStepMatchesTrain tests that Train is a loop of Step calls.
func TestSGDStepMatchesTrain(t *testing.T) {
	inputs := [][]float64{{0.1, 0.9}, {0.7, -0.3}, {-0.5, 0.5}}
	targets := [][]float64{{1, 0}, {0, 1}, {1, 1}}

	a := newNetwork(t, nn.Sigmoid, 42, 2, 5, 2)
	b := newNetwork(t, nn.Sigmoid, 42, 2, 5, 2)

	_, err := NewSGD(SGDConfig{LR: 0.2, Epochs: 3}).Train(a, inputs, targets)
	require.NoError(t, err)

	sgd := NewSGD(SGDConfig{LR: 0.2})
	for epoch := 0; epoch < 3; epoch++ {
		for i := range inputs {
			_, err := sgd.Step(b, inputs[i], targets[i])
			require.NoError(t, err)
		}
	}

	for l := 0; l < a.Len(); l++ {
		assert.Equal(t, a.Layer(l).Bias(), b.Layer(l).Bias())
		assert.Equal(t, a.Layer(l).Weights().RawMatrix().Data, b.Layer(l).Weights().RawMatrix().Data)
	}
}

// TestSGDMixedWidths exercises the gradient buffer hand-off across layers of
// different widths.
func TestSGDMixedWidths(t *testing.T) {
	net := newNetwork(t, nn.LeakyReLU, 5, 3, 9, 2, 6, 1)
	inputs := [][]float64{{1, 0, -1}, {0.5, 0.5, 0.5}}
	targets := [][]float64{{0.3}, {-0.2}}

	history, err := NewSGD(SGDConfig{LR: 0.001, Epochs: 5}).Train(net, inputs, targets)
	require.NoError(t, err)
	assert.Len(t, history, 5)
	for _, l := range history {
		assert.False(t, math.IsNaN(l))
	}
}

func TestSGDValidation(t *testing.T) {
	net := newNetwork(t, nn.Tanh, 1, 2, 1)
	sgd := NewSGD(SGDConfig{})

	tests := []struct {
		name    string
		net     *nn.Network
		inputs  [][]float64
		targets [][]float64
		want    error
	}{
		{"empty network", nn.NewNetwork(), [][]float64{{1}}, [][]float64{{1}}, nn.ErrEmptyNetwork},
		{"no samples", net, nil, nil, ErrNoSamples},
		{"count mismatch", net, [][]float64{{1, 2}}, [][]float64{{1}, {2}}, ErrSampleMismatch},
		{"input width", net, [][]float64{{1}}, [][]float64{{1}}, nn.ErrDimensionMismatch},
		{"target width", net, [][]float64{{1, 2}}, [][]float64{{1, 2}}, nn.ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := append([]float64(nil), net.Layer(0).Bias()...)
			history, err := sgd.Train(tt.net, tt.inputs, tt.targets)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, history)
			assert.Equal(t, before, net.Layer(0).Bias())
		})
	}
}

func TestSGDProgress(t *testing.T) {
	net := newNetwork(t, nn.Tanh, 1, 1, 3, 1)
	var epochs []int

	history, err := NewSGD(SGDConfig{
		LR:          0.01,
		Epochs:      250,
		ReportEvery: 100,
		Progress: func(s EpochStats) {
			epochs = append(epochs, s.Epoch)
			assert.Equal(t, 250, s.Epochs)
			assert.GreaterOrEqual(t, s.ETA, time.Duration(0))
		},
	}).Train(net, [][]float64{{0.5}}, [][]float64{{0.1}})
	require.NoError(t, err)

	assert.Len(t, history, 250)
	assert.Equal(t, []int{1, 100, 200, 250}, epochs)
}

// TestSGDCheckFinite tests that a diverging run is reported.
func TestSGDCheckFinite(t *testing.T) {
	net := newNetwork(t, nn.Identity, 1, 1, 4, 1)
	inputs := [][]float64{{10}, {-10}}
	targets := [][]float64{{100}, {-100}}

	history, err := NewSGD(SGDConfig{LR: 10, Epochs: 1000, CheckFinite: true}).Train(net, inputs, targets)
	assert.ErrorIs(t, err, ErrNumericalInstability)
	assert.NotEmpty(t, history)
	assert.Less(t, len(history), 1000)
}

func TestEvaluateAccuracy(t *testing.T) {
	net := nn.NewNetwork()
	layer, err := nn.NewDense(2, 2, nn.Identity)
	require.NoError(t, err)
	copy(layer.WeightRow(0), []float64{1, 0})
	copy(layer.WeightRow(1), []float64{0, 1})
	require.NoError(t, net.Add(layer))

	inputs := [][]float64{{1, 0}, {0, 1}, {0.2, 0.9}, {0.9, 0.2}}
	targets := [][]float64{{1, 0}, {0, 1}, {1, 0}, {1, 0}}

	m, err := Evaluate(net, inputs, targets)
	require.NoError(t, err)
	assert.Equal(t, 0.75, m.Accuracy)
	// Only sample 2 is wrong: errors (-0.8, 0.9); sample 3: (-0.1, 0.2).
	assert.InDelta(t, (0.64+0.81+0.01+0.04)/4, m.Loss, 1e-12)
	assert.InDelta(t, (0.8+0.9+0.1+0.2)/8, m.MAE, 1e-12)
}
