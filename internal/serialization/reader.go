package serialization

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/born-ml/dense/internal/nn"
)

// Load reads a network from path.
//
// Returns an error wrapping ErrIO if the file cannot be opened, and one
// wrapping ErrCorruptData if its contents are truncated or malformed. No
// network is returned on error.
func Load(path string) (*nn.Network, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open file: %w", ErrIO, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to stat file: %w", ErrIO, err)
	}

	d := &decoder{r: bufio.NewReader(file), remaining: info.Size()}
	return d.network()
}

// Decode reads a network from r.
//
// Every layer is rebuilt through nn.NewDense and nn.Network.Add, so the same
// dimension, activation and adjacency checks as hand-built networks apply.
// Bytes after the last layer are not read.
//
// If r reports its unread length (bytes.Reader, bytes.Buffer, strings.Reader),
// layer sizes are checked against it before any parameter storage is
// allocated. Otherwise parameters are read in chunks, and memory grows only
// with the bytes r actually delivers.
func Decode(r io.Reader) (*nn.Network, error) {
	d := &decoder{r: r, remaining: -1}
	if lr, ok := r.(interface{ Len() int }); ok {
		d.remaining = int64(lr.Len())
	}
	return d.network()
}

// decoder tracks how many bytes the source still holds; -1 means unknown.
type decoder struct {
	r         io.Reader
	remaining int64
}

func (d *decoder) network() (*nn.Network, error) {
	var count int32
	if err := d.read("layer count", &count, 4); err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative layer count %d", ErrCorruptData, count)
	}

	net := nn.NewNetwork()
	for l := 0; l < int(count); l++ {
		layer, err := d.layer()
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", l, err)
		}
		if err := net.Add(layer); err != nil {
			return nil, fmt.Errorf("%w: layer %d: %w", ErrCorruptData, l, err)
		}
	}

	return net, nil
}

func (d *decoder) layer() (*nn.Dense, error) {
	var header layerHeader
	if err := d.read("header", &header, 12); err != nil {
		return nil, err
	}

	neurons, inputs := int(header.Neurons), int(header.Inputs)
	act := nn.Activation(header.Activation)
	if err := nn.ValidateDense(neurons, inputs, act); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptData, err)
	}

	if d.remaining < 0 {
		return d.streamedLayer(neurons, inputs, act)
	}

	need := 8 * int64(neurons) * (int64(inputs) + 1)
	if need > d.remaining {
		return nil, fmt.Errorf("%w: layer %dx%d needs %d bytes, %d remain",
			ErrCorruptData, neurons, inputs, need, d.remaining)
	}

	layer, err := nn.NewDense(neurons, inputs, act)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptData, err)
	}

	if err := d.read("bias", layer.Bias(), 8*int64(neurons)); err != nil {
		return nil, err
	}
	for j := 0; j < neurons; j++ {
		if err := d.read("weights", layer.WeightRow(j), 8*int64(inputs)); err != nil {
			return nil, err
		}
	}

	return layer, nil
}

// streamedLayer decodes a layer from a source of unknown size. Parameters
// are buffered as they arrive, so a header that promises more than the
// source holds fails before storage for the whole layer exists.
func (d *decoder) streamedLayer(neurons, inputs int, act nn.Activation) (*nn.Dense, error) {
	bias, err := d.readChunked("bias", neurons)
	if err != nil {
		return nil, err
	}
	weights, err := d.readChunked("weights", neurons*inputs)
	if err != nil {
		return nil, err
	}

	layer, err := nn.NewDense(neurons, inputs, act)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptData, err)
	}
	copy(layer.Bias(), bias)
	for j := 0; j < neurons; j++ {
		copy(layer.WeightRow(j), weights[j*inputs:(j+1)*inputs])
	}

	return layer, nil
}

// chunkValues is the number of float64 values read per step from an
// unsized source.
const chunkValues = 4096

// readChunked reads n float64 values, growing the result one chunk at a time.
func (d *decoder) readChunked(field string, n int) ([]float64, error) {
	values := make([]float64, 0, min(n, chunkValues))
	for len(values) < n {
		k := min(n-len(values), chunkValues)
		values = slices.Grow(values, k)
		if err := d.read(field, values[len(values):len(values)+k], 8*int64(k)); err != nil {
			return nil, err
		}
		values = values[:len(values)+k]
	}
	return values, nil
}

// read decodes size bytes into data. Running out of bytes is corrupt data;
// any other failure is an I/O error.
func (d *decoder) read(field string, data any, size int64) error {
	if err := binary.Read(d.r, byteOrder, data); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: truncated %s: %w", ErrCorruptData, field, err)
		}
		return fmt.Errorf("%w: failed to read %s: %w", ErrIO, field, err)
	}
	if d.remaining >= 0 {
		d.remaining -= size
	}
	return nil
}
