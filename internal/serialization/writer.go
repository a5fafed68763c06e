package serialization

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/dense/internal/nn"
)

// Save writes net to path, creating or truncating the file.
//
// Returns an error wrapping ErrIO if the file cannot be created or written.
func Save(net *nn.Network, path string) error {
	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: failed to create file: %w", ErrIO, err)
	}

	w := bufio.NewWriter(file)
	if err := Encode(w, net); err != nil {
		_ = file.Close() // Best effort close on error
		return err
	}
	if err := w.Flush(); err != nil {
		_ = file.Close()
		return fmt.Errorf("%w: failed to flush: %w", ErrIO, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: failed to close file: %w", ErrIO, err)
	}
	return nil
}

// Encode writes net to w in the model file layout.
//
// Returns an error wrapping ErrIO if a write fails.
func Encode(w io.Writer, net *nn.Network) error {
	layers := net.Layers()
	if len(layers) > maxInt32 {
		return fmt.Errorf("%w: %d layers do not fit the format", ErrIO, len(layers))
	}

	if err := binary.Write(w, byteOrder, int32(len(layers))); err != nil {
		return fmt.Errorf("%w: failed to write layer count: %w", ErrIO, err)
	}

	for l, layer := range layers {
		header := layerHeader{
			Neurons:    int32(layer.OutFeatures()), //nolint:gosec // G115: bounded by nn.MaxWidth
			Inputs:     int32(layer.InFeatures()),  //nolint:gosec // G115: bounded by nn.MaxWidth
			Activation: int32(layer.Activation()),
		}
		if err := binary.Write(w, byteOrder, header); err != nil {
			return fmt.Errorf("%w: failed to write layer %d header: %w", ErrIO, l, err)
		}
		if err := binary.Write(w, byteOrder, layer.Bias()); err != nil {
			return fmt.Errorf("%w: failed to write layer %d bias: %w", ErrIO, l, err)
		}
		for j := 0; j < layer.OutFeatures(); j++ {
			if err := binary.Write(w, byteOrder, layer.WeightRow(j)); err != nil {
				return fmt.Errorf("%w: failed to write layer %d weights: %w", ErrIO, l, err)
			}
		}
	}

	return nil
}
