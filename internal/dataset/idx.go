package dataset

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/floats"
)

// IDX magic numbers.
const (
	idxImagesMagic = 2051
	idxLabelsMagic = 2049
)

// maxIDXItems guards against absurd counts in damaged headers.
const maxIDXItems = 10_000_000

// ReadIDXImages reads an IDX3 image file and scales pixels to [0, 1].
//
// IDX file format for images:
//
//	magic number: 0x00000803 (2051)
//	number of images: 4 bytes
//	number of rows: 4 bytes
//	number of cols: 4 bytes
//	pixel data: unsigned bytes (0-255)
func ReadIDXImages(r io.Reader) ([][]float64, error) {
	var header [4]uint32
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}
	if header[0] != idxImagesMagic {
		return nil, fmt.Errorf("%w: image magic %d, want %d", ErrInvalidFormat, header[0], idxImagesMagic)
	}

	count, rows, cols := header[1], header[2], header[3]
	if count > maxIDXItems || rows == 0 || cols == 0 || rows*cols > 1<<16 {
		return nil, fmt.Errorf("%w: %d images of %dx%d", ErrInvalidFormat, count, rows, cols)
	}

	size := int(rows * cols)
	raw := make([]byte, size)
	images := make([][]float64, count)
	for i := range images {
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, fmt.Errorf("failed to read image %d: %w", i, err)
		}
		img := make([]float64, size)
		for j, p := range raw {
			img[j] = float64(p)
		}
		floats.Scale(1.0/255.0, img)
		images[i] = img
	}

	return images, nil
}

// ReadIDXLabels reads an IDX1 label file.
//
// IDX file format for labels:
//
//	magic number: 0x00000801 (2049)
//	number of labels: 4 bytes
//	label data: unsigned bytes
func ReadIDXLabels(r io.Reader) ([]int, error) {
	var header [2]uint32
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read label header: %w", err)
	}
	if header[0] != idxLabelsMagic {
		return nil, fmt.Errorf("%w: label magic %d, want %d", ErrInvalidFormat, header[0], idxLabelsMagic)
	}
	if header[1] > maxIDXItems {
		return nil, fmt.Errorf("%w: %d labels", ErrInvalidFormat, header[1])
	}

	raw := make([]byte, header[1])
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}

	labels := make([]int, len(raw))
	for i, b := range raw {
		labels[i] = int(b)
	}
	return labels, nil
}

// LoadIDX loads an image file and its label file as a classification dataset
// with one-hot targets of width classes.
//
// maxSamples limits the result (0 = all).
func LoadIDX(imagesPath, labelsPath string, classes, maxSamples int) (*Dataset, error) {
	images, err := readFile(imagesPath, ReadIDXImages)
	if err != nil {
		return nil, err
	}
	labels, err := readFile(labelsPath, ReadIDXLabels)
	if err != nil {
		return nil, err
	}
	if len(images) != len(labels) {
		return nil, fmt.Errorf("%w: %d images but %d labels", ErrInvalidFormat, len(images), len(labels))
	}

	d := &Dataset{Inputs: images, Targets: make([][]float64, len(labels))}
	for i, label := range labels {
		if d.Targets[i], err = OneHot(label, classes); err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
	}
	return d.Head(maxSamples), nil
}

func readFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	//nolint:gosec // G304: dataset path comes from user input
	file, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	v, err := read(file)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
