package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

// CSVConfig describes a labelled CSV file.
type CSVConfig struct {
	Header     bool    // Skip the first row
	Classes    int     // Number of classes for one-hot targets (default: 10)
	Scale      float64 // Feature divisor, e.g. 255 for pixels (default: 1)
	MaxSamples int     // Maximum rows to load (default: 0, all)
}

// ReadCSV reads rows of the form label,f0,f1,... (the Kaggle MNIST layout).
//
// Every row must have the same number of features. Features are divided by
// config.Scale and labels are one-hot encoded.
func ReadCSV(r io.Reader, config CSVConfig) (*Dataset, error) {
	if config.Classes <= 0 {
		config.Classes = 10
	}
	if config.Scale == 0 {
		config.Scale = 1
	}

	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	if config.Header {
		if _, err := reader.Read(); err != nil {
			return nil, fmt.Errorf("failed to read CSV header: %w", err)
		}
	}

	d := &Dataset{}
	for row := 1; config.MaxSamples <= 0 || d.Len() < config.MaxSamples; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("%w: row %d has %d columns", ErrInvalidFormat, row, len(record))
		}

		label, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d label: %w", ErrInvalidFormat, row, err)
		}
		target, err := OneHot(label, config.Classes)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		features := make([]float64, len(record)-1)
		for j, field := range record[1:] {
			if features[j], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, fmt.Errorf("%w: row %d column %d: %w", ErrInvalidFormat, row, j+1, err)
			}
		}
		floats.Scale(1/config.Scale, features)

		d.Inputs = append(d.Inputs, features)
		d.Targets = append(d.Targets, target)
	}

	if d.Len() == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidFormat)
	}
	return d, nil
}
