package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/dense/internal/dataset"
	"github.com/born-ml/dense/internal/nn"
)

// layerSpec is one hidden or output layer of an architecture string.
type layerSpec struct {
	neurons    int
	activation nn.Activation
}

// parseArchitecture parses "inputs,n1:act1,n2:act2,...".
//
// The first field is the input width. Each later field is a layer width
// optionally followed by ":activation" (default tanh).
func parseArchitecture(s string) (int, []layerSpec, error) {
	fields := strings.Split(s, ",")
	if len(fields) < 2 {
		return 0, nil, fmt.Errorf("architecture %q needs an input width and at least one layer", s)
	}

	inputs, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil || inputs <= 0 {
		return 0, nil, fmt.Errorf("invalid input width %q", fields[0])
	}

	specs := make([]layerSpec, 0, len(fields)-1)
	for _, field := range fields[1:] {
		width, actName, _ := strings.Cut(strings.TrimSpace(field), ":")
		n, err := strconv.Atoi(width)
		if err != nil || n <= 0 {
			return 0, nil, fmt.Errorf("invalid layer width %q", field)
		}
		act := nn.Tanh
		if actName != "" {
			if act, err = nn.ParseActivation(actName); err != nil {
				return 0, nil, err
			}
		}
		specs = append(specs, layerSpec{neurons: n, activation: act})
	}
	return inputs, specs, nil
}

// buildNetwork creates the layers described by an architecture string.
func buildNetwork(arch string) (*nn.Network, error) {
	inputs, specs, err := parseArchitecture(arch)
	if err != nil {
		return nil, err
	}

	net := nn.NewNetwork()
	prev := inputs
	for _, s := range specs {
		layer, err := nn.NewDense(s.neurons, prev, s.activation)
		if err != nil {
			return nil, err
		}
		if err := net.Add(layer); err != nil {
			return nil, err
		}
		prev = s.neurons
	}
	return net, nil
}

// dataFlags selects and shapes a dataset.
type dataFlags struct {
	source  string
	csvPath string
	header  bool
	images  string
	labels  string
	classes int
	scale   float64
	samples int
	sineN   int
}

func (d *dataFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&d.source, "data", "sine", "Dataset: sine, csv or idx")
	fs.StringVar(&d.csvPath, "csv", "", "CSV file with rows label,f0,f1,... (for -data csv)")
	fs.BoolVar(&d.header, "header", true, "CSV file has a header row")
	fs.StringVar(&d.images, "images", "", "IDX image file (for -data idx)")
	fs.StringVar(&d.labels, "labels", "", "IDX label file (for -data idx)")
	fs.IntVar(&d.classes, "classes", 10, "Number of classes for one-hot targets")
	fs.Float64Var(&d.scale, "scale", 255, "Feature divisor for CSV data")
	fs.IntVar(&d.samples, "samples", 0, "Max samples to load (0 = all)")
	fs.IntVar(&d.sineN, "sine-samples", 50, "Number of sine samples over [0, 2π)")
}

func (d *dataFlags) load() (*dataset.Dataset, error) {
	switch d.source {
	case "sine":
		return dataset.Sine(d.sineN).Head(d.samples), nil
	case "csv":
		if d.csvPath == "" {
			return nil, errors.New("-csv is required for -data csv")
		}
		file, err := os.Open(d.csvPath)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return dataset.ReadCSV(file, dataset.CSVConfig{
			Header:     d.header,
			Classes:    d.classes,
			Scale:      d.scale,
			MaxSamples: d.samples,
		})
	case "idx":
		if d.images == "" || d.labels == "" {
			return nil, errors.New("-images and -labels are required for -data idx")
		}
		return dataset.LoadIDX(d.images, d.labels, d.classes, d.samples)
	default:
		return nil, fmt.Errorf("unknown dataset %q (want sine, csv or idx)", d.source)
	}
}

// parseVector parses a comma-separated list of numbers.
func parseVector(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	v := make([]float64, len(fields))
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", f, err)
		}
		v[i] = x
	}
	return v, nil
}
