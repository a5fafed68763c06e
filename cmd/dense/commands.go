package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/born-ml/dense/internal/dataset"
	"github.com/born-ml/dense/internal/nn"
	"github.com/born-ml/dense/internal/optim"
	"github.com/born-ml/dense/internal/serialization"
)

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	var data dataFlags
	data.register(fs)
	arch := fs.String("arch", "1,10:tanh,1:tanh", "Architecture: inputs,width:activation,...")
	lr := fs.Float64("lr", 0.05, "Learning rate")
	epochs := fs.Int("epochs", 10000, "Number of training epochs")
	every := fs.Int("every", 100, "Report progress every N epochs")
	seed := fs.Int64("seed", 0, "Random seed for initialization (0 = time based)")
	holdout := fs.Float64("holdout", 0, "Fraction of samples held out for evaluation")
	checkFinite := fs.Bool("check-finite", false, "Stop when the loss becomes NaN or Inf")
	out := fs.String("out", "model.bin", "Where to save the trained network")
	if err := fs.Parse(args); err != nil {
		return err
	}

	all, err := data.load()
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	train, held := all.Split(*holdout)

	net, err := buildNetwork(*arch)
	if err != nil {
		return err
	}
	if err := train.Validate(net.InputSize(), net.OutputSize()); err != nil {
		return fmt.Errorf("dataset does not fit %s: %w", *arch, err)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	net.InitUniform(rand.New(rand.NewSource(*seed))) //nolint:gosec // weight initialization is not security-critical

	fmt.Print(net.Summary())
	fmt.Printf("Training for %d epochs on %d samples (lr=%g, seed=%d)...\n", *epochs, train.Len(), *lr, *seed)

	trainer := optim.NewSGD(optim.SGDConfig{
		LR:          *lr,
		Epochs:      *epochs,
		ReportEvery: *every,
		CheckFinite: *checkFinite,
		Progress:    printProgress,
	})
	if _, err := trainer.Train(net, train.Inputs, train.Targets); err != nil {
		return err
	}
	fmt.Println("Training complete.")

	if data.source == "sine" {
		printSineTable(net, train)
	}
	if held.Len() > 0 {
		if err := printMetrics("held-out", net, held); err != nil {
			return err
		}
	}

	if err := serialization.Save(net, *out); err != nil {
		return err
	}
	fmt.Printf("Model saved to %s\n", *out)
	return nil
}

func runPredict(args []string) error {
	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	model := fs.String("model", "model.bin", "Saved network")
	input := fs.String("input", "", "Comma-separated input vector")
	if err := fs.Parse(args); err != nil {
		return err
	}

	net, err := serialization.Load(*model)
	if err != nil {
		return err
	}
	x, err := parseVector(*input)
	if err != nil {
		return err
	}
	y, err := net.Predict(x)
	if err != nil {
		return err
	}

	for i, v := range y {
		fmt.Printf("output[%d] = %f\n", i, v)
	}
	return nil
}

func runEval(args []string) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	var data dataFlags
	data.register(fs)
	model := fs.String("model", "model.bin", "Saved network")
	if err := fs.Parse(args); err != nil {
		return err
	}

	net, err := serialization.Load(*model)
	if err != nil {
		return err
	}
	d, err := data.load()
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	return printMetrics(data.source, net, d)
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	model := fs.String("model", "model.bin", "Saved network")
	verbose := fs.Bool("v", false, "Print every weight and bias")
	if err := fs.Parse(args); err != nil {
		return err
	}

	net, err := serialization.Load(*model)
	if err != nil {
		return err
	}

	fmt.Print(net.Summary())
	if *verbose {
		for i, layer := range net.Layers() {
			fmt.Printf("\nLayer %d: %s", i, layer)
		}
	}
	return nil
}

func printProgress(s optim.EpochStats) {
	fmt.Printf("Epoch %d/%d - Loss (MSE): %f - elapsed %s, ETA %s\n",
		s.Epoch, s.Epochs, s.Loss, s.Elapsed.Round(time.Millisecond), s.ETA.Round(time.Second))
}

func printMetrics(name string, net *nn.Network, d *dataset.Dataset) error {
	m, err := optim.Evaluate(net, d.Inputs, d.Targets)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d samples, loss=%f, MAE=%f", name, m.Samples, m.Loss, m.MAE)
	if net.OutputSize() > 1 {
		fmt.Printf(", accuracy=%.2f%%", 100*m.Accuracy)
	}
	fmt.Println()
	return nil
}

// printSineTable prints every fifth training point and the unseen point x = π.
func printSineTable(net *nn.Network, d *dataset.Dataset) {
	fmt.Println("\n   X    |   Real    | Predicted | Error")
	fmt.Println("--------|-----------|-----------|--------")

	total, count := 0.0, 0
	row := func(x, want float64) {
		y, err := net.Predict([]float64{x})
		if err != nil {
			return
		}
		e := math.Abs(y[0] - want)
		total += e
		count++
		fmt.Printf("%6.2f  | %9.6f | %9.6f | %6.6f\n", x, want, y[0], e)
	}

	for i := 0; i < d.Len(); i += 5 {
		row(d.Inputs[i][0], d.Targets[i][0])
	}
	row(math.Pi, math.Sin(math.Pi))

	if count > 0 {
		fmt.Printf("\nMean absolute error: %f\n", total/float64(count))
	}
}
