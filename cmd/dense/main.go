// Package main provides the dense network CLI.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
)

const version = "v0.1.0"

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	args := os.Args[2:]
	var err error
	switch os.Args[1] {
	case "version":
		fmt.Printf("dense %s\n", version)
	case "train":
		err = runTrain(args)
	case "predict":
		err = runPredict(args)
	case "eval":
		err = runEval(args)
	case "inspect":
		err = runInspect(args)
	case "help", "-h", "--help":
		usage()
	default:
		usage()
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, flag.ErrHelp) {
		log.Fatalf("dense %s: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Println("dense - feed-forward networks trained with online SGD")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  train      Train a network and save it")
	fmt.Println("  predict    Run a saved network on one input vector")
	fmt.Println("  eval       Report loss and accuracy of a saved network on a dataset")
	fmt.Println("  inspect    Print the layers of a saved network")
	fmt.Println("  version    Show version")
	fmt.Println("")
	fmt.Println("Run 'dense <command> -h' for the flags of a command.")
}
