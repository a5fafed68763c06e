// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package loader saves and loads trained networks.
//
// Model files use a flat binary layout with no header: a layer count, then for
// each layer its neuron count, input count and activation code followed by the
// biases and the weight rows, all in the host's native byte order.
//
// Example usage:
//
//	import "github.com/born-ml/dense/loader"
//
//	if err := loader.Save(net, "model.bin"); err != nil {
//	    log.Fatal(err)
//	}
//
//	net, err := loader.Load("model.bin")
//	if errors.Is(err, loader.ErrCorruptData) {
//	    log.Fatal("model file is damaged")
//	}
package loader

import (
	"io"

	"github.com/born-ml/dense/internal/nn"
	"github.com/born-ml/dense/internal/serialization"
)

// Errors returned by Save, Load, Encode and Decode.
var (
	ErrIO          = serialization.ErrIO
	ErrCorruptData = serialization.ErrCorruptData
)

// Save writes net to path.
func Save(net *nn.Network, path string) error {
	return serialization.Save(net, path)
}

// Load reads a network from path.
func Load(path string) (*nn.Network, error) {
	return serialization.Load(path)
}

// Encode writes net to w.
func Encode(w io.Writer, net *nn.Network) error {
	return serialization.Encode(w, net)
}

// Decode reads a network from r.
func Decode(r io.Reader) (*nn.Network, error) {
	return serialization.Decode(r)
}
