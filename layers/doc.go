// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package layers provides the typed forward/backward contract of neural
// network layers and the PReLU algorithms.
//
// # Overview
//
// Every layer stage works on an input and a result, each a closed set of
// named tensors:
//   - ForwardInput: data, weights, biases (and groundTruth for losses)
//   - ForwardResult: value, plus the LayerData cached for backward
//   - BackwardInput: the incoming gradient and the forward LayerData
//   - BackwardResult: gradient, weight and bias derivatives
//
// Results go through Allocate, Compute and Check. Checks are fail-fast and
// report the tensor that failed; classify errors with errors.Is against
// ErrMissingInput, ErrShapeMismatch and the other Err values.
//
// # Basic Usage
//
//	p := layers.NewPReLUParameter()
//
//	in := layers.NewForwardInput(layers.KindPReLU)
//	in.Set(layers.Data, x)
//	in.InitWeights(p)
//
//	fwd, err := layers.NewPReLUForward(layers.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer fwd.Release()
//
//	out := layers.NewForwardResult(layers.KindPReLU)
//	if err := out.Allocate(in, p, layers.MethodDefault); err != nil {
//	    log.Fatal(err)
//	}
//	if err := fwd.Compute(in, p, out); err != nil {
//	    log.Fatal(err)
//	}
package layers
