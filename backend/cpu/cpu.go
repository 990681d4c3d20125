// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	"github.com/born-ml/layers/backend"
	internalcpu "github.com/born-ml/layers/internal/backend/cpu"
	"github.com/born-ml/layers/internal/parallel"
	"github.com/born-ml/layers/tensor"
)

// Backend represents the CPU backend for one hardware target.
type Backend = internalcpu.Backend

// New creates a CPU backend blocked for target t, parallelized across all CPUs.
//
// Example:
//
//	b, err := cpu.New(backend.Detect())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cpu.PReLUForward(b, x, a, y, backend.Geometry{Outer: 1, Channels: 1, Inner: len(x)})
func New(t backend.Target) (*Backend, error) {
	return internalcpu.New(t, parallel.DefaultConfig())
}

// PReLUForward computes y = x where x >= 0 and y = a[c]*x elsewhere.
// Panics when the slice lengths do not match g.
func PReLUForward[T tensor.Float](b *Backend, x, a, y []T, g backend.Geometry) {
	internalcpu.PReLUForward(x, a, y, g, b.Lanes(tensor.DataTypeOf[T]()), b.Parallel())
}

// PReLUBackward computes the input gradient dx (skipped when dx is nil) and
// the per-channel slope gradient da.
// Panics when the slice lengths do not match g.
func PReLUBackward[T tensor.Float](b *Backend, x, grad, a, dx, da []T, g backend.Geometry) {
	internalcpu.PReLUBackward(x, grad, a, dx, da, g, b.Lanes(tensor.DataTypeOf[T]()), b.Parallel())
}
