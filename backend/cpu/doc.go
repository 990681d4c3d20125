// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU kernels of the layer library.
//
// # Overview
//
// The kernels are generic over float32 and float64. A Backend fixes the
// hardware target, which selects the lane blocking of the inner loops:
//   - scalar: one element at a time
//   - sse2, neon: 16-byte lanes
//   - avx2: 32-byte lanes
//   - avx512: 64-byte lanes
//
// All lane widths are plain Go and run on any machine. The input gradient
// is identical for every target; per-channel reductions agree within
// floating-point tolerance.
//
// # Basic Usage
//
//	b, err := cpu.New(backend.TargetAVX2)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	g := backend.Geometry{Outer: 1, Channels: 1, Inner: 4}
//	x := []float32{-2, 0, 3, -1}
//	y := make([]float32, 4)
//	cpu.PReLUForward(b, x, []float32{0.1}, y, g)
//
// # Thread Safety
//
// Kernels hold no state between calls and are safe for concurrent use on
// independent buffers.
package cpu
