// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU target: float32 layer kernels run as
// WGSL compute shaders through go-webgpu.
//
// The GPU backend is built for windows; on other platforms New returns an
// error and IsAvailable reports false.
//
// Example:
//
//	gpu, err := webgpu.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gpu.Release()
//
//	err = gpu.PReLUForward(x, a, y, backend.Geometry{Outer: 1, Channels: 1, Inner: len(x)})
package webgpu

import (
	internalwebgpu "github.com/born-ml/layers/internal/backend/webgpu"
)

// ErrUnavailable is returned when no WebGPU adapter can be used.
var ErrUnavailable = internalwebgpu.ErrUnavailable

// Backend represents the WebGPU device running the layer kernels.
type Backend = internalwebgpu.Backend

// New creates a new WebGPU backend.
//
// Call Release() when done to free GPU resources.
// Returns an error wrapping ErrUnavailable if WebGPU initialization fails.
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system.
//
// It is useful for graceful fallback to a CPU target:
//
//	target := backend.Detect()
//	if webgpu.IsAvailable() {
//	    target = backend.TargetWebGPU
//	}
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
