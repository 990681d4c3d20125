// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package backend selects the hardware target layer kernels are specialized for.
//
// CPU targets differ only in loop blocking and produce the same results
// within precision tolerance. The WebGPU target runs float32 kernels on
// the GPU where an adapter is available.
//
// The default target is detected from the CPU and can be overridden with
// the BORN_TARGET environment variable; BORN_NO_SIMD=1 forces scalar.
package backend

import (
	"github.com/born-ml/layers/internal/backend"
)

// Target identifies a hardware specialization.
type Target = backend.Target

// Supported targets.
const (
	TargetScalar = backend.TargetScalar
	TargetSSE2   = backend.TargetSSE2
	TargetAVX2   = backend.TargetAVX2
	TargetAVX512 = backend.TargetAVX512
	TargetNEON   = backend.TargetNEON
	TargetWebGPU = backend.TargetWebGPU
)

// Geometry describes how a per-channel parameter broadcasts over a tensor.
type Geometry = backend.Geometry

// Detect returns the default CPU target for this machine.
func Detect() Target {
	return backend.Detect()
}

// ParseTarget parses a target name; "auto" resolves to Detect().
func ParseTarget(s string) (Target, error) {
	return backend.ParseTarget(s)
}

// CPUTargets lists every CPU target.
func CPUTargets() []Target {
	return backend.CPUTargets()
}
