// Package webgpu runs the layer kernels as WGSL compute shaders through
// go-webgpu (github.com/go-webgpu/webgpu). GPU kernels are float32-only.
package webgpu

import (
	"fmt"

	"github.com/born-ml/layers/internal/diag"
)

// ErrUnavailable is returned when no WebGPU adapter can be used on this system.
var ErrUnavailable = fmt.Errorf("webgpu: no usable adapter: %w", diag.ErrUnsupported)
