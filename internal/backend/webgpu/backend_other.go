//go:build !windows

package webgpu

import (
	"github.com/born-ml/layers/internal/backend"
	"github.com/born-ml/layers/internal/tensor"
)

// Backend is unavailable on this platform; New always fails.
type Backend struct{}

// New returns ErrUnavailable: the WebGPU backend is only built for windows.
func New() (*Backend, error) {
	return nil, ErrUnavailable
}

// IsAvailable reports false on this platform.
func IsAvailable() bool {
	return false
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "WebGPU"
}

// Device returns the compute device.
func (b *Backend) Device() tensor.Device {
	return tensor.WebGPU
}

// Release is a no-op.
func (b *Backend) Release() {}

// PReLUForward returns ErrUnavailable.
func (b *Backend) PReLUForward(_, _, _ []float32, _ backend.Geometry) error {
	return ErrUnavailable
}

// PReLUBackward returns ErrUnavailable.
func (b *Backend) PReLUBackward(_, _, _, _, _ []float32, _ backend.Geometry) error {
	return ErrUnavailable
}
