package cpu

import (
	"fmt"

	"github.com/born-ml/layers/internal/backend"
	"github.com/born-ml/layers/internal/parallel"
	"github.com/born-ml/layers/internal/tensor"
)

// Backend is the CPU compute handle for one hardware target. It carries
// the lane blocking and parallel configuration the kernels run with.
type Backend struct {
	device   tensor.Device
	target   backend.Target
	parallel parallel.Config
}

// New creates a CPU backend for target t.
func New(t backend.Target, cfg parallel.Config) (*Backend, error) {
	if !t.IsCPU() {
		return nil, fmt.Errorf("cpu: target %s does not run on the host CPU", t)
	}
	return &Backend{
		device:   tensor.CPU,
		target:   t,
		parallel: cfg,
	}, nil
}

// Name returns the backend name.
func (cpu *Backend) Name() string {
	return "CPU(" + cpu.target.String() + ")"
}

// Device returns the compute device.
func (cpu *Backend) Device() tensor.Device {
	return cpu.device
}

// Target returns the hardware target the kernels are blocked for.
func (cpu *Backend) Target() backend.Target {
	return cpu.target
}

// Lanes returns the lane count for dtype on this backend's target.
func (cpu *Backend) Lanes(dtype tensor.DataType) int {
	return cpu.target.Lanes(dtype)
}

// Parallel returns the parallel configuration.
func (cpu *Backend) Parallel() parallel.Config {
	return cpu.parallel
}

// Vectorized reports whether dtype kernels run on vector instructions for
// this target on the current CPU. Otherwise they run the portable lane loops.
func (cpu *Backend) Vectorized(dtype tensor.DataType) bool {
	return vectorized(dtype, cpu.Lanes(dtype))
}
