package layers

import (
	"fmt"

	"github.com/born-ml/layers/internal/backend"
	"github.com/born-ml/layers/internal/backend/cpu"
	"github.com/born-ml/layers/internal/backend/webgpu"
	"github.com/born-ml/layers/internal/tensor"
)

// preluKernel is one precision/method/target specialization of the PReLU
// math. Kernels hold no per-call state.
type preluKernel interface {
	Name() string
	Forward(x, a, y *tensor.RawTensor, g backend.Geometry) error
	// Backward computes da and, when dx is non-nil, dx.
	Backward(x, grad, a, dx, da *tensor.RawTensor, g backend.Geometry) error
	Release()
}

type kernelKey struct {
	precision tensor.DataType
	method    Method
	target    backend.Target
}

func (k kernelKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.precision, k.method, k.target)
}

type kernelFactory func(cfg Config) (preluKernel, error)

// preluKernels maps every supported combination to its kernel.
var preluKernels = func() map[kernelKey]kernelFactory {
	m := make(map[kernelKey]kernelFactory)
	for _, t := range backend.CPUTargets() {
		m[kernelKey{tensor.Float32, MethodDefault, t}] = newCPUKernel[float32]
		m[kernelKey{tensor.Float64, MethodDefault, t}] = newCPUKernel[float64]
	}
	m[kernelKey{tensor.Float32, MethodDefault, backend.TargetWebGPU}] = newGPUKernel
	return m
}()

func newCPUKernel[T tensor.Float](cfg Config) (preluKernel, error) {
	b, err := cpu.New(cfg.Target, cfg.Parallel)
	if err != nil {
		return nil, err
	}
	return &cpuKernel[T]{backend: b}, nil
}

// cpuKernel runs the generic CPU kernels with the lane blocking of its target.
type cpuKernel[T tensor.Float] struct {
	backend *cpu.Backend
}

func (k *cpuKernel[T]) Name() string {
	return k.backend.Name()
}

func (k *cpuKernel[T]) Forward(x, a, y *tensor.RawTensor, g backend.Geometry) error {
	lanes := k.backend.Lanes(tensor.DataTypeOf[T]())
	cpu.PReLUForward(tensor.Data[T](x), tensor.Data[T](a), tensor.Data[T](y), g, lanes, k.backend.Parallel())
	return nil
}

func (k *cpuKernel[T]) Backward(x, grad, a, dx, da *tensor.RawTensor, g backend.Geometry) error {
	lanes := k.backend.Lanes(tensor.DataTypeOf[T]())
	var dxData []T
	if dx != nil {
		dxData = tensor.Data[T](dx)
	}
	cpu.PReLUBackward(tensor.Data[T](x), tensor.Data[T](grad), tensor.Data[T](a),
		dxData, tensor.Data[T](da), g, lanes, k.backend.Parallel())
	return nil
}

func (k *cpuKernel[T]) Release() {}

func newGPUKernel(Config) (preluKernel, error) {
	b, err := webgpu.New()
	if err != nil {
		return nil, err
	}
	return &gpuKernel{backend: b}, nil
}

// gpuKernel runs the float32 WGSL kernels.
type gpuKernel struct {
	backend *webgpu.Backend
}

func (k *gpuKernel) Name() string {
	return k.backend.Name()
}

func (k *gpuKernel) Forward(x, a, y *tensor.RawTensor, g backend.Geometry) error {
	return k.backend.PReLUForward(x.AsFloat32(), a.AsFloat32(), y.AsFloat32(), g)
}

func (k *gpuKernel) Backward(x, grad, a, dx, da *tensor.RawTensor, g backend.Geometry) error {
	var dxData []float32
	if dx != nil {
		dxData = dx.AsFloat32()
	}
	return k.backend.PReLUBackward(x.AsFloat32(), grad.AsFloat32(), a.AsFloat32(), dxData, da.AsFloat32(), g)
}

func (k *gpuKernel) Release() {
	k.backend.Release()
}
