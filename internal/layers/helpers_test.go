package layers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/born-ml/layers/internal/backend"
	"github.com/born-ml/layers/internal/parallel"
	"github.com/born-ml/layers/internal/tensor"
)

func newTensor[T tensor.Float](t *testing.T, data []T, shape ...int) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.FromSlice(data, tensor.Shape(shape))
	require.NoError(t, err)
	t.Cleanup(r.Release)
	return r
}

// newTensorOf stores data in the given precision.
func newTensorOf(t *testing.T, dtype tensor.DataType, data []float64, shape ...int) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.FromFloat64s(data, tensor.Shape(shape), dtype)
	require.NoError(t, err)
	t.Cleanup(r.Release)
	return r
}

func testConfig(precision tensor.DataType, target backend.Target) Config {
	cfg := DefaultConfig()
	cfg.Precision = precision
	cfg.Target = target
	cfg.Parallel = parallel.Sequential()
	return cfg
}

// preluInput builds a PReLU forward input holding x and, when non-nil, a.
func preluInput(t *testing.T, x, a *tensor.RawTensor) *ForwardInput {
	t.Helper()
	in := NewForwardInput(KindPReLU)
	t.Cleanup(in.Release)
	require.NoError(t, in.Set(Data, x))
	if a != nil {
		require.NoError(t, in.Set(Weights, a))
	}
	return in
}

// runForward allocates and computes a PReLU forward result.
func runForward(t *testing.T, cfg Config, in *ForwardInput, p PReLUParameter) *ForwardResult {
	t.Helper()
	fwd, err := NewPReLUForward(cfg)
	require.NoError(t, err)
	t.Cleanup(fwd.Release)

	r := NewForwardResult(KindPReLU)
	t.Cleanup(r.Release)
	require.NoError(t, r.Allocate(in, p, cfg.Method))
	require.NoError(t, fwd.Compute(in, p, r))
	return r
}

// runBackward allocates and computes a PReLU backward result for the
// forward result fr and upstream gradient grad.
func runBackward(t *testing.T, cfg Config, fr *ForwardResult, grad *tensor.RawTensor, p PReLUParameter) *BackwardResult {
	t.Helper()
	bwd, err := NewPReLUBackward(cfg)
	require.NoError(t, err)
	t.Cleanup(bwd.Release)

	in := NewBackwardInput(KindPReLU)
	t.Cleanup(in.Release)
	require.NoError(t, in.Set(InputGradient, grad))
	require.NoError(t, in.SetLayerData(fr))

	r := NewBackwardResult(KindPReLU)
	t.Cleanup(r.Release)
	require.NoError(t, r.Allocate(in, p, cfg.Method))
	require.NoError(t, bwd.Compute(in, p, r))
	return r
}

func values(t *testing.T, get func() (*tensor.RawTensor, error)) []float64 {
	t.Helper()
	r, err := get()
	require.NoError(t, err)
	require.NotNil(t, r)
	return tensor.Float64s(r)
}
