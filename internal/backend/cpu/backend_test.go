package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/layers/internal/backend"
	"github.com/born-ml/layers/internal/parallel"
	"github.com/born-ml/layers/internal/tensor"
)

func TestNewBackend(t *testing.T) {
	b, err := New(backend.TargetAVX2, parallel.Sequential())
	require.NoError(t, err)

	assert.Equal(t, "CPU(avx2)", b.Name())
	assert.Equal(t, tensor.CPU, b.Device())
	assert.Equal(t, backend.TargetAVX2, b.Target())
	assert.Equal(t, 8, b.Lanes(tensor.Float32))
	assert.Equal(t, 4, b.Lanes(tensor.Float64))
	assert.Equal(t, parallel.Sequential(), b.Parallel())
}

func TestNewBackendRejectsGPU(t *testing.T) {
	_, err := New(backend.TargetWebGPU, parallel.DefaultConfig())
	assert.Error(t, err)
}

func TestVectorizedNeedsWideTarget(t *testing.T) {
	for _, target := range []backend.Target{backend.TargetScalar, backend.TargetSSE2} {
		b, err := New(target, parallel.Sequential())
		require.NoError(t, err)
		assert.False(t, b.Vectorized(tensor.Float32), target.String())
		assert.False(t, b.Vectorized(tensor.Float64), target.String())
	}
}
