package backend

import (
	"testing"

	"github.com/born-ml/layers/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetLanes(t *testing.T) {
	tests := []struct {
		target Target
		dtype  tensor.DataType
		want   int
	}{
		{TargetScalar, tensor.Float32, 1},
		{TargetSSE2, tensor.Float32, 4},
		{TargetSSE2, tensor.Float64, 2},
		{TargetNEON, tensor.Float32, 4},
		{TargetAVX2, tensor.Float32, 8},
		{TargetAVX2, tensor.Float64, 4},
		{TargetAVX512, tensor.Float32, 16},
		{TargetAVX512, tensor.Float64, 8},
		{TargetWebGPU, tensor.Float32, 1},
	}

	for _, tt := range tests {
		t.Run(tt.target.String()+"/"+tt.dtype.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.target.Lanes(tt.dtype))
		})
	}
}

func TestParseTarget(t *testing.T) {
	for _, want := range append(CPUTargets(), TargetWebGPU) {
		got, err := ParseTarget(want.String())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	got, err := ParseTarget(" AVX2 ")
	require.NoError(t, err)
	assert.Equal(t, TargetAVX2, got)

	_, err = ParseTarget("sve9")
	assert.Error(t, err)
}

func TestDetectNoSIMD(t *testing.T) {
	t.Setenv(EnvNoSIMD, "1")
	assert.Equal(t, TargetScalar, Detect())
}

func TestDetectExplicitTarget(t *testing.T) {
	t.Setenv(EnvNoSIMD, "")
	t.Setenv(EnvTarget, "sse2")
	assert.Equal(t, TargetSSE2, Detect())

	auto, err := ParseTarget("auto")
	require.NoError(t, err)
	assert.Equal(t, TargetSSE2, auto)
}

func TestDetectIsCPU(t *testing.T) {
	t.Setenv(EnvNoSIMD, "")
	t.Setenv(EnvTarget, "")
	assert.True(t, Detect().IsCPU())
	assert.False(t, TargetWebGPU.IsCPU())
}

func TestTargetStringUnknown(t *testing.T) {
	assert.Equal(t, "target(42)", Target(42).String())
}
