package webgpu

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/layers/internal/backend"
	"github.com/born-ml/layers/internal/backend/cpu"
	"github.com/born-ml/layers/internal/diag"
	"github.com/born-ml/layers/internal/parallel"
)

func newBackend(t *testing.T) *Backend {
	t.Helper()
	b, err := New()
	if err != nil {
		require.True(t, errors.Is(err, diag.ErrUnsupported), "unexpected error kind: %v", err)
		t.Skipf("WebGPU not available: %v", err)
	}
	t.Cleanup(b.Release)
	return b
}

func TestUnavailableIsUnsupported(t *testing.T) {
	assert.ErrorIs(t, ErrUnavailable, diag.ErrUnsupported)
}

func TestPReLUForwardMatchesCPU(t *testing.T) {
	b := newBackend(t)

	g := backend.Geometry{Outer: 3, Channels: 4, Inner: 5}
	x := ramp(g.Len())
	a := []float32{0.1, 0.2, 0.3, 0.4}

	got := make([]float32, g.Len())
	require.NoError(t, b.PReLUForward(x, a, got, g))

	want := make([]float32, g.Len())
	cpu.PReLUForward(x, a, want, g, 1, parallel.Sequential())
	assert.Equal(t, want, got)
}

func TestPReLUBackwardMatchesCPU(t *testing.T) {
	b := newBackend(t)

	g := backend.Geometry{Outer: 2, Channels: 3, Inner: 7}
	x := ramp(g.Len())
	grad := make([]float32, g.Len())
	for i := range grad {
		grad[i] = float32(i%5) - 1.5
	}
	a := []float32{0.25, 0.5, 0.75}

	dx := make([]float32, g.Len())
	da := make([]float32, g.Channels)
	require.NoError(t, b.PReLUBackward(x, grad, a, dx, da, g))

	wantDx := make([]float32, g.Len())
	wantDa := make([]float32, g.Channels)
	cpu.PReLUBackward(x, grad, a, wantDx, wantDa, g, 1, parallel.Sequential())

	assert.Equal(t, wantDx, dx)
	for c := range da {
		assert.InDelta(t, wantDa[c], da[c], 1e-3*math.Max(1, math.Abs(float64(wantDa[c]))))
	}

	// Slope derivative only.
	daOnly := make([]float32, g.Channels)
	require.NoError(t, b.PReLUBackward(x, grad, a, nil, daOnly, g))
	assert.Equal(t, da, daOnly)
}

func TestPReLURejectsBadGeometry(t *testing.T) {
	b := newBackend(t)

	g := backend.Geometry{Outer: 1, Channels: 2, Inner: 2}
	err := b.PReLUForward(make([]float32, 3), make([]float32, 2), make([]float32, 4), g)
	assert.Error(t, err)
}

func ramp(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(i) - float32(n)/2
	}
	return out
}
