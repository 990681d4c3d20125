// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package layers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/layers/backend"
	"github.com/born-ml/layers/layers"
	"github.com/born-ml/layers/tensor"
)

func TestPublicPReLU(t *testing.T) {
	cfg := layers.DefaultConfig()
	cfg.Precision = tensor.Float64
	cfg.Target = backend.TargetScalar
	p := layers.NewPReLUParameter()

	x, err := tensor.FromSlice([]float64{-2, 0, 3, -1}, tensor.Shape{1, 4})
	require.NoError(t, err)
	defer x.Release()

	in := layers.NewForwardInput(layers.KindPReLU)
	defer in.Release()
	require.NoError(t, in.Set(layers.Data, x))

	out := layers.NewForwardResult(layers.KindPReLU)
	defer out.Release()
	require.NoError(t, out.Allocate(in, p, layers.MethodDefault))

	fwd, err := layers.NewPReLUForward(cfg)
	require.NoError(t, err)
	defer fwd.Release()

	err = fwd.Compute(in, p, out)
	assert.ErrorIs(t, err, layers.ErrMissingInput)
	assert.Equal(t, "weights", layers.TensorOf(err))

	require.NoError(t, in.InitWeights(p))
	require.NoError(t, fwd.Compute(in, p, out))
	assert.Equal(t, layers.Computed, out.State())

	y, err := out.Get(layers.Value)
	require.NoError(t, err)
	assert.Equal(t, []float64{-0.5, 0, 3, -0.25}, tensor.Data[float64](y))
}
