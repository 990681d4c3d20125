// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/layers/backend"
	"github.com/born-ml/layers/backend/cpu"
)

func TestPReLU(t *testing.T) {
	b, err := cpu.New(backend.TargetSSE2)
	require.NoError(t, err)

	g := backend.Geometry{Outer: 1, Channels: 1, Inner: 4}
	x := []float64{-2, 0, 3, -1}
	a := []float64{0.1}

	y := make([]float64, 4)
	cpu.PReLUForward(b, x, a, y, g)
	assert.Equal(t, []float64{-0.2, 0, 3, -0.1}, y)

	dx := make([]float64, 4)
	da := make([]float64, 1)
	cpu.PReLUBackward(b, x, []float64{1, 1, 1, 1}, a, dx, da, g)
	assert.Equal(t, []float64{0.1, 1, 1, 0.1}, dx)
	assert.Equal(t, []float64{-3}, da)
}
