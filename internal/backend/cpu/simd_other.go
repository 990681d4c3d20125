//go:build !amd64 || !goexperiment.simd

package cpu

import "github.com/born-ml/layers/internal/tensor"

// Without the simd experiment every target runs the portable lane loops.

func simdForwardBlocks[T tensor.Float](_, _ []T, _ T, _ int) int {
	return 0
}

func simdBackwardBlocks[T tensor.Float](_, _, _ []T, _ T, _ int, _ *[MaxLanes]T) int {
	return 0
}

func vectorized(tensor.DataType, int) bool {
	return false
}
