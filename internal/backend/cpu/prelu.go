package cpu

import (
	"fmt"

	"github.com/born-ml/layers/internal/backend"
	"github.com/born-ml/layers/internal/parallel"
	"github.com/born-ml/layers/internal/tensor"
)

// MaxLanes is the widest lane blocking the kernels support (AVX-512 float32).
const MaxLanes = 16

// PReLUForward computes y = x where x >= 0 and y = a[c]*x elsewhere.
//
// x and y hold g.Len() elements, a holds g.Channels slopes. lanes only
// selects the loop blocking; the output is identical for every value.
func PReLUForward[T tensor.Float](x, a, y []T, g backend.Geometry, lanes int, cfg parallel.Config) {
	checkLen("prelu forward", "x", len(x), g.Len())
	checkLen("prelu forward", "y", len(y), g.Len())
	checkLen("prelu forward", "a", len(a), g.Channels)

	lanes = clampLanes(lanes)
	parallel.ForRanges(parallel.Ranges(g.Rows(), cfg), func(_ int, r parallel.Range) {
		for row := r.Start; row < r.End; row++ {
			lo := row * g.Inner
			hi := lo + g.Inner
			forwardRow(x[lo:hi], y[lo:hi], a[row%g.Channels], lanes)
		}
	}, cfg)
}

func forwardRow[T tensor.Float](x, y []T, slope T, lanes int) {
	n := len(x)
	i := simdForwardBlocks(x, y, slope, lanes)
	for ; i+lanes <= n; i += lanes {
		xs := x[i : i+lanes]
		ys := y[i : i+lanes]
		for l, v := range xs {
			if v >= 0 {
				ys[l] = v
			} else {
				ys[l] = slope * v
			}
		}
	}
	for ; i < n; i++ {
		if v := x[i]; v >= 0 {
			y[i] = v
		} else {
			y[i] = slope * v
		}
	}
}

func clampLanes(lanes int) int {
	return min(max(lanes, 1), MaxLanes)
}

func checkLen(op, name string, got, want int) {
	if got != want {
		panic(fmt.Sprintf("%s: %s has %d elements, expected %d", op, name, got, want))
	}
}
