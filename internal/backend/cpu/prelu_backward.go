package cpu

import (
	"github.com/born-ml/layers/internal/backend"
	"github.com/born-ml/layers/internal/parallel"
	"github.com/born-ml/layers/internal/tensor"
)

// PReLUBackward computes the PReLU gradients.
//
//	dx[i] = grad[i]          if x[i] >= 0
//	dx[i] = a[c] * grad[i]   otherwise
//	da[c] = sum of x[i]*grad[i] over the elements of channel c with x[i] < 0
//
// da is overwritten. A nil dx skips the input gradient. All arithmetic stays
// in T.
//
// Rows of the geometry are split into ranges by parallel.Ranges; each range
// accumulates its own slope partials and the partials are added in range
// order, so results are reproducible for a fixed cfg. With lanes <= 1 every
// channel is a single running sum in (outer, inner) order. Wider lanes keep
// lanes partial sums per row, folded pairwise, which changes da only within
// rounding; dx is bit-identical for every lanes value.
func PReLUBackward[T tensor.Float](x, grad, a, dx, da []T, g backend.Geometry, lanes int, cfg parallel.Config) {
	checkLen("prelu backward", "x", len(x), g.Len())
	checkLen("prelu backward", "grad", len(grad), g.Len())
	checkLen("prelu backward", "a", len(a), g.Channels)
	checkLen("prelu backward", "da", len(da), g.Channels)
	if dx != nil {
		checkLen("prelu backward", "dx", len(dx), g.Len())
	}

	lanes = clampLanes(lanes)
	ranges := parallel.Ranges(g.Rows(), cfg)
	partials := make([][]T, len(ranges))

	parallel.ForRanges(ranges, func(idx int, r parallel.Range) {
		var acc []T
		if len(ranges) == 1 {
			acc = da
			clear(acc)
		} else {
			acc = make([]T, g.Channels)
		}

		for row := r.Start; row < r.End; row++ {
			c := row % g.Channels
			lo := row * g.Inner
			hi := lo + g.Inner

			var dxRow []T
			if dx != nil {
				dxRow = dx[lo:hi]
			}
			if lanes == 1 {
				acc[c] = backwardRowScalar(x[lo:hi], grad[lo:hi], dxRow, a[c], acc[c])
			} else {
				acc[c] += backwardRowLanes(x[lo:hi], grad[lo:hi], dxRow, a[c], lanes)
			}
		}
		partials[idx] = acc
	}, cfg)

	if len(ranges) != 1 {
		clear(da)
		for _, p := range partials {
			for c, v := range p {
				da[c] += v
			}
		}
	}
}

// backwardRowScalar extends the running slope sum acc over one row.
func backwardRowScalar[T tensor.Float](x, g, dx []T, slope, acc T) T {
	for i, xv := range x {
		gv := g[i]
		if xv < 0 {
			acc += xv * gv
			if dx != nil {
				dx[i] = slope * gv
			}
		} else if dx != nil {
			dx[i] = gv
		}
	}
	return acc
}

// backwardRowLanes returns the row's slope sum using lanes independent
// accumulators, a pairwise fold and a scalar tail. Full blocks run on
// vector instructions when the CPU has them for this lane count.
func backwardRowLanes[T tensor.Float](x, g, dx []T, slope T, lanes int) T {
	var acc [MaxLanes]T
	n := len(x)
	i := simdBackwardBlocks(x, g, dx, slope, lanes, &acc)
	for ; i+lanes <= n; i += lanes {
		xs := x[i : i+lanes]
		gs := g[i : i+lanes]
		for l, xv := range xs {
			gv := gs[l]
			if xv < 0 {
				acc[l] += xv * gv
				if dx != nil {
					dx[i+l] = slope * gv
				}
			} else if dx != nil {
				dx[i+l] = gv
			}
		}
	}

	sum := foldLanes(acc[:lanes])
	return backwardRowScalar(x[i:], g[i:], tail(dx, i), slope, sum)
}

// foldLanes reduces the lane accumulators pairwise (l += l+w for halving w).
// Lane counts that are not a power of two fall back to a left-to-right sum.
func foldLanes[T tensor.Float](acc []T) T {
	n := len(acc)
	if n&(n-1) != 0 {
		var s T
		for _, v := range acc {
			s += v
		}
		return s
	}
	for w := n / 2; w > 0; w /= 2 {
		for l := 0; l < w; l++ {
			acc[l] += acc[l+w]
		}
	}
	return acc[0]
}

func tail[T tensor.Float](s []T, from int) []T {
	if s == nil {
		return nil
	}
	return s[from:]
}
