//go:build amd64 && goexperiment.simd

package cpu

import (
	"simd/archsimd"

	"github.com/born-ml/layers/internal/tensor"
)

// Vector widths map onto the lane counts of the targets: 8 float32 or 4
// float64 lanes run on AVX2, 16 float32 or 8 float64 lanes on AVX-512.
// Other lane counts, and CPUs lacking the feature, keep the portable loops.

// simdForwardBlocks runs the full lane blocks of a forward row and returns
// the number of elements written.
func simdForwardBlocks[T tensor.Float](x, y []T, slope T, lanes int) int {
	switch xs := any(x).(type) {
	case []float32:
		ys, s := any(y).([]float32), any(slope).(float32)
		switch {
		case lanes == 16 && archsimd.X86.AVX512():
			return forwardF32x16(xs, ys, s)
		case lanes == 8 && archsimd.X86.AVX2():
			return forwardF32x8(xs, ys, s)
		}
	case []float64:
		ys, s := any(y).([]float64), any(slope).(float64)
		switch {
		case lanes == 8 && archsimd.X86.AVX512():
			return forwardF64x8(xs, ys, s)
		case lanes == 4 && archsimd.X86.AVX2():
			return forwardF64x4(xs, ys, s)
		}
	}
	return 0
}

// simdBackwardBlocks runs the full lane blocks of a backward row, leaving
// the per-lane slope sums in acc. It returns the number of elements
// consumed.
func simdBackwardBlocks[T tensor.Float](x, g, dx []T, slope T, lanes int, acc *[MaxLanes]T) int {
	switch xs := any(x).(type) {
	case []float32:
		gs, dxs, s := any(g).([]float32), any(dx).([]float32), any(slope).(float32)
		a := any(acc).(*[MaxLanes]float32)
		switch {
		case lanes == 16 && archsimd.X86.AVX512():
			return backwardF32x16(xs, gs, dxs, s, a[:16])
		case lanes == 8 && archsimd.X86.AVX2():
			return backwardF32x8(xs, gs, dxs, s, a[:8])
		}
	case []float64:
		gs, dxs, s := any(g).([]float64), any(dx).([]float64), any(slope).(float64)
		a := any(acc).(*[MaxLanes]float64)
		switch {
		case lanes == 8 && archsimd.X86.AVX512():
			return backwardF64x8(xs, gs, dxs, s, a[:8])
		case lanes == 4 && archsimd.X86.AVX2():
			return backwardF64x4(xs, gs, dxs, s, a[:4])
		}
	}
	return 0
}

// a.Merge(b, mask) yields a where mask is set and b elsewhere.

func forwardF32x8(x, y []float32, slope float32) int {
	zero := archsimd.BroadcastFloat32x8(0)
	sv := archsimd.BroadcastFloat32x8(slope)
	i := 0
	for ; i+8 <= len(x); i += 8 {
		xv := archsimd.LoadFloat32x8Slice(x[i:])
		sv.Mul(xv).Merge(xv, xv.Less(zero)).StoreSlice(y[i:])
	}
	return i
}

func forwardF32x16(x, y []float32, slope float32) int {
	zero := archsimd.BroadcastFloat32x16(0)
	sv := archsimd.BroadcastFloat32x16(slope)
	i := 0
	for ; i+16 <= len(x); i += 16 {
		xv := archsimd.LoadFloat32x16Slice(x[i:])
		sv.Mul(xv).Merge(xv, xv.Less(zero)).StoreSlice(y[i:])
	}
	return i
}

func forwardF64x4(x, y []float64, slope float64) int {
	zero := archsimd.BroadcastFloat64x4(0)
	sv := archsimd.BroadcastFloat64x4(slope)
	i := 0
	for ; i+4 <= len(x); i += 4 {
		xv := archsimd.LoadFloat64x4Slice(x[i:])
		sv.Mul(xv).Merge(xv, xv.Less(zero)).StoreSlice(y[i:])
	}
	return i
}

func forwardF64x8(x, y []float64, slope float64) int {
	zero := archsimd.BroadcastFloat64x8(0)
	sv := archsimd.BroadcastFloat64x8(slope)
	i := 0
	for ; i+8 <= len(x); i += 8 {
		xv := archsimd.LoadFloat64x8Slice(x[i:])
		sv.Mul(xv).Merge(xv, xv.Less(zero)).StoreSlice(y[i:])
	}
	return i
}

// The backward blocks only add x*g into a lane where x < 0, so each lane
// sees the same sequence of additions as the portable loop.

func backwardF32x8(x, g, dx []float32, slope float32, acc []float32) int {
	zero := archsimd.BroadcastFloat32x8(0)
	sv := archsimd.BroadcastFloat32x8(slope)
	sum := zero
	i := 0
	for ; i+8 <= len(x); i += 8 {
		xv := archsimd.LoadFloat32x8Slice(x[i:])
		gv := archsimd.LoadFloat32x8Slice(g[i:])
		neg := xv.Less(zero)
		sum = sum.Add(xv.Mul(gv)).Merge(sum, neg)
		if dx != nil {
			sv.Mul(gv).Merge(gv, neg).StoreSlice(dx[i:])
		}
	}
	sum.StoreSlice(acc)
	return i
}

func backwardF32x16(x, g, dx []float32, slope float32, acc []float32) int {
	zero := archsimd.BroadcastFloat32x16(0)
	sv := archsimd.BroadcastFloat32x16(slope)
	sum := zero
	i := 0
	for ; i+16 <= len(x); i += 16 {
		xv := archsimd.LoadFloat32x16Slice(x[i:])
		gv := archsimd.LoadFloat32x16Slice(g[i:])
		neg := xv.Less(zero)
		sum = sum.Add(xv.Mul(gv)).Merge(sum, neg)
		if dx != nil {
			sv.Mul(gv).Merge(gv, neg).StoreSlice(dx[i:])
		}
	}
	sum.StoreSlice(acc)
	return i
}

func backwardF64x4(x, g, dx []float64, slope float64, acc []float64) int {
	zero := archsimd.BroadcastFloat64x4(0)
	sv := archsimd.BroadcastFloat64x4(slope)
	sum := zero
	i := 0
	for ; i+4 <= len(x); i += 4 {
		xv := archsimd.LoadFloat64x4Slice(x[i:])
		gv := archsimd.LoadFloat64x4Slice(g[i:])
		neg := xv.Less(zero)
		sum = sum.Add(xv.Mul(gv)).Merge(sum, neg)
		if dx != nil {
			sv.Mul(gv).Merge(gv, neg).StoreSlice(dx[i:])
		}
	}
	sum.StoreSlice(acc)
	return i
}

func backwardF64x8(x, g, dx []float64, slope float64, acc []float64) int {
	zero := archsimd.BroadcastFloat64x8(0)
	sv := archsimd.BroadcastFloat64x8(slope)
	sum := zero
	i := 0
	for ; i+8 <= len(x); i += 8 {
		xv := archsimd.LoadFloat64x8Slice(x[i:])
		gv := archsimd.LoadFloat64x8Slice(g[i:])
		neg := xv.Less(zero)
		sum = sum.Add(xv.Mul(gv)).Merge(sum, neg)
		if dx != nil {
			sv.Mul(gv).Merge(gv, neg).StoreSlice(dx[i:])
		}
	}
	sum.StoreSlice(acc)
	return i
}

// vectorized reports whether lanes elements of dtype run on vector
// instructions on this CPU.
func vectorized(dtype tensor.DataType, lanes int) bool {
	switch {
	case dtype == tensor.Float32 && lanes == 16, dtype == tensor.Float64 && lanes == 8:
		return archsimd.X86.AVX512()
	case dtype == tensor.Float32 && lanes == 8, dtype == tensor.Float64 && lanes == 4:
		return archsimd.X86.AVX2()
	}
	return false
}
