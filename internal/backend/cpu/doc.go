// Package cpu implements the CPU kernels of the layer library.
//
// Kernels are generic over the element precision (float32, float64) and take
// a lane count that selects the loop blocking of a hardware target. They never
// allocate their destinations and never validate shapes beyond a length
// sanity check: callers size and check tensors before invoking them.
//
// Built with GOEXPERIMENT=simd on amd64, the AVX2 and AVX-512 lane counts run
// their full blocks on simd/archsimd vectors when the CPU reports the
// feature. Every other build and target uses the portable lane loops.
package cpu
