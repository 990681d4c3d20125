//go:build windows

package webgpu

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/born-ml/layers/internal/backend"
	"github.com/born-ml/layers/internal/diag"
)

// maxWorkgroups is the per-dimension dispatch limit guaranteed by WebGPU.
const maxWorkgroups = 65535

// PReLUForward runs the forward kernel: y = x >= 0 ? x : a[c]*x.
func (b *Backend) PReLUForward(x, a, y []float32, g backend.Geometry) error {
	if err := checkGeometry(g, len(x), len(a), len(y)); err != nil {
		return err
	}
	n := g.Len()
	groups, err := workgroups(n)
	if err != nil {
		return err
	}

	xBuf := b.createBuffer(float32Bytes(x), wgpu.BufferUsageStorage)
	defer xBuf.Release()
	aBuf := b.createBuffer(float32Bytes(a), wgpu.BufferUsageStorage)
	defer aBuf.Release()
	yBuf := b.createOutputBuffer(byteLen(y))
	defer yBuf.Release()

	b.dispatch("prelu_forward", preluForwardShader, []binding{
		{xBuf, byteLen(x)},
		{aBuf, byteLen(a)},
		{yBuf, byteLen(y)},
	}, geometryParams(g), groups)

	return b.readBuffer(yBuf, float32Bytes(y))
}

// PReLUBackward runs the backward kernels. dx may be nil, in which case
// only the slope derivative da is computed.
func (b *Backend) PReLUBackward(x, grad, a, dx, da []float32, g backend.Geometry) error {
	if err := checkGeometry(g, len(x), len(a), len(grad)); err != nil {
		return err
	}
	if len(da) != g.Channels {
		return fmt.Errorf("webgpu: prelu backward: da has %d elements, want %d", len(da), g.Channels)
	}
	if dx != nil && len(dx) != g.Len() {
		return fmt.Errorf("webgpu: prelu backward: dx has %d elements, want %d", len(dx), g.Len())
	}

	n := g.Len()
	elemGroups, err := workgroups(n)
	if err != nil {
		return err
	}
	chanGroups, err := workgroups(g.Channels)
	if err != nil {
		return err
	}
	params := geometryParams(g)

	xBuf := b.createBuffer(float32Bytes(x), wgpu.BufferUsageStorage)
	defer xBuf.Release()
	gBuf := b.createBuffer(float32Bytes(grad), wgpu.BufferUsageStorage)
	defer gBuf.Release()

	daBuf := b.createOutputBuffer(byteLen(da))
	defer daBuf.Release()
	b.dispatch("prelu_backward_slope", preluBackwardSlopeShader, []binding{
		{xBuf, byteLen(x)},
		{gBuf, byteLen(grad)},
		{daBuf, byteLen(da)},
	}, params, chanGroups)
	if err := b.readBuffer(daBuf, float32Bytes(da)); err != nil {
		return err
	}

	if dx == nil {
		return nil
	}

	aBuf := b.createBuffer(float32Bytes(a), wgpu.BufferUsageStorage)
	defer aBuf.Release()
	dxBuf := b.createOutputBuffer(byteLen(dx))
	defer dxBuf.Release()
	b.dispatch("prelu_backward_input", preluBackwardInputShader, []binding{
		{xBuf, byteLen(x)},
		{gBuf, byteLen(grad)},
		{aBuf, byteLen(a)},
		{dxBuf, byteLen(dx)},
	}, params, elemGroups)

	return b.readBuffer(dxBuf, float32Bytes(dx))
}

func checkGeometry(g backend.Geometry, nx, na, ny int) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("webgpu: %w", err)
	}
	if nx != g.Len() || ny != g.Len() {
		return fmt.Errorf("webgpu: tensors have %d and %d elements, geometry %s needs %d", nx, ny, g, g.Len())
	}
	if na != g.Channels {
		return fmt.Errorf("webgpu: slope has %d elements, want %d", na, g.Channels)
	}
	return nil
}

// workgroups returns the 1-D workgroup count covering n invocations.
func workgroups(n int) (uint32, error) {
	groups := (n + workgroupSize - 1) / workgroupSize
	if groups > maxWorkgroups {
		return 0, diag.Newf(diag.ErrUnsupported, "", "webgpu: %d elements exceed the dispatch limit", n)
	}
	return uint32(groups), nil //nolint:gosec // G115: bounded by maxWorkgroups
}

func geometryParams(g backend.Geometry) []byte {
	params := make([]byte, 16)
	binary.LittleEndian.PutUint32(params[0:4], uint32(g.Outer))    //nolint:gosec // G115: validated extents
	binary.LittleEndian.PutUint32(params[4:8], uint32(g.Channels)) //nolint:gosec // G115: validated extents
	binary.LittleEndian.PutUint32(params[8:12], uint32(g.Inner))   //nolint:gosec // G115: validated extents
	binary.LittleEndian.PutUint32(params[12:16], uint32(g.Len()))  //nolint:gosec // G115: validated extents
	return params
}

// float32Bytes reinterprets a float32 slice as bytes without copying.
func float32Bytes(data []float32) []byte {
	if len(data) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy conversion, length derived from the source slice
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4)
}

func byteLen(data []float32) uint64 {
	return uint64(len(data)) * 4
}
