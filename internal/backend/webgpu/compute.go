//go:build windows

package webgpu

import (
	"fmt"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"
)

// pipeline returns the cached compute pipeline for a shader, compiling it on first use.
func (b *Backend) pipeline(name, code string) *wgpu.ComputePipeline {
	b.mu.RLock()
	if p, exists := b.pipelines[name]; exists {
		b.mu.RUnlock()
		return p
	}
	b.mu.RUnlock()

	b.mu.Lock()
	defer b.mu.Unlock()
	if p, exists := b.pipelines[name]; exists {
		return p
	}

	shader := b.device.CreateShaderModuleWGSL(code)
	b.shaders[name] = shader

	// Auto layout (nil layout)
	p := b.device.CreateComputePipelineSimple(nil, shader, "main")
	b.pipelines[name] = p
	return p
}

// createBuffer creates a storage buffer initialized with data.
func (b *Backend) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data))

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// createOutputBuffer creates an uninitialized storage buffer that can be read back.
func (b *Backend) createOutputBuffer(size uint64) *wgpu.Buffer {
	return b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
}

// createUniformBuffer creates a uniform buffer padded to 16 bytes.
func (b *Backend) createUniformBuffer(data []byte) *wgpu.Buffer {
	size := uint64(len(data))
	alignedSize := (size + 15) &^ 15

	padded := make([]byte, alignedSize)
	copy(padded, data)
	return b.createBuffer(padded, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
}

// readBuffer copies a GPU buffer back into dst through a staging buffer.
func (b *Backend) readBuffer(src *wgpu.Buffer, dst []byte) error {
	size := uint64(len(dst))

	staging := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer staging.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(src, 0, staging, 0, size)
	b.queue.Submit(encoder.Finish(nil))

	if err := staging.MapAsync(b.device, wgpu.MapModeRead, 0, size); err != nil {
		return fmt.Errorf("webgpu: map staging buffer: %w", err)
	}

	mappedPtr := staging.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	copy(dst, unsafe.Slice((*byte)(mappedPtr), size))
	staging.Unmap()
	return nil
}

// binding is one storage buffer bound to a shader slot.
type binding struct {
	buffer *wgpu.Buffer
	size   uint64
}

// dispatch runs one compute pass of the named shader over workgroups x 1 x 1.
// The uniform params buffer is bound after the storage bindings.
func (b *Backend) dispatch(name, code string, bindings []binding, params []byte, workgroups uint32) {
	p := b.pipeline(name, code)

	uniform := b.createUniformBuffer(params)
	defer uniform.Release()

	entries := make([]wgpu.BindGroupEntry, 0, len(bindings)+1)
	for i, bd := range bindings {
		entries = append(entries, wgpu.BufferBindingEntry(uint32(i), bd.buffer, 0, bd.size)) //nolint:gosec // G115: binding count is tiny
	}
	entries = append(entries, wgpu.BufferBindingEntry(uint32(len(bindings)), uniform, 0, 16)) //nolint:gosec // G115: binding count is tiny

	bindGroup := b.device.CreateBindGroupSimple(p.GetBindGroupLayout(0), entries)
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(p)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.DispatchWorkgroups(workgroups, 1, 1)
	pass.End()

	b.queue.Submit(encoder.Finish(nil))
}
