// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/layers/internal/tensor"
)

// Float is the constraint for supported element precisions.
type Float = tensor.Float

// DataType is the runtime precision tag of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Device represents the device a tensor's kernels run on.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	WebGPU Device = tensor.WebGPU
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// RawTensor is an untyped tensor handle with shared, reference-counted storage.
type RawTensor = tensor.RawTensor

// NewRaw allocates a zero-filled tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromSlice creates a CPU tensor holding a copy of data.
//
// Example:
//
//	x, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
func FromSlice[T Float](data []T, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(data, shape)
}

// Zeros creates a zero-filled CPU tensor.
func Zeros[T Float](shape Shape) (*RawTensor, error) {
	return tensor.Zeros[T](shape)
}

// Full creates a CPU tensor with every element set to v.
func Full[T Float](shape Shape, v T) (*RawTensor, error) {
	return tensor.Full(shape, v)
}

// Data returns a typed zero-copy view of r's elements.
// Panics if T does not match r's data type.
func Data[T Float](r *RawTensor) []T {
	return tensor.Data[T](r)
}

// ParseDataType parses "float32" or "float64".
func ParseDataType(s string) (DataType, error) {
	return tensor.ParseDataType(s)
}

// DataTypeOf returns the runtime tag of the element type T.
func DataTypeOf[T Float]() DataType {
	return tensor.DataTypeOf[T]()
}
