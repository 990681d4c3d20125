package tensor

import (
	"github.com/born-ml/layers/internal/diag"
)

// Data returns a typed zero-copy view of the tensor's elements.
// Panics if T does not match the tensor's dtype.
func Data[T Float](r *RawTensor) []T {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return any(r.AsFloat32()).([]T)
	case float64:
		return any(r.AsFloat64()).([]T)
	default:
		panic("unsupported type")
	}
}

// FromSlice creates a CPU tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice[T Float](data []T, shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, diag.Newf(diag.ErrShapeMismatch, "", "shape %v requires %d elements, but got %d",
			shape, shape.NumElements(), len(data))
	}

	raw, err := NewRaw(shape, DataTypeOf[T](), CPU)
	if err != nil {
		return nil, err
	}
	copy(Data[T](raw), data)
	return raw, nil
}

// Zeros allocates a zero-filled CPU tensor.
func Zeros[T Float](shape Shape) (*RawTensor, error) {
	return NewRaw(shape, DataTypeOf[T](), CPU)
}

// Full allocates a CPU tensor with every element set to v.
func Full[T Float](shape Shape, v T) (*RawTensor, error) {
	raw, err := NewRaw(shape, DataTypeOf[T](), CPU)
	if err != nil {
		return nil, err
	}
	data := Data[T](raw)
	for i := range data {
		data[i] = v
	}
	return raw, nil
}

// Float64s copies the tensor's elements into a []float64 regardless of precision.
func Float64s(r *RawTensor) []float64 {
	switch r.DType() {
	case Float32:
		src := r.AsFloat32()
		out := make([]float64, len(src))
		for i, v := range src {
			out[i] = float64(v)
		}
		return out
	case Float64:
		return append([]float64(nil), r.AsFloat64()...)
	default:
		panic("unsupported type")
	}
}

// FromFloat64s builds a tensor of the given precision from float64 values.
func FromFloat64s(data []float64, shape Shape, dtype DataType) (*RawTensor, error) {
	switch dtype {
	case Float32:
		narrowed := make([]float32, len(data))
		for i, v := range data {
			narrowed[i] = float32(v)
		}
		return FromSlice(narrowed, shape)
	case Float64:
		return FromSlice(data, shape)
	default:
		return nil, diag.Newf(diag.ErrUnsupported, "", "data type %s", dtype)
	}
}
