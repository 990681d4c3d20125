package layers

import "github.com/born-ml/layers/internal/tensor"

// Capability is the contract every layer result fulfils for its input type I.
type Capability[I any] interface {
	// Check validates the input and the result, reporting the first failure.
	Check(in I, p Parameter, m Method) error
	// Allocate sizes and allocates the result tensors for in.
	Allocate(in I, p Parameter, m Method) error
	// ValueSize derives the primary output shape from the input shape.
	ValueSize(inputSize tensor.Shape, p Parameter, m Method) (tensor.Shape, error)
}

var (
	_ Capability[*ForwardInput]  = (*ForwardResult)(nil)
	_ Capability[*BackwardInput] = (*BackwardResult)(nil)
)
