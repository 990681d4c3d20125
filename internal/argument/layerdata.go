package argument

import (
	"sync/atomic"

	"github.com/born-ml/layers/internal/tensor"
)

// LayerData holds the tensors a forward pass caches for the matching backward
// pass, keyed by small per-family indices.
//
// A LayerData may be shared between a forward result and a backward input
// through Share; the cached tensors are released when the last handle is.
type LayerData struct {
	arg      *Argument
	refs     *atomic.Int32
	released bool
}

// NewLayerData creates an empty LayerData accepting the given keys.
func NewLayerData(keys ...ID) *LayerData {
	refs := new(atomic.Int32)
	refs.Store(1)
	return &LayerData{arg: New("layerData", keys...), refs: refs}
}

// Share returns a new handle to the same cached tensors.
func (ld *LayerData) Share() *LayerData {
	ld.refs.Add(1)
	return &LayerData{arg: ld.arg, refs: ld.refs}
}

// Describe names a key for diagnostics.
func (ld *LayerData) Describe(key ID, name string) *LayerData {
	ld.arg.Describe(key, name)
	return ld
}

// NameOf returns the diagnostic name of key.
func (ld *LayerData) NameOf(key ID) string {
	return ld.arg.NameOf(key)
}

// Keys returns the accepted keys in ascending order.
func (ld *LayerData) Keys() []ID {
	return ld.arg.IDs()
}

// Len returns the number of keys holding a tensor.
func (ld *LayerData) Len() int {
	return ld.arg.Len()
}

// Tensor returns the tensor cached under key, or nil. The handle is
// borrowed from the LayerData.
func (ld *LayerData) Tensor(key ID) (*tensor.RawTensor, error) {
	return ld.arg.Tensor(key)
}

// Set caches a shared handle of t under key.
func (ld *LayerData) Set(key ID, t *tensor.RawTensor) error {
	return ld.arg.Set(key, t)
}

// Release drops this handle. The cached tensors are released with the last
// handle. Releasing a handle twice has no further effect.
func (ld *LayerData) Release() {
	if ld.released {
		return
	}
	ld.released = true
	if ld.refs.Add(-1) == 0 {
		ld.arg.Release()
	}
}
