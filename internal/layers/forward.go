package layers

import (
	"github.com/born-ml/layers/internal/argument"
	"github.com/born-ml/layers/internal/diag"
	"github.com/born-ml/layers/internal/tensor"
)

// ForwardInput holds the tensors a forward pass consumes.
type ForwardInput struct {
	kind Kind
	arg  *argument.Argument
}

// NewForwardInput creates an empty forward input of family k.
func NewForwardInput(k Kind) *ForwardInput {
	return &ForwardInput{kind: k, arg: newForwardInputArg(k)}
}

// Kind returns the layer family.
func (in *ForwardInput) Kind() Kind {
	return in.kind
}

// Get returns the tensor stored under id, or nil when it is not set.
// The handle is borrowed: it stays owned by the input, so callers must not
// Release it. Clone it to keep the tensor beyond the owner's Release.
func (in *ForwardInput) Get(id argument.ID) (*tensor.RawTensor, error) {
	return in.arg.Tensor(id)
}

// Set stores a shared handle of t under id. A nil t clears the entry.
func (in *ForwardInput) Set(id argument.ID, t *tensor.RawTensor) error {
	return in.arg.Set(id, t)
}

// Release drops every stored handle.
func (in *ForwardInput) Release() {
	in.arg.Release()
}

// WeightsSizes returns the shape the weights tensor must have, or nil when
// the family has no weights.
func (in *ForwardInput) WeightsSizes(p Parameter) (tensor.Shape, error) {
	switch in.kind {
	case KindPReLU:
		pp, err := preluParameter(p)
		if err != nil {
			return nil, err
		}
		data, err := in.data(pp)
		if err != nil {
			return nil, err
		}
		return pp.WeightsShape(data.Shape()), nil
	default:
		return nil, checkParameterKind(in.kind, p)
	}
}

// BiasesSizes returns the shape the biases tensor must have, or nil when the
// family has no biases. Neither family has biases.
func (in *ForwardInput) BiasesSizes(p Parameter) (tensor.Shape, error) {
	return nil, checkParameterKind(in.kind, p)
}

// Check validates the input against p. It reports the first failing tensor
// and never modifies the input.
func (in *ForwardInput) Check(p Parameter, _ Method) error {
	if err := checkParameterKind(in.kind, p); err != nil {
		return err
	}
	data, err := in.data(p)
	if err != nil {
		return err
	}
	if in.kind != KindPReLU {
		return nil
	}
	pp, err := preluParameter(p)
	if err != nil {
		return err
	}
	return in.checkWeights(pp, data)
}

// InitWeights fills an absent weights tensor with p.InitialSlope in the
// data precision. Present weights are left untouched. Families without
// weights ignore the call.
func (in *ForwardInput) InitWeights(p Parameter) error {
	if in.kind != KindPReLU {
		return checkParameterKind(in.kind, p)
	}
	pp, err := preluParameter(p)
	if err != nil {
		return err
	}
	weights, err := in.arg.Tensor(Weights)
	if err != nil || weights != nil {
		return err
	}
	data, err := in.data(pp)
	if err != nil {
		return err
	}

	slopes, err := tensor.NewRaw(pp.WeightsShape(data.Shape()), data.DType(), data.Device())
	if err != nil {
		return err
	}
	defer slopes.Release()
	fill(slopes, pp.InitialSlope)
	return in.arg.Set(Weights, slopes)
}

// data returns the data tensor after checking that it is set and that p
// accepts its shape.
func (in *ForwardInput) data(p Parameter) (*tensor.RawTensor, error) {
	data, err := in.arg.Tensor(Data)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, diag.Missing(in.arg.NameOf(Data))
	}
	if err := p.Validate(data.Shape()); err != nil {
		return nil, err
	}
	return data, nil
}

func (in *ForwardInput) checkWeights(p PReLUParameter, data *tensor.RawTensor) error {
	weights, err := in.arg.Tensor(Weights)
	if err != nil {
		return err
	}
	name := in.arg.NameOf(Weights)
	if weights == nil {
		return diag.Missing(name)
	}
	if want := p.WeightsShape(data.Shape()); !weights.Shape().Equal(want) {
		return diag.ShapeMismatch(name, want, weights.Shape())
	}
	if weights.DType() != data.DType() {
		return diag.TypeMismatch(name, data.DType(), weights.DType())
	}
	return nil
}

// ForwardResult holds the tensors a forward pass produces.
type ForwardResult struct {
	kind  Kind
	arg   *argument.Argument
	state State
}

// NewForwardResult creates an empty forward result of family k.
func NewForwardResult(k Kind) *ForwardResult {
	checkKind(k)
	return &ForwardResult{kind: k, arg: newForwardResultArg(k)}
}

// Kind returns the layer family.
func (r *ForwardResult) Kind() Kind {
	return r.kind
}

// State returns the lifecycle state.
func (r *ForwardResult) State() State {
	return r.state
}

// Get returns the tensor stored under id, or nil when it is not set.
// The handle is borrowed: it stays owned by the result, so callers must not
// Release it. Clone it to keep the tensor beyond the owner's Release.
func (r *ForwardResult) Get(id argument.ID) (*tensor.RawTensor, error) {
	return r.arg.Tensor(id)
}

// Set stores v under id, releasing the previous value.
func (r *ForwardResult) Set(id argument.ID, v argument.Value) error {
	return r.arg.Set(id, v)
}

// LayerData returns the data cached for the backward pass, or nil.
func (r *ForwardResult) LayerData() (*argument.LayerData, error) {
	return r.arg.LayerData(ResultForBackward)
}

// Release drops every stored value and resets the state.
func (r *ForwardResult) Release() {
	r.arg.Release()
	r.state = Uninitialized
}

// ValueSize returns the value shape for inputSize. Both families preserve
// the input shape.
func (r *ForwardResult) ValueSize(inputSize tensor.Shape, p Parameter, _ Method) (tensor.Shape, error) {
	if err := checkParameterKind(r.kind, p); err != nil {
		return nil, err
	}
	if err := p.Validate(inputSize); err != nil {
		return nil, err
	}
	return inputSize.Clone(), nil
}

// Allocate creates a zero-filled value tensor of ValueSize(data shape) in
// the data precision plus an empty LayerData. Tensors from a previous
// allocation are released.
func (r *ForwardResult) Allocate(in *ForwardInput, p Parameter, m Method) error {
	if err := r.sameKind(in.kind); err != nil {
		return err
	}
	if err := checkParameterKind(r.kind, p); err != nil {
		return err
	}
	data, err := in.data(p)
	if err != nil {
		return err
	}
	shape, err := r.ValueSize(data.Shape(), p, m)
	if err != nil {
		return err
	}

	value, err := tensor.NewRaw(shape, data.DType(), data.Device())
	if err != nil {
		return err
	}
	defer value.Release()

	if err := r.arg.Set(Value, value); err != nil {
		return err
	}
	if err := r.arg.Set(ResultForBackward, newLayerData(r.kind)); err != nil {
		return err
	}
	r.state = Allocated
	return nil
}

// Check validates the input and the result in order: data, value, layer
// data, then the family's remaining inputs. It stops at the first failure.
// Tensors are never modified; a passing check on a computed result moves
// it to Checked.
func (r *ForwardResult) Check(in *ForwardInput, p Parameter, m Method) error {
	if err := r.sameKind(in.kind); err != nil {
		return err
	}
	if err := checkParameterKind(r.kind, p); err != nil {
		return err
	}
	data, err := in.data(p)
	if err != nil {
		return err
	}
	if err := r.checkValue(data, p, m); err != nil {
		return err
	}
	if err := r.checkLayerData(); err != nil {
		return err
	}
	if r.kind == KindPReLU {
		pp, err := preluParameter(p)
		if err != nil {
			return err
		}
		if err := in.checkWeights(pp, data); err != nil {
			return err
		}
	}

	if r.state.IsComputed() {
		r.state = Checked
	}
	return nil
}

func (r *ForwardResult) checkValue(data *tensor.RawTensor, p Parameter, m Method) error {
	value, err := r.arg.Tensor(Value)
	if err != nil {
		return err
	}
	name := r.arg.NameOf(Value)
	if value == nil {
		return diag.Missing(name)
	}
	want, err := r.ValueSize(data.Shape(), p, m)
	if err != nil {
		return err
	}
	if !value.Shape().Equal(want) {
		return diag.ShapeMismatch(name, want, value.Shape())
	}
	if value.DType() != data.DType() {
		return diag.TypeMismatch(name, data.DType(), value.DType())
	}
	return nil
}

func (r *ForwardResult) checkLayerData() error {
	ld, err := r.arg.LayerData(ResultForBackward)
	if err != nil {
		return err
	}
	if ld == nil {
		return diag.Missing(r.arg.NameOf(ResultForBackward))
	}
	return nil
}

func (r *ForwardResult) sameKind(k Kind) error {
	if k != r.kind {
		return diag.Newf(diag.ErrInvalidArgument, "", "%s input used with %s result", k, r.kind)
	}
	return nil
}

// fill sets every element of t to v, narrowed to t's precision.
func fill(t *tensor.RawTensor, v float64) {
	switch t.DType() {
	case tensor.Float32:
		data := t.AsFloat32()
		for i := range data {
			data[i] = float32(v)
		}
	case tensor.Float64:
		data := t.AsFloat64()
		for i := range data {
			data[i] = v
		}
	}
}
