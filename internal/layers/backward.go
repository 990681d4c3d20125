package layers

import (
	"github.com/born-ml/layers/internal/argument"
	"github.com/born-ml/layers/internal/diag"
	"github.com/born-ml/layers/internal/tensor"
)

// BackwardInput holds the gradient of the loss with respect to a layer's
// output and the LayerData its forward pass produced.
type BackwardInput struct {
	kind Kind
	arg  *argument.Argument
}

// NewBackwardInput creates an empty backward input of family k.
func NewBackwardInput(k Kind) *BackwardInput {
	checkKind(k)
	return &BackwardInput{kind: k, arg: newBackwardInputArg(k)}
}

// Kind returns the layer family.
func (in *BackwardInput) Kind() Kind {
	return in.kind
}

// Get returns the tensor stored under id, or nil when it is not set.
// The handle is borrowed: it stays owned by the input, so callers must not
// Release it. Clone it to keep the tensor beyond the owner's Release.
func (in *BackwardInput) Get(id argument.ID) (*tensor.RawTensor, error) {
	return in.arg.Tensor(id)
}

// Set stores v under id, releasing the previous value.
func (in *BackwardInput) Set(id argument.ID, v argument.Value) error {
	return in.arg.Set(id, v)
}

// LayerData returns the forward pass's cached data, or nil.
func (in *BackwardInput) LayerData() (*argument.LayerData, error) {
	return in.arg.LayerData(InputFromForward)
}

// SetLayerData links the LayerData of a forward result. The LayerData is
// shared with the forward result, not copied.
func (in *BackwardInput) SetLayerData(fr *ForwardResult) error {
	ld, err := fr.LayerData()
	if err != nil {
		return err
	}
	if ld == nil {
		return diag.Missing(fr.arg.NameOf(ResultForBackward))
	}
	return in.arg.Set(InputFromForward, ld.Share())
}

// Release drops every stored value.
func (in *BackwardInput) Release() {
	in.arg.Release()
}

// Check validates the input: the incoming gradient, the LayerData, the
// cached forward input (same shape and precision as the gradient) and the
// cached slopes. It reports the first failure and never modifies the input.
func (in *BackwardInput) Check(p Parameter, _ Method) error {
	_, err := in.operands(p)
	return err
}

// backwardOperands are the tensors the PReLU backward kernel reads.
type backwardOperands struct {
	x, grad, a *tensor.RawTensor
}

func (in *BackwardInput) operands(p Parameter) (backwardOperands, error) {
	if in.kind != KindPReLU {
		return backwardOperands{}, diag.Newf(diag.ErrUnsupported, "", "%s layer has no backward pass", in.kind)
	}
	pp, err := preluParameter(p)
	if err != nil {
		return backwardOperands{}, err
	}

	grad, err := in.gradient()
	if err != nil {
		return backwardOperands{}, err
	}
	if err := pp.Validate(grad.Shape()); err != nil {
		return backwardOperands{}, err
	}

	ld, err := in.arg.LayerData(InputFromForward)
	if err != nil {
		return backwardOperands{}, err
	}
	if ld == nil {
		return backwardOperands{}, diag.Missing(in.arg.NameOf(InputFromForward))
	}

	x, err := ld.Tensor(AuxData)
	if err != nil {
		return backwardOperands{}, err
	}
	if x == nil {
		return backwardOperands{}, diag.Missing(ld.NameOf(AuxData))
	}
	gradName := in.arg.NameOf(InputGradient)
	if !grad.Shape().Equal(x.Shape()) {
		return backwardOperands{}, diag.ShapeMismatch(gradName, x.Shape(), grad.Shape())
	}
	if grad.DType() != x.DType() {
		return backwardOperands{}, diag.TypeMismatch(gradName, x.DType(), grad.DType())
	}

	a, err := ld.Tensor(AuxWeights)
	if err != nil {
		return backwardOperands{}, err
	}
	name := ld.NameOf(AuxWeights)
	if a == nil {
		return backwardOperands{}, diag.Missing(name)
	}
	if want := pp.WeightsShape(x.Shape()); !a.Shape().Equal(want) {
		return backwardOperands{}, diag.ShapeMismatch(name, want, a.Shape())
	}
	if a.DType() != x.DType() {
		return backwardOperands{}, diag.TypeMismatch(name, x.DType(), a.DType())
	}
	return backwardOperands{x: x, grad: grad, a: a}, nil
}

func (in *BackwardInput) gradient() (*tensor.RawTensor, error) {
	grad, err := in.arg.Tensor(InputGradient)
	if err != nil {
		return nil, err
	}
	if grad == nil {
		return nil, diag.Missing(in.arg.NameOf(InputGradient))
	}
	return grad, nil
}

// BackwardResult holds the gradients a backward pass produces.
type BackwardResult struct {
	kind  Kind
	arg   *argument.Argument
	state State
}

// NewBackwardResult creates an empty backward result of family k.
func NewBackwardResult(k Kind) *BackwardResult {
	checkKind(k)
	return &BackwardResult{kind: k, arg: newBackwardResultArg(k)}
}

// Kind returns the layer family.
func (r *BackwardResult) Kind() Kind {
	return r.kind
}

// State returns the lifecycle state.
func (r *BackwardResult) State() State {
	return r.state
}

// Get returns the tensor stored under id, or nil when it is not set.
// The handle is borrowed: it stays owned by the result, so callers must not
// Release it. Clone it to keep the tensor beyond the owner's Release.
func (r *BackwardResult) Get(id argument.ID) (*tensor.RawTensor, error) {
	return r.arg.Tensor(id)
}

// Set stores a shared handle of t under id. A nil t clears the entry.
func (r *BackwardResult) Set(id argument.ID, t *tensor.RawTensor) error {
	return r.arg.Set(id, t)
}

// Release drops every stored tensor and resets the state.
func (r *BackwardResult) Release() {
	r.arg.Release()
	r.state = Uninitialized
}

// ValueSize returns the input gradient shape for inputSize, which is
// inputSize itself.
func (r *BackwardResult) ValueSize(inputSize tensor.Shape, p Parameter, _ Method) (tensor.Shape, error) {
	if err := r.supported(); err != nil {
		return nil, err
	}
	if err := checkParameterKind(r.kind, p); err != nil {
		return nil, err
	}
	if err := p.Validate(inputSize); err != nil {
		return nil, err
	}
	return inputSize.Clone(), nil
}

// Allocate creates zero-filled gradient tensors in the precision of the
// incoming gradient: the input gradient (only when p.PropagateGradient is
// set) and the slope derivatives. Tensors from a previous allocation are
// released.
func (r *BackwardResult) Allocate(in *BackwardInput, p Parameter, m Method) error {
	if err := r.sameKind(in.kind); err != nil {
		return err
	}
	if err := r.supported(); err != nil {
		return err
	}
	pp, err := preluParameter(p)
	if err != nil {
		return err
	}
	grad, err := in.gradient()
	if err != nil {
		return err
	}
	shape, err := r.ValueSize(grad.Shape(), pp, m)
	if err != nil {
		return err
	}

	if pp.PropagateGradient {
		if err := r.allocate(Gradient, shape, grad); err != nil {
			return err
		}
	} else if err := r.arg.Set(Gradient, nil); err != nil {
		return err
	}
	if err := r.allocate(WeightDerivatives, pp.WeightsShape(shape), grad); err != nil {
		return err
	}
	r.state = Allocated
	return nil
}

func (r *BackwardResult) allocate(id argument.ID, shape tensor.Shape, like *tensor.RawTensor) error {
	t, err := tensor.NewRaw(shape, like.DType(), like.Device())
	if err != nil {
		return err
	}
	defer t.Release()
	return r.arg.Set(id, t)
}

// Check validates the input, then the input gradient (when propagated), then
// the slope derivatives. It stops at the first failure and never modifies
// tensors; a passing check on a computed result moves it to Checked.
func (r *BackwardResult) Check(in *BackwardInput, p Parameter, m Method) error {
	if err := r.sameKind(in.kind); err != nil {
		return err
	}
	ops, err := in.operands(p)
	if err != nil {
		return err
	}
	if err := r.checkOutputs(ops, p, m); err != nil {
		return err
	}

	if r.state.IsComputed() {
		r.state = Checked
	}
	return nil
}

func (r *BackwardResult) checkOutputs(ops backwardOperands, p Parameter, m Method) error {
	pp, err := preluParameter(p)
	if err != nil {
		return err
	}

	if pp.PropagateGradient {
		want, err := r.ValueSize(ops.x.Shape(), pp, m)
		if err != nil {
			return err
		}
		if err := r.checkTensor(Gradient, want, ops.x.DType()); err != nil {
			return err
		}
	}
	return r.checkTensor(WeightDerivatives, pp.WeightsShape(ops.x.Shape()), ops.x.DType())
}

func (r *BackwardResult) checkTensor(id argument.ID, want tensor.Shape, dtype tensor.DataType) error {
	t, err := r.arg.Tensor(id)
	if err != nil {
		return err
	}
	name := r.arg.NameOf(id)
	if t == nil {
		return diag.Missing(name)
	}
	if !t.Shape().Equal(want) {
		return diag.ShapeMismatch(name, want, t.Shape())
	}
	if t.DType() != dtype {
		return diag.TypeMismatch(name, dtype, t.DType())
	}
	return nil
}

func (r *BackwardResult) supported() error {
	if r.kind != KindPReLU {
		return diag.Newf(diag.ErrUnsupported, "", "%s layer has no backward pass", r.kind)
	}
	return nil
}

func (r *BackwardResult) sameKind(k Kind) error {
	if k != r.kind {
		return diag.Newf(diag.ErrInvalidArgument, "", "%s input used with %s result", k, r.kind)
	}
	return nil
}
