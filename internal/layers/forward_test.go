package layers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/layers/internal/argument"
	"github.com/born-ml/layers/internal/backend"
	"github.com/born-ml/layers/internal/diag"
	"github.com/born-ml/layers/internal/tensor"
)

func TestForwardInputSizes(t *testing.T) {
	x := newTensor(t, make([]float32, 24), 2, 3, 4)
	p := NewPReLUParameter()
	p.DataDimension = 1

	in := preluInput(t, x, nil)
	weights, err := in.WeightsSizes(p)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3}, weights)

	biases, err := in.BiasesSizes(p)
	require.NoError(t, err)
	assert.Nil(t, biases)

	loss := NewForwardInput(KindLoss)
	defer loss.Release()
	require.NoError(t, loss.Set(Data, x))
	weights, err = loss.WeightsSizes(LossParameter{})
	require.NoError(t, err)
	assert.Nil(t, weights)
	biases, err = loss.BiasesSizes(LossParameter{})
	require.NoError(t, err)
	assert.Nil(t, biases)
}

func TestForwardInputCheck(t *testing.T) {
	x := newTensor(t, []float32{1, 2, 3, 4, 5, 6}, 2, 3)
	p := NewPReLUParameter()

	tests := []struct {
		name   string
		build  func() *ForwardInput
		param  Parameter
		kind   error
		tensor string
	}{
		{
			name:   "missing data",
			build:  func() *ForwardInput { return NewForwardInput(KindPReLU) },
			param:  p,
			kind:   diag.ErrMissingInput,
			tensor: "data",
		},
		{
			name:   "missing weights",
			build:  func() *ForwardInput { return preluInput(t, x, nil) },
			param:  p,
			kind:   diag.ErrMissingInput,
			tensor: "weights",
		},
		{
			name: "weights shape",
			build: func() *ForwardInput {
				return preluInput(t, x, newTensor(t, []float32{0.1, 0.2, 0.3}, 3))
			},
			param:  p,
			kind:   diag.ErrShapeMismatch,
			tensor: "weights",
		},
		{
			name: "weights precision",
			build: func() *ForwardInput {
				return preluInput(t, x, newTensor(t, []float64{0.1, 0.2}, 2))
			},
			param:  p,
			kind:   diag.ErrTypeMismatch,
			tensor: "weights",
		},
		{
			name: "channel axis out of range",
			build: func() *ForwardInput {
				return preluInput(t, x, newTensor(t, []float32{0.1, 0.2}, 2))
			},
			param:  PReLUParameter{DataDimension: 2, WeightsDimension: 1},
			kind:   diag.ErrInvalidParameter,
			tensor: "dataDimension",
		},
		{
			name: "wrong family parameter",
			build: func() *ForwardInput {
				return preluInput(t, x, newTensor(t, []float32{0.1, 0.2}, 2))
			},
			param:  LossParameter{},
			kind:   diag.ErrInvalidParameter,
			tensor: "parameter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().Check(tt.param, MethodDefault)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.tensor, diag.TensorOf(err))
		})
	}

	in := preluInput(t, x, newTensor(t, []float32{0.1, 0.2}, 2))
	assert.NoError(t, in.Check(p, MethodDefault))
}

func TestInitWeights(t *testing.T) {
	x := newTensor(t, make([]float64, 12), 3, 4)
	p := NewPReLUParameter()
	p.DataDimension = 1
	p.InitialSlope = 0.5

	in := preluInput(t, x, nil)
	require.NoError(t, in.InitWeights(p))

	w, err := in.Get(Weights)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, tensor.Shape{4}, w.Shape())
	assert.Equal(t, tensor.Float64, w.DType())
	assert.Equal(t, []float64{0.5, 0.5, 0.5, 0.5}, w.AsFloat64())
	assert.NoError(t, in.Check(p, MethodDefault))

	// Present weights are kept.
	p.InitialSlope = 0.75
	require.NoError(t, in.InitWeights(p))
	again, err := in.Get(Weights)
	require.NoError(t, err)
	assert.True(t, again.SharesBuffer(w))
	assert.Equal(t, 0.5, again.AsFloat64()[0])
}

func TestInitWeightsRequiresData(t *testing.T) {
	in := NewForwardInput(KindPReLU)
	defer in.Release()
	err := in.InitWeights(NewPReLUParameter())
	assert.ErrorIs(t, err, diag.ErrMissingInput)
}

func TestForwardResultAllocate(t *testing.T) {
	x := newTensor(t, []float32{-1, 2, -3, 4}, 2, 2)
	in := preluInput(t, x, newTensor(t, []float32{0.1, 0.2}, 2))
	p := NewPReLUParameter()

	r := NewForwardResult(KindPReLU)
	defer r.Release()
	assert.Equal(t, Uninitialized, r.State())

	require.NoError(t, r.Allocate(in, p, MethodDefault))
	assert.Equal(t, Allocated, r.State())

	value, err := r.Get(Value)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, value.Shape())
	assert.Equal(t, tensor.Float32, value.DType())
	assert.Equal(t, []float32{0, 0, 0, 0}, value.AsFloat32())

	ld, err := r.LayerData()
	require.NoError(t, err)
	require.NotNil(t, ld)
	assert.Equal(t, 0, ld.Len())
	assert.Equal(t, []argument.ID{AuxData, AuxWeights}, ld.Keys())
}

func TestForwardResultAllocateTwice(t *testing.T) {
	x := newTensor(t, []float32{-1, 2, -3, 4}, 2, 2)
	in := preluInput(t, x, newTensor(t, []float32{0.1, 0.2}, 2))
	p := NewPReLUParameter()

	once := NewForwardResult(KindPReLU)
	defer once.Release()
	require.NoError(t, once.Allocate(in, p, MethodDefault))
	onceErr := once.Check(in, p, MethodDefault)

	twice := NewForwardResult(KindPReLU)
	defer twice.Release()
	require.NoError(t, twice.Allocate(in, p, MethodDefault))
	first, err := twice.Get(Value)
	require.NoError(t, err)
	first = first.Clone()
	defer first.Release()

	require.NoError(t, twice.Allocate(in, p, MethodDefault))
	twiceErr := twice.Check(in, p, MethodDefault)

	assert.Equal(t, onceErr, twiceErr)
	assert.NoError(t, twiceErr)
	assert.True(t, first.IsUnique(), "previous value must be released")
	assert.Equal(t, Allocated, twice.State())
}

func TestForwardResultCheckOrder(t *testing.T) {
	x := newTensor(t, []float32{-1, 2, -3, 4}, 2, 2)
	p := NewPReLUParameter()

	// Value is checked before weights.
	in := preluInput(t, x, nil)
	r := NewForwardResult(KindPReLU)
	defer r.Release()
	err := r.Check(in, p, MethodDefault)
	assert.ErrorIs(t, err, diag.ErrMissingInput)
	assert.Equal(t, "value", diag.TensorOf(err))

	require.NoError(t, r.Allocate(in, p, MethodDefault))
	err = r.Check(in, p, MethodDefault)
	assert.ErrorIs(t, err, diag.ErrMissingInput)
	assert.Equal(t, "weights", diag.TensorOf(err))

	// Wrong value shape.
	require.NoError(t, r.Set(Value, newTensor(t, []float32{0, 0}, 2)))
	err = r.Check(in, p, MethodDefault)
	assert.ErrorIs(t, err, diag.ErrShapeMismatch)
	assert.Equal(t, "value", diag.TensorOf(err))

	// Wrong value precision.
	require.NoError(t, r.Set(Value, newTensor(t, []float64{0, 0, 0, 0}, 2, 2)))
	err = r.Check(in, p, MethodDefault)
	assert.ErrorIs(t, err, diag.ErrTypeMismatch)

	// Missing layer data.
	require.NoError(t, r.Allocate(in, p, MethodDefault))
	require.NoError(t, r.Set(ResultForBackward, nil))
	err = r.Check(in, p, MethodDefault)
	assert.ErrorIs(t, err, diag.ErrMissingInput)
	assert.Equal(t, "resultForBackward", diag.TensorOf(err))
}

func TestForwardResultKindMismatch(t *testing.T) {
	x := newTensor(t, []float32{1}, 1)
	in := preluInput(t, x, nil)

	r := NewForwardResult(KindLoss)
	defer r.Release()
	err := r.Allocate(in, LossParameter{}, MethodDefault)
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)
}

func TestLossForward(t *testing.T) {
	x := newTensor(t, []float64{0.2, 0.8, 0.6, 0.4}, 2, 2)
	truth := newTensor(t, []float64{0, 1, 1, 0}, 2, 2)

	in := NewForwardInput(KindLoss)
	defer in.Release()
	require.NoError(t, in.Set(Data, x))
	require.NoError(t, in.Set(GroundTruth, truth))
	assert.NoError(t, in.Check(LossParameter{}, MethodDefault))

	r := NewForwardResult(KindLoss)
	defer r.Release()

	size, err := r.ValueSize(x.Shape(), LossParameter{}, MethodDefault)
	require.NoError(t, err)
	assert.Equal(t, x.Shape(), size)

	err = r.Check(in, LossParameter{}, MethodDefault)
	assert.ErrorIs(t, err, diag.ErrMissingInput)
	assert.Equal(t, "value", diag.TensorOf(err))

	require.NoError(t, r.Allocate(in, LossParameter{}, MethodDefault))
	require.NoError(t, r.Allocate(in, LossParameter{}, MethodDefault))
	assert.NoError(t, r.Check(in, LossParameter{}, MethodDefault))
	assert.Equal(t, Allocated, r.State(), "check does not advance an uncomputed result")

	value, err := r.Get(Value)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, value.Shape())
	assert.Equal(t, tensor.Float64, value.DType())

	ld, err := r.LayerData()
	require.NoError(t, err)
	assert.Equal(t, []argument.ID{AuxLossData, AuxGroundTruth}, ld.Keys())

	empty := NewForwardInput(KindLoss)
	defer empty.Release()
	err = r.Check(empty, LossParameter{}, MethodDefault)
	assert.ErrorIs(t, err, diag.ErrMissingInput)
	assert.Equal(t, "data", diag.TensorOf(err))
}

func TestGetReturnsBorrowedHandle(t *testing.T) {
	x := newTensor(t, []float32{-2, 0, 3, -1}, 4)
	a := newTensor(t, []float32{0.1, 0.1, 0.1, 0.1}, 4)
	p := NewPReLUParameter()
	cfg := testConfig(tensor.Float32, backend.TargetScalar)

	r := runForward(t, cfg, preluInput(t, x, a), p)
	value, err := r.Get(Value)
	require.NoError(t, err)
	kept := value.Clone()
	defer kept.Release()

	r.Release()
	assert.InDeltaSlice(t, []float64{-0.2, 0, 3, -0.1}, tensor.Float64s(kept), 1e-6)
	assert.True(t, kept.IsUnique())
}
