package argument

import (
	"testing"

	"github.com/born-ml/layers/internal/diag"
	"github.com/born-ml/layers/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTensor(t *testing.T, data ...float32) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.FromSlice(data, tensor.Shape{len(data)})
	require.NoError(t, err)
	return raw
}

func TestArgumentGetAbsentIsNotAnError(t *testing.T) {
	a := New("input", 0, 1, 4)

	v, err := a.Get(1)
	require.NoError(t, err)
	assert.Nil(t, v)

	x, err := a.Tensor(4)
	require.NoError(t, err)
	assert.Nil(t, x)
}

func TestArgumentUndeclaredID(t *testing.T) {
	a := New("input", 0, 1, 4).Describe(0, "data")

	_, err := a.Get(3)
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)

	err = a.Set(7, newTensor(t, 1))
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)

	_, err = a.Get(-1)
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)
}

func TestArgumentSetSharesBuffer(t *testing.T) {
	a := New("input", 0)
	x := newTensor(t, 1, 2, 3)

	require.NoError(t, a.Set(0, x))
	got, err := a.Tensor(0)
	require.NoError(t, err)

	assert.True(t, got.SharesBuffer(x))
	assert.NotSame(t, x, got)
	assert.Equal(t, []float32{1, 2, 3}, tensor.Data[float32](got))
}

func TestArgumentOverwriteReleasesPrevious(t *testing.T) {
	a := New("result", 0)
	first := newTensor(t, 1)
	second := newTensor(t, 2)

	require.NoError(t, a.Set(0, first))
	assert.False(t, first.IsUnique())

	require.NoError(t, a.Set(0, second))
	assert.True(t, first.IsUnique(), "previous handle must be released")

	got, err := a.Tensor(0)
	require.NoError(t, err)
	assert.Equal(t, []float32{2}, tensor.Data[float32](got))
	assert.Equal(t, 1, a.Len())
}

func TestArgumentSetNilClears(t *testing.T) {
	a := New("result", 0)
	x := newTensor(t, 1)
	require.NoError(t, a.Set(0, x))

	require.NoError(t, a.Set(0, nil))
	assert.Equal(t, 0, a.Len())
	assert.True(t, x.IsUnique())

	var typedNil *tensor.RawTensor
	require.NoError(t, a.Set(0, typedNil))
	assert.Equal(t, 0, a.Len())
}

func TestArgumentTypedGetterMismatch(t *testing.T) {
	a := New("result", 0, 1).Describe(1, "resultForBackward")
	require.NoError(t, a.Set(0, newTensor(t, 1)))
	require.NoError(t, a.Set(1, NewLayerData(0)))

	_, err := a.LayerData(0)
	assert.ErrorIs(t, err, diag.ErrTypeMismatch)

	_, err = a.Tensor(1)
	assert.ErrorIs(t, err, diag.ErrTypeMismatch)
	assert.Equal(t, "resultForBackward", diag.TensorOf(err))
}

func TestArgumentIDsAndNames(t *testing.T) {
	a := New("input", 4, 0, 2).Describe(0, "data")

	assert.Equal(t, []ID{0, 2, 4}, a.IDs())
	assert.Equal(t, "data", a.NameOf(0))
	assert.Equal(t, "input[2]", a.NameOf(2))
	assert.True(t, a.Declares(4))
	assert.False(t, a.Declares(3))
}

func TestArgumentRelease(t *testing.T) {
	a := New("result", 0, 1)
	x := newTensor(t, 1)
	require.NoError(t, a.Set(0, x))
	require.NoError(t, a.Set(1, NewLayerData(0)))

	a.Release()
	assert.Equal(t, 0, a.Len())
	assert.True(t, x.IsUnique())
}
