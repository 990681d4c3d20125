package argument

import (
	"testing"

	"github.com/born-ml/layers/internal/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayerDataCachesSharedHandles(t *testing.T) {
	ld := NewLayerData(0, 1).Describe(0, "auxData")
	x := newTensor(t, -2, 0, 3)

	require.NoError(t, ld.Set(0, x))
	assert.Equal(t, 1, ld.Len())

	cached, err := ld.Tensor(0)
	require.NoError(t, err)
	assert.True(t, cached.SharesBuffer(x))

	missing, err := ld.Tensor(1)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLayerDataUnknownKey(t *testing.T) {
	ld := NewLayerData(0, 1)

	_, err := ld.Tensor(5)
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)
	assert.Equal(t, []ID{0, 1}, ld.Keys())
}

func TestLayerDataRelease(t *testing.T) {
	ld := NewLayerData(0)
	x := newTensor(t, 1)
	require.NoError(t, ld.Set(0, x))

	ld.Release()
	assert.True(t, x.IsUnique())
	assert.Equal(t, 0, ld.Len())
}

func TestLayerDataShare(t *testing.T) {
	ld := NewLayerData(0)
	x := newTensor(t, 1, 2)
	require.NoError(t, ld.Set(0, x))

	shared := ld.Share()
	ld.Release()
	ld.Release()

	cached, err := shared.Tensor(0)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.False(t, x.IsUnique())

	shared.Release()
	assert.True(t, x.IsUnique())
}
