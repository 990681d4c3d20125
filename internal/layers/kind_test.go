package layers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/layers/internal/argument"
	"github.com/born-ml/layers/internal/diag"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "loss", KindLoss.String())
	assert.Equal(t, "prelu", KindPReLU.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}

func TestParseMethod(t *testing.T) {
	for _, s := range []string{"", "default", "Dense"} {
		m, err := ParseMethod(s)
		require.NoError(t, err, s)
		assert.Equal(t, MethodDefault, m)
	}

	_, err := ParseMethod("winograd")
	assert.Error(t, err)
}

func TestDeclaredIdentifiers(t *testing.T) {
	tests := []struct {
		name string
		set  func(argument.ID) error
		ok   []argument.ID
		bad  argument.ID
	}{
		{
			name: "loss forward input",
			set:  func(id argument.ID) error { return NewForwardInput(KindLoss).Set(id, nil) },
			ok:   []argument.ID{Data, Weights, Biases, GroundTruth},
			bad:  3,
		},
		{
			name: "prelu forward input",
			set:  func(id argument.ID) error { return NewForwardInput(KindPReLU).Set(id, nil) },
			ok:   []argument.ID{Data, Weights, Biases},
			bad:  GroundTruth,
		},
		{
			name: "forward result",
			set:  func(id argument.ID) error { return NewForwardResult(KindPReLU).Set(id, nil) },
			ok:   []argument.ID{Value, ResultForBackward},
			bad:  2,
		},
		{
			name: "backward input",
			set:  func(id argument.ID) error { return NewBackwardInput(KindPReLU).Set(id, nil) },
			ok:   []argument.ID{InputGradient, InputFromForward},
			bad:  2,
		},
		{
			name: "backward result",
			set:  func(id argument.ID) error { return NewBackwardResult(KindPReLU).Set(id, nil) },
			ok:   []argument.ID{Gradient, WeightDerivatives, BiasDerivatives},
			bad:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, id := range tt.ok {
				assert.NoError(t, tt.set(id), "id %d", id)
			}
			assert.ErrorIs(t, tt.set(tt.bad), diag.ErrInvalidArgument)
		})
	}
}

func TestLayerDataKeys(t *testing.T) {
	assert.Equal(t, []argument.ID{AuxData, AuxWeights}, newLayerData(KindPReLU).Keys())
	assert.Equal(t, "auxWeights", newLayerData(KindPReLU).NameOf(AuxWeights))
	assert.Equal(t, "auxGroundTruth", newLayerData(KindLoss).NameOf(AuxGroundTruth))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "uninitialized", Uninitialized.String())
	assert.Equal(t, "checked", Checked.String())
	assert.True(t, Computed.IsComputed())
	assert.True(t, Checked.IsComputed())
	assert.False(t, Allocated.IsComputed())
}
