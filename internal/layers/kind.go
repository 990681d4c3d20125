// Package layers implements the typed forward/backward contract of a layer:
// which tensors a stage consumes and produces, how their shapes are derived
// and checked, and the algorithms that route a compute call to a kernel.
//
// Layer families are a closed set tagged by Kind. Inputs and results carry
// the tag and dispatch on it with explicit switches; there is no per-family
// subtype hierarchy.
package layers

import (
	"fmt"
	"strings"

	"github.com/born-ml/layers/internal/argument"
)

// Kind tags a layer family.
type Kind uint8

// Layer families.
const (
	KindLoss Kind = iota
	KindPReLU
)

// String returns the family name.
func (k Kind) String() string {
	switch k {
	case KindLoss:
		return "loss"
	case KindPReLU:
		return "prelu"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// Method selects the algorithmic variant of a kernel.
type Method uint8

// Computation methods.
const (
	MethodDefault Method = iota // dense
)

// String returns the method name.
func (m Method) String() string {
	if m == MethodDefault {
		return "default"
	}
	return fmt.Sprintf("method(%d)", m)
}

// ParseMethod parses a method name. The empty string is the default method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default", "dense":
		return MethodDefault, nil
	default:
		return 0, fmt.Errorf("unknown method %q", s)
	}
}

// Forward input identifiers.
const (
	Data        argument.ID = 0
	Weights     argument.ID = 1
	Biases      argument.ID = 2
	GroundTruth argument.ID = 4
)

// Forward result identifiers.
const (
	Value             argument.ID = 0
	ResultForBackward argument.ID = 1
)

// Backward input identifiers.
const (
	InputGradient    argument.ID = 0
	InputFromForward argument.ID = 1
)

// Backward result identifiers.
const (
	Gradient          argument.ID = 0
	WeightDerivatives argument.ID = 1
	BiasDerivatives   argument.ID = 2
)

// PReLU LayerData keys.
const (
	AuxData    argument.ID = 0
	AuxWeights argument.ID = 1
)

// Loss LayerData keys.
const (
	AuxLossData    argument.ID = 0
	AuxGroundTruth argument.ID = 1
)

// newForwardInputArg returns the empty forward input argument of kind k.
func newForwardInputArg(k Kind) *argument.Argument {
	var a *argument.Argument
	switch k {
	case KindLoss:
		a = argument.New("loss forward input", Data, Weights, Biases, GroundTruth).
			Describe(GroundTruth, "groundTruth")
	case KindPReLU:
		a = argument.New("prelu forward input", Data, Weights, Biases)
	default:
		panic(fmt.Sprintf("layers: unknown kind %d", k))
	}
	return a.Describe(Data, "data").Describe(Weights, "weights").Describe(Biases, "biases")
}

func newForwardResultArg(k Kind) *argument.Argument {
	return argument.New(k.String()+" forward result", Value, ResultForBackward).
		Describe(Value, "value").
		Describe(ResultForBackward, "resultForBackward")
}

func newBackwardInputArg(k Kind) *argument.Argument {
	return argument.New(k.String()+" backward input", InputGradient, InputFromForward).
		Describe(InputGradient, "inputGradient").
		Describe(InputFromForward, "inputFromForward")
}

func newBackwardResultArg(k Kind) *argument.Argument {
	return argument.New(k.String()+" backward result", Gradient, WeightDerivatives, BiasDerivatives).
		Describe(Gradient, "gradient").
		Describe(WeightDerivatives, "weightDerivatives").
		Describe(BiasDerivatives, "biasDerivatives")
}

// newLayerData returns the empty LayerData of kind k.
func newLayerData(k Kind) *argument.LayerData {
	switch k {
	case KindLoss:
		return argument.NewLayerData(AuxLossData, AuxGroundTruth).
			Describe(AuxLossData, "auxLossData").
			Describe(AuxGroundTruth, "auxGroundTruth")
	case KindPReLU:
		return argument.NewLayerData(AuxData, AuxWeights).
			Describe(AuxData, "auxData").
			Describe(AuxWeights, "auxWeights")
	default:
		panic(fmt.Sprintf("layers: unknown kind %d", k))
	}
}

func checkKind(k Kind) {
	if k != KindLoss && k != KindPReLU {
		panic(fmt.Sprintf("layers: unknown kind %d", k))
	}
}
