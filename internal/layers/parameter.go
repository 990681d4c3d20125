package layers

import (
	"math"

	"github.com/born-ml/layers/internal/backend"
	"github.com/born-ml/layers/internal/diag"
	"github.com/born-ml/layers/internal/tensor"
)

// Parameter is the family-specific configuration of a layer. It is
// immutable for the lifetime of one forward+backward cycle.
type Parameter interface {
	Kind() Kind
	Validate(dataShape tensor.Shape) error
}

// LossParameter configures the loss family. It has no fields.
type LossParameter struct{}

// Kind returns KindLoss.
func (LossParameter) Kind() Kind { return KindLoss }

// Validate accepts any data shape.
func (LossParameter) Validate(tensor.Shape) error { return nil }

// PReLUParameter configures the PReLU family.
//
// The slopes span the data dims [DataDimension, DataDimension+WeightsDimension);
// every other dim broadcasts them. WeightsDimension == 0 selects one shared
// slope.
type PReLUParameter struct {
	DataDimension     int
	WeightsDimension  int
	PropagateGradient bool    // compute the input gradient in backward
	InitialSlope      float64 // fill value used by ForwardInput.InitWeights
}

// NewPReLUParameter returns the default parameter: one slope per index of
// dim 0, gradient propagation on, initial slope 0.25.
func NewPReLUParameter() PReLUParameter {
	return PReLUParameter{
		DataDimension:     0,
		WeightsDimension:  1,
		PropagateGradient: true,
		InitialSlope:      0.25,
	}
}

// Kind returns KindPReLU.
func (PReLUParameter) Kind() Kind { return KindPReLU }

// Validate checks that the slope dims lie inside a tensor of dataShape.
func (p PReLUParameter) Validate(dataShape tensor.Shape) error {
	rank := len(dataShape)
	if p.DataDimension < 0 || (rank > 0 && p.DataDimension >= rank) {
		return diag.InvalidParameter("dataDimension", "%d is out of range for rank %d", p.DataDimension, rank)
	}
	if p.WeightsDimension < 0 || p.DataDimension+p.WeightsDimension > rank {
		return diag.InvalidParameter("weightsDimension",
			"%d dims starting at %d exceed rank %d", p.WeightsDimension, p.DataDimension, rank)
	}
	if math.IsNaN(p.InitialSlope) || math.IsInf(p.InitialSlope, 0) {
		return diag.InvalidParameter("initialSlope", "%v is not finite", p.InitialSlope)
	}
	return nil
}

// WeightsShape returns the shape of the slope tensor for dataShape.
func (p PReLUParameter) WeightsShape(dataShape tensor.Shape) tensor.Shape {
	if p.WeightsDimension == 0 {
		return tensor.Shape{1}
	}
	return dataShape[p.DataDimension : p.DataDimension+p.WeightsDimension].Clone()
}

// Geometry maps dataShape onto the kernel geometry: the slope dims collapse
// into Channels, the dims before them into Outer and the dims after into Inner.
func (p PReLUParameter) Geometry(dataShape tensor.Shape) backend.Geometry {
	if p.WeightsDimension == 0 {
		return backend.Geometry{Outer: 1, Channels: 1, Inner: dataShape.NumElements()}
	}
	end := p.DataDimension + p.WeightsDimension
	return backend.Geometry{
		Outer:    dataShape.Span(0, p.DataDimension),
		Channels: dataShape.Span(p.DataDimension, end),
		Inner:    dataShape.Span(end, len(dataShape)),
	}
}

// preluParameter asserts p belongs to the PReLU family.
func preluParameter(p Parameter) (PReLUParameter, error) {
	switch v := p.(type) {
	case PReLUParameter:
		return v, nil
	case *PReLUParameter:
		if v != nil {
			return *v, nil
		}
	}
	return PReLUParameter{}, kindMismatch(KindPReLU, p)
}

func checkParameterKind(k Kind, p Parameter) error {
	if isNil(p) || p.Kind() != k {
		return kindMismatch(k, p)
	}
	return nil
}

// isNil reports whether p is nil or a nil pointer parameter.
func isNil(p Parameter) bool {
	switch v := p.(type) {
	case nil:
		return true
	case *PReLUParameter:
		return v == nil
	case *LossParameter:
		return v == nil
	}
	return false
}

func kindMismatch(want Kind, p Parameter) error {
	if isNil(p) {
		return diag.InvalidParameter("parameter", "nil parameter for %s layer", want)
	}
	return diag.InvalidParameter("parameter", "%s parameter used with %s layer", p.Kind(), want)
}
