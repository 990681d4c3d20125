package scenario

import (
	"context"
	"log/slog"

	"github.com/born-ml/layers/internal/layers"
	"github.com/born-ml/layers/internal/tensor"
)

// Outcome holds the tensors a scenario produced, widened to float64.
type Outcome struct {
	Precision         string    `yaml:"precision"`
	Target            string    `yaml:"target"`
	Shape             []int     `yaml:"shape"`
	Value             []float64 `yaml:"value"`
	SlopeShape        []int     `yaml:"slopeShape"`
	Slope             []float64 `yaml:"slope"`
	Gradient          []float64 `yaml:"gradient,omitempty"`
	WeightDerivatives []float64 `yaml:"weightDerivatives,omitempty"`
}

// Run executes the forward pass and, when the scenario has a gradient, the
// backward pass. ctx is checked between the passes.
func (s *Scenario) Run(ctx context.Context, logger *slog.Logger) (*Outcome, error) {
	cfg, err := s.Config(logger)
	if err != nil {
		return nil, err
	}
	p := s.PReLUParameter()
	shape := tensor.Shape(s.Shape)

	x, err := tensor.FromFloat64s(s.Input, shape, cfg.Precision)
	if err != nil {
		return nil, err
	}
	defer x.Release()

	in := layers.NewForwardInput(layers.KindPReLU)
	defer in.Release()
	if err := in.Set(layers.Data, x); err != nil {
		return nil, err
	}
	if s.Slope != nil {
		a, err := tensor.FromFloat64s(s.Slope, p.WeightsShape(shape), cfg.Precision)
		if err != nil {
			return nil, err
		}
		err = in.Set(layers.Weights, a)
		a.Release()
		if err != nil {
			return nil, err
		}
	} else if err := in.InitWeights(p); err != nil {
		return nil, err
	}

	fwd, err := layers.NewPReLUForward(cfg)
	if err != nil {
		return nil, err
	}
	defer fwd.Release()

	fr := layers.NewForwardResult(layers.KindPReLU)
	defer fr.Release()
	if err := fr.Allocate(in, p, cfg.Method); err != nil {
		return nil, err
	}
	if err := fwd.Compute(in, p, fr); err != nil {
		return nil, err
	}
	if err := fr.Check(in, p, cfg.Method); err != nil {
		return nil, err
	}

	value, _ := fr.Get(layers.Value)
	slope, _ := in.Get(layers.Weights)
	out := &Outcome{
		Precision:  cfg.Precision.String(),
		Target:     cfg.Target.String(),
		Shape:      shape.Clone(),
		Value:      tensor.Float64s(value),
		SlopeShape: slope.Shape().Clone(),
		Slope:      tensor.Float64s(slope),
	}
	if s.Gradient == nil {
		return out, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.backward(cfg, p, fr, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Scenario) backward(cfg layers.Config, p layers.PReLUParameter, fr *layers.ForwardResult, out *Outcome) error {
	grad, err := tensor.FromFloat64s(s.Gradient, tensor.Shape(s.Shape), cfg.Precision)
	if err != nil {
		return err
	}
	defer grad.Release()

	bwd, err := layers.NewPReLUBackward(cfg)
	if err != nil {
		return err
	}
	defer bwd.Release()

	in := layers.NewBackwardInput(layers.KindPReLU)
	defer in.Release()
	if err := in.Set(layers.InputGradient, grad); err != nil {
		return err
	}
	if err := in.SetLayerData(fr); err != nil {
		return err
	}

	r := layers.NewBackwardResult(layers.KindPReLU)
	defer r.Release()
	if err := r.Allocate(in, p, cfg.Method); err != nil {
		return err
	}
	if err := bwd.Compute(in, p, r); err != nil {
		return err
	}
	if err := r.Check(in, p, cfg.Method); err != nil {
		return err
	}

	if dx, _ := r.Get(layers.Gradient); dx != nil {
		out.Gradient = tensor.Float64s(dx)
	}
	da, _ := r.Get(layers.WeightDerivatives)
	out.WeightDerivatives = tensor.Float64s(da)
	return nil
}
