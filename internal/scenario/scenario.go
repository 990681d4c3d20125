// Package scenario loads YAML documents describing one PReLU forward and,
// optionally, backward computation and runs them through the layer
// algorithms.
//
// A scenario looks like:
//
//	precision: float32
//	target: auto
//	parameter: {dataDimension: 0, weightsDimension: 1}
//	shape: [1, 4]
//	input: [-2, 0, 3, -1]
//	slope: [0.1]
//	gradient: [1, 1, 1, 1]
//
// Omitted slopes are initialized from parameter.initialSlope; the backward
// pass runs only when a gradient is given.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/layers/internal/backend"
	"github.com/born-ml/layers/internal/layers"
	"github.com/born-ml/layers/internal/parallel"
	"github.com/born-ml/layers/internal/tensor"
)

// ErrInvalid is returned for documents that fail validation.
var ErrInvalid = errors.New("invalid scenario")

// Parameter mirrors layers.PReLUParameter.
type Parameter struct {
	DataDimension     int     `yaml:"dataDimension"`
	WeightsDimension  int     `yaml:"weightsDimension"`
	PropagateGradient bool    `yaml:"propagateGradient"`
	InitialSlope      float64 `yaml:"initialSlope"`
}

// Scenario is one PReLU computation.
type Scenario struct {
	Precision string    `yaml:"precision"`
	Target    string    `yaml:"target"`
	Method    string    `yaml:"method"`
	Workers   int       `yaml:"workers,omitempty"` // 0 uses every CPU, 1 runs sequentially
	Parameter Parameter `yaml:"parameter"`
	Shape     []int     `yaml:"shape"`
	Input     []float64 `yaml:"input"`
	Slope     []float64 `yaml:"slope,omitempty"`
	Gradient  []float64 `yaml:"gradient,omitempty"`
}

// Default returns a scenario with every optional field at its default.
func Default() *Scenario {
	p := layers.NewPReLUParameter()
	return &Scenario{
		Precision: tensor.Float32.String(),
		Target:    "auto",
		Method:    layers.MethodDefault.String(),
		Parameter: Parameter{
			DataDimension:     p.DataDimension,
			WeightsDimension:  p.WeightsDimension,
			PropagateGradient: p.PropagateGradient,
			InitialSlope:      p.InitialSlope,
		},
	}
}

// Load decodes and validates a scenario. Unknown fields are rejected.
func Load(r io.Reader) (*Scenario, error) {
	s := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFile loads a scenario from path.
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from the command line
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// PReLUParameter returns the layer parameter.
func (s *Scenario) PReLUParameter() layers.PReLUParameter {
	return layers.PReLUParameter{
		DataDimension:     s.Parameter.DataDimension,
		WeightsDimension:  s.Parameter.WeightsDimension,
		PropagateGradient: s.Parameter.PropagateGradient,
		InitialSlope:      s.Parameter.InitialSlope,
	}
}

// Validate checks the document for consistency.
func (s *Scenario) Validate() error {
	if _, err := tensor.ParseDataType(s.Precision); err != nil {
		return fmt.Errorf("%w: precision: %v", ErrInvalid, err)
	}
	if _, err := backend.ParseTarget(s.Target); err != nil {
		return fmt.Errorf("%w: target: %v", ErrInvalid, err)
	}
	if _, err := layers.ParseMethod(s.Method); err != nil {
		return fmt.Errorf("%w: method: %v", ErrInvalid, err)
	}
	if s.Workers < 0 {
		return fmt.Errorf("%w: workers: %d is negative", ErrInvalid, s.Workers)
	}

	shape := tensor.Shape(s.Shape)
	if len(shape) == 0 {
		return fmt.Errorf("%w: shape is empty", ErrInvalid)
	}
	if err := shape.Validate(); err != nil {
		return fmt.Errorf("%w: shape: %v", ErrInvalid, err)
	}
	if len(s.Input) != shape.NumElements() {
		return fmt.Errorf("%w: input has %d values, shape %v needs %d", ErrInvalid, len(s.Input), shape, shape.NumElements())
	}

	p := s.PReLUParameter()
	if err := p.Validate(shape); err != nil {
		return fmt.Errorf("%w: parameter: %w", ErrInvalid, err)
	}
	if s.Slope != nil {
		if want := p.WeightsShape(shape).NumElements(); len(s.Slope) != want {
			return fmt.Errorf("%w: slope has %d values, want %d", ErrInvalid, len(s.Slope), want)
		}
	}
	if s.Gradient != nil && len(s.Gradient) != len(s.Input) {
		return fmt.Errorf("%w: gradient has %d values, want %d", ErrInvalid, len(s.Gradient), len(s.Input))
	}
	return nil
}

// Config builds the algorithm configuration. A nil logger discards.
func (s *Scenario) Config(logger *slog.Logger) (layers.Config, error) {
	cfg := layers.DefaultConfig()

	var err error
	if cfg.Precision, err = tensor.ParseDataType(s.Precision); err != nil {
		return cfg, fmt.Errorf("%w: precision: %v", ErrInvalid, err)
	}
	if cfg.Target, err = backend.ParseTarget(s.Target); err != nil {
		return cfg, fmt.Errorf("%w: target: %v", ErrInvalid, err)
	}
	if cfg.Method, err = layers.ParseMethod(s.Method); err != nil {
		return cfg, fmt.Errorf("%w: method: %v", ErrInvalid, err)
	}
	switch {
	case s.Workers == 1:
		cfg.Parallel = parallel.Sequential()
	case s.Workers > 1:
		cfg.Parallel.Enabled = true
		cfg.Parallel.NumWorkers = s.Workers
	}
	if logger != nil {
		cfg.Logger = logger
	}
	return cfg, nil
}
