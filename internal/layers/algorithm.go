package layers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/born-ml/layers/internal/backend"
	"github.com/born-ml/layers/internal/diag"
	"github.com/born-ml/layers/internal/parallel"
	"github.com/born-ml/layers/internal/tensor"
)

// Config selects the kernel an algorithm runs.
type Config struct {
	Precision tensor.DataType
	Method    Method
	Target    backend.Target
	Parallel  parallel.Config
	Logger    *slog.Logger // nil discards
}

// DefaultConfig returns a float32, default-method configuration on the
// detected CPU target with parallel execution enabled.
func DefaultConfig() Config {
	return Config{
		Precision: tensor.Float32,
		Method:    MethodDefault,
		Target:    backend.Detect(),
		Parallel:  parallel.DefaultConfig(),
		Logger:    slog.New(slog.DiscardHandler),
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

func selectKernel(cfg Config, op string) (preluKernel, error) {
	key := kernelKey{cfg.Precision, cfg.Method, cfg.Target}
	factory, ok := preluKernels[key]
	if !ok {
		return nil, diag.Newf(diag.ErrUnsupported, "", "%s: no kernel for %s", op, key)
	}
	k, err := factory(cfg)
	if err != nil {
		if errors.Is(err, diag.ErrUnsupported) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return nil, diag.Newf(diag.ErrUnsupported, "", "%s: %s: %v", op, key, err)
	}
	cfg.logger().Debug("kernel selected", "op", op, "kernel", k.Name(), "key", key.String())
	return k, nil
}

// PReLUForward computes y = x for x >= 0 and y = a[c]*x elsewhere, caching
// x and a in the result's LayerData for the backward pass.
type PReLUForward struct {
	cfg    Config
	kernel preluKernel
	log    *slog.Logger
}

// NewPReLUForward selects the forward kernel for cfg.
// Returns an ErrUnsupported error when no kernel matches.
func NewPReLUForward(cfg Config) (*PReLUForward, error) {
	k, err := selectKernel(cfg, "prelu forward")
	if err != nil {
		return nil, err
	}
	return &PReLUForward{cfg: cfg, kernel: k, log: cfg.logger()}, nil
}

// Config returns the configuration the algorithm was built with.
func (f *PReLUForward) Config() Config {
	return f.cfg
}

// Release frees the kernel's device resources.
func (f *PReLUForward) Release() {
	f.kernel.Release()
}

// Compute runs the forward pass. r must be freshly allocated for in.
func (f *PReLUForward) Compute(in *ForwardInput, p Parameter, r *ForwardResult) error {
	pp, err := preluParameter(p)
	if err != nil {
		return err
	}
	if in.Kind() != KindPReLU || r.Kind() != KindPReLU {
		return diag.Newf(diag.ErrInvalidArgument, "", "prelu forward: got %s input and %s result", in.Kind(), r.Kind())
	}
	if err := in.Check(pp, f.cfg.Method); err != nil {
		return err
	}
	if r.State() != Allocated {
		return diag.Newf(diag.ErrInvalidState, "", "prelu forward: result is %s, want %s", r.State(), Allocated)
	}

	x, _ := in.Get(Data)
	a, _ := in.Get(Weights)
	if x.DType() != f.cfg.Precision {
		return diag.TypeMismatch(in.arg.NameOf(Data), f.cfg.Precision, x.DType())
	}
	if err := r.checkValue(x, pp, f.cfg.Method); err != nil {
		return err
	}
	if err := r.checkLayerData(); err != nil {
		return err
	}
	y, _ := r.Get(Value)
	ld, _ := r.LayerData()

	g := pp.Geometry(x.Shape())
	if err := f.kernel.Forward(x, a, y, g); err != nil {
		return fmt.Errorf("prelu forward: %w", err)
	}
	if err := ld.Set(AuxData, x); err != nil {
		return err
	}
	if err := ld.Set(AuxWeights, a); err != nil {
		return err
	}

	r.state = Computed
	f.log.Debug("prelu forward computed", "shape", x.Shape().String(), "geometry", g.String())
	return nil
}

// PReLUBackward computes the gradients of the PReLU activation:
// dx = g for x >= 0 and a[c]*g elsewhere, da[c] = sum of x*g over the
// negative x of channel c.
type PReLUBackward struct {
	cfg    Config
	kernel preluKernel
	log    *slog.Logger
}

// NewPReLUBackward selects the backward kernel for cfg.
// Returns an ErrUnsupported error when no kernel matches.
func NewPReLUBackward(cfg Config) (*PReLUBackward, error) {
	k, err := selectKernel(cfg, "prelu backward")
	if err != nil {
		return nil, err
	}
	return &PReLUBackward{cfg: cfg, kernel: k, log: cfg.logger()}, nil
}

// Config returns the configuration the algorithm was built with.
func (b *PReLUBackward) Config() Config {
	return b.cfg
}

// Release frees the kernel's device resources.
func (b *PReLUBackward) Release() {
	b.kernel.Release()
}

// Compute runs the backward pass. r must be freshly allocated for in.
// With PropagateGradient unset only the slope derivatives are written.
func (b *PReLUBackward) Compute(in *BackwardInput, p Parameter, r *BackwardResult) error {
	pp, err := preluParameter(p)
	if err != nil {
		return err
	}
	if in.Kind() != KindPReLU || r.Kind() != KindPReLU {
		return diag.Newf(diag.ErrInvalidArgument, "", "prelu backward: got %s input and %s result", in.Kind(), r.Kind())
	}
	ops, err := in.operands(pp)
	if err != nil {
		return err
	}
	if r.State() != Allocated {
		return diag.Newf(diag.ErrInvalidState, "", "prelu backward: result is %s, want %s", r.State(), Allocated)
	}
	if ops.x.DType() != b.cfg.Precision {
		return diag.TypeMismatch(in.arg.NameOf(InputGradient), b.cfg.Precision, ops.x.DType())
	}
	if err := r.checkOutputs(ops, pp, b.cfg.Method); err != nil {
		return err
	}

	var dx *tensor.RawTensor
	if pp.PropagateGradient {
		dx, _ = r.Get(Gradient)
	}
	da, _ := r.Get(WeightDerivatives)

	g := pp.Geometry(ops.x.Shape())
	if err := b.kernel.Backward(ops.x, ops.grad, ops.a, dx, da, g); err != nil {
		return fmt.Errorf("prelu backward: %w", err)
	}

	r.state = Computed
	b.log.Debug("prelu backward computed",
		"shape", ops.x.Shape().String(), "geometry", g.String(), "propagateGradient", pp.PropagateGradient)
	return nil
}
