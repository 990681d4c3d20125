// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package layers

import (
	"github.com/born-ml/layers/internal/argument"
	"github.com/born-ml/layers/internal/diag"
	"github.com/born-ml/layers/internal/layers"
	"github.com/born-ml/layers/internal/parallel"
)

// Kind tags a layer family.
type Kind = layers.Kind

// Layer families.
const (
	KindLoss  = layers.KindLoss
	KindPReLU = layers.KindPReLU
)

// Method selects the algorithmic variant of a kernel.
type Method = layers.Method

// MethodDefault is the dense method.
const MethodDefault = layers.MethodDefault

// ID identifies a tensor within an input, result or LayerData.
type ID = argument.ID

// Forward input identifiers.
const (
	Data        = layers.Data
	Weights     = layers.Weights
	Biases      = layers.Biases
	GroundTruth = layers.GroundTruth
)

// Forward result identifiers.
const (
	Value             = layers.Value
	ResultForBackward = layers.ResultForBackward
)

// Backward input identifiers.
const (
	InputGradient    = layers.InputGradient
	InputFromForward = layers.InputFromForward
)

// Backward result identifiers.
const (
	Gradient          = layers.Gradient
	WeightDerivatives = layers.WeightDerivatives
	BiasDerivatives   = layers.BiasDerivatives
)

// LayerData keys.
const (
	AuxData        = layers.AuxData
	AuxWeights     = layers.AuxWeights
	AuxLossData    = layers.AuxLossData
	AuxGroundTruth = layers.AuxGroundTruth
)

// Error kinds reported by checks and algorithms.
var (
	ErrMissingInput      = diag.ErrMissingInput
	ErrShapeMismatch     = diag.ErrShapeMismatch
	ErrTypeMismatch      = diag.ErrTypeMismatch
	ErrInvalidParameter  = diag.ErrInvalidParameter
	ErrAllocationFailure = diag.ErrAllocationFailure
	ErrInvalidArgument   = diag.ErrInvalidArgument
	ErrInvalidState      = diag.ErrInvalidState
	ErrUnsupported       = diag.ErrUnsupported
)

// Error is the structured error behind every failed check.
type Error = diag.Error

// TensorOf returns the name of the tensor or parameter err is about.
func TensorOf(err error) string {
	return diag.TensorOf(err)
}

// State is the lifecycle position of a result.
type State = layers.State

// Result states.
const (
	Uninitialized = layers.Uninitialized
	Allocated     = layers.Allocated
	Computed      = layers.Computed
	Checked       = layers.Checked
)

// Parameter is the family-specific configuration of a layer.
type Parameter = layers.Parameter

// LossParameter configures the loss family.
type LossParameter = layers.LossParameter

// PReLUParameter configures the PReLU family.
type PReLUParameter = layers.PReLUParameter

// NewPReLUParameter returns the default PReLU parameter.
func NewPReLUParameter() PReLUParameter {
	return layers.NewPReLUParameter()
}

// LayerData holds the tensors a forward pass caches for backward.
type LayerData = argument.LayerData

// ForwardInput holds the tensors a forward pass consumes.
type ForwardInput = layers.ForwardInput

// ForwardResult holds the tensors a forward pass produces.
type ForwardResult = layers.ForwardResult

// BackwardInput holds the incoming gradient and the forward LayerData.
type BackwardInput = layers.BackwardInput

// BackwardResult holds the gradients a backward pass produces.
type BackwardResult = layers.BackwardResult

// NewForwardInput creates an empty forward input of family k.
func NewForwardInput(k Kind) *ForwardInput {
	return layers.NewForwardInput(k)
}

// NewForwardResult creates an empty forward result of family k.
func NewForwardResult(k Kind) *ForwardResult {
	return layers.NewForwardResult(k)
}

// NewBackwardInput creates an empty backward input of family k.
func NewBackwardInput(k Kind) *BackwardInput {
	return layers.NewBackwardInput(k)
}

// NewBackwardResult creates an empty backward result of family k.
func NewBackwardResult(k Kind) *BackwardResult {
	return layers.NewBackwardResult(k)
}

// ParallelConfig controls how CPU kernels split work across goroutines.
type ParallelConfig = parallel.Config

// Config selects the precision, method and hardware target of an algorithm.
type Config = layers.Config

// DefaultConfig returns a float32 configuration on the detected CPU target.
func DefaultConfig() Config {
	return layers.DefaultConfig()
}

// PReLUForward is the PReLU forward algorithm.
type PReLUForward = layers.PReLUForward

// PReLUBackward is the PReLU backward algorithm.
type PReLUBackward = layers.PReLUBackward

// NewPReLUForward selects the forward kernel for cfg.
func NewPReLUForward(cfg Config) (*PReLUForward, error) {
	return layers.NewPReLUForward(cfg)
}

// NewPReLUBackward selects the backward kernel for cfg.
func NewPReLUBackward(cfg Config) (*PReLUBackward, error) {
	return layers.NewPReLUBackward(cfg)
}
