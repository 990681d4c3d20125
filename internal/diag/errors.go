// Package diag defines the error taxonomy shared by the layer substrate,
// the layer typing and the kernels.
//
// Every failure names the tensor or check that failed. Callers classify
// failures with errors.Is against the sentinel kinds below; the rendered
// message is for humans only.
package diag

import (
	"errors"
	"fmt"
)

// Error kinds.
var (
	ErrMissingInput      = errors.New("missing input")
	ErrShapeMismatch     = errors.New("shape mismatch")
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrAllocationFailure = errors.New("allocation failure")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidState      = errors.New("invalid state")
	ErrUnsupported       = errors.New("unsupported")
)

// Error identifies a failed contract check.
type Error struct {
	Kind    error  // One of the Err* kinds above
	Tensor  string // Tensor or parameter the check was about (may be empty)
	Details string // Additional details
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Tensor != "" {
		return fmt.Sprintf("%s: tensor %q: %s", e.Kind, e.Tensor, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Details)
}

// Unwrap returns the error kind so errors.Is works against the sentinels.
func (e *Error) Unwrap() error {
	return e.Kind
}

// Newf creates an Error of the given kind with a formatted detail message.
func Newf(kind error, tensor, format string, args ...any) *Error {
	return &Error{Kind: kind, Tensor: tensor, Details: fmt.Sprintf(format, args...)}
}

// Missing reports an absent required tensor.
func Missing(tensor string) *Error {
	return &Error{Kind: ErrMissingInput, Tensor: tensor, Details: "tensor is not set"}
}

// ShapeMismatch reports a tensor whose shape differs from the required one.
func ShapeMismatch(tensor string, want, got any) *Error {
	return Newf(ErrShapeMismatch, tensor, "expected shape %v, got %v", want, got)
}

// TypeMismatch reports a tensor stored with an unexpected precision or type.
func TypeMismatch(tensor string, want, got any) *Error {
	return Newf(ErrTypeMismatch, tensor, "expected %v, got %v", want, got)
}

// InvalidParameter reports an out-of-range parameter field.
func InvalidParameter(name, format string, args ...any) *Error {
	return Newf(ErrInvalidParameter, name, format, args...)
}

// TensorOf returns the tensor name carried by err, or "" when err is not an *Error.
func TensorOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Tensor
	}
	return ""
}
