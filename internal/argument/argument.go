// Package argument implements the named bags of tensors that carry data
// between the stages of a layer: inputs, results and LayerData.
package argument

import (
	"fmt"

	"github.com/born-ml/layers/internal/diag"
	"github.com/born-ml/layers/internal/tensor"
)

// ID identifies one entry of an Argument. The set of valid IDs is fixed per
// layer family and direction.
type ID int

// Value is anything an Argument slot can hold.
type Value interface {
	Release()
}

// Argument is a fixed-size, indexed collection of values keyed by a closed
// set of identifiers. Every identifier holds at most one value.
type Argument struct {
	name     string
	declared []bool
	names    []string
	slots    []Value
}

// New creates an empty Argument that accepts exactly the given identifiers.
func New(name string, ids ...ID) *Argument {
	size := 0
	for _, id := range ids {
		if id < 0 {
			panic(fmt.Sprintf("argument %s: negative id %d", name, id))
		}
		size = max(size, int(id)+1)
	}

	a := &Argument{
		name:     name,
		declared: make([]bool, size),
		names:    make([]string, size),
		slots:    make([]Value, size),
	}
	for _, id := range ids {
		a.declared[id] = true
	}
	return a
}

// Name returns the argument's name.
func (a *Argument) Name() string {
	return a.name
}

// Declares reports whether id belongs to this argument's identifier set.
func (a *Argument) Declares(id ID) bool {
	return id >= 0 && int(id) < len(a.declared) && a.declared[id]
}

// Describe attaches a human-readable name to id, used in diagnostics.
func (a *Argument) Describe(id ID, name string) *Argument {
	if a.Declares(id) {
		a.names[id] = name
	}
	return a
}

// NameOf returns the diagnostic name of id ("<argument>[<id>]" when unnamed).
func (a *Argument) NameOf(id ID) string {
	if a.Declares(id) && a.names[id] != "" {
		return a.names[id]
	}
	return fmt.Sprintf("%s[%d]", a.name, id)
}

// IDs returns the declared identifiers in ascending order.
func (a *Argument) IDs() []ID {
	ids := make([]ID, 0, len(a.declared))
	for i, ok := range a.declared {
		if ok {
			ids = append(ids, ID(i))
		}
	}
	return ids
}

// Len returns the number of identifiers currently holding a value.
func (a *Argument) Len() int {
	n := 0
	for _, v := range a.slots {
		if v != nil {
			n++
		}
	}
	return n
}

// Get returns the value stored under id, or nil when nothing is stored.
// Absence is not an error; requesting an undeclared id is.
func (a *Argument) Get(id ID) (Value, error) {
	if !a.Declares(id) {
		return nil, a.undeclared(id)
	}
	return a.slots[id], nil
}

// Tensor returns the tensor stored under id, or nil when nothing is stored.
// The returned handle belongs to the Argument and must not be released by
// the caller.
func (a *Argument) Tensor(id ID) (*tensor.RawTensor, error) {
	v, err := a.Get(id)
	if err != nil || v == nil {
		return nil, err
	}
	t, ok := v.(*tensor.RawTensor)
	if !ok {
		return nil, diag.TypeMismatch(a.NameOf(id), "tensor", fmt.Sprintf("%T", v))
	}
	return t, nil
}

// LayerData returns the LayerData stored under id, or nil when nothing is stored.
func (a *Argument) LayerData(id ID) (*LayerData, error) {
	v, err := a.Get(id)
	if err != nil || v == nil {
		return nil, err
	}
	ld, ok := v.(*LayerData)
	if !ok {
		return nil, diag.TypeMismatch(a.NameOf(id), "layer data", fmt.Sprintf("%T", v))
	}
	return ld, nil
}

// Set stores v under id, releasing whatever was stored there before.
// Tensors are stored as a new handle sharing the caller's buffer, so the
// caller keeps ownership of its own handle. A nil v clears the slot.
func (a *Argument) Set(id ID, v Value) error {
	if !a.Declares(id) {
		return a.undeclared(id)
	}

	switch t := v.(type) {
	case *tensor.RawTensor:
		if t == nil {
			v = nil
		} else {
			v = t.Clone()
		}
	case *LayerData:
		if t == nil {
			v = nil
		}
	}

	if prev := a.slots[id]; prev != nil {
		prev.Release()
	}
	a.slots[id] = v
	return nil
}

// Release releases every stored value and empties the argument.
func (a *Argument) Release() {
	for i, v := range a.slots {
		if v != nil {
			v.Release()
			a.slots[i] = nil
		}
	}
}

func (a *Argument) undeclared(id ID) error {
	return diag.Newf(diag.ErrInvalidArgument, a.NameOf(id), "identifier %d is not one of %v", id, a.IDs())
}
