package layers

import "fmt"

// State is the lifecycle position of a result.
//
//	Uninitialized -> Allocated -> Computed -> Checked
//
// Allocate may be called from any state and always lands in Allocated.
// A passing Check moves Computed to Checked; Checked stays Checked.
type State uint8

// Result states.
const (
	Uninitialized State = iota
	Allocated
	Computed
	Checked
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Allocated:
		return "allocated"
	case Computed:
		return "computed"
	case Checked:
		return "checked"
	default:
		return fmt.Sprintf("state(%d)", s)
	}
}

// IsComputed reports whether the result holds computed values.
func (s State) IsComputed() bool {
	return s == Computed || s == Checked
}
