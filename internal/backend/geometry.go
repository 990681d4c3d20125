package backend

import "fmt"

// Geometry describes how a per-channel parameter broadcasts over a tensor.
// Element (o, c, k) lives at flat index (o*Channels + c)*Inner + k: Outer
// covers the dims before the channel block, Inner the dims after it.
type Geometry struct {
	Outer    int
	Channels int
	Inner    int
}

// Len returns the number of tensor elements the geometry covers.
func (g Geometry) Len() int {
	return g.Outer * g.Channels * g.Inner
}

// Rows returns the number of contiguous (outer, channel) rows of Inner elements.
func (g Geometry) Rows() int {
	return g.Outer * g.Channels
}

// Validate checks that every extent is positive.
func (g Geometry) Validate() error {
	if g.Outer <= 0 || g.Channels <= 0 || g.Inner <= 0 {
		return fmt.Errorf("invalid geometry %+v: extents must be > 0", g)
	}
	return nil
}

// String formats the geometry as "outer x channels x inner".
func (g Geometry) String() string {
	return fmt.Sprintf("%dx%dx%d", g.Outer, g.Channels, g.Inner)
}
