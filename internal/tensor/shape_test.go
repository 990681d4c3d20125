package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShapeNumElements(t *testing.T) {
	assert.Equal(t, 1, Shape{}.NumElements())
	assert.Equal(t, 24, Shape{2, 3, 4}.NumElements())
}

func TestShapeSpan(t *testing.T) {
	s := Shape{2, 3, 4, 5}
	assert.Equal(t, 2, s.Span(0, 1))
	assert.Equal(t, 12, s.Span(1, 3))
	assert.Equal(t, 1, s.Span(2, 2))
	assert.Equal(t, 120, s.Span(0, 4))
}

func TestShapeEqualAndClone(t *testing.T) {
	s := Shape{2, 3}
	c := s.Clone()
	c[0] = 9

	assert.True(t, s.Equal(Shape{2, 3}))
	assert.False(t, s.Equal(c))
	assert.False(t, s.Equal(Shape{2, 3, 1}))
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "[2 3 4]", Shape{2, 3, 4}.String())
	assert.Equal(t, "[]", Shape{}.String())
}
