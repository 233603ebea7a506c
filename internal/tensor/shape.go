// Package tensor provides the Shape and Tensor types used by the graph executor.
package tensor

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Shape represents the dimensions of a tensor.
//
// A Shape is immutable once constructed: it always has at least one dimension
// and every dimension is positive. The zero value is not a valid shape.
type Shape struct {
	dims []int
}

// NewShape creates a shape from the given dimensions.
// Returns ErrInvalidShape if dims is empty or any dimension is not positive.
func NewShape(dims ...int) (Shape, error) {
	if len(dims) == 0 {
		return Shape{}, fmt.Errorf("%w: dims cannot be empty", ErrInvalidShape)
	}
	for i, dim := range dims {
		if dim <= 0 {
			return Shape{}, fmt.Errorf("%w: dimension at index %d is %d (must be > 0)", ErrInvalidShape, i, dim)
		}
	}

	clone := make([]int, len(dims))
	copy(clone, dims)
	return Shape{dims: clone}, nil
}

// MustShape is like NewShape but panics on error.
// Intended for literal shapes in tests and demo graphs.
func MustShape(dims ...int) Shape {
	s, err := NewShape(dims...)
	if err != nil {
		panic(err)
	}
	return s
}

// Rank returns the number of dimensions.
func (s Shape) Rank() int {
	return len(s.dims)
}

// Dim returns the size of dimension i.
func (s Shape) Dim(i int) int {
	return s.dims[i]
}

// Dims returns a copy of the dimensions.
func (s Shape) Dims() []int {
	clone := make([]int, len(s.dims))
	copy(clone, s.dims)
	return clone
}

// IsValid reports whether s was built by NewShape.
func (s Shape) IsValid() bool {
	return len(s.dims) > 0
}

// NumElements returns the total number of elements.
// Returns ErrOverflow if the product of dimensions does not fit in an int.
func (s Shape) NumElements() (int, error) {
	if !s.IsValid() {
		return 0, fmt.Errorf("%w: zero-value shape", ErrInvalidShape)
	}

	n := 1
	for i, dim := range s.dims {
		if n > math.MaxInt/dim {
			return 0, fmt.Errorf("%w: %s exceeds max size at dimension %d", ErrOverflow, s, i)
		}
		n *= dim
	}
	return n, nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s.dims) != len(other.dims) {
		return false
	}
	for i := range s.dims {
		if s.dims[i] != other.dims[i] {
			return false
		}
	}
	return true
}

// String formats the shape as "[2 x 3]".
func (s Shape) String() string {
	parts := make([]string, len(s.dims))
	for i, dim := range s.dims {
		parts[i] = strconv.Itoa(dim)
	}
	return "[" + strings.Join(parts, " x ") + "]"
}
