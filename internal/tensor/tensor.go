package tensor

import "fmt"

// noCopy may be embedded into structs which must not be copied after first use.
// go vet's copylocks check reports copies of any type with Lock/Unlock methods.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Tensor is a dense float32 buffer described by a Shape.
//
// A Tensor exclusively owns its buffer. Pass it by pointer; copying the
// struct would alias the buffer and is reported by go vet.
// Matrices are stored row-major.
type Tensor struct {
	noCopy noCopy
	shape  Shape
	data   []float32
}

// New allocates a zero-initialized tensor sized to shape.NumElements().
func New(shape Shape) (*Tensor, error) {
	n, err := shape.NumElements()
	if err != nil {
		return nil, fmt.Errorf("allocate tensor: %w", err)
	}
	return &Tensor{
		shape: shape,
		data:  make([]float32, n),
	}, nil
}

// FromSlice allocates a tensor of the given shape and copies values into it.
func FromSlice(shape Shape, values []float32) (*Tensor, error) {
	t, err := New(shape)
	if err != nil {
		return nil, err
	}
	if len(values) != len(t.data) {
		return nil, fmt.Errorf("tensor %s holds %d elements, got %d values", shape, len(t.data), len(values))
	}
	copy(t.data, values)
	return t, nil
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// NumElements returns the number of elements in the buffer.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// At returns the element at flat offset i. Bounds are not checked beyond
// the runtime's slice check.
func (t *Tensor) At(i int) float32 {
	return t.data[i]
}

// Set stores v at flat offset i.
func (t *Tensor) Set(i int, v float32) {
	t.data[i] = v
}

// Data returns the underlying buffer. Writes through it are visible to the tensor.
func (t *Tensor) Data() []float32 {
	return t.data
}
