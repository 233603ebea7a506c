package executor

import (
	"fmt"

	"github.com/born-ml/safeinfer/internal/graph"
)

// Bindings records which tensors the caller has supplied data for.
//
// It tracks presence only, never the data: binding a tensor asserts that
// its buffer was filled before execution. Create a fresh set per execution.
type Bindings struct {
	bound []bool
}

// NewBindings creates an empty binding set for n tensors.
func NewBindings(n int) *Bindings {
	if n < 0 {
		n = 0
	}
	return &Bindings{bound: make([]bool, n)}
}

// Len returns the tensor count the set was sized for.
func (b *Bindings) Len() int {
	return len(b.bound)
}

// Bind marks tensor id as supplied.
func (b *Bindings) Bind(id graph.TensorID) error {
	if id < 0 || int(id) >= len(b.bound) {
		return fmt.Errorf("bind tensor %d: %w (%d tensors)", id, ErrOutOfRange, len(b.bound))
	}
	b.bound[id] = true
	return nil
}

// IsBound reports whether tensor id was bound. Out-of-range ids report false.
func (b *Bindings) IsBound(id graph.TensorID) bool {
	if id < 0 || int(id) >= len(b.bound) {
		return false
	}
	return b.bound[id]
}
