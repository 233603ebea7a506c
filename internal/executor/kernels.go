package executor

import (
	"github.com/born-ml/safeinfer/internal/graph"
	"github.com/born-ml/safeinfer/internal/tensor"
)

// kernel runs one node in place on the arena. Kernels hold no state between calls.
type kernel func(arena []*tensor.Tensor, nid graph.NodeID, node *graph.Node) error

// kernelFor returns the kernel implementing op.
func kernelFor(op graph.Op) (kernel, bool) {
	switch op := op.(type) {
	case graph.Input:
		return execInput, true
	case graph.Const:
		return func(arena []*tensor.Tensor, nid graph.NodeID, node *graph.Node) error {
			return execConst(arena, nid, node, op.Value)
		}, true
	case graph.Add:
		return execAdd, true
	case graph.MatMul:
		return execMatMul, true
	case graph.Relu:
		return execRelu, true
	default:
		return nil, false
	}
}

// execInput is a no-op: the caller fills graph inputs before execution.
func execInput(_ []*tensor.Tensor, _ graph.NodeID, _ *graph.Node) error {
	return nil
}

func execConst(arena []*tensor.Tensor, nid graph.NodeID, node *graph.Node, value []float32) error {
	out := arena[node.Outputs[0]]
	if len(value) != out.NumElements() {
		return kernelError(ErrArityMismatch, nid, node,
			"payload has %d values, output %s holds %d", len(value), out.Shape(), out.NumElements())
	}
	copy(out.Data(), value)
	return nil
}

func execRelu(arena []*tensor.Tensor, nid graph.NodeID, node *graph.Node) error {
	in := arena[node.Inputs[0]]
	out := arena[node.Outputs[0]]
	if in.NumElements() != out.NumElements() {
		return kernelError(ErrArityMismatch, nid, node,
			"input has %d elements, output has %d", in.NumElements(), out.NumElements())
	}

	src, dst := in.Data(), out.Data()
	for i, x := range src {
		if x > 0 {
			dst[i] = x
		} else {
			dst[i] = 0
		}
	}
	return nil
}

func execAdd(arena []*tensor.Tensor, nid graph.NodeID, node *graph.Node) error {
	a := arena[node.Inputs[0]]
	b := arena[node.Inputs[1]]
	out := arena[node.Outputs[0]]
	if a.NumElements() != b.NumElements() {
		return kernelError(ErrArityMismatch, nid, node,
			"input element counts differ: %d vs %d", a.NumElements(), b.NumElements())
	}
	if a.NumElements() != out.NumElements() {
		return kernelError(ErrArityMismatch, nid, node,
			"output has %d elements, inputs have %d", out.NumElements(), a.NumElements())
	}

	x, y, dst := a.Data(), b.Data(), out.Data()
	for i := range dst {
		dst[i] = x[i] + y[i]
	}
	return nil
}

// execMatMul computes Out = A @ B for (M, K) @ (K, N) -> (M, N).
// Naive O(n³) reference implementation with a float32 accumulator.
func execMatMul(arena []*tensor.Tensor, nid graph.NodeID, node *graph.Node) error {
	a := arena[node.Inputs[0]]
	b := arena[node.Inputs[1]]
	out := arena[node.Outputs[0]]
	aShape, bShape, outShape := a.Shape(), b.Shape(), out.Shape()

	if aShape.Rank() != 2 || bShape.Rank() != 2 || outShape.Rank() != 2 {
		return kernelError(ErrShapeMismatch, nid, node,
			"only 2D tensors supported, got %dD @ %dD -> %dD", aShape.Rank(), bShape.Rank(), outShape.Rank())
	}

	m, k := aShape.Dim(0), aShape.Dim(1)
	kAlt, n := bShape.Dim(0), bShape.Dim(1)
	if k != kAlt {
		return kernelError(ErrShapeMismatch, nid, node,
			"inner dimensions differ: A%s @ B%s (A.cols %d != B.rows %d)", aShape, bShape, k, kAlt)
	}
	if outShape.Dim(0) != m || outShape.Dim(1) != n {
		return kernelError(ErrShapeMismatch, nid, node,
			"output is %s, want [%d x %d]", outShape, m, n)
	}

	matmulFloat32(out.Data(), a.Data(), b.Data(), m, k, n)
	return nil
}

// matmulFloat32 computes c[i,j] = sum_k a[i,k] * b[k,j] over row-major buffers.
func matmulFloat32(c, a, b []float32, m, k, n int) {
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			sum := float32(0)
			for kIdx := 0; kIdx < k; kIdx++ {
				sum += a[i*k+kIdx] * b[kIdx*n+j]
			}
			c[i*n+j] = sum
		}
	}
}
