package executor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/born-ml/safeinfer/internal/graph"
)

// Execution errors.
var (
	ErrPrecondition        = errors.New("precondition violated")
	ErrOutOfRange          = errors.New("id out of range")
	ErrMissingInputBinding = errors.New("missing input binding")
	ErrArityMismatch       = errors.New("element count mismatch")
	ErrShapeMismatch       = errors.New("shape mismatch")
	ErrUnsupportedOp       = errors.New("unsupported operator")
)

// ExecutionError describes why an execution was aborted.
type ExecutionError struct {
	Err    error          // One of the Err* sentinels, or a tensor error from Allocate
	Node   graph.NodeID   // Failing node, or graph.NoNode
	Tensor graph.TensorID // Offending tensor, or graph.NoTensor
	Op     graph.OpCode   // Opcode of Node when Node is set
	Detail string         // Expected vs actual values

	precondition bool
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	var b strings.Builder
	b.WriteString("execute")
	if e.Node != graph.NoNode {
		fmt.Fprintf(&b, ": node %d (%s)", e.Node, e.Op)
	}
	if e.Tensor != graph.NoTensor {
		fmt.Fprintf(&b, ": tensor %d", e.Tensor)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Unwrap returns the sentinel, plus ErrPrecondition for failures found
// before any node ran.
func (e *ExecutionError) Unwrap() []error {
	if e.precondition {
		return []error{e.Err, ErrPrecondition}
	}
	return []error{e.Err}
}

// preconditionError reports a violation detected before any node runs.
func preconditionError(sentinel error, t graph.TensorID, format string, args ...any) *ExecutionError {
	return &ExecutionError{
		Err:          sentinel,
		Node:         graph.NoNode,
		Tensor:       t,
		Detail:       fmt.Sprintf(format, args...),
		precondition: true,
	}
}

// kernelError reports a runtime contract violation inside a node's kernel.
func kernelError(sentinel error, nid graph.NodeID, node *graph.Node, format string, args ...any) *ExecutionError {
	return &ExecutionError{
		Err:    sentinel,
		Node:   nid,
		Tensor: graph.NoTensor,
		Op:     node.Code(),
		Detail: fmt.Sprintf(format, args...),
	}
}
