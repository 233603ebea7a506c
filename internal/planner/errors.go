package planner

import (
	"errors"
	"fmt"

	"github.com/born-ml/safeinfer/internal/graph"
)

// ErrGraphInvalid is matched by every structural defect the planner reports.
var ErrGraphInvalid = errors.New("graph invalid")

// GraphError describes a structural defect found while planning.
type GraphError struct {
	Reason string         // Human-readable description
	Node   graph.NodeID   // Offending node, or graph.NoNode
	Tensor graph.TensorID // Offending tensor, or graph.NoTensor
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	switch {
	case e.Node != graph.NoNode && e.Tensor != graph.NoTensor:
		return fmt.Sprintf("graph invalid: node %d, tensor %d: %s", e.Node, e.Tensor, e.Reason)
	case e.Node != graph.NoNode:
		return fmt.Sprintf("graph invalid: node %d: %s", e.Node, e.Reason)
	case e.Tensor != graph.NoTensor:
		return fmt.Sprintf("graph invalid: tensor %d: %s", e.Tensor, e.Reason)
	default:
		return "graph invalid: " + e.Reason
	}
}

// Unwrap returns ErrGraphInvalid.
func (e *GraphError) Unwrap() error {
	return ErrGraphInvalid
}

func invalid(node graph.NodeID, t graph.TensorID, format string, args ...any) *GraphError {
	return &GraphError{
		Reason: fmt.Sprintf(format, args...),
		Node:   node,
		Tensor: t,
	}
}
