// Package graph describes a computation graph: a shape table indexed by
// TensorID, a node list indexed by NodeID, and the declared graph inputs
// and outputs.
//
// A Graph is plain data. Nothing is validated when it is built or mutated;
// structural validity is established by the planner.
package graph

import (
	"fmt"
	"strings"

	"github.com/born-ml/safeinfer/internal/tensor"
)

// TensorID indexes Graph.TensorShapes and the executor's tensor arena.
type TensorID int

// NodeID indexes Graph.Nodes.
type NodeID int

// Sentinel ids for errors that do not refer to a specific tensor or node.
const (
	NoTensor TensorID = -1
	NoNode   NodeID   = -1
)

// Node is one operator invocation. Nodes reference tensors by id and own none of them.
type Node struct {
	Op      Op
	Inputs  []TensorID
	Outputs []TensorID
}

// Code returns the node's opcode, or -1 if Op is nil.
func (n *Node) Code() OpCode {
	if n.Op == nil {
		return -1
	}
	return n.Op.Code()
}

// String formats the node as "MatMul(t0, t1) -> t2".
func (n *Node) String() string {
	return fmt.Sprintf("%s(%s) -> %s", n.Code(), joinIDs(n.Inputs), joinIDs(n.Outputs))
}

// Graph is a minimal computation graph.
//   - TensorShapes[t] describes tensor t
//   - Nodes[n] describes op node n
//   - Inputs are tensors the caller must bind before execution
//   - Outputs are tensors of interest after execution
type Graph struct {
	TensorShapes []tensor.Shape
	Nodes        []Node
	Inputs       []TensorID
	Outputs      []TensorID
}

// NumTensors returns the size of the shape table.
func (g *Graph) NumTensors() int {
	return len(g.TensorShapes)
}

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int {
	return len(g.Nodes)
}

// AddTensor appends a shape to the table and returns its id.
func (g *Graph) AddTensor(shape tensor.Shape) TensorID {
	g.TensorShapes = append(g.TensorShapes, shape)
	return TensorID(len(g.TensorShapes) - 1)
}

// AddNode appends a node and returns its id.
func (g *Graph) AddNode(op Op, inputs, outputs []TensorID) NodeID {
	g.Nodes = append(g.Nodes, Node{Op: op, Inputs: inputs, Outputs: outputs})
	return NodeID(len(g.Nodes) - 1)
}

func joinIDs(ids []TensorID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("t%d", id)
	}
	return strings.Join(parts, ", ")
}
