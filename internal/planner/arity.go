package planner

import "github.com/born-ml/safeinfer/internal/graph"

// arity is the fixed input/output count of an opcode.
type arity struct {
	inputs  int
	outputs int
}

// arities lists the fixed arity of every opcode. Counts are not shape-aware.
var arities = map[graph.OpCode]arity{
	graph.OpInput:  {inputs: 0, outputs: 1},
	graph.OpConst:  {inputs: 0, outputs: 1},
	graph.OpAdd:    {inputs: 2, outputs: 1},
	graph.OpMatMul: {inputs: 2, outputs: 1},
	graph.OpRelu:   {inputs: 1, outputs: 1},
}

// validateNode checks that the node's opcode is schedulable and its arity matches.
func (p *planner) validateNode(id graph.NodeID, node *graph.Node) error {
	if node.Op == nil {
		return invalid(id, graph.NoTensor, "node has no opcode")
	}

	code := node.Op.Code()
	want, known := arities[code]
	if !known {
		return invalid(id, graph.NoTensor, "unknown opcode %d", int(code))
	}
	if !p.schedulable[code] {
		return invalid(id, graph.NoTensor, "%s is not supported by planner validation", code)
	}

	if len(node.Inputs) != want.inputs || len(node.Outputs) != want.outputs {
		return invalid(id, graph.NoTensor, "%s expects %d inputs and %d output, got %d and %d",
			code, want.inputs, want.outputs, len(node.Inputs), len(node.Outputs))
	}
	return nil
}

// Arity reports the fixed input and output counts of code.
func Arity(code graph.OpCode) (inputs, outputs int, ok bool) {
	a, ok := arities[code]
	return a.inputs, a.outputs, ok
}
