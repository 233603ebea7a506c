package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/safeinfer/internal/tensor"
)

func TestAddTensorAndNode(t *testing.T) {
	var g Graph

	x := g.AddTensor(tensor.MustShape(4))
	y := g.AddTensor(tensor.MustShape(4))
	n := g.AddNode(Relu{}, []TensorID{x}, []TensorID{y})

	assert.Equal(t, TensorID(0), x)
	assert.Equal(t, TensorID(1), y)
	assert.Equal(t, NodeID(0), n)
	assert.Equal(t, 2, g.NumTensors())
	require.Equal(t, 1, g.NumNodes())
	assert.Equal(t, OpRelu, g.Nodes[n].Code())
}

func TestOpCodes(t *testing.T) {
	tests := []struct {
		op   Op
		code OpCode
		name string
	}{
		{Input{}, OpInput, "Input"},
		{Const{Value: []float32{1}}, OpConst, "Const"},
		{Add{}, OpAdd, "Add"},
		{MatMul{}, OpMatMul, "MatMul"},
		{Relu{}, OpRelu, "Relu"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.code, tt.op.Code())
		assert.Equal(t, tt.name, tt.code.String())
	}
	assert.Equal(t, "Unknown", OpCode(42).String())
	assert.Len(t, AllOpCodes(), len(tests))
}

func TestNodeNilOp(t *testing.T) {
	n := Node{Inputs: []TensorID{0}, Outputs: []TensorID{1}}
	assert.Equal(t, OpCode(-1), n.Code())
}

func TestNodeString(t *testing.T) {
	n := Node{Op: MatMul{}, Inputs: []TensorID{0, 1}, Outputs: []TensorID{2}}
	assert.Equal(t, "MatMul(t0, t1) -> t2", n.String())
}
