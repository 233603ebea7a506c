package cli

import (
	"fmt"
	"math"
	"sort"

	"github.com/born-ml/safeinfer/internal/executor"
	"github.com/born-ml/safeinfer/internal/graph"
	"github.com/born-ml/safeinfer/internal/planner"
	"github.com/born-ml/safeinfer/internal/tensor"
)

// demo is a small graph with the values its caller feeds in.
type demo struct {
	graph  *graph.Graph
	inputs map[graph.TensorID][]float32

	// unbound fills inputs without binding them.
	unbound bool
}

var demoNames = []string{"relu", "matmul", "xor", "missing-input", "shape-mismatch"}

// demoByName returns a demo with its default inputs.
func demoByName(name string) (*demo, error) {
	switch name {
	case "relu":
		return reluDemo([]float32{-1, 2, -3, 4})
	case "matmul":
		return matmulDemo(), nil
	case "xor":
		return xorDemo(0, 0), nil
	case "missing-input":
		return missingInputDemo(), nil
	case "shape-mismatch":
		return shapeMismatchDemo(), nil
	default:
		return nil, fmt.Errorf("unknown demo %q (available: %v)", name, demoNames)
	}
}

// reluDemo computes y = Relu(x).
func reluDemo(x []float32) (*demo, error) {
	shape, err := tensor.NewShape(len(x))
	if err != nil {
		return nil, fmt.Errorf("relu input: %w", err)
	}

	g := &graph.Graph{}
	in := g.AddTensor(shape)
	out := g.AddTensor(shape)
	g.AddNode(graph.Relu{}, []graph.TensorID{in}, []graph.TensorID{out})
	g.Inputs = []graph.TensorID{in}
	g.Outputs = []graph.TensorID{out}

	return &demo{graph: g, inputs: map[graph.TensorID][]float32{in: x}}, nil
}

// matmulDemo computes [1 x 2] @ [2 x 3].
func matmulDemo() *demo {
	g := &graph.Graph{}
	a := g.AddTensor(tensor.MustShape(1, 2))
	b := g.AddTensor(tensor.MustShape(2, 3))
	out := g.AddTensor(tensor.MustShape(1, 3))
	g.AddNode(graph.MatMul{}, []graph.TensorID{a, b}, []graph.TensorID{out})
	g.Inputs = []graph.TensorID{a, b}
	g.Outputs = []graph.TensorID{out}

	return &demo{graph: g, inputs: map[graph.TensorID][]float32{
		a: {1, 2},
		b: {1, 2, 3, 4, 5, 6},
	}}
}

// xorDemo is a two-layer network computing XOR of x1 and x2:
// y = Relu(x @ W1) @ W2 with W1 = [[1, -1], [-1, 1]] and W2 = [[1], [1]].
func xorDemo(x1, x2 float32) *demo {
	g := &graph.Graph{}
	x := g.AddTensor(tensor.MustShape(1, 2))
	w1 := g.AddTensor(tensor.MustShape(2, 2))
	z := g.AddTensor(tensor.MustShape(1, 2))
	h := g.AddTensor(tensor.MustShape(1, 2))
	w2 := g.AddTensor(tensor.MustShape(2, 1))
	y := g.AddTensor(tensor.MustShape(1, 1))

	g.AddNode(graph.Const{Value: []float32{1, -1, -1, 1}}, nil, []graph.TensorID{w1})
	g.AddNode(graph.Const{Value: []float32{1, 1}}, nil, []graph.TensorID{w2})
	g.AddNode(graph.MatMul{}, []graph.TensorID{x, w1}, []graph.TensorID{z})
	g.AddNode(graph.Relu{}, []graph.TensorID{z}, []graph.TensorID{h})
	g.AddNode(graph.MatMul{}, []graph.TensorID{h, w2}, []graph.TensorID{y})
	g.Inputs = []graph.TensorID{x}
	g.Outputs = []graph.TensorID{y}

	return &demo{graph: g, inputs: map[graph.TensorID][]float32{x: {x1, x2}}}
}

// missingInputDemo poisons x with NaN and never binds it.
func missingInputDemo() *demo {
	x := make([]float32, 8)
	nan := float32(math.NaN())
	for i := range x {
		x[i] = nan
	}

	d, _ := reluDemo(x)
	d.unbound = true
	return d
}

// shapeMismatchDemo adds a [4] tensor to a [3] tensor.
func shapeMismatchDemo() *demo {
	g := &graph.Graph{}
	a := g.AddTensor(tensor.MustShape(4))
	b := g.AddTensor(tensor.MustShape(3))
	out := g.AddTensor(tensor.MustShape(4))
	g.AddNode(graph.Add{}, []graph.TensorID{a, b}, []graph.TensorID{out})
	g.Inputs = []graph.TensorID{a, b}
	g.Outputs = []graph.TensorID{out}

	return &demo{graph: g, inputs: map[graph.TensorID][]float32{
		a: {0, 1, 2, 3},
		b: {100, 101, 102},
	}}
}

// run plans and executes d. The arena is returned even when execution fails.
func (d *demo) run(exec *executor.Executor) ([]*tensor.Tensor, error) {
	order, err := planner.Build(d.graph)
	if err != nil {
		return nil, err
	}

	tensors, err := executor.Allocate(d.graph)
	if err != nil {
		return nil, err
	}

	bindings := executor.NewBindings(d.graph.NumTensors())
	for _, id := range d.inputIDs() {
		values := d.inputs[id]
		if n := tensors[id].NumElements(); len(values) != n {
			return nil, fmt.Errorf("input t%d: got %d values, want %d", id, len(values), n)
		}
		copy(tensors[id].Data(), values)
		if d.unbound {
			continue
		}
		if err := bindings.Bind(id); err != nil {
			return nil, err
		}
	}

	return tensors, exec.Execute(d.graph, order, tensors, bindings)
}

func (d *demo) inputIDs() []graph.TensorID {
	ids := make([]graph.TensorID, 0, len(d.inputs))
	for id := range d.inputs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
