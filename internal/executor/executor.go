// Package executor runs a planned graph against a caller-owned tensor arena.
//
// The arena is a slice of tensors indexed by graph.TensorID. Kernels read and
// write it in place, so an arena must never be shared by concurrent
// executions. The graph and plan are only read; one plan may be executed
// concurrently against independent arenas.
//
// All preconditions are checked before the first node runs. The first
// failing node aborts the execution, after which the arena contents are
// unspecified.
package executor

import (
	"io"
	"log/slog"

	"github.com/born-ml/safeinfer/internal/graph"
	"github.com/born-ml/safeinfer/internal/planner"
	"github.com/born-ml/safeinfer/internal/tensor"
)

// Executor runs execution plans.
type Executor struct {
	logger *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger used for per-node debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Executor. By default it logs nothing.
func New(opts ...Option) *Executor {
	e := &Executor{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultExecutor = New()

// Execute runs order over g with the default Executor.
func Execute(g *graph.Graph, order planner.Plan, tensors []*tensor.Tensor, bindings *Bindings) error {
	return defaultExecutor.Execute(g, order, tensors, bindings)
}

// Execute walks order, dispatching each node to its kernel. tensors is
// mutated in place. order must come from planner.Build for the same graph.
func (e *Executor) Execute(g *graph.Graph, order planner.Plan, tensors []*tensor.Tensor, bindings *Bindings) error {
	if err := checkPreconditions(g, order, tensors, bindings); err != nil {
		e.logger.Debug("execution refused", "error", err)
		return err
	}

	for step, nid := range order {
		node := &g.Nodes[nid]
		run, ok := kernelFor(node.Op)
		if !ok {
			return kernelError(ErrUnsupportedOp, nid, node, "no kernel for %T", node.Op)
		}
		if err := checkArity(nid, node); err != nil {
			return err
		}

		e.logger.Debug("run node", "step", step, "node", int(nid), "op", node.Code().String())
		if err := run(tensors, nid, node); err != nil {
			return err
		}
	}
	return nil
}

// checkPreconditions validates the arena, the plan ids and the input bindings.
func checkPreconditions(g *graph.Graph, order planner.Plan, tensors []*tensor.Tensor, bindings *Bindings) error {
	numTensors := g.NumTensors()
	if len(tensors) != numTensors {
		return preconditionError(ErrPrecondition, graph.NoTensor,
			"got %d tensors, graph declares %d", len(tensors), numTensors)
	}
	if bindings == nil {
		return preconditionError(ErrPrecondition, graph.NoTensor, "bindings are nil")
	}
	if bindings.Len() != numTensors {
		return preconditionError(ErrPrecondition, graph.NoTensor,
			"bindings sized for %d tensors, graph declares %d", bindings.Len(), numTensors)
	}

	owner := make(map[*tensor.Tensor]int, len(tensors))
	for i, t := range tensors {
		id := graph.TensorID(i)
		if t == nil {
			return preconditionError(ErrPrecondition, id, "tensor is not allocated")
		}
		if prev, ok := owner[t]; ok {
			return preconditionError(ErrPrecondition, id, "tensor aliases tensor %d", prev)
		}
		owner[t] = i
		if want := g.TensorShapes[i]; !t.Shape().Equal(want) {
			return preconditionError(ErrShapeMismatch, id, "allocated %s, graph declares %s", t.Shape(), want)
		}
	}

	inRange := func(t graph.TensorID) bool {
		return t >= 0 && int(t) < numTensors
	}
	for _, nid := range order {
		if nid < 0 || int(nid) >= g.NumNodes() {
			return preconditionError(ErrOutOfRange, graph.NoTensor,
				"plan references node %d (%d nodes)", nid, g.NumNodes())
		}
		node := &g.Nodes[nid]
		for _, t := range node.Inputs {
			if !inRange(t) {
				return preconditionError(ErrOutOfRange, t, "node %d input out of range (%d tensors)", nid, numTensors)
			}
		}
		for _, t := range node.Outputs {
			if !inRange(t) {
				return preconditionError(ErrOutOfRange, t, "node %d output out of range (%d tensors)", nid, numTensors)
			}
		}
	}

	for _, t := range g.Inputs {
		if !bindings.IsBound(t) {
			return preconditionError(ErrMissingInputBinding, t, "graph input is not bound")
		}
	}
	return nil
}

// checkArity guards kernels against nodes that bypassed planning.
func checkArity(nid graph.NodeID, node *graph.Node) error {
	in, out, _ := planner.Arity(node.Code())
	if len(node.Inputs) != in || len(node.Outputs) != out {
		return kernelError(ErrArityMismatch, nid, node, "expected %d inputs and %d output, got %d and %d",
			in, out, len(node.Inputs), len(node.Outputs))
	}
	return nil
}

// Allocate returns a zero-initialized arena with one tensor per declared shape.
func Allocate(g *graph.Graph) ([]*tensor.Tensor, error) {
	tensors := make([]*tensor.Tensor, g.NumTensors())
	for i, shape := range g.TensorShapes {
		t, err := tensor.New(shape)
		if err != nil {
			return nil, preconditionError(err, graph.TensorID(i), "allocate %s", shape)
		}
		tensors[i] = t
	}
	return tensors, nil
}
