// Package planner validates a graph's structure and derives a topological
// execution order over its nodes.
//
// Validation is a query, not a construction-time gate: a graph may be built
// and mutated freely and is only checked when Build is called. Every defect is
// reported as a *GraphError matching ErrGraphInvalid; no partial order is
// ever returned.
//
// Shape compatibility (for example matrix inner dimensions) is not checked
// here. It is a runtime concern of the executor.
package planner

import (
	"github.com/emirpasic/gods/v2/queues/linkedlistqueue"

	"github.com/born-ml/safeinfer/internal/graph"
)

// Plan is an execution order: a permutation of all node ids in which every
// node appears after the producers of its inputs.
// It remains valid for as long as the graph is unchanged.
type Plan []graph.NodeID

// Option configures the planner.
type Option func(*planner)

// WithSchedulable restricts the opcodes the planner accepts.
// Nodes with any other opcode are rejected explicitly.
// By default every opcode is schedulable.
func WithSchedulable(codes ...graph.OpCode) Option {
	return func(p *planner) {
		p.schedulable = make(map[graph.OpCode]bool, len(codes))
		for _, c := range codes {
			p.schedulable[c] = true
		}
	}
}

type planner struct {
	schedulable map[graph.OpCode]bool
}

// noProducer marks tensors that no node writes.
const noProducer graph.NodeID = -1

// Build returns an execution order for g or a *GraphError describing the first defect found.
func Build(g *graph.Graph, opts ...Option) (Plan, error) {
	p := &planner{schedulable: make(map[graph.OpCode]bool)}
	for _, c := range graph.AllOpCodes() {
		p.schedulable[c] = true
	}
	for _, opt := range opts {
		opt(p)
	}
	return p.plan(g)
}

func (p *planner) plan(g *graph.Graph) (Plan, error) {
	numTensors := g.NumTensors()
	numNodes := g.NumNodes()

	inRange := func(t graph.TensorID) bool {
		return t >= 0 && int(t) < numTensors
	}

	isGraphInput := make([]bool, numTensors)
	for _, t := range g.Inputs {
		if !inRange(t) {
			return nil, invalid(graph.NoNode, t, "graph input out of range (%d tensors)", numTensors)
		}
		isGraphInput[t] = true
	}
	for _, t := range g.Outputs {
		if !inRange(t) {
			return nil, invalid(graph.NoNode, t, "graph output out of range (%d tensors)", numTensors)
		}
	}

	// Arity first, before any structural analysis.
	for nid := range g.Nodes {
		if err := p.validateNode(graph.NodeID(nid), &g.Nodes[nid]); err != nil {
			return nil, err
		}
	}
	for nid := range g.Nodes {
		node := &g.Nodes[nid]
		for _, t := range node.Inputs {
			if !inRange(t) {
				return nil, invalid(graph.NodeID(nid), t, "input tensor out of range (%d tensors)", numTensors)
			}
		}
		for _, t := range node.Outputs {
			if !inRange(t) {
				return nil, invalid(graph.NodeID(nid), t, "output tensor out of range (%d tensors)", numTensors)
			}
		}
	}

	producer, err := producerMap(g)
	if err != nil {
		return nil, err
	}

	for nid := range g.Nodes {
		for _, t := range g.Nodes[nid].Inputs {
			if producer[t] == noProducer && !isGraphInput[t] {
				return nil, invalid(graph.NodeID(nid), t, "node consumes tensor with no source")
			}
		}
	}

	successors, indegree, err := dependencies(g, producer)
	if err != nil {
		return nil, err
	}

	order := topologicalSort(successors, indegree)
	if len(order) != numNodes {
		return nil, cycleError(order, numNodes)
	}
	return order, nil
}

// producerMap maps each tensor to the node that writes it, rejecting multiple producers.
func producerMap(g *graph.Graph) ([]graph.NodeID, error) {
	producer := make([]graph.NodeID, g.NumTensors())
	for i := range producer {
		producer[i] = noProducer
	}

	for nid := range g.Nodes {
		for _, t := range g.Nodes[nid].Outputs {
			if prev := producer[t]; prev != noProducer {
				return nil, invalid(graph.NodeID(nid), t, "tensor has multiple producers (nodes %d and %d)", prev, nid)
			}
			producer[t] = graph.NodeID(nid)
		}
	}
	return producer, nil
}

// dependencies builds producer -> consumer edges (one per consumed tensor with
// a known producer) and the indegree of every node.
func dependencies(g *graph.Graph, producer []graph.NodeID) ([][]graph.NodeID, []int, error) {
	successors := make([][]graph.NodeID, g.NumNodes())
	indegree := make([]int, g.NumNodes())

	for nid := range g.Nodes {
		for _, t := range g.Nodes[nid].Inputs {
			pred := producer[t]
			if pred == noProducer {
				continue
			}
			if pred == graph.NodeID(nid) {
				return nil, nil, invalid(pred, t, "node depends on its own output")
			}
			successors[pred] = append(successors[pred], graph.NodeID(nid))
			indegree[nid]++
		}
	}
	return successors, indegree, nil
}

// topologicalSort runs Kahn's algorithm with a FIFO ready queue.
// Nodes left on a cycle are never enqueued, so the result is short in that case.
func topologicalSort(successors [][]graph.NodeID, indegree []int) Plan {
	ready := linkedlistqueue.New[graph.NodeID]()
	for nid, deg := range indegree {
		if deg == 0 {
			ready.Enqueue(graph.NodeID(nid))
		}
	}

	order := make(Plan, 0, len(indegree))
	for !ready.Empty() {
		cur, _ := ready.Dequeue()
		order = append(order, cur)

		for _, next := range successors[cur] {
			indegree[next]--
			if indegree[next] == 0 {
				ready.Enqueue(next)
			}
		}
	}
	return order
}

func cycleError(order Plan, numNodes int) *GraphError {
	scheduled := make([]bool, numNodes)
	for _, nid := range order {
		scheduled[nid] = true
	}
	var stuck []graph.NodeID
	for nid, ok := range scheduled {
		if !ok {
			stuck = append(stuck, graph.NodeID(nid))
		}
	}
	return invalid(graph.NoNode, graph.NoTensor, "cycle detected among nodes %v", stuck)
}
