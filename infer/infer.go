// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package infer provides the public API for planning and executing tensor graphs.
//
// A Graph lists tensor shapes and operator nodes. BuildPlan validates it and
// returns a topological execution order; Execute runs that order against a
// caller-owned arena of tensors:
//
//	g := &infer.Graph{}
//	x := g.AddTensor(infer.MustShape(4))
//	y := g.AddTensor(infer.MustShape(4))
//	g.AddNode(infer.Relu{}, []infer.TensorID{x}, []infer.TensorID{y})
//	g.Inputs = []infer.TensorID{x}
//
//	plan, err := infer.BuildPlan(g)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tensors, _ := infer.Allocate(g)
//	copy(tensors[x].Data(), []float32{-1, 2, -3, 4})
//	bindings := infer.NewBindings(g.NumTensors())
//	_ = bindings.Bind(x)
//	err = infer.Execute(g, plan, tensors, bindings) // tensors[y] = [0 2 0 4]
//
// Supported operators: Input, Const, Add, MatMul (2D), Relu.
package infer

import (
	"log/slog"

	"github.com/born-ml/safeinfer/internal/executor"
	"github.com/born-ml/safeinfer/internal/graph"
	"github.com/born-ml/safeinfer/internal/planner"
	"github.com/born-ml/safeinfer/internal/tensor"
)

// Shape is an immutable list of positive dimensions.
type Shape = tensor.Shape

// Tensor is a dense float32 buffer with a shape.
type Tensor = tensor.Tensor

// Graph is a tensor table plus the nodes operating on it.
type Graph = graph.Graph

// Node applies one operator to input tensors, producing output tensors.
type Node = graph.Node

// TensorID indexes Graph.TensorShapes and the tensor arena.
type TensorID = graph.TensorID

// NodeID indexes Graph.Nodes.
type NodeID = graph.NodeID

// OpCode identifies an operator.
type OpCode = graph.OpCode

// Op is the operator of a node.
type Op = graph.Op

// Operators.
type (
	Input  = graph.Input
	Const  = graph.Const
	Add    = graph.Add
	MatMul = graph.MatMul
	Relu   = graph.Relu
)

// Opcode constants.
const (
	OpInput  = graph.OpInput
	OpConst  = graph.OpConst
	OpAdd    = graph.OpAdd
	OpMatMul = graph.OpMatMul
	OpRelu   = graph.OpRelu
)

// Plan is a topological order of all node ids of a graph.
type Plan = planner.Plan

// PlanOption configures BuildPlan.
type PlanOption = planner.Option

// GraphError describes why a graph could not be planned.
type GraphError = planner.GraphError

// Bindings records which tensors the caller has provided.
type Bindings = executor.Bindings

// Executor runs plans.
type Executor = executor.Executor

// ExecutorOption configures an Executor.
type ExecutorOption = executor.Option

// ExecutionError describes why an execution was aborted.
type ExecutionError = executor.ExecutionError

// Errors.
var (
	ErrInvalidShape        = tensor.ErrInvalidShape
	ErrOverflow            = tensor.ErrOverflow
	ErrGraphInvalid        = planner.ErrGraphInvalid
	ErrPrecondition        = executor.ErrPrecondition
	ErrOutOfRange          = executor.ErrOutOfRange
	ErrMissingInputBinding = executor.ErrMissingInputBinding
	ErrArityMismatch       = executor.ErrArityMismatch
	ErrShapeMismatch       = executor.ErrShapeMismatch
	ErrUnsupportedOp       = executor.ErrUnsupportedOp
)

// NewShape returns a shape with the given dimensions.
// It fails with ErrInvalidShape if dims is empty or any dimension is not positive.
func NewShape(dims ...int) (Shape, error) {
	return tensor.NewShape(dims...)
}

// MustShape is like NewShape but panics on error.
func MustShape(dims ...int) Shape {
	return tensor.MustShape(dims...)
}

// NewTensor allocates a zeroed tensor.
func NewTensor(shape Shape) (*Tensor, error) {
	return tensor.New(shape)
}

// FromSlice allocates a tensor holding a copy of values.
func FromSlice(shape Shape, values []float32) (*Tensor, error) {
	return tensor.FromSlice(shape, values)
}

// BuildPlan validates g and returns its execution order.
func BuildPlan(g *Graph, opts ...PlanOption) (Plan, error) {
	return planner.Build(g, opts...)
}

// WithSchedulable restricts the opcodes BuildPlan accepts.
func WithSchedulable(codes ...OpCode) PlanOption {
	return planner.WithSchedulable(codes...)
}

// NewBindings returns an empty binding set for n tensors.
func NewBindings(n int) *Bindings {
	return executor.NewBindings(n)
}

// Allocate returns one zeroed tensor per shape declared by g.
func Allocate(g *Graph) ([]*Tensor, error) {
	return executor.Allocate(g)
}

// NewExecutor creates a configurable Executor.
func NewExecutor(opts ...ExecutorOption) *Executor {
	return executor.New(opts...)
}

// WithLogger sets the logger an Executor writes per-node debug output to.
func WithLogger(logger *slog.Logger) ExecutorOption {
	return executor.WithLogger(logger)
}

// Execute runs plan over g, reading bound inputs from tensors and writing
// every produced tensor in place.
func Execute(g *Graph, plan Plan, tensors []*Tensor, bindings *Bindings) error {
	return executor.Execute(g, plan, tensors, bindings)
}
