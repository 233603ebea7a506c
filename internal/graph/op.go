package graph

// OpCode identifies the kind of operator a node performs.
type OpCode int

// Supported opcodes.
const (
	OpInput  OpCode = iota // produces a tensor supplied by the caller
	OpConst                // produces a tensor from an embedded literal
	OpAdd                  // elementwise add: out = a + b
	OpMatMul               // matrix multiplication: (M, K) @ (K, N) -> (M, N)
	OpRelu                 // activation: out = max(0, x)
)

// String returns the operator name.
func (c OpCode) String() string {
	switch c {
	case OpInput:
		return "Input"
	case OpConst:
		return "Const"
	case OpAdd:
		return "Add"
	case OpMatMul:
		return "MatMul"
	case OpRelu:
		return "Relu"
	default:
		return "Unknown"
	}
}

// AllOpCodes returns every opcode in declaration order.
func AllOpCodes() []OpCode {
	return []OpCode{OpInput, OpConst, OpAdd, OpMatMul, OpRelu}
}

// Op is the operator carried by a Node. The set of implementations is closed:
// Input, Const, Add, MatMul and Relu.
type Op interface {
	Code() OpCode
	sealed()
}

// Input marks a tensor as externally supplied. It has no inputs and one output.
type Input struct{}

// Const initializes its single output from Value.
type Const struct {
	Value []float32
}

// Add computes the elementwise sum of two tensors.
type Add struct{}

// MatMul computes the dense matrix product of two rank-2 tensors.
type MatMul struct{}

// Relu computes max(0, x) elementwise.
type Relu struct{}

func (Input) Code() OpCode  { return OpInput }
func (Const) Code() OpCode  { return OpConst }
func (Add) Code() OpCode    { return OpAdd }
func (MatMul) Code() OpCode { return OpMatMul }
func (Relu) Code() OpCode   { return OpRelu }

func (Input) sealed()  {}
func (Const) sealed()  {}
func (Add) sealed()    {}
func (MatMul) sealed() {}
func (Relu) sealed()   {}
