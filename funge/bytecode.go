package funge

import (
	"fmt"
	"math"
)

// OpKind enumerates the byte code operations basic blocks are compiled to.
type OpKind int

const (
	OpPush OpKind = iota // push a constant
	OpDup                // duplicate top of stack
	OpSwap               // swap top two values
	OpDrop               // drop top of stack
	OpBinary             // pop two values, push one
	OpNegate             // logical not: push 1 if top is 0, else 0
	OpInput              // read a value
	OpOutput             // write a value
	OpGet                // read a playfield cell
	OpSet                // write a playfield cell, invalidating blocks
)

// BinaryOp enumerates the two-operand arithmetic operations.
type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinRem
	BinGreater
)

// Apply computes the operation on a and b (b popped first, so b is the former
// top of stack). All arithmetic wraps in two's complement; division and
// remainder by zero yield 0 instead of faulting, and MinInt64/-1 wraps.
func (op BinaryOp) Apply(a, b int64) int64 {
	switch op {
	case BinAdd:
		return a + b
	case BinSub:
		return a - b
	case BinMul:
		return a * b
	case BinDiv:
		if b == 0 {
			return 0
		}
		if a == math.MinInt64 && b == -1 {
			return math.MinInt64
		}
		return a / b
	case BinRem:
		if b == 0 || (a == math.MinInt64 && b == -1) {
			return 0
		}
		return a % b
	default: // BinGreater
		if a > b {
			return 1
		}
		return 0
	}
}

func (op BinaryOp) String() string {
	switch op {
	case BinAdd:
		return "add"
	case BinSub:
		return "sub"
	case BinMul:
		return "mul"
	case BinDiv:
		return "div"
	case BinRem:
		return "rem"
	}
	return "greater"
}

// IOMode selects between raw ASCII bytes and whitespace-delimited decimal
// numbers for input and output operations.
type IOMode int

const (
	ModeASCII IOMode = iota
	ModeDecimal
)

func (m IOMode) String() string {
	if m == ModeASCII {
		return "ascii"
	}
	return "decimal"
}

// Op is one byte code operation. Val is the constant for OpPush, Bin the
// operation for OpBinary, Mode the format for OpInput/OpOutput. After is the
// PC execution resumes at if an OpSet invalidates its own block.
type Op struct {
	Kind  OpKind
	Val   int64
	Bin   BinaryOp
	Mode  IOMode
	After PC
}

func (op Op) String() string {
	switch op.Kind {
	case OpPush:
		return fmt.Sprintf("push %d", op.Val)
	case OpDup:
		return "dup"
	case OpSwap:
		return "swap"
	case OpDrop:
		return "drop"
	case OpBinary:
		return op.Bin.String()
	case OpNegate:
		return "not"
	case OpInput:
		return "in " + op.Mode.String()
	case OpOutput:
		return "out " + op.Mode.String()
	case OpGet:
		return "get"
	case OpSet:
		return fmt.Sprintf("set resume=%v", op.After)
	}
	return "?"
}

// TermKind enumerates the control-flow decisions that end a basic block.
type TermKind int

const (
	TermJump   TermKind = iota // unconditional jump to Target
	TermBranch                 // pop a value: non-zero goes to True, zero to False
	TermRandom                 // jump to a uniformly random choice
	TermEnd                    // end the program
)

// Terminator is the control-flow decision at the end of a basic block. It
// references PCs, never blocks, so invalidation cannot leave it dangling.
type Terminator struct {
	Kind    TermKind
	Target  PC                // TermJump
	True    PC                // TermBranch
	False   PC                // TermBranch
	Choices [numDirections]PC // TermRandom, indexed by Direction
}

func (t Terminator) String() string {
	switch t.Kind {
	case TermJump:
		return fmt.Sprintf("jump %v", t.Target)
	case TermBranch:
		return fmt.Sprintf("branch true=%v false=%v", t.True, t.False)
	case TermRandom:
		return fmt.Sprintf("random %v", t.Choices)
	}
	return "end"
}
