package tree

import "math"

// Opcode identifies the operation performed by a Node.
type Opcode int

const (
	OpInvalid Opcode = iota

	// Leaves.
	OpVarX
	OpVarY
	OpVarZ
	OpConst

	// Unary operations.
	OpNeg
	OpAbs
	OpRecip
	OpSqrt
	OpSquare
	OpFloor
	OpCeil
	OpRound
	OpSin
	OpCos
	OpTan
	OpAsin
	OpAcos
	OpAtan
	OpExp
	OpLn
	OpNot

	// Binary operations.
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpAtan2
	OpMin
	OpMax
	OpCompare
	OpMod
	OpAnd
	OpOr
)

// opNames holds the text-format verb for every opcode.
var opNames = map[Opcode]string{
	OpVarX:    "var-x",
	OpVarY:    "var-y",
	OpVarZ:    "var-z",
	OpConst:   "const",
	OpNeg:     "neg",
	OpAbs:     "abs",
	OpRecip:   "recip",
	OpSqrt:    "sqrt",
	OpSquare:  "square",
	OpFloor:   "floor",
	OpCeil:    "ceil",
	OpRound:   "round",
	OpSin:     "sin",
	OpCos:     "cos",
	OpTan:     "tan",
	OpAsin:    "asin",
	OpAcos:    "acos",
	OpAtan:    "atan",
	OpExp:     "exp",
	OpLn:      "ln",
	OpNot:     "not",
	OpAdd:     "add",
	OpSub:     "sub",
	OpMul:     "mul",
	OpDiv:     "div",
	OpAtan2:   "atan2",
	OpMin:     "min",
	OpMax:     "max",
	OpCompare: "compare",
	OpMod:     "mod",
	OpAnd:     "and",
	OpOr:      "or",
}

var opByName = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opNames))
	for op, name := range opNames {
		m[name] = op
	}
	return m
}()

func (op Opcode) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "invalid"
}

// ParseOpcode returns the opcode for a text-format verb.
func ParseOpcode(name string) (Opcode, bool) {
	op, ok := opByName[name]
	return op, ok
}

// Arity returns the number of operands the opcode takes. Constants and axis
// variables have arity zero; OpInvalid returns -1.
func (op Opcode) Arity() int {
	switch {
	case op >= OpVarX && op <= OpConst:
		return 0
	case op >= OpNeg && op <= OpNot:
		return 1
	case op >= OpAdd && op <= OpOr:
		return 2
	default:
		return -1
	}
}

// Eval1 applies a unary opcode to a real number. It is the numeric
// definition every evaluator in this module shares.
func (op Opcode) Eval1(a float64) float64 {
	switch op {
	case OpNeg:
		return -a
	case OpAbs:
		return math.Abs(a)
	case OpRecip:
		return 1 / a
	case OpSqrt:
		return math.Sqrt(a)
	case OpSquare:
		return a * a
	case OpFloor:
		return math.Floor(a)
	case OpCeil:
		return math.Ceil(a)
	case OpRound:
		return math.Round(a)
	case OpSin:
		return math.Sin(a)
	case OpCos:
		return math.Cos(a)
	case OpTan:
		return math.Tan(a)
	case OpAsin:
		return math.Asin(a)
	case OpAcos:
		return math.Acos(a)
	case OpAtan:
		return math.Atan(a)
	case OpExp:
		return math.Exp(a)
	case OpLn:
		return math.Log(a)
	case OpNot:
		if a == 0 {
			return 1
		}
		return 0
	}
	return math.NaN()
}

// Eval2 applies a binary opcode to two real numbers.
//
// compare yields -1 when a < b, 0 when a == b and +1 otherwise, so an
// unordered (NaN) pair compares as +1. mod is the
// Euclidean remainder, always in [0, |b|). and yields b when a is nonzero,
// otherwise a; or yields a when a is nonzero, otherwise b.
func (op Opcode) Eval2(a, b float64) float64 {
	switch op {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		return a / b
	case OpAtan2:
		return math.Atan2(a, b)
	case OpMin:
		return math.Min(a, b)
	case OpMax:
		return math.Max(a, b)
	case OpCompare:
		switch {
		case a == b:
			return 0
		case a < b:
			return -1
		}
		return 1
	case OpMod:
		r := math.Mod(a, b)
		if r < 0 {
			r += math.Abs(b)
		}
		return r
	case OpAnd:
		if a != 0 {
			return b
		}
		return a
	case OpOr:
		if a != 0 {
			return a
		}
		return b
	}
	return math.NaN()
}
