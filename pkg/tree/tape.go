package tree

import "sync"

// instruction is one step of a Tape. Operand fields index earlier slots.
type instruction struct {
	op    Opcode
	value float64
	lhs   int
	rhs   int
}

// Tape is a flattened, topologically ordered form of an expression graph,
// suitable for evaluating the same expression at many points. A Tape is
// safe for concurrent use.
type Tape struct {
	code  []instruction
	slots sync.Pool
}

// Compile flattens n into a Tape.
func (n *Node) Compile() *Tape {
	order := n.postorder()
	index := make(map[*Node]int, len(order))
	code := make([]instruction, len(order))
	for i, node := range order {
		index[node] = i
		ins := instruction{op: node.op, value: node.value, lhs: -1, rhs: -1}
		if node.lhs != nil {
			ins.lhs = index[node.lhs]
		}
		if node.rhs != nil {
			ins.rhs = index[node.rhs]
		}
		code[i] = ins
	}
	t := &Tape{code: code}
	t.slots.New = func() any {
		s := make([]float64, len(code))
		return &s
	}
	return t
}

// Len returns the number of instructions.
func (t *Tape) Len() int { return len(t.code) }

// Eval evaluates the tape at (x, y, z).
func (t *Tape) Eval(x, y, z float64) float64 {
	sp := t.slots.Get().(*[]float64)
	slots := *sp
	for i, ins := range t.code {
		switch ins.op {
		case OpVarX:
			slots[i] = x
		case OpVarY:
			slots[i] = y
		case OpVarZ:
			slots[i] = z
		case OpConst:
			slots[i] = ins.value
		default:
			if ins.rhs < 0 {
				slots[i] = ins.op.Eval1(slots[ins.lhs])
			} else {
				slots[i] = ins.op.Eval2(slots[ins.lhs], slots[ins.rhs])
			}
		}
	}
	v := slots[len(slots)-1]
	t.slots.Put(sp)
	return v
}
