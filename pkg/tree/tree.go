package tree

import "fmt"

// Node is an immutable vertex in an expression graph. A *Node is the handle
// callers pass around: copying the pointer shares the subgraph, nothing is
// ever cloned. Nodes are safe for concurrent use.
type Node struct {
	op    Opcode
	value float64
	lhs   *Node
	rhs   *Node
}

// The axis variables exist exactly once per process.
var (
	axisX = &Node{op: OpVarX}
	axisY = &Node{op: OpVarY}
	axisZ = &Node{op: OpVarZ}
)

// X returns the shared x axis node.
func X() *Node { return axisX }

// Y returns the shared y axis node.
func Y() *Node { return axisY }

// Z returns the shared z axis node.
func Z() *Node { return axisZ }

// Const returns a constant node.
func Const(v float64) *Node {
	return &Node{op: OpConst, value: v}
}

// Unary applies a unary opcode to a. It panics if op is not unary or a is nil.
func Unary(op Opcode, a *Node) *Node {
	if op.Arity() != 1 {
		panic(fmt.Sprintf("tree: %s is not a unary opcode", op))
	}
	if a == nil {
		panic(fmt.Sprintf("tree: nil operand to %s", op))
	}
	return &Node{op: op, lhs: a}
}

// Binary applies a binary opcode to a and b. It panics if op is not binary
// or either operand is nil.
func Binary(op Opcode, a, b *Node) *Node {
	if op.Arity() != 2 {
		panic(fmt.Sprintf("tree: %s is not a binary opcode", op))
	}
	if a == nil || b == nil {
		panic(fmt.Sprintf("tree: nil operand to %s", op))
	}
	return &Node{op: op, lhs: a, rhs: b}
}

// Op returns the node's opcode.
func (n *Node) Op() Opcode { return n.op }

// Value returns the value of a constant node, or 0 for any other node.
func (n *Node) Value() float64 { return n.value }

// Operands returns the node's operands; nil entries are absent.
func (n *Node) Operands() (lhs, rhs *Node) { return n.lhs, n.rhs }

// Len returns the number of distinct nodes reachable from n.
func (n *Node) Len() int {
	return len(n.postorder())
}

func (n *Node) String() string {
	return fmt.Sprintf("<Tree, %d nodes>", n.Len())
}

// postorder lists every distinct node reachable from n with operands before
// the nodes that use them, lhs subtree first. The walk is iterative so deep
// left-folded expressions cannot exhaust the goroutine stack.
func (n *Node) postorder() []*Node {
	type frame struct {
		node    *Node
		visited bool
	}
	seen := make(map[*Node]bool)
	var order []*Node
	stack := []frame{{node: n}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.visited {
			order = append(order, top.node)
			continue
		}
		if seen[top.node] {
			continue
		}
		seen[top.node] = true
		stack = append(stack, frame{node: top.node, visited: true})
		if top.node.rhs != nil && !seen[top.node.rhs] {
			stack = append(stack, frame{node: top.node.rhs})
		}
		if top.node.lhs != nil && !seen[top.node.lhs] {
			stack = append(stack, frame{node: top.node.lhs})
		}
	}
	return order
}

// RemapXYZ returns a copy of n with every axis variable replaced by the
// given expressions. Shared subgraphs stay shared in the result, and
// subgraphs that contain no axis variable are reused as-is.
func (n *Node) RemapXYZ(x, y, z *Node) *Node {
	mapped := make(map[*Node]*Node)
	for _, node := range n.postorder() {
		switch node.op {
		case OpVarX:
			mapped[node] = x
		case OpVarY:
			mapped[node] = y
		case OpVarZ:
			mapped[node] = z
		case OpConst:
			mapped[node] = node
		default:
			lhs := mapped[node.lhs]
			var rhs *Node
			if node.rhs != nil {
				rhs = mapped[node.rhs]
			}
			if lhs == node.lhs && rhs == node.rhs {
				mapped[node] = node
				continue
			}
			mapped[node] = &Node{op: node.op, lhs: lhs, rhs: rhs}
		}
	}
	return mapped[n]
}

// Pow raises base to an integer power by repeated squaring. Negative
// exponents take the reciprocal first; a zero exponent yields Const(1).
func Pow(base *Node, exp int) *Node {
	if exp == 0 {
		return Const(1)
	}
	if exp < 0 {
		exp = -exp
		base = Unary(OpRecip, base)
	}
	var acc *Node
	for exp > 1 {
		if exp%2 == 1 {
			if acc == nil {
				acc = base
			} else {
				acc = Binary(OpMul, base, acc)
			}
			exp--
		}
		base = Unary(OpSquare, base)
		exp /= 2
	}
	if acc == nil {
		return base
	}
	return Binary(OpMul, base, acc)
}

// Eval evaluates n at a single point. Use Compile when evaluating the same
// expression many times.
func (n *Node) Eval(x, y, z float64) float64 {
	return n.Compile().Eval(x, y, z)
}
