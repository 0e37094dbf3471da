package tree

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrGraphParse is wrapped by every error ParseVM returns.
var ErrGraphParse = errors.New("graph parse error")

// ParseError reports a malformed line in the text graph format.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("tree: line %d: %s", e.Line, e.Message)
	}
	return "tree: " + e.Message
}

func (e *ParseError) Unwrap() error { return ErrGraphParse }

// WriteVM serializes the graph rooted at n in the line-oriented text format:
//
//	<id> <opcode> [<operand-id> ...]
//
// Constants are written as "<id> const <value>". Operands always precede
// their users and the root is the last line.
func WriteVM(w io.Writer, n *Node) error {
	bw := bufio.NewWriter(w)
	ids := make(map[*Node]string)
	for i, node := range n.postorder() {
		id := "_" + strconv.FormatInt(int64(i), 16)
		ids[node] = id
		var line string
		switch {
		case node.op == OpConst:
			line = fmt.Sprintf("%s const %s\n", id, strconv.FormatFloat(node.value, 'g', -1, 64))
		case node.lhs == nil:
			line = fmt.Sprintf("%s %s\n", id, node.op)
		case node.rhs == nil:
			line = fmt.Sprintf("%s %s %s\n", id, node.op, ids[node.lhs])
		default:
			line = fmt.Sprintf("%s %s %s %s\n", id, node.op, ids[node.lhs], ids[node.rhs])
		}
		if _, err := bw.WriteString(line); err != nil {
			return fmt.Errorf("tree: write vm: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("tree: write vm: %w", err)
	}
	return nil
}

// FormatVM returns the text form of n.
func FormatVM(n *Node) string {
	var sb strings.Builder
	_ = WriteVM(&sb, n) // strings.Builder never fails
	return sb.String()
}

// ParseVM reads a graph in the text format written by WriteVM. Lines starting
// with '#' and blank lines are ignored. The last node defined is the root.
// Any malformed line fails the whole parse; no partial graph is returned.
func ParseVM(text string) (*Node, error) {
	nodes := make(map[string]*Node)
	var root *Node

	sc := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, &ParseError{Line: lineNo, Message: fmt.Sprintf("expected '<id> <opcode>', got %q", line)}
		}
		id, verb, args := fields[0], fields[1], fields[2:]
		if _, dup := nodes[id]; dup {
			return nil, &ParseError{Line: lineNo, Message: fmt.Sprintf("duplicate node id %q", id)}
		}
		op, ok := ParseOpcode(verb)
		if !ok {
			return nil, &ParseError{Line: lineNo, Message: fmt.Sprintf("unknown opcode %q", verb)}
		}

		var node *Node
		switch {
		case op == OpConst:
			if len(args) != 1 {
				return nil, &ParseError{Line: lineNo, Message: "const takes exactly one value"}
			}
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Message: fmt.Sprintf("bad constant %q", args[0])}
			}
			node = Const(v)
		default:
			if len(args) != op.Arity() {
				return nil, &ParseError{Line: lineNo, Message: fmt.Sprintf("%s takes %d operands, got %d", op, op.Arity(), len(args))}
			}
			operands := make([]*Node, len(args))
			for i, ref := range args {
				operand, ok := nodes[ref]
				if !ok {
					return nil, &ParseError{Line: lineNo, Message: fmt.Sprintf("unknown operand id %q", ref)}
				}
				operands[i] = operand
			}
			switch op.Arity() {
			case 0:
				node = axisFor(op)
			case 1:
				node = Unary(op, operands[0])
			case 2:
				node = Binary(op, operands[0], operands[1])
			}
		}
		nodes[id] = node
		root = node
	}
	if err := sc.Err(); err != nil {
		return nil, &ParseError{Message: err.Error()}
	}
	if root == nil {
		return nil, &ParseError{Message: "no nodes defined"}
	}
	return root, nil
}

func axisFor(op Opcode) *Node {
	switch op {
	case OpVarX:
		return axisX
	case OpVarY:
		return axisY
	default:
		return axisZ
	}
}
