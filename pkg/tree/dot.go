package tree

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteDot writes the graph rooted at n in Graphviz dot syntax, one vertex
// per distinct node, with edges pointing from a node to its operands.
func WriteDot(w io.Writer, n *Node) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph tree {")
	ids := make(map[*Node]int)
	for i, node := range n.postorder() {
		ids[node] = i
		label := node.op.String()
		if node.op == OpConst {
			label = strconv.FormatFloat(node.value, 'g', -1, 64)
		}
		fmt.Fprintf(bw, "  n%d [label=%q];\n", i, label)
		if node.lhs != nil {
			fmt.Fprintf(bw, "  n%d -> n%d;\n", i, ids[node.lhs])
		}
		if node.rhs != nil {
			fmt.Fprintf(bw, "  n%d -> n%d;\n", i, ids[node.rhs])
		}
	}
	fmt.Fprintln(bw, "}")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("tree: write dot: %w", err)
	}
	return nil
}
