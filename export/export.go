// export renders fitted decision trees: an indented text listing for the
// console or a file, and the Graphviz dot format for graph tooling. Both
// renderings walk branches in sorted value order, so the same tree always
// produces the same bytes.
package export

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/oksent-dev/decision-tree/tree"
)

// WriteText renders the tree as an indented branch listing, one line per
// node: decision nodes read "Attribute <name>", leaves "Decision: <label>",
// and each branch line starts with the split value that leads to it.
func WriteText(w io.Writer, t *tree.Tree) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, nodeName(t, t.Root))
	writeBranches(bw, t, t.Root, "")

	return bw.Flush()
}

func writeBranches(w io.Writer, t *tree.Tree, n *tree.Node, prefix string) {
	vals := branchValues(n)
	for i, v := range vals {
		child := n.Children[v]

		connector, childPrefix := "├── ", prefix+"│   "
		if i == len(vals)-1 {
			connector, childPrefix = "└── ", prefix+"    "
		}

		fmt.Fprintf(w, "%s%s%s ➔ %s\n", prefix, connector, v, nodeName(t, child))
		writeBranches(w, t, child, childPrefix)
	}
}

func nodeName(t *tree.Tree, n *tree.Node) string {
	if n.Leaf {
		return "Decision: " + n.Label
	}
	return "Attribute " + t.AttrNames[n.Attr]
}

// WriteDOT renders the tree as a Graphviz digraph: decision nodes labeled
// with the attribute name, edges labeled with the split value, leaves drawn
// as boxes labeled with the class value.
func WriteDOT(w io.Writer, t *tree.Tree) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "digraph decisiontree {")
	fmt.Fprintln(bw, "    ranksep=7; nodesep=1; overlap=false;")

	g := &dotGraph{t: t}
	g.walk(t.Root)
	for _, s := range g.nodes {
		fmt.Fprintln(bw, s)
	}
	for _, s := range g.edges {
		fmt.Fprintln(bw, s)
	}

	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

type dotGraph struct {
	t     *tree.Tree
	nodes []string
	edges []string
}

// walk assigns ids in preorder and returns the id given to n.
func (g *dotGraph) walk(n *tree.Node) int {
	id := len(g.nodes)

	if n.Leaf {
		g.nodes = append(g.nodes, fmt.Sprintf("    n%d [label=%q, shape=box];", id, n.Label))
		return id
	}

	g.nodes = append(g.nodes, fmt.Sprintf("    n%d [label=%q];", id, g.t.AttrNames[n.Attr]))
	for _, v := range branchValues(n) {
		child := g.walk(n.Children[v])
		g.edges = append(g.edges, fmt.Sprintf("    n%d -> n%d [label=%q];", id, child, v))
	}
	return id
}

// branchValues returns a node's child values sorted.
func branchValues(n *tree.Node) []string {
	vals := make([]string, 0, len(n.Children))
	for v := range n.Children {
		vals = append(vals, v)
	}
	sort.Strings(vals)
	return vals
}
