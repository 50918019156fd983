// tree implements a decision tree for discrete attributes using the
// gain-ratio splitting criterion described in
// Quinlan, J. R. (1993) "C4.5: Programs for Machine Learning".
//
// Attributes split multiway: a decision node has one child per attribute
// value observed in its row subset. Build follows the classic recursive
// induction; the statistics it selects splits with are exported as pure
// functions of a row subset.
package tree

import (
	"encoding/gob"
	"io"
	"math"
	"sort"

	"github.com/emirpasic/gods/sets/hashset"
)

// Node is a single tree node. A decision node (Leaf false) splits its row
// subset on the attribute column Attr with one child per observed value; a
// leaf predicts Label. Label is set on every node to the majority label of
// the node's subset, so it doubles as the fallback prediction for values
// with no matching branch.
type Node struct {
	Leaf     bool
	Attr     int              // column index of the split attribute
	Children map[string]*Node // split value -> child, decision nodes only
	Label    string
	Samples  int
}

// Tree is a fitted decision tree plus the attribute names needed to render
// it. Trees are immutable once Build returns.
type Tree struct {
	Root      *Node
	AttrNames []string
}

// Build grows a decision tree from rows. Each row holds the attribute
// values followed by the class label in the last column; attrNames names
// the attribute columns in order. The dataset must be non-empty and
// rectangular.
func Build(rows [][]string, attrNames []string) (*Tree, error) {
	if len(rows) == 0 {
		return nil, &InvalidInputError{Reason: "empty dataset"}
	}

	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return nil, invalidInputf("row %d has %d columns, want %d", i, len(row), width)
		}
	}
	if len(attrNames) != width-1 {
		return nil, invalidInputf("%d attribute names for %d attribute columns", len(attrNames), width-1)
	}

	labelCol := width - 1
	attrs := hashset.New()
	for a := 0; a < labelCol; a++ {
		attrs.Add(a)
	}

	return &Tree{Root: grow(rows, attrs, labelCol), AttrNames: attrNames}, nil
}

// grow builds the subtree for one row subset. It stops on the first of: a
// single label left in the subset, or no attributes left to split on. Each
// level removes the chosen attribute from availableAttrs, so recursion
// depth is bounded by the attribute count and no root-to-leaf path splits
// on the same attribute twice.
func grow(rows [][]string, availableAttrs *hashset.Set, labelCol int) *Node {
	n := &Node{Label: majorityLabel(rows, labelCol), Samples: len(rows)}

	if homogeneous(rows, labelCol) || availableAttrs.Empty() {
		n.Leaf = true
		return n
	}

	best := bestAttr(rows, availableAttrs, labelCol)
	remaining := withoutAttr(availableAttrs, best)

	n.Attr = best
	n.Children = make(map[string]*Node)
	for _, p := range partition(rows, best) {
		n.Children[p.value] = grow(p.rows, remaining, labelCol)
	}
	return n
}

// bestAttr returns the available attribute with the highest gain ratio,
// ties going to the lowest column index.
func bestAttr(rows [][]string, available *hashset.Set, labelCol int) int {
	attrs := attrIndices(available)

	best := attrs[0]
	bestRatio := math.Inf(-1)
	for _, a := range attrs {
		if r := gainRatio(rows, a, labelCol); r > bestRatio {
			best, bestRatio = a, r
		}
	}
	return best
}

// attrIndices snapshots the set into an ascending slice so attribute
// selection does not depend on set iteration order.
func attrIndices(s *hashset.Set) []int {
	attrs := make([]int, 0, s.Size())
	for _, v := range s.Values() {
		attrs = append(attrs, v.(int))
	}
	sort.Ints(attrs)
	return attrs
}

// withoutAttr copies the set minus one attribute. Sibling subtrees share
// the parent's set, so it is never shrunk in place.
func withoutAttr(s *hashset.Set, drop int) *hashset.Set {
	rest := hashset.New()
	for _, v := range s.Values() {
		if v.(int) != drop {
			rest.Add(v)
		}
	}
	return rest
}

type part struct {
	value string
	rows  [][]string
}

// partition groups rows by their value in column col, keeping first-seen
// value order and row order within each group. Every row lands in exactly
// one group; groups share the caller's row slices, no copies.
func partition(rows [][]string, col int) []part {
	at := make(map[string]int)
	var parts []part
	for _, row := range rows {
		v := row[col]
		i, ok := at[v]
		if !ok {
			i = len(parts)
			at[v] = i
			parts = append(parts, part{value: v})
		}
		parts[i].rows = append(parts[i].rows, row)
	}
	return parts
}

func homogeneous(rows [][]string, labelCol int) bool {
	first := rows[0][labelCol]
	for _, row := range rows[1:] {
		if row[labelCol] != first {
			return false
		}
	}
	return true
}

// majorityLabel returns the most frequent label in rows, ties going to the
// label seen first in row order.
func majorityLabel(rows [][]string, labelCol int) string {
	ct := make(map[string]int)
	var order []string
	for _, row := range rows {
		v := row[labelCol]
		if ct[v] == 0 {
			order = append(order, v)
		}
		ct[v]++
	}

	best := order[0]
	for _, v := range order[1:] {
		if ct[v] > ct[best] {
			best = v
		}
	}
	return best
}

// Predict returns the predicted label for each row. Rows need the attribute
// columns only; a trailing label column, if present, is ignored. A value
// with no matching branch stops the walk and predicts the majority label of
// the node it stopped at.
func (t *Tree) Predict(rows [][]string) []string {
	p := make([]string, len(rows))

	for i, row := range rows {
		n := t.Root
		for !n.Leaf {
			child, ok := n.Children[row[n.Attr]]
			if !ok {
				break
			}
			n = child
		}
		p[i] = n.Label
	}

	return p
}

// Depth returns the number of decisions on the longest root-to-leaf path; a
// tree that is a single leaf has depth 0.
func (t *Tree) Depth() int { return depth(t.Root) }

func depth(n *Node) int {
	if n.Leaf {
		return 0
	}
	max := 0
	for _, c := range n.Children {
		if d := depth(c); d > max {
			max = d
		}
	}
	return max + 1
}

// Size returns the total number of nodes in the tree.
func (t *Tree) Size() int { return size(t.Root) }

func size(n *Node) int {
	s := 1
	for _, c := range n.Children {
		s += size(c)
	}
	return s
}

// Save serializes the Tree using encoding/gob to an io.Writer.
func (t *Tree) Save(w io.Writer) error {
	e := gob.NewEncoder(w)
	return e.Encode(t)
}

// Load deserializes the Tree using encoding/gob from an io.Reader.
func (t *Tree) Load(r io.Reader) error {
	d := gob.NewDecoder(r)
	return d.Decode(t)
}
