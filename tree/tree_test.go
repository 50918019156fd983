package tree

import (
	"bytes"
	"testing"
)

func TestBuildWeather(t *testing.T) {
	tr, err := Build(weatherRows, weatherAttrs)
	if err != nil {
		t.Error("unexpected error building tree:", err)
		return
	}

	root := tr.Root
	if root.Leaf {
		t.Error("expected root to be a decision node")
		return
	}
	if root.Attr != 0 {
		t.Error("expected root to split on outlook (0), got:", root.Attr)
	}
	if root.Samples != 14 {
		t.Error("expected root to cover 14 rows, got:", root.Samples)
	}
	if len(root.Children) != 3 {
		t.Error("expected one branch per outlook value, got:", len(root.Children))
		return
	}

	overcast := root.Children["overcast"]
	if overcast == nil || !overcast.Leaf || overcast.Label != "yes" {
		t.Error("expected overcast branch to be a yes leaf, got:", overcast)
	}
	if overcast != nil && overcast.Samples != 4 {
		t.Error("expected overcast leaf to cover 4 rows, got:", overcast.Samples)
	}

	sunny := root.Children["sunny"]
	if sunny == nil || sunny.Leaf || sunny.Attr != 2 {
		t.Error("expected sunny branch to split on humidity (2), got:", sunny)
		return
	}
	if high := sunny.Children["high"]; high == nil || !high.Leaf || high.Label != "no" {
		t.Error("expected sunny/high to be a no leaf, got:", high)
	}
	if normal := sunny.Children["normal"]; normal == nil || !normal.Leaf || normal.Label != "yes" {
		t.Error("expected sunny/normal to be a yes leaf, got:", normal)
	}

	rain := root.Children["rain"]
	if rain == nil || rain.Leaf || rain.Attr != 3 {
		t.Error("expected rain branch to split on wind (3), got:", rain)
		return
	}
	if weak := rain.Children["weak"]; weak == nil || !weak.Leaf || weak.Label != "yes" {
		t.Error("expected rain/weak to be a yes leaf, got:", weak)
	}
	if strong := rain.Children["strong"]; strong == nil || !strong.Leaf || strong.Label != "no" {
		t.Error("expected rain/strong to be a no leaf, got:", strong)
	}

	if d := tr.Depth(); d != 2 {
		t.Error("expected tree depth 2, got:", d)
	}
	if s := tr.Size(); s != 8 {
		t.Error("expected tree size 8, got:", s)
	}
}

func TestBuildSingleLabel(t *testing.T) {
	rows := [][]string{
		{"a", "x", "yes"},
		{"b", "y", "yes"},
	}

	tr, err := Build(rows, []string{"a1", "a2"})
	if err != nil {
		t.Error("unexpected error building tree:", err)
		return
	}

	if !tr.Root.Leaf || tr.Root.Label != "yes" {
		t.Error("expected a single yes leaf, got:", tr.Root)
	}
	if tr.Depth() != 0 || tr.Size() != 1 {
		t.Error("expected a one-node tree, got depth:", tr.Depth(), "size:", tr.Size())
	}
}

func TestBuildXOR(t *testing.T) {
	// no single attribute discriminates, both gain ratios are 0 at the root:
	// the tie falls to the lowest column index and the second level finishes
	// the job
	tr, err := Build(xorRows, []string{"a1", "a2"})
	if err != nil {
		t.Error("unexpected error building tree:", err)
		return
	}

	if tr.Root.Leaf || tr.Root.Attr != 0 {
		t.Error("expected root to split on attribute 0, got:", tr.Root.Attr)
	}
	for _, v := range []string{"0", "1"} {
		child := tr.Root.Children[v]
		if child == nil || child.Leaf || child.Attr != 1 {
			t.Error("expected branch", v, "to split on attribute 1, got:", child)
		}
	}

	pred := tr.Predict(xorRows)
	for i, row := range xorRows {
		if pred[i] != row[2] {
			t.Error("expected row", i, "to predict", row[2], "got:", pred[i])
		}
	}
}

func TestBuildAttributesExhausted(t *testing.T) {
	// the only attribute is constant, splitting on it leaves nothing to
	// separate the conflicting labels: the child is a majority leaf
	rows := [][]string{
		{"x", "1"},
		{"x", "0"},
		{"x", "0"},
	}

	tr, err := Build(rows, []string{"a1"})
	if err != nil {
		t.Error("unexpected error building tree:", err)
		return
	}

	if tr.Root.Leaf || tr.Root.Attr != 0 || len(tr.Root.Children) != 1 {
		t.Error("expected root to split on the only attribute, got:", tr.Root)
		return
	}

	child := tr.Root.Children["x"]
	if child == nil || !child.Leaf || child.Label != "0" || child.Samples != 3 {
		t.Error("expected a majority leaf labeled 0 over 3 rows, got:", child)
	}
}

func TestMajorityTieFirstSeen(t *testing.T) {
	rows := [][]string{
		{"b"},
		{"a"},
		{"a"},
		{"b"},
	}

	if m := majorityLabel(rows, 0); m != "b" {
		t.Error("expected the tie to go to the first-seen label b, got:", m)
	}

	tied := [][]string{
		{"x", "b"},
		{"x", "a"},
		{"x", "a"},
		{"x", "b"},
	}
	tr, err := Build(tied, []string{"a1"})
	if err != nil {
		t.Error("unexpected error building tree:", err)
		return
	}
	if leaf := tr.Root.Children["x"]; leaf == nil || leaf.Label != "b" {
		t.Error("expected the exhausted leaf to keep the first-seen label b, got:", leaf)
	}
}

func TestBuildNoAttributeRepeats(t *testing.T) {
	tr, err := Build(weatherRows, weatherAttrs)
	if err != nil {
		t.Error("unexpected error building tree:", err)
		return
	}

	collectLeaves(tr.Root, nil, func(conds []pathCond, leaf *Node) {
		seen := make(map[int]bool)
		for _, c := range conds {
			if c.attr < 0 || c.attr >= len(weatherAttrs) {
				t.Error("split attribute out of range:", c.attr)
			}
			if seen[c.attr] {
				t.Error("attribute", c.attr, "used twice on one root-to-leaf path")
			}
			seen[c.attr] = true
		}
	})
}

func TestBuildPathReplay(t *testing.T) {
	// replaying the split conditions of any root-to-leaf path against the
	// original rows must reproduce exactly the leaf's subset
	tr, err := Build(weatherRows, weatherAttrs)
	if err != nil {
		t.Error("unexpected error building tree:", err)
		return
	}

	leaves := 0
	collectLeaves(tr.Root, nil, func(conds []pathCond, leaf *Node) {
		leaves++

		var subset [][]string
		for _, row := range weatherRows {
			match := true
			for _, c := range conds {
				if row[c.attr] != c.value {
					match = false
					break
				}
			}
			if match {
				subset = append(subset, row)
			}
		}

		if len(subset) != leaf.Samples {
			t.Error("expected replayed subset of", leaf.Samples, "rows, got:", len(subset))
			return
		}
		if majorityLabel(subset, 4) != leaf.Label {
			t.Error("expected leaf label to match the replayed subset, got:", leaf.Label)
		}
	})

	if leaves != 5 {
		t.Error("expected 5 leaves on the weather tree, got:", leaves)
	}
}

func TestBuildEmptyDataset(t *testing.T) {
	_, err := Build(nil, nil)
	if err == nil {
		t.Error("expected error building from an empty dataset")
		return
	}
	if _, ok := err.(*InvalidInputError); !ok {
		t.Errorf("expected *InvalidInputError, got: %T", err)
	}
}

func TestBuildRaggedRows(t *testing.T) {
	rows := [][]string{
		{"a", "x", "yes"},
		{"b", "no"},
	}

	_, err := Build(rows, []string{"a1", "a2"})
	if err == nil {
		t.Error("expected error building from ragged rows")
		return
	}
	if _, ok := err.(*InvalidInputError); !ok {
		t.Errorf("expected *InvalidInputError, got: %T", err)
	}
}

func TestBuildNameCountMismatch(t *testing.T) {
	rows := [][]string{{"a", "yes"}}

	_, err := Build(rows, []string{"a1", "a2"})
	if err == nil {
		t.Error("expected error for attribute name count mismatch")
	}
}

func TestPredictUnseenValue(t *testing.T) {
	tr, err := Build(weatherRows, weatherAttrs)
	if err != nil {
		t.Error("unexpected error building tree:", err)
		return
	}

	// unseen at the root: fall back to the dataset majority
	pred := tr.Predict([][]string{{"foggy", "hot", "high", "weak"}})
	if pred[0] != "yes" {
		t.Error("expected unseen outlook to predict the dataset majority yes, got:", pred[0])
	}

	// unseen below the root: fall back to the branch majority
	pred = tr.Predict([][]string{{"sunny", "hot", "dry", "weak"}})
	if pred[0] != "no" {
		t.Error("expected unseen humidity under sunny to predict no, got:", pred[0])
	}
}

func TestEncodeDecode(t *testing.T) {
	tr, err := Build(weatherRows, weatherAttrs)
	if err != nil {
		t.Error("unexpected error building tree:", err)
		return
	}

	var buf bytes.Buffer
	if err := tr.Save(&buf); err != nil {
		t.Error("unexpected error saving tree:", err)
		return
	}

	tr2 := new(Tree)
	if err := tr2.Load(&buf); err != nil {
		t.Error("unexpected error loading tree:", err)
		return
	}

	want := tr.Predict(weatherRows)
	got := tr2.Predict(weatherRows)
	for i := range want {
		if got[i] != want[i] {
			t.Error("expected loaded tree to predict", want[i], "for row", i, "got:", got[i])
		}
	}

	if tr2.Depth() != tr.Depth() {
		t.Error("expected loaded tree depth", tr.Depth(), "got:", tr2.Depth())
	}
}

func BenchmarkWeatherBuild(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Build(weatherRows, weatherAttrs)
	}
}

func BenchmarkWeatherPredict(b *testing.B) {
	tr, err := Build(weatherRows, weatherAttrs)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tr.Predict(weatherRows)
	}
}

type pathCond struct {
	attr  int
	value string
}

func collectLeaves(n *Node, conds []pathCond, visit func([]pathCond, *Node)) {
	if n.Leaf {
		visit(conds, n)
		return
	}
	for v, child := range n.Children {
		next := append(append([]pathCond{}, conds...), pathCond{n.Attr, v})
		collectLeaves(child, next, visit)
	}
}

var weatherAttrs = []string{"outlook", "temp", "humidity", "wind"}

var weatherRows = [][]string{
	{"sunny", "hot", "high", "weak", "no"},
	{"sunny", "hot", "high", "strong", "no"},
	{"overcast", "hot", "high", "weak", "yes"},
	{"rain", "mild", "high", "weak", "yes"},
	{"rain", "cool", "normal", "weak", "yes"},
	{"rain", "cool", "normal", "strong", "no"},
	{"overcast", "cool", "normal", "strong", "yes"},
	{"sunny", "mild", "high", "weak", "no"},
	{"sunny", "cool", "normal", "weak", "yes"},
	{"rain", "mild", "normal", "weak", "yes"},
	{"sunny", "mild", "normal", "strong", "yes"},
	{"overcast", "mild", "high", "strong", "yes"},
	{"overcast", "hot", "normal", "weak", "yes"},
	{"rain", "mild", "high", "strong", "no"},
}

var xorRows = [][]string{
	{"1", "0", "1"},
	{"0", "1", "1"},
	{"1", "1", "0"},
	{"0", "0", "0"},
}
