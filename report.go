package main

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/oksent-dev/decision-tree/tree"
)

// writeReport prints the statistics the build selects splits from: unique
// value counts and value occurrences per attribute, the entropy of the
// whole dataset, then conditional entropy, information gain, split
// information, and gain ratio per attribute, closing with the attribute
// holding the highest gain ratio at the root.
func writeReport(w io.Writer, rows [][]string, attrNames []string) error {
	bw := bufio.NewWriter(w)
	labelCol := len(attrNames)

	fmt.Fprintln(bw, "Unique values count:")
	for i, name := range attrNames {
		vals, err := tree.UniqueValues(rows, i)
		if err != nil {
			return err
		}
		fmt.Fprintf(bw, "Attribute %s: %d unique values\n", name, len(vals))
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Value occurrences:")
	for i, name := range attrNames {
		vals, err := tree.UniqueValues(rows, i)
		if err != nil {
			return err
		}
		counts, err := tree.ValueCounts(rows, i)
		if err != nil {
			return err
		}

		fmt.Fprintf(bw, "Attribute %s:\n", name)
		for _, v := range vals {
			fmt.Fprintf(bw, "  Value %s: %d occurrences\n", v, counts[v])
		}
	}

	entropy, err := tree.Entropy(rows, labelCol)
	if err != nil {
		return err
	}
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "Entropy of the entire data set: %.4f\n", entropy)

	best := -1
	bestRatio := math.Inf(-1)
	for i, name := range attrNames {
		ce, err := tree.ConditionalEntropy(rows, i, labelCol)
		if err != nil {
			return err
		}
		ig, err := tree.InformationGain(rows, i, labelCol)
		if err != nil {
			return err
		}
		si, err := tree.SplitInformation(rows, i)
		if err != nil {
			return err
		}
		gr, err := tree.GainRatio(rows, i, labelCol)
		if err != nil {
			return err
		}

		fmt.Fprintf(bw, "\n--- Attribute %s ---\n", name)
		fmt.Fprintf(bw, "Conditional entropy: %.4f\n", ce)
		fmt.Fprintf(bw, "Information gain: %.4f\n", ig)
		fmt.Fprintf(bw, "Split information: %.4f\n", si)
		fmt.Fprintf(bw, "Gain ratio: %.4f\n", gr)

		if gr > bestRatio {
			best, bestRatio = i, gr
		}
	}

	if best >= 0 {
		fmt.Fprintln(bw)
		fmt.Fprintf(bw, "Attribute with highest gain ratio: %s\n", attrNames[best])
	}

	return bw.Flush()
}
