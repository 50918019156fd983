package tree

import (
	"fmt"
	"math"
	"sort"
)

// InvalidInputError reports a dataset the analyzer cannot work with: no
// rows, ragged rows, or a column index outside the row width.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string { return "invalid input: " + e.Reason }

func invalidInputf(format string, a ...interface{}) *InvalidInputError {
	return &InvalidInputError{Reason: fmt.Sprintf(format, a...)}
}

// UniqueValues returns the distinct values observed in column col across
// rows, in first-seen row order.
func UniqueValues(rows [][]string, col int) ([]string, error) {
	if err := checkColumn(rows, col); err != nil {
		return nil, err
	}
	return uniqueValues(rows, col), nil
}

// ValueCounts returns the number of occurrences of each distinct value in
// column col.
func ValueCounts(rows [][]string, col int) (map[string]int, error) {
	if err := checkColumn(rows, col); err != nil {
		return nil, err
	}
	return valueCounts(rows, col), nil
}

// Entropy returns the Shannon entropy, in bits, of the value distribution
// of column col. Applied to the label column this is the class impurity of
// the subset; a single-valued column has entropy 0.
func Entropy(rows [][]string, col int) (float64, error) {
	if err := checkColumn(rows, col); err != nil {
		return 0, err
	}
	return entropyOf(rows, col), nil
}

// ConditionalEntropy returns the entropy of the label column remaining
// after partitioning rows by the values of the attribute column: the
// per-value label entropies weighted by partition size.
func ConditionalEntropy(rows [][]string, attrCol, labelCol int) (float64, error) {
	if err := checkColumns(rows, attrCol, labelCol); err != nil {
		return 0, err
	}
	return conditionalEntropy(rows, attrCol, labelCol), nil
}

// InformationGain returns the reduction in label entropy achieved by
// splitting rows on the attribute column.
func InformationGain(rows [][]string, attrCol, labelCol int) (float64, error) {
	if err := checkColumns(rows, attrCol, labelCol); err != nil {
		return 0, err
	}
	return informationGain(rows, attrCol, labelCol), nil
}

// SplitInformation returns the entropy of the attribute's own value
// distribution. It normalizes information gain in the gain ratio, punishing
// attributes that fan out into many small branches.
func SplitInformation(rows [][]string, attrCol int) (float64, error) {
	return Entropy(rows, attrCol)
}

// GainRatio returns information gain divided by split information, the
// criterion used to pick the splitting attribute. An attribute with a
// single value across rows has split information 0; its gain ratio is
// defined as 0 rather than NaN, so it can never win over an attribute with
// positive gain.
func GainRatio(rows [][]string, attrCol, labelCol int) (float64, error) {
	if err := checkColumns(rows, attrCol, labelCol); err != nil {
		return 0, err
	}
	return gainRatio(rows, attrCol, labelCol), nil
}

// checkColumn validates the subset preconditions shared by the statistics
// functions. Width is judged by the first row; Build rejects ragged
// datasets before any statistics run.
func checkColumn(rows [][]string, col int) error {
	if len(rows) == 0 {
		return &InvalidInputError{Reason: "empty row subset"}
	}
	if col < 0 || col >= len(rows[0]) {
		return invalidInputf("column %d out of range, rows have %d columns", col, len(rows[0]))
	}
	return nil
}

func checkColumns(rows [][]string, attrCol, labelCol int) error {
	if err := checkColumn(rows, attrCol); err != nil {
		return err
	}
	return checkColumn(rows, labelCol)
}

func uniqueValues(rows [][]string, col int) []string {
	seen := make(map[string]bool)
	var vals []string
	for _, row := range rows {
		if v := row[col]; !seen[v] {
			seen[v] = true
			vals = append(vals, v)
		}
	}
	return vals
}

func valueCounts(rows [][]string, col int) map[string]int {
	ct := make(map[string]int)
	for _, row := range rows {
		ct[row[col]]++
	}
	return ct
}

func entropyOf(rows [][]string, col int) float64 {
	return entropyFromCounts(len(rows), valueCounts(rows, col))
}

// entropy of a count distribution
// e = -sum over k p_k * log2(p_k), with 0*log2(0) taken as 0
func entropyFromCounts(n int, ct map[string]int) float64 {
	vals := make([]string, 0, len(ct))
	for v := range ct {
		vals = append(vals, v)
	}
	sort.Strings(vals) // fixed summation order, identical floats on every run

	e := 0.0
	for _, v := range vals {
		if c := ct[v]; c > 0 {
			p := float64(c) / float64(n)
			e -= p * math.Log2(p)
		}
	}
	return e
}

// conditionalEntropy computes
// sum over v (|rows_v| / |rows|) * entropy(rows_v)
// where rows_v are the rows holding value v in the attribute column.
func conditionalEntropy(rows [][]string, attrCol, labelCol int) float64 {
	byValue := make(map[string]map[string]int)
	for _, row := range rows {
		ct, ok := byValue[row[attrCol]]
		if !ok {
			ct = make(map[string]int)
			byValue[row[attrCol]] = ct
		}
		ct[row[labelCol]]++
	}

	vals := make([]string, 0, len(byValue))
	for v := range byValue {
		vals = append(vals, v)
	}
	sort.Strings(vals)

	h := 0.0
	for _, v := range vals {
		ct := byValue[v]
		n := 0
		for _, c := range ct {
			n += c
		}
		h += float64(n) / float64(len(rows)) * entropyFromCounts(n, ct)
	}
	return h
}

func informationGain(rows [][]string, attrCol, labelCol int) float64 {
	return entropyOf(rows, labelCol) - conditionalEntropy(rows, attrCol, labelCol)
}

func gainRatio(rows [][]string, attrCol, labelCol int) float64 {
	si := entropyOf(rows, attrCol)
	if si == 0 {
		return 0
	}
	return informationGain(rows, attrCol, labelCol) / si
}
