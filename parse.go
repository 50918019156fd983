package main

import (
	"encoding/csv"
	"fmt"
	"io"
)

// parseData reads a delimited file of discrete tokens into rows, every row
// holding the attribute values followed by the class label in the last
// column. With header set the first record names the attribute columns;
// otherwise names are generated as a1..aN. Header detection is not
// attempted: in an all-categorical file a header row is indistinguishable
// from a data row.
func parseData(r io.Reader, delim rune, header bool) ([][]string, []string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delim

	var attrNames []string

	if header {
		rec, err := reader.Read()
		if err != nil {
			return nil, nil, fmt.Errorf("reading header row: %v", err)
		}
		attrNames = rec[:len(rec)-1]
	}

	// keep reading rows until EOF
	var rows [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, rec)
	}

	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("input has no data rows")
	}

	if attrNames == nil {
		// use a1, a2,...aN for attribute names
		for i := 1; i < len(rows[0]); i++ {
			attrNames = append(attrNames, fmt.Sprintf("a%d", i))
		}
	}

	return rows, attrNames, nil
}
