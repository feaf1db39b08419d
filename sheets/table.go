package sheets

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/twyst/sheets-reshape/table"
)

// makeTable converts the values of a worksheet range to a table. The first row is the header.
func makeTable(rows [][]any) (*table.Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty sheet")
	}

	// ... header
	header := []string{}
	for _, v := range rows[0] {
		header = append(header, clean(table.FromCell(v).String()))
	}

	if len(header) == 0 {
		return nil, fmt.Errorf("missing/invalid header row")
	}

	// ... records
	t, err := table.FromRecords(header, rows[1:])
	if err != nil {
		return nil, fmt.Errorf("invalid worksheet (%w)", err)
	}

	return t, nil
}

// makeValues converts a table to worksheet rows, header first. Nulls are written as
// empty cells.
func makeValues(t *table.Table) [][]any {
	header := []any{}
	for _, c := range t.Columns() {
		header = append(header, c)
	}

	values := [][]any{header}
	for _, row := range t.Rows() {
		record := make([]any, len(row))
		for i, v := range row {
			if v.IsNull() {
				record[i] = ""
			} else {
				record[i] = v.Any()
			}
		}

		values = append(values, record)
	}

	return values
}

func clean(v string) string {
	return norm.NFC.String(strings.TrimSpace(v))
}
