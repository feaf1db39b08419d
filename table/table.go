package table

import (
	"strings"
)

// Table is an immutable rectangular table: an ordered list of uniquely named columns and
// an ordered list of rows, each holding exactly one Value per column.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Value
}

// New validates and copies the columns and rows into a new Table. Rows shorter than the
// header are padded with nulls (spreadsheet APIs omit trailing empty cells), rows longer than
// the header are rejected.
func New(columns []string, rows [][]Value) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if strings.TrimSpace(c) == "" {
			return nil, &ColumnError{Kind: ErrEmptyColumnName, Column: c}
		}

		if _, ok := index[c]; ok {
			return nil, &ColumnError{Kind: ErrDuplicateColumn, Column: c}
		}

		index[c] = i
	}

	t := Table{
		columns: append([]string(nil), columns...),
		index:   index,
		rows:    make([][]Value, 0, len(rows)),
	}

	for i, row := range rows {
		if len(row) > len(columns) {
			return nil, &RowError{Kind: ErrNotRectangular, Row: i, Cells: len(row)}
		}

		record := make([]Value, len(columns))
		copy(record, row)

		t.rows = append(t.rows, record)
	}

	return &t, nil
}

// FromRecords builds a table from a header row and cell values in any of the forms accepted
// by FromCell.
func FromRecords(header []string, records [][]any) (*Table, error) {
	rows := make([][]Value, 0, len(records))
	for _, record := range records {
		row := make([]Value, len(record))
		for i, cell := range record {
			row[i] = FromCell(cell)
		}

		rows = append(rows, row)
	}

	return New(header, rows)
}

// Columns returns a copy of the column names, in display order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

func (t *Table) Width() int {
	return len(t.columns)
}

func (t *Table) Len() int {
	return len(t.rows)
}

// Index returns the position of the named column or -1.
func (t *Table) Index(column string) int {
	if ix, ok := t.index[column]; ok {
		return ix
	}

	return -1
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []Value {
	return append([]Value(nil), t.rows[i]...)
}

// Cell returns the value at row i in the named column.
func (t *Table) Cell(i int, column string) (Value, bool) {
	ix, ok := t.index[column]
	if !ok || i < 0 || i >= len(t.rows) {
		return Value{}, false
	}

	return t.rows[i][ix], true
}

// Rows returns a deep copy of all rows.
func (t *Table) Rows() [][]Value {
	rows := make([][]Value, len(t.rows))
	for i := range t.rows {
		rows[i] = t.Row(i)
	}

	return rows
}

// Records returns the rows as display strings, nulls being empty strings.
func (t *Table) Records() [][]string {
	records := make([][]string, len(t.rows))
	for i, row := range t.rows {
		record := make([]string, len(row))
		for j, v := range row {
			record[j] = v.String()
		}

		records[i] = record
	}

	return records
}

// Equal reports whether two tables have the same columns, in the same order, and the same
// rows, in the same order.
func (t *Table) Equal(u *Table) bool {
	if t == nil || u == nil {
		return t == u
	}

	if len(t.columns) != len(u.columns) || len(t.rows) != len(u.rows) {
		return false
	}

	for i := range t.columns {
		if t.columns[i] != u.columns[i] {
			return false
		}
	}

	for i := range t.rows {
		for j := range t.rows[i] {
			if t.rows[i][j] != u.rows[i][j] {
				return false
			}
		}
	}

	return true
}
