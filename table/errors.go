package table

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrColumnNotFound  = errors.New("column not found")
	ErrNameCollision   = errors.New("column name collision")
	ErrEmptyMeasureSet = errors.New("no measure columns")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrEmptyCategory   = errors.New("empty category label")
	ErrDuplicateColumn = errors.New("duplicate column name")
	ErrEmptyColumnName = errors.New("empty column name")
	ErrNotRectangular  = errors.New("row is longer than the header")
	ErrInvalidSelector = errors.New("invalid column selector")
)

// ColumnError reports a column name that violates a reshaping precondition. Kind is one of
// ErrColumnNotFound, ErrNameCollision or ErrDuplicateColumn.
type ColumnError struct {
	Kind   error
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%v: '%s'", e.Kind, e.Column)
}

func (e *ColumnError) Unwrap() error {
	return e.Kind
}

// DuplicateKeyError is returned by LongToWide when an (identifiers, category) pair occurs more
// than once.
type DuplicateKeyError struct {
	Identifiers []string
	Key         []Value
	Category    string
}

func (e *DuplicateKeyError) Error() string {
	fields := make([]string, len(e.Key))
	for i, v := range e.Key {
		name := ""
		if i < len(e.Identifiers) {
			name = e.Identifiers[i]
		}

		fields[i] = fmt.Sprintf("%s=%q", name, v.String())
	}

	return fmt.Sprintf("%v: {%s} category '%s'", ErrDuplicateKey, strings.Join(fields, " "), e.Category)
}

func (e *DuplicateKeyError) Unwrap() error {
	return ErrDuplicateKey
}

// RowError reports a malformed row in a table under construction.
type RowError struct {
	Kind  error
	Row   int
	Cells int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v (%d cells)", e.Row+1, e.Kind, e.Cells)
}

func (e *RowError) Unwrap() error {
	return e.Kind
}
