package table

import (
	"fmt"
	"strings"
)

type options struct {
	dropAbsent bool
	fill       Value
}

// Option modifies the behaviour of WideToLong and LongToWide.
type Option func(*options)

// DropAbsent omits long rows whose value is null. Applies to WideToLong only.
func DropAbsent() Option {
	return func(o *options) {
		o.dropAbsent = true
	}
}

// Fill sets the value used for missing (identifiers, category) combinations. Applies to
// LongToWide only, the default being null.
func Fill(v Value) Option {
	return func(o *options) {
		o.fill = v
	}
}

// WideToLong collapses every column that is not an identifier into (category, value) pairs.
// Each input row yields one output row per measure column, in input row order and then in
// measure column order. The identifier values are repeated on every output row.
//
// All preconditions are checked before any output is produced.
func WideToLong(t *Table, identifiers []string, category, value string, opts ...Option) (*Table, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	ids, err := indices(t, identifiers)
	if err != nil {
		return nil, err
	}

	if err := checkNames(identifiers, category, value); err != nil {
		return nil, err
	}

	measures := []int{}
	for i, c := range t.columns {
		if !contains(identifiers, c) {
			measures = append(measures, i)
		}
	}

	if len(measures) == 0 {
		return nil, ErrEmptyMeasureSet
	}

	columns := make([]string, 0, len(identifiers)+2)
	columns = append(columns, identifiers...)
	columns = append(columns, category, value)

	rows := make([][]Value, 0, len(t.rows)*len(measures))
	for _, row := range t.rows {
		for _, m := range measures {
			if o.dropAbsent && row[m].IsNull() {
				continue
			}

			record := make([]Value, 0, len(columns))
			for _, ix := range ids {
				record = append(record, row[ix])
			}

			record = append(record, StringValue(t.columns[m]), row[m])
			rows = append(rows, record)
		}
	}

	return New(columns, rows)
}

// LongToWide spreads the category column of a long table into one column per distinct
// category label, in order of first appearance. Output rows correspond to the distinct
// identifier tuples, in order of first appearance. Combinations missing from the input are
// null (or the Fill value). Columns that are neither identifiers, category nor value are
// ignored.
//
// Every (identifiers, category) pair must be unique, otherwise a DuplicateKeyError is
// returned and no output is produced.
func LongToWide(t *Table, identifiers []string, category, value string, opts ...Option) (*Table, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	ids, err := indices(t, identifiers)
	if err != nil {
		return nil, err
	}

	cx := t.Index(category)
	if cx < 0 {
		return nil, &ColumnError{Kind: ErrColumnNotFound, Column: category}
	}

	vx := t.Index(value)
	if vx < 0 {
		return nil, &ColumnError{Kind: ErrColumnNotFound, Column: value}
	}

	if err := checkNames(identifiers, category, value); err != nil {
		return nil, err
	}

	type group struct {
		key    []Value
		values map[string]Value
	}

	groups := []*group{}
	index := map[string]*group{}
	labels := []string{}
	seen := map[string]bool{}

	for i, row := range t.rows {
		key := make([]Value, len(ids))
		for j, ix := range ids {
			key[j] = row[ix]
		}

		label := row[cx]
		if label.IsNull() || strings.TrimSpace(label.String()) == "" {
			return nil, fmt.Errorf("row %d: %w", i+1, ErrEmptyCategory)
		}

		name := label.String()
		if contains(identifiers, name) {
			return nil, &ColumnError{Kind: ErrNameCollision, Column: name}
		}

		k := tuple(key)
		g, ok := index[k]
		if !ok {
			g = &group{key: key, values: map[string]Value{}}
			index[k] = g
			groups = append(groups, g)
		}

		if _, ok := g.values[name]; ok {
			return nil, &DuplicateKeyError{
				Identifiers: append([]string(nil), identifiers...),
				Key:         key,
				Category:    name,
			}
		}

		g.values[name] = row[vx]

		if !seen[name] {
			seen[name] = true
			labels = append(labels, name)
		}
	}

	columns := make([]string, 0, len(identifiers)+len(labels))
	columns = append(columns, identifiers...)
	columns = append(columns, labels...)

	rows := make([][]Value, 0, len(groups))
	for _, g := range groups {
		record := make([]Value, 0, len(columns))
		record = append(record, g.key...)

		for _, label := range labels {
			if v, ok := g.values[label]; ok {
				record = append(record, v)
			} else {
				record = append(record, o.fill)
			}
		}

		rows = append(rows, record)
	}

	return New(columns, rows)
}

func indices(t *Table, identifiers []string) ([]int, error) {
	list := make([]int, 0, len(identifiers))
	seen := map[string]bool{}

	for _, id := range identifiers {
		ix := t.Index(id)
		if ix < 0 {
			return nil, &ColumnError{Kind: ErrColumnNotFound, Column: id}
		}

		if seen[id] {
			return nil, &ColumnError{Kind: ErrNameCollision, Column: id}
		}

		seen[id] = true
		list = append(list, ix)
	}

	return list, nil
}

func checkNames(identifiers []string, category, value string) error {
	for _, name := range []string{category, value} {
		if strings.TrimSpace(name) == "" {
			return &ColumnError{Kind: ErrEmptyColumnName, Column: name}
		}

		if contains(identifiers, name) {
			return &ColumnError{Kind: ErrNameCollision, Column: name}
		}
	}

	if category == value {
		return &ColumnError{Kind: ErrNameCollision, Column: value}
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}

func tuple(key []Value) string {
	var b strings.Builder
	for _, v := range key {
		b.WriteString(v.key())
		b.WriteByte(0x1f)
	}

	return b.String()
}
