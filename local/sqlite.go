package local

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/twyst/sheets-reshape/table"
)

func readSQLite(ctx context.Context, path, name string) (*table.Table, error) {
	if name == "" {
		return nil, fmt.Errorf("missing SQLite table name")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	defer db.Close()

	rs, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", identifier(name)))
	if err != nil {
		return nil, err
	}

	defer rs.Close()

	columns, err := rs.Columns()
	if err != nil {
		return nil, err
	}

	rows := [][]table.Value{}
	for rs.Next() {
		cells := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range cells {
			pointers[i] = &cells[i]
		}

		if err := rs.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make([]table.Value, len(cells))
		for i, v := range cells {
			row[i] = table.FromCell(v)
		}

		rows = append(rows, row)
	}

	if err := rs.Err(); err != nil {
		return nil, err
	}

	return table.New(columns, rows)
}

// writeSQLite replaces the named table with the contents of t, in a single transaction.
// Columns are untyped so that each cell keeps its own storage class.
func writeSQLite(ctx context.Context, path, name string, t *table.Table) error {
	if name == "" {
		return fmt.Errorf("missing SQLite table name")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}

	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	columns := []string{}
	placeholders := []string{}
	for _, c := range t.Columns() {
		columns = append(columns, identifier(c))
		placeholders = append(placeholders, "?")
	}

	drop := fmt.Sprintf("DROP TABLE IF EXISTS %s", identifier(name))
	create := fmt.Sprintf("CREATE TABLE %s (%s)", identifier(name), strings.Join(columns, ", "))
	insert := fmt.Sprintf("INSERT INTO %s VALUES (%s)", identifier(name), strings.Join(placeholders, ", "))

	for _, q := range []string{drop, create} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("%s (%w)", q, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return err
	}

	defer stmt.Close()

	for _, row := range t.Rows() {
		args := make([]any, len(row))
		for i, v := range row {
			args[i] = v.Any()
		}

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func identifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
