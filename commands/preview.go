package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lt "github.com/charmbracelet/lipgloss/table"

	"github.com/twyst/sheets-reshape/table"
)

var PreviewCmd = Preview{
	command: newCommand(),
	rows:    20,
}

type Preview struct {
	command
	from string
	area string
	rows int
}

func (cmd *Preview) Name() string {
	return "preview"
}

func (cmd *Preview) Description() string {
	return "Prints a table from a spreadsheet or local file"
}

func (cmd *Preview) Usage() string {
	return "--from <location> [--range <range>] [--rows <N>]"
}

func (cmd *Preview) Help() string {
	return strings.Join([]string{
		"Prints the first rows of a Google Sheets range or local file as a text table, e.g. to check the",
		"column names before reshaping.",
		"",
		"Examples:",
		`  sheets-reshape preview --from "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" --range "Wide!A1:H"`,
		`  sheets-reshape preview --from market-share.csv --rows 5`,
	}, "\n")
}

func (cmd *Preview) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("preview")

	flagset.StringVar(&cmd.from, "from", cmd.from, "Spreadsheet URL or local file")
	flagset.StringVar(&cmd.area, "range", cmd.area, "Spreadsheet range, worksheet or SQLite table")
	flagset.IntVar(&cmd.rows, "rows", cmd.rows, "Maximum number of rows to print (0 for all)")

	return flagset
}

func (cmd *Preview) Execute(ctx context.Context, options *Options) error {
	if strings.TrimSpace(cmd.from) == "" {
		return fmt.Errorf("--from is a required option")
	}

	t, err := cmd.router().Fetch(ctx, cmd.from, cmd.area)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, render(t, cmd.rows))

	return nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	nullStyle   = cellStyle.Faint(true)
)

// render formats at most limit rows of a table (all rows if limit is 0) as a bordered text table,
// followed by a row count if rows were omitted.
func render(t *table.Table, limit int) string {
	rows := t.Rows()
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	records := make([][]string, len(rows))
	for i, row := range rows {
		record := make([]string, len(row))
		for j, v := range row {
			record[j] = v.String()
		}

		records[i] = record
	}

	tb := lt.New().
		Border(lipgloss.NormalBorder()).
		Headers(t.Columns()...).
		Rows(records...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lt.HeaderRow {
				return headerStyle
			}

			if row >= 0 && row < len(rows) && col < len(rows[row]) {
				switch rows[row][col].Kind() {
				case table.Number:
					return numberStyle
				case table.Null:
					return nullStyle
				}
			}

			return cellStyle
		})

	s := tb.String()
	if len(rows) < t.Len() {
		s += fmt.Sprintf("\n  ... %d of %d rows", len(rows), t.Len())
	}

	return s
}
