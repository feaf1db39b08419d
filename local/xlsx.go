package local

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/twyst/sheets-reshape/table"
)

func readXLSX(path, sheet string) (*table.Table, error) {
	xl, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}

	defer xl.Close()

	if sheet == "" {
		list := xl.GetSheetList()
		if len(list) == 0 {
			return nil, fmt.Errorf("workbook '%s' has no worksheets", path)
		}

		sheet = list[0]
	}

	if ix, err := xl.GetSheetIndex(sheet); err != nil {
		return nil, err
	} else if ix < 0 {
		return nil, fmt.Errorf("unable to identify worksheet '%s'", sheet)
	}

	rows, err := xl.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("empty sheet")
	}

	header := make([]string, len(rows[0]))
	for i, v := range rows[0] {
		header[i] = clean(v)
	}

	records := make([][]table.Value, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make([]table.Value, len(row))
		for i, v := range row {
			record[i] = table.Parse(v)
		}

		records = append(records, record)
	}

	return table.New(header, records)
}

// writeXLSX replaces (or adds) a worksheet in a workbook, creating the workbook if necessary.
// Other worksheets are preserved.
func writeXLSX(path, sheet string, t *table.Table) error {
	if sheet == "" {
		sheet = "Sheet1"
	}

	xl, err := openOrCreate(path, sheet)
	if err != nil {
		return err
	}

	defer xl.Close()

	if err := clearSheet(xl, sheet); err != nil {
		return err
	}

	// ... header
	header := []any{}
	for _, c := range t.Columns() {
		header = append(header, c)
	}

	if err := xl.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	if t.Width() > 0 {
		bold, err := xl.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return err
		}

		last, err := excelize.CoordinatesToCellName(t.Width(), 1)
		if err != nil {
			return err
		}

		if err := xl.SetCellStyle(sheet, "A1", last, bold); err != nil {
			return err
		}
	}

	// ... rows
	for i, row := range t.Rows() {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("%d: %w", i+2, err)
		}

		record := make([]any, len(row))
		for j, v := range row {
			record[j] = v.Any()
		}

		if err := xl.SetSheetRow(sheet, axis, &record); err != nil {
			return fmt.Errorf("%s[%s]: %w", sheet, axis, err)
		}
	}

	return replace(path, func(f *os.File) error {
		_, err := xl.WriteTo(f)
		return err
	})
}

func openOrCreate(path, sheet string) (*excelize.File, error) {
	xl, err := excelize.OpenFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		xl = excelize.NewFile()
		if err := xl.SetSheetName(xl.GetSheetName(0), sheet); err != nil {
			xl.Close()
			return nil, err
		}

		return xl, nil
	} else if err != nil {
		return nil, err
	}

	if ix, err := xl.GetSheetIndex(sheet); err != nil {
		xl.Close()
		return nil, err
	} else if ix < 0 {
		if _, err := xl.NewSheet(sheet); err != nil {
			xl.Close()
			return nil, err
		}
	}

	return xl, nil
}

func clearSheet(xl *excelize.File, sheet string) error {
	rows, err := xl.GetRows(sheet)
	if err != nil {
		return err
	}

	for row := len(rows); row > 0; row-- {
		if err := xl.RemoveRow(sheet, row); err != nil {
			return err
		}
	}

	return nil
}

func clean(v string) string {
	return strings.TrimSpace(v)
}
