// Package local implements table sources and sinks backed by local files: delimited text
// (TSV/CSV, optionally gzipped), Excel workbooks, JSON documents, SQLite databases and Arrow
// IPC files.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/twyst/sheets-reshape/log"
	"github.com/twyst/sheets-reshape/table"
)

type format int

const (
	TSV format = iota
	CSV
	XLSX
	JSON
	SQLite
	Arrow
)

var formats = map[string]format{
	".tsv":    TSV,
	".txt":    TSV,
	".csv":    CSV,
	".xlsx":   XLSX,
	".json":   JSON,
	".db":     SQLite,
	".sqlite": SQLite,
	".arrow":  Arrow,
}

func (f format) String() string {
	return [...]string{"TSV", "CSV", "XLSX", "JSON", "SQLite", "Arrow"}[f]
}

// Store reads and writes tables from/to local files, choosing the file format from the
// file extension. A trailing .gz is supported for TSV and CSV files.
type Store struct {
	// Charset for delimited text files e.g. 'windows-1252'. Defaults to UTF-8.
	Charset string
}

// Supports returns true if the location has a recognised file extension.
func Supports(location string) bool {
	_, _, err := detect(location)

	return err == nil
}

// Fetch reads a table from a file. The area is the worksheet name for XLSX files and the
// table name for SQLite databases and is otherwise ignored.
func (s *Store) Fetch(ctx context.Context, location, area string) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, gz, err := detect(location)
	if err != nil {
		return nil, err
	}

	log.Debugf("reading %v file %s", f, location)

	switch f {
	case TSV:
		return s.readDelimited(location, '\t', gz)

	case CSV:
		return s.readDelimited(location, 0, gz)

	case XLSX:
		return readXLSX(location, sheetName(area))

	case JSON:
		return readJSON(location)

	case SQLite:
		return readSQLite(ctx, location, sheetName(area))

	default:
		return nil, fmt.Errorf("%v files are write-only", f)
	}
}

// Persist writes a table to a file, replacing the existing file. For XLSX files only the
// named worksheet is replaced and for SQLite databases only the named table.
func (s *Store) Persist(ctx context.Context, destination, sheet string, t *table.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, gz, err := detect(destination)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(destination); dir != "" {
		if err := os.MkdirAll(dir, 0770); err != nil {
			return err
		}
	}

	unlock := lock(destination)
	defer unlock()

	log.Debugf("writing %v rows to %v file %s", t.Len(), f, destination)

	switch f {
	case TSV:
		return s.writeDelimited(destination, '\t', gz, t)

	case CSV:
		return s.writeDelimited(destination, ',', gz, t)

	case XLSX:
		return writeXLSX(destination, sheetName(sheet), t)

	case JSON:
		return writeJSON(destination, t)

	case SQLite:
		return writeSQLite(ctx, destination, sheetName(sheet), t)

	case Arrow:
		return writeArrow(destination, sheet, t)

	default:
		return fmt.Errorf("unsupported file format %v", f)
	}
}

func detect(path string) (format, bool, error) {
	ext := strings.ToLower(filepath.Ext(path))
	gz := false

	if ext == ".gz" {
		gz = true
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}

	f, ok := formats[ext]
	if !ok {
		return 0, false, fmt.Errorf("unsupported file type '%s'", path)
	}

	if gz && f != TSV && f != CSV {
		return 0, false, fmt.Errorf("gzip compression is only supported for TSV and CSV files ('%s')", path)
	}

	return f, gz, nil
}

// sheetName strips any cell bounds from a range e.g. 'Data!A1:E' -> 'Data'.
func sheetName(area string) string {
	name := strings.TrimSpace(area)
	if ix := strings.LastIndex(name, "!"); ix >= 0 {
		name = name[:ix]
	}

	if len(name) > 1 && strings.HasPrefix(name, "'") && strings.HasSuffix(name, "'") {
		name = strings.ReplaceAll(name[1:len(name)-1], "''", "'")
	}

	return name
}

// files serialises writes to the same path. XLSX and SQLite persists read-modify-write the
// destination and concurrent writers would otherwise lose each other's sheets.
var files sync.Map

func lock(path string) func() {
	key := filepath.Clean(path)
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}

	v, _ := files.LoadOrStore(key, &sync.Mutex{})
	guard := v.(*sync.Mutex)
	guard.Lock()

	return guard.Unlock
}

// replace writes a file via a temporary file in the same directory, renaming it over the
// destination once complete.
func replace(destination string, write func(f *os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(destination), "."+filepath.Base(destination)+".*")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := write(tmp); err != nil {
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), destination)
}
