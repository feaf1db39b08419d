package local

import (
	"os"

	"github.com/goccy/go-json"

	"github.com/twyst/sheets-reshape/table"
)

// document is the JSON file layout. Rows are arrays rather than objects so that column
// order survives a round trip.
type document struct {
	Columns []string        `json:"columns"`
	Rows    [][]table.Value `json:"rows"`
}

func readJSON(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	var doc document
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return nil, err
	}

	return table.New(doc.Columns, doc.Rows)
}

func writeJSON(path string, t *table.Table) error {
	doc := document{
		Columns: t.Columns(),
		Rows:    t.Rows(),
	}

	return replace(path, func(f *os.File) error {
		encoder := json.NewEncoder(f)
		encoder.SetIndent("", "  ")

		return encoder.Encode(doc)
	})
}
