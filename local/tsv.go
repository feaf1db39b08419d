package local

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/twyst/sheets-reshape/table"
)

// readDelimited reads a TSV/CSV file. A zero separator is sniffed from the header line.
func (s *Store) readDelimited(path string, comma rune, gz bool) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	r := io.Reader(f)
	if gz {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}

		defer zr.Close()
		r = zr
	}

	if enc, err := charset(s.Charset); err != nil {
		return nil, err
	} else if enc != nil {
		r = enc.NewDecoder().Reader(r)
	}

	br := bufio.NewReaderSize(r, 1<<20)
	if comma == 0 {
		comma = sniff(br)
	}

	return readRecords(br, comma)
}

func readRecords(r io.Reader, comma rune) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = comma == '\t'

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	header := make([]string, len(records[0]))
	for i, v := range records[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(v, "\ufeff"))
	}

	rows := make([][]table.Value, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]table.Value, len(record))
		for i, v := range record {
			row[i] = table.Parse(v)
		}

		rows = append(rows, row)
	}

	return table.New(header, rows)
}

func (s *Store) writeDelimited(path string, comma rune, gz bool, t *table.Table) error {
	enc, err := charset(s.Charset)
	if err != nil {
		return err
	}

	return replace(path, func(f *os.File) error {
		w := io.Writer(f)

		var zw *gzip.Writer
		if gz {
			zw = gzip.NewWriter(f)
			w = zw
		}

		var ew io.WriteCloser
		if enc != nil {
			ew = enc.NewEncoder().Writer(w).(io.WriteCloser)
			w = ew
		}

		if err := writeRecords(w, comma, t); err != nil {
			return err
		}

		if ew != nil {
			if err := ew.Close(); err != nil {
				return err
			}
		}

		if zw != nil {
			return zw.Close()
		}

		return nil
	})
}

func writeRecords(f io.Writer, comma rune, t *table.Table) error {
	w := csv.NewWriter(f)
	w.Comma = comma

	if err := w.Write(t.Columns()); err != nil {
		return err
	}

	for _, record := range t.Records() {
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

// charset resolves a WHATWG encoding label. UTF-8 (and no label) needs no transcoding and
// returns nil.
func charset(label string) (encoding.Encoding, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset '%s' (%w)", label, err)
	}

	if enc == unicode.UTF8 {
		return nil, nil
	}

	return enc, nil
}

var separators = []rune{',', ';', '\t', '|'}

// sniff picks the separator that occurs most often in the header line, ignoring quoted
// text. Ties go to the earlier separator in the list and a header with none is ','.
func sniff(br *bufio.Reader) rune {
	b, _ := br.Peek(4096)

	counts := map[rune]int{}
	quoted := false

loop:
	for _, r := range string(b) {
		switch {
		case r == '"':
			quoted = !quoted

		case quoted:

		case r == '\n' || r == '\r':
			break loop

		default:
			counts[r]++
		}
	}

	comma := ','
	for _, r := range separators {
		if counts[r] > counts[comma] {
			comma = r
		}
	}

	return comma
}
