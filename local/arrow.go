package local

import (
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/twyst/sheets-reshape/table"
)

// writeArrow writes a table as a single record batch in an Arrow IPC file. Column types are
// inferred: a column holding only numbers (or nulls) is float64, only booleans is bool and
// anything else is utf8.
func writeArrow(path, sheet string, t *table.Table) error {
	pool := memory.NewGoAllocator()
	schema := arrowSchema(sheet, t)

	builder := array.NewRecordBuilder(pool, schema)
	defer builder.Release()

	for _, row := range t.Rows() {
		for i, v := range row {
			appendValue(builder.Field(i), v)
		}
	}

	record := builder.NewRecord()
	defer record.Release()

	return replace(path, func(f *os.File) error {
		w, err := ipc.NewFileWriter(f, ipc.WithSchema(schema), ipc.WithAllocator(pool))
		if err != nil {
			return err
		}

		if err := w.Write(record); err != nil {
			w.Close()
			return err
		}

		return w.Close()
	})
}

func arrowSchema(sheet string, t *table.Table) *arrow.Schema {
	fields := make([]arrow.Field, t.Width())
	for i, c := range t.Columns() {
		fields[i] = arrow.Field{
			Name:     c,
			Type:     columnType(t, i),
			Nullable: true,
		}
	}

	var md *arrow.Metadata
	if sheet != "" {
		m := arrow.NewMetadata([]string{"sheet"}, []string{sheet})
		md = &m
	}

	return arrow.NewSchema(fields, md)
}

func columnType(t *table.Table, col int) arrow.DataType {
	kind := table.Null
	for _, row := range t.Rows() {
		v := row[col]
		switch {
		case v.IsNull():
			continue
		case kind == table.Null:
			kind = v.Kind()
		case kind != v.Kind():
			return arrow.BinaryTypes.String
		}
	}

	switch kind {
	case table.Number:
		return arrow.PrimitiveTypes.Float64
	case table.Bool:
		return arrow.FixedWidthTypes.Boolean
	default:
		return arrow.BinaryTypes.String
	}
}

func appendValue(builder array.Builder, v table.Value) {
	if v.IsNull() {
		builder.AppendNull()
		return
	}

	switch b := builder.(type) {
	case *array.Float64Builder:
		n, _ := v.Float()
		b.Append(n)
	case *array.BooleanBuilder:
		ok, _ := v.Boolean()
		b.Append(ok)
	case *array.StringBuilder:
		b.Append(v.String())
	}
}
