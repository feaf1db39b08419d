package sheets

import (
	"reflect"
	"testing"

	"github.com/twyst/sheets-reshape/table"
)

func TestMakeTable(t *testing.T) {
	expected := [][]string{
		{"2010-07", "2010", "Jul", "30.1", "0.21"},
		{"2010-08", "2010", "Aug", "29.8", ""},
	}

	var data = [][]any{
		[]any{"Date", " Year", "Month ", "Apple", "Google"},
		[]any{"2010-07", 2010.0, "Jul", 30.1, 0.21},
		[]any{"2010-08", 2010.0, "Aug", 29.8},
	}

	t2, err := makeTable(data)
	if err != nil {
		t.Fatalf("Unexpected error returned from makeTable (%v)", err)
	}

	if !reflect.DeepEqual(t2.Columns(), []string{"Date", "Year", "Month", "Apple", "Google"}) {
		t.Errorf("Incorrect header\n   expected: %v\n   got:      %v\n", []string{"Date", "Year", "Month", "Apple", "Google"}, t2.Columns())
	}

	if !reflect.DeepEqual(t2.Records(), expected) {
		t.Errorf("Incorrect records\n   expected: %v\n   got:      %v\n", expected, t2.Records())
	}

	if v, _ := t2.Cell(1, "Google"); !v.IsNull() {
		t.Errorf("Expected null for missing trailing cell, got %v", v)
	}
}

func TestMakeTableWithEmptySheet(t *testing.T) {
	if _, err := makeTable([][]any{}); err == nil {
		t.Fatalf("Expected error return for empty sheet, got %v", err)
	}
}

func TestMakeTableWithoutHeaders(t *testing.T) {
	if _, err := makeTable([][]any{[]any{}}); err == nil {
		t.Fatalf("Expected error return for missing headers, got %v", err)
	}
}

func TestMakeTableWithDuplicatedColumn(t *testing.T) {
	var data = [][]any{
		[]any{"Date", "Apple", "Google", "Apple"},
		[]any{"2010-07", 30.1, 0.21, 31.0},
	}

	if _, err := makeTable(data); err == nil {
		t.Fatalf("Expected error return for duplicated column, got %v", err)
	}
}

func TestMakeTableWithRaggedRow(t *testing.T) {
	var data = [][]any{
		[]any{"Date", "Apple"},
		[]any{"2010-07", 30.1, 0.21},
	}

	if _, err := makeTable(data); err == nil {
		t.Fatalf("Expected error return for ragged row, got %v", err)
	}
}

func TestMakeValues(t *testing.T) {
	t2, _ := table.New([]string{"Date", "Apple", "OK"}, [][]table.Value{
		{table.StringValue("2010-07"), table.NumberValue(30.1), table.BoolValue(true)},
		{table.StringValue("2010-08")},
	})

	expected := [][]any{
		[]any{"Date", "Apple", "OK"},
		[]any{"2010-07", 30.1, true},
		[]any{"2010-08", "", ""},
	}

	if values := makeValues(t2); !reflect.DeepEqual(values, expected) {
		t.Errorf("Incorrect values\n   expected: %v\n   got:      %v\n", expected, values)
	}
}
