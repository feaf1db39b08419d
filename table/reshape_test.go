package table

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var compareValues = cmp.Comparer(func(p, q Value) bool { return p == q })

func N(v float64) Value { return NumberValue(v) }
func S(v string) Value { return StringValue(v) }

func mustTable(t *testing.T, columns []string, rows ...[]Value) *Table {
	t.Helper()

	table, err := New(columns, rows)
	if err != nil {
		t.Fatalf("error creating test table (%v)", err)
	}

	return table
}

func compare(t *testing.T, expected, got *Table) {
	t.Helper()

	if diff := cmp.Diff(expected.Columns(), got.Columns()); diff != "" {
		t.Errorf("incorrect columns (-expected +got):\n%s", diff)
	}

	if diff := cmp.Diff(expected.Rows(), got.Rows(), compareValues); diff != "" {
		t.Errorf("incorrect rows (-expected +got):\n%s", diff)
	}
}

func marketShare(t *testing.T) *Table {
	return mustTable(t,
		[]string{"Date", "Year", "Month", "Apple", "Google"},
		[]Value{S("2010-07"), N(2010), S("Jul"), N(30.1), N(0.21)})
}

func TestWideToLong(t *testing.T) {
	expected := mustTable(t,
		[]string{"Date", "Year", "Month", "Vendor", "Market Share"},
		[]Value{S("2010-07"), N(2010), S("Jul"), S("Apple"), N(30.1)},
		[]Value{S("2010-07"), N(2010), S("Jul"), S("Google"), N(0.21)})

	long, err := WideToLong(marketShare(t), []string{"Date", "Year", "Month"}, "Vendor", "Market Share")
	if err != nil {
		t.Fatalf("unexpected error (%v)", err)
	}

	compare(t, expected, long)
}

func TestWideToLongRowOrder(t *testing.T) {
	wide := mustTable(t,
		[]string{"ID", "B", "A", "C"},
		[]Value{S("x"), N(1), N(2), N(3)},
		[]Value{S("y"), N(4), N(5), N(6)})

	expected := mustTable(t,
		[]string{"ID", "k", "v"},
		[]Value{S("x"), S("B"), N(1)},
		[]Value{S("x"), S("A"), N(2)},
		[]Value{S("x"), S("C"), N(3)},
		[]Value{S("y"), S("B"), N(4)},
		[]Value{S("y"), S("A"), N(5)},
		[]Value{S("y"), S("C"), N(6)})

	long, err := WideToLong(wide, []string{"ID"}, "k", "v")
	if err != nil {
		t.Fatalf("unexpected error (%v)", err)
	}

	compare(t, expected, long)
}

func TestWideToLongRowCount(t *testing.T) {
	for _, R := range []int{0, 1, 3, 10} {
		for _, M := range []int{1, 2, 5} {
			columns := []string{"id1", "id2"}
			for m := 0; m < M; m++ {
				columns = append(columns, fmt.Sprintf("m%d", m))
			}

			rows := [][]Value{}
			for r := 0; r < R; r++ {
				row := []Value{N(float64(r)), S("x")}
				for m := 0; m < M; m++ {
					row = append(row, N(float64(r*M+m)))
				}
				rows = append(rows, row)
			}

			wide, _ := New(columns, rows)

			long, err := WideToLong(wide, []string{"id1", "id2"}, "category", "value")
			if err != nil {
				t.Fatalf("R:%v M:%v unexpected error (%v)", R, M, err)
			}

			if long.Len() != R*M {
				t.Errorf("R:%v M:%v incorrect row count - expected:%v, got:%v", R, M, R*M, long.Len())
			}
		}
	}
}

func TestWideToLongWithZeroRows(t *testing.T) {
	wide := mustTable(t, []string{"Date", "Apple", "Google"})

	long, err := WideToLong(wide, []string{"Date"}, "Vendor", "Share")
	if err != nil {
		t.Fatalf("unexpected error (%v)", err)
	}

	compare(t, mustTable(t, []string{"Date", "Vendor", "Share"}), long)
}

func TestWideToLongWithHeterogeneousValues(t *testing.T) {
	wide := mustTable(t,
		[]string{"ID", "n", "s", "b", "z"},
		[]Value{S("x"), N(1), S("text"), BoolValue(true), NullValue()})

	expected := mustTable(t,
		[]string{"ID", "k", "v"},
		[]Value{S("x"), S("n"), N(1)},
		[]Value{S("x"), S("s"), S("text")},
		[]Value{S("x"), S("b"), BoolValue(true)},
		[]Value{S("x"), S("z"), NullValue()})

	long, err := WideToLong(wide, []string{"ID"}, "k", "v")
	if err != nil {
		t.Fatalf("unexpected error (%v)", err)
	}

	compare(t, expected, long)
}

func TestWideToLongWithDropAbsent(t *testing.T) {
	wide := mustTable(t,
		[]string{"ID", "A", "B"},
		[]Value{S("x"), N(1), NullValue()},
		[]Value{S("y"), NullValue(), N(2)})

	expected := mustTable(t,
		[]string{"ID", "k", "v"},
		[]Value{S("x"), S("A"), N(1)},
		[]Value{S("y"), S("B"), N(2)})

	long, err := WideToLong(wide, []string{"ID"}, "k", "v", DropAbsent())
	if err != nil {
		t.Fatalf("unexpected error (%v)", err)
	}

	compare(t, expected, long)
}

func TestWideToLongErrors(t *testing.T) {
	tests := []struct {
		name        string
		identifiers []string
		category    string
		value       string
		expected    error
	}{
		{"missing identifier", []string{"Date", "Day"}, "Vendor", "Share", ErrColumnNotFound},
		{"category collision", []string{"Date", "Year"}, "Year", "Share", ErrNameCollision},
		{"value collision", []string{"Date", "Month"}, "Vendor", "Month", ErrNameCollision},
		{"category is value", []string{"Date"}, "X", "X", ErrNameCollision},
		{"repeated identifier", []string{"Date", "Date"}, "Vendor", "Share", ErrNameCollision},
		{"no measures", []string{"Date", "Year", "Month", "Apple", "Google"}, "Vendor", "Share", ErrEmptyMeasureSet},
		{"empty category name", []string{"Date"}, "", "Share", ErrEmptyColumnName},
	}

	for _, test := range tests {
		_, err := WideToLong(marketShare(t), test.identifiers, test.category, test.value)
		if !errors.Is(err, test.expected) {
			t.Errorf("%s: expected %v, got %v", test.name, test.expected, err)
		}
	}
}

func TestWideToLongColumnNotFoundNamesColumn(t *testing.T) {
	_, err := WideToLong(marketShare(t), []string{"Day"}, "Vendor", "Share")

	var cerr *ColumnError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ColumnError, got %v", err)
	}

	if cerr.Column != "Day" {
		t.Errorf("incorrect column - expected:%v, got:%v", "Day", cerr.Column)
	}
}

func TestEmptyMeasureSetWithZeroRows(t *testing.T) {
	wide := mustTable(t, []string{"Date", "Year"})

	if _, err := WideToLong(wide, []string{"Date", "Year"}, "k", "v"); !errors.Is(err, ErrEmptyMeasureSet) {
		t.Errorf("expected %v, got %v", ErrEmptyMeasureSet, err)
	}
}

func TestLongToWide(t *testing.T) {
	long := mustTable(t,
		[]string{"Date", "Year", "Month", "Vendor", "Market Share"},
		[]Value{S("2010-07"), N(2010), S("Jul"), S("Apple"), N(30.1)},
		[]Value{S("2010-07"), N(2010), S("Jul"), S("Google"), N(0.21)})

	wide, err := LongToWide(long, []string{"Date", "Year", "Month"}, "Vendor", "Market Share")
	if err != nil {
		t.Fatalf("unexpected error (%v)", err)
	}

	compare(t, marketShare(t), wide)
}

func TestLongToWideFillsMissingCombinations(t *testing.T) {
	long := mustTable(t,
		[]string{"ID", "k", "v", "note"},
		[]Value{S("x"), S("A"), N(1), S("ignored")},
		[]Value{S("y"), S("B"), N(2), S("ignored")},
		[]Value{S("x"), S("C"), N(3), S("ignored")})

	expected := mustTable(t,
		[]string{"ID", "A", "B", "C"},
		[]Value{S("x"), N(1), NullValue(), N(3)},
		[]Value{S("y"), NullValue(), N(2), NullValue()})

	wide, err := LongToWide(long, []string{"ID"}, "k", "v")
	if err != nil {
		t.Fatalf("unexpected error (%v)", err)
	}

	compare(t, expected, wide)

	filled, err := LongToWide(long, []string{"ID"}, "k", "v", Fill(N(0)))
	if err != nil {
		t.Fatalf("unexpected error (%v)", err)
	}

	compare(t, mustTable(t,
		[]string{"ID", "A", "B", "C"},
		[]Value{S("x"), N(1), N(0), N(3)},
		[]Value{S("y"), N(0), N(2), N(0)}), filled)
}

func TestLongToWideWithNumericCategories(t *testing.T) {
	long := mustTable(t,
		[]string{"ID", "year", "v"},
		[]Value{S("x"), N(2010), N(1)},
		[]Value{S("x"), N(2011), N(2)})

	wide, err := LongToWide(long, []string{"ID"}, "year", "v")
	if err != nil {
		t.Fatalf("unexpected error (%v)", err)
	}

	compare(t, mustTable(t, []string{"ID", "2010", "2011"}, []Value{S("x"), N(1), N(2)}), wide)
}

func TestLongToWideWithDuplicateKey(t *testing.T) {
	long := mustTable(t,
		[]string{"Date", "Vendor", "Share"},
		[]Value{S("2010-07"), S("Apple"), N(30.1)},
		[]Value{S("2010-07"), S("Google"), N(0.21)},
		[]Value{S("2010-07"), S("Apple"), N(31.5)})

	_, err := LongToWide(long, []string{"Date"}, "Vendor", "Share")
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected %v, got %v", ErrDuplicateKey, err)
	}

	var dup *DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateKeyError, got %T", err)
	}

	if dup.Category != "Apple" {
		t.Errorf("incorrect category - expected:%v, got:%v", "Apple", dup.Category)
	}

	if diff := cmp.Diff([]Value{S("2010-07")}, dup.Key, compareValues); diff != "" {
		t.Errorf("incorrect key (-expected +got):\n%s", diff)
	}
}

func TestLongToWideDistinguishesValueKinds(t *testing.T) {
	long := mustTable(t,
		[]string{"ID", "k", "v"},
		[]Value{N(1), S("A"), N(1)},
		[]Value{S("1"), S("A"), N(2)})

	wide, err := LongToWide(long, []string{"ID"}, "k", "v")
	if err != nil {
		t.Fatalf("unexpected error (%v)", err)
	}

	if wide.Len() != 2 {
		t.Errorf("expected 2 rows, got %v", wide.Len())
	}
}

func TestLongToWideWithNegativeZero(t *testing.T) {
	long := mustTable(t,
		[]string{"Offset", "k", "v"},
		[]Value{N(math.Copysign(0, -1)), S("A"), N(1)},
		[]Value{N(0), S("B"), N(2)})

	wide, err := LongToWide(long, []string{"Offset"}, "k", "v")
	if err != nil {
		t.Fatalf("unexpected error (%v)", err)
	}

	expected := mustTable(t,
		[]string{"Offset", "A", "B"},
		[]Value{N(0), N(1), N(2)})

	compare(t, expected, wide)

	back, err := WideToLong(wide, []string{"Offset"}, "k", "v")
	if err != nil {
		t.Fatalf("unexpected error (%v)", err)
	}

	if !back.Equal(long) {
		t.Errorf("round trip failed\n   expected: %v\n   got:      %v", long.Records(), back.Records())
	}
}

func TestLongToWideErrors(t *testing.T) {
	long := mustTable(t,
		[]string{"ID", "k", "v"},
		[]Value{S("x"), S("ID"), N(1)},
		[]Value{S("y"), NullValue(), N(2)})

	tests := []struct {
		name        string
		table       *Table
		identifiers []string
		category    string
		value       string
		expected    error
	}{
		{"missing identifier", long, []string{"Key"}, "k", "v", ErrColumnNotFound},
		{"missing category", long, []string{"ID"}, "kk", "v", ErrColumnNotFound},
		{"missing value", long, []string{"ID"}, "k", "vv", ErrColumnNotFound},
		{"category is identifier", long, []string{"ID", "k"}, "k", "v", ErrNameCollision},
		{"label is identifier", long, []string{"ID"}, "k", "v", ErrNameCollision},
		{"empty label", mustTable(t, []string{"ID", "k", "v"}, []Value{S("y"), NullValue(), N(2)}), []string{"ID"}, "k", "v", ErrEmptyCategory},
	}

	for _, test := range tests {
		_, err := LongToWide(test.table, test.identifiers, test.category, test.value)
		if !errors.Is(err, test.expected) {
			t.Errorf("%s: expected %v, got %v", test.name, test.expected, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	tables := []*Table{
		marketShare(t),
		mustTable(t,
			[]string{"Date", "Year", "Month", "Apple", "Google", "Microsoft"},
			[]Value{S("2010-07"), N(2010), S("Jul"), N(30.1), N(0.21), NullValue()},
			[]Value{S("2010-08"), N(2010), S("Aug"), N(29.8), N(0.25), N(1.5)},
			[]Value{S("2010-09"), N(2010), S("Sep"), S("n/a"), BoolValue(false), N(1.7)}),
	}

	for i, wide := range tables {
		long, err := WideToLong(wide, []string{"Date", "Year", "Month"}, "cat", "val")
		if err != nil {
			t.Fatalf("%v: unexpected error (%v)", i, err)
		}

		got, err := LongToWide(long, []string{"Date", "Year", "Month"}, "cat", "val")
		if err != nil {
			t.Fatalf("%v: unexpected error (%v)", i, err)
		}

		if !wide.Equal(got) {
			t.Errorf("%v: round trip failed\n   expected: %v\n   got:      %v", i, wide.Records(), got.Records())
		}
	}
}

// A table with no rows has no category labels to carry the measure column names through
// the long form, so only the identifier columns come back.
func TestRoundTripWithNoRows(t *testing.T) {
	wide := mustTable(t, []string{"Date", "Year", "Month", "Apple"})

	long, err := WideToLong(wide, []string{"Date", "Year", "Month"}, "cat", "val")
	if err != nil {
		t.Fatalf("unexpected error (%v)", err)
	}

	if long.Len() != 0 || !cmp.Equal(long.Columns(), []string{"Date", "Year", "Month", "cat", "val"}) {
		t.Errorf("incorrect long table - columns:%v, rows:%v", long.Columns(), long.Len())
	}

	got, err := LongToWide(long, []string{"Date", "Year", "Month"}, "cat", "val")
	if err != nil {
		t.Fatalf("unexpected error (%v)", err)
	}

	if !cmp.Equal(got.Columns(), []string{"Date", "Year", "Month"}) {
		t.Errorf("incorrect columns - expected:%v, got:%v", []string{"Date", "Year", "Month"}, got.Columns())
	}

	if got.Len() != 0 {
		t.Errorf("expected no rows, got %v", got.Len())
	}

	if wide.Equal(got) {
		t.Errorf("expected round trip of an empty table to drop the measure columns")
	}
}

func TestWideToLongDoesNotModifyInput(t *testing.T) {
	wide := marketShare(t)
	before := wide.Rows()

	if _, err := WideToLong(wide, []string{"Date"}, "k", "v"); err != nil {
		t.Fatalf("unexpected error (%v)", err)
	}

	if diff := cmp.Diff(before, wide.Rows(), compareValues); diff != "" {
		t.Errorf("input table modified (-before +after):\n%s", diff)
	}
}
