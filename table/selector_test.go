package table

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseSelector(t *testing.T) {
	tests := map[string]Selector{
		"4:":               Span{From: 4},
		"1:3":              Span{From: 1, To: 3},
		":2":               Span{From: 1, To: 2},
		" 2 : 5 ":          Span{From: 2, To: 5},
		"Date,Year, Month": Names{"Date", "Year", "Month"},
		"Market Share":     Names{"Market Share"},
		"3":                Names{"3"},
	}

	for s, expected := range tests {
		selector, err := ParseSelector(s)
		if err != nil {
			t.Errorf("%q: unexpected error (%v)", s, err)
			continue
		}

		if !reflect.DeepEqual(selector, expected) {
			t.Errorf("%q: expected %#v, got %#v", s, expected, selector)
		}
	}
}

func TestParseSelectorWithInvalidSelector(t *testing.T) {
	for _, s := range []string{"", "  ", "0:2", "5:2"} {
		if _, err := ParseSelector(s); !errors.Is(err, ErrInvalidSelector) {
			t.Errorf("%q: expected %v, got %v", s, ErrInvalidSelector, err)
		}
	}
}

func TestSelect(t *testing.T) {
	columns := []string{"Date", "Year", "Month", "Apple", "Google"}

	tests := []struct {
		selector Selector
		expected []string
	}{
		{Span{From: 4}, []string{"Apple", "Google"}},
		{Span{From: 1, To: 3}, []string{"Date", "Year", "Month"}},
		{Names{"Month", "Date"}, []string{"Month", "Date"}},
	}

	for _, test := range tests {
		selected, err := test.selector.Select(columns)
		if err != nil {
			t.Fatalf("%v: unexpected error (%v)", test.selector, err)
		}

		if !reflect.DeepEqual(selected, test.expected) {
			t.Errorf("%v: expected %v, got %v", test.selector, test.expected, selected)
		}
	}
}

func TestSelectWithInvalidColumns(t *testing.T) {
	columns := []string{"Date", "Apple"}

	if _, err := (Names{"Date", "Google"}).Select(columns); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("expected %v, got %v", ErrColumnNotFound, err)
	}

	if _, err := (Span{From: 3}).Select(columns); !errors.Is(err, ErrInvalidSelector) {
		t.Errorf("expected %v, got %v", ErrInvalidSelector, err)
	}
}

func TestComplement(t *testing.T) {
	columns := []string{"Date", "Year", "Month", "Apple", "Google"}
	expected := []string{"Date", "Year", "Month"}

	if ids := Complement(columns, []string{"Google", "Apple"}); !reflect.DeepEqual(ids, expected) {
		t.Errorf("expected %v, got %v", expected, ids)
	}
}
