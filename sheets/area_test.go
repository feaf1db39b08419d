package sheets

import (
	"reflect"
	"testing"
)

func TestParseURL(t *testing.T) {
	id, err := ParseURL("https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms/edit#gid=0")
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if id != "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" {
		t.Errorf("Incorrect spreadsheet ID - expected:%v, got:%v", "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms", id)
	}
}

func TestParseURLWithInvalidURL(t *testing.T) {
	for _, url := range []string{"", "https://example.com/spreadsheets/d/1Bxi", "https://docs.google.com/spreadsheets/d/"} {
		if _, err := ParseURL(url); err == nil {
			t.Errorf("Expected error for invalid URL '%v'", url)
		}
	}
}

func TestParseArea(t *testing.T) {
	tests := map[string]Area{
		"Data!A2:E":            Area{Sheet: "Data", Left: "A", Top: 2, Right: "E"},
		"Data!A1:F20":          Area{Sheet: "Data", Left: "A", Top: 1, Right: "F", Bottom: 20},
		"'Market Share'!b3:c":  Area{Sheet: "Market Share", Left: "B", Top: 3, Right: "C"},
		"Market Share":         Area{Sheet: "Market Share"},
		"'Vendor''s data'!A:D": Area{Sheet: "Vendor's data", Left: "A", Right: "D"},
	}

	for s, expected := range tests {
		area, err := ParseArea(s)
		if err != nil {
			t.Fatalf("Unexpected error parsing '%v' (%v)", s, err)
		}

		if !reflect.DeepEqual(*area, expected) {
			t.Errorf("Incorrect area for '%v'\n   expected: %+v\n   got:      %+v", s, expected, *area)
		}
	}
}

func TestParseAreaWithInvalidRange(t *testing.T) {
	for _, s := range []string{"", "Data!", "Data!12:E"} {
		if _, err := ParseArea(s); err == nil {
			t.Errorf("Expected error for invalid range '%v'", s)
		}
	}
}

func TestAreaString(t *testing.T) {
	tests := map[string]Area{
		"Data!A2:E":            Area{Sheet: "Data", Left: "A", Top: 2, Right: "E"},
		"'Market Share'!B3:C9": Area{Sheet: "Market Share", Left: "B", Top: 3, Right: "C", Bottom: 9},
		"'Market Share'":       Area{Sheet: "Market Share"},
	}

	for expected, area := range tests {
		if s := area.String(); s != expected {
			t.Errorf("Incorrect range - expected:%v, got:%v", expected, s)
		}
	}
}

func TestColumn(t *testing.T) {
	tests := map[int]string{1: "A", 5: "E", 26: "Z", 27: "AA", 52: "AZ", 703: "AAA"}

	for n, expected := range tests {
		if s := column(n); s != expected {
			t.Errorf("Incorrect column for %v - expected:%v, got:%v", n, expected, s)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := map[string]string{
		"Data":         "Data",
		"Sheet_1":      "Sheet_1",
		"Market Share": "'Market Share'",
		"O'Brien":      "'O''Brien'",
		"2010-11":      "'2010-11'",
	}

	for sheet, expected := range tests {
		if s := quote(sheet); s != expected {
			t.Errorf("Incorrect quoted sheet name for %v - expected:%v, got:%v", sheet, expected, s)
		}

		if s := unquote(quote(sheet)); s != sheet {
			t.Errorf("Incorrect unquoted sheet name - expected:%v, got:%v", sheet, s)
		}
	}
}
