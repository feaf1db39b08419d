package sheets

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Area is a parsed spreadsheet range e.g. 'Market Share!A2:E'. A range that is just a sheet
// name has an empty Left.
type Area struct {
	Sheet  string
	Left   string
	Top    int
	Right  string
	Bottom int
}

var (
	urlRegex  = regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`)
	areaRegex = regexp.MustCompile(`^(.+?)!([a-zA-Z]+)([0-9]+)?(?::([a-zA-Z]+)([0-9]+)?)?$`)
	nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

// IsURL returns true if the location looks like a Google Sheets URL.
func IsURL(location string) bool {
	return urlRegex.MatchString(strings.TrimSpace(location))
}

// IsNew returns true if the destination asks for a new spreadsheet e.g. 'new:Market Share'.
func IsNew(destination string) bool {
	return strings.HasPrefix(strings.TrimSpace(destination), NEW)
}

// ParseURL extracts the spreadsheet ID from a Google Sheets URL.
func ParseURL(url string) (string, error) {
	match := urlRegex.FindStringSubmatch(strings.TrimSpace(url))
	if len(match) < 2 || match[1] == "" {
		return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
	}

	return match[1], nil
}

// ParseArea parses an A1 notation range. A bare sheet name (no '!') selects the whole sheet.
func ParseArea(area string) (*Area, error) {
	area = strings.TrimSpace(area)
	if area == "" {
		return nil, fmt.Errorf("invalid spreadsheet range '%s'", area)
	}

	if !strings.Contains(area, "!") {
		return &Area{Sheet: unquote(area)}, nil
	}

	match := areaRegex.FindStringSubmatch(area)
	if len(match) < 6 {
		return nil, fmt.Errorf("invalid spreadsheet range '%s' - expected something like 'Data!A1:E'", area)
	}

	top, _ := strconv.Atoi(match[3])
	bottom, _ := strconv.Atoi(match[5])

	return &Area{
		Sheet:  unquote(match[1]),
		Left:   strings.ToUpper(match[2]),
		Top:    top,
		Right:  strings.ToUpper(match[4]),
		Bottom: bottom,
	}, nil
}

func (a Area) String() string {
	s := quote(a.Sheet)
	if a.Left == "" {
		return s
	}

	s += "!" + a.Left
	if a.Top > 0 {
		s += strconv.Itoa(a.Top)
	}

	if a.Right != "" {
		s += ":" + a.Right
		if a.Bottom > 0 {
			s += strconv.Itoa(a.Bottom)
		}
	}

	return s
}

// cell returns the A1 notation for a single cell on the named sheet.
func cell(sheet, column string, row int) string {
	return fmt.Sprintf("%s!%s%d", quote(sheet), column, row)
}

// column converts a 1-based column number to its letter form (1 -> A, 27 -> AA).
func column(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+n%26)) + s
		n /= 26
	}

	return s
}

func quote(sheet string) string {
	if nameRegex.MatchString(sheet) {
		return sheet
	}

	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}

func unquote(sheet string) string {
	if len(sheet) > 1 && strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") {
		return strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}

	return sheet
}
