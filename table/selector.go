package table

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Selector picks a subset of a table's columns. It is resolved once, against the column list
// of the table being reshaped.
type Selector interface {
	Select(columns []string) ([]string, error)
}

// Names selects columns by name, in the order given. Every name must exist.
type Names []string

func (n Names) Select(columns []string) ([]string, error) {
	index := map[string]bool{}
	for _, c := range columns {
		index[c] = true
	}

	for _, name := range n {
		if !index[name] {
			return nil, &ColumnError{Kind: ErrColumnNotFound, Column: name}
		}
	}

	return append([]string{}, n...), nil
}

func (n Names) String() string {
	return strings.Join(n, ",")
}

// Span selects columns by 1-based, inclusive position. A zero To selects through to the last
// column.
type Span struct {
	From int
	To   int
}

func (s Span) Select(columns []string) ([]string, error) {
	from := s.From
	to := s.To

	if from < 1 {
		from = 1
	}

	if to == 0 {
		to = len(columns)
	}

	if from > len(columns) || to > len(columns) || to < from {
		return nil, fmt.Errorf("%w: columns %v out of range for %d columns", ErrInvalidSelector, s, len(columns))
	}

	return append([]string(nil), columns[from-1:to]...), nil
}

func (s Span) String() string {
	switch {
	case s.To == 0:
		return fmt.Sprintf("%d:", s.From)
	default:
		return fmt.Sprintf("%d:%d", s.From, s.To)
	}
}

var span = regexp.MustCompile(`^\s*([0-9]+)?\s*:\s*([0-9]+)?\s*$`)

// ParseSelector parses a column selector: 'from:to', 'from:' or ':to' select columns by
// position, anything else is a comma separated list of column names.
func ParseSelector(s string) (Selector, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty selector", ErrInvalidSelector)
	}

	if match := span.FindStringSubmatch(s); match != nil {
		from, to := 1, 0

		if match[1] != "" {
			from, _ = strconv.Atoi(match[1])
		}

		if match[2] != "" {
			to, _ = strconv.Atoi(match[2])
		}

		if from < 1 || (match[2] != "" && to < from) {
			return nil, fmt.Errorf("%w: '%s'", ErrInvalidSelector, s)
		}

		return Span{From: from, To: to}, nil
	}

	names := Names{}
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	return names, nil
}

// Complement returns the columns not in selected, in table order.
func Complement(columns []string, selected []string) []string {
	excluded := map[string]bool{}
	for _, c := range selected {
		excluded[c] = true
	}

	list := []string{}
	for _, c := range columns {
		if !excluded[c] {
			list = append(list, c)
		}
	}

	return list
}
