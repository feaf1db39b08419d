package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Kind identifies which of the scalar alternatives a Value holds.
type Kind uint8

const (
	Null Kind = iota
	Number
	String
	Bool
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Number:
		return "number"
	case String:
		return "string"
	case Bool:
		return "boolean"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a single table cell: null, a number, a string or a boolean. The zero
// Value is null. Values are comparable and safe to use as map keys.
type Value struct {
	kind Kind
	n    float64
	s    string
	b    bool
}

func NullValue() Value {
	return Value{}
}

func NumberValue(n float64) Value {
	return Value{kind: Number, n: n}
}

func StringValue(s string) Value {
	return Value{kind: String, s: s}
}

func BoolValue(b bool) Value {
	return Value{kind: Bool, b: b}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == Null
}

func (v Value) Float() (float64, bool) {
	return v.n, v.kind == Number
}

func (v Value) Text() (string, bool) {
	return v.s, v.kind == String
}

func (v Value) Boolean() (bool, bool) {
	return v.b, v.kind == Bool
}

// Any returns the value as nil, float64, string or bool.
func (v Value) Any() any {
	switch v.kind {
	case Number:
		return v.n
	case String:
		return v.s
	case Bool:
		return v.b
	default:
		return nil
	}
}

// String returns the display form of the value. Null is displayed as the empty string
// and booleans in the spreadsheet TRUE/FALSE convention.
func (v Value) String() string {
	switch v.kind {
	case Number:
		return strconv.FormatFloat(v.n, 'g', -1, 64)
	case String:
		return v.s
	case Bool:
		if v.b {
			return "TRUE"
		}
		return "FALSE"
	default:
		return ""
	}
}

// key is an unambiguous encoding of the value used for grouping. -0 and 0 are the same key,
// matching ==.
func (v Value) key() string {
	if v.kind == Number && v.n == 0 {
		return fmt.Sprintf("%d:0", v.kind)
	}

	return fmt.Sprintf("%d:%s", v.kind, v.String())
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

func (v *Value) UnmarshalJSON(b []byte) error {
	var x any
	if err := json.Unmarshal(b, &x); err != nil {
		return err
	}

	switch x.(type) {
	case nil, float64, string, bool:
		*v = FromCell(x)
		return nil

	default:
		return fmt.Errorf("invalid cell value %s", string(b))
	}
}

// Parse infers a Value from cell text. Empty (or blank) text is null, numbers are parsed as
// numbers and TRUE/FALSE (any case) as booleans. Everything else is kept verbatim as a string.
func Parse(s string) Value {
	t := strings.TrimSpace(s)

	if t == "" {
		return NullValue()
	}

	if n, err := strconv.ParseFloat(t, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
		return NumberValue(n)
	}

	switch strings.ToUpper(t) {
	case "TRUE":
		return BoolValue(true)
	case "FALSE":
		return BoolValue(false)
	}

	return StringValue(s)
}

// FromCell converts a cell value as returned by a spreadsheet or database driver. Strings
// are taken as-is except that the empty string is null. NaN and infinities are kept as their
// text, as Parse does.
func FromCell(cell any) Value {
	switch v := cell.(type) {
	case nil:
		return NullValue()
	case Value:
		return v
	case float64:
		return number(v)
	case float32:
		return number(float64(v))
	case int:
		return NumberValue(float64(v))
	case int64:
		return NumberValue(float64(v))
	case int32:
		return NumberValue(float64(v))
	case bool:
		return BoolValue(v)
	case []byte:
		return FromCell(string(v))
	case string:
		if v == "" {
			return NullValue()
		}
		return StringValue(v)
	default:
		return StringValue(fmt.Sprintf("%v", v))
	}
}

func number(n float64) Value {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return StringValue(strconv.FormatFloat(n, 'g', -1, 64))
	}

	return NumberValue(n)
}
