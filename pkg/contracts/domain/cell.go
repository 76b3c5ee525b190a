package domain

import (
	"fmt"
	"time"
)

// DateLayout is the canonical rendering of date cells.
const DateLayout = "2006-01-02"

// Cell holds a single table value together with the raw sheet text it was
// parsed from. A cell is either missing (the source cell was absent or
// blank), raw (text captured from the sheet, not yet coerced), or typed
// (coercion succeeded and Value carries the Go representation).
type Cell struct {
	Type    ColumnType `json:"type,omitempty"`
	Raw     string     `json:"raw,omitempty"`
	Value   any        `json:"value,omitempty"`
	Missing bool       `json:"missing,omitempty"`
}

// RawCell returns an untyped cell carrying source text.
func RawCell(text string) Cell {
	return Cell{Raw: text}
}

// MissingCell returns a cell marking an absent or blank source cell.
func MissingCell() Cell {
	return Cell{Missing: true}
}

// TypedCell returns a coerced cell of the given type.
func TypedCell(t ColumnType, raw string, value any) Cell {
	return Cell{Type: t, Raw: raw, Value: value}
}

// IsMissing reports whether the cell marks an absent or blank source cell.
func (c Cell) IsMissing() bool {
	return c.Missing
}

// Text returns the cell value as a string. It returns the zero value when
// the cell is missing or not of text type.
func (c Cell) Text() string {
	v, _ := c.Value.(string)
	return v
}

// Int returns the cell value as an int64. It returns the zero value when
// the cell is missing or not of integer type.
func (c Cell) Int() int64 {
	v, _ := c.Value.(int64)
	return v
}

// Float returns the cell value as a float64. It returns the zero value
// when the cell is missing or not of float type.
func (c Cell) Float() float64 {
	v, _ := c.Value.(float64)
	return v
}

// Time returns the cell value as a time.Time. It returns the zero value
// when the cell is missing or not of date type.
func (c Cell) Time() time.Time {
	v, _ := c.Value.(time.Time)
	return v
}

// Bool returns the cell value as a bool. It returns false when the cell
// is missing or not of bool type.
func (c Cell) Bool() bool {
	v, _ := c.Value.(bool)
	return v
}

// Equal reports whether two cells carry the same state and value.
func (c Cell) Equal(o Cell) bool {
	if c.Type != o.Type || c.Missing != o.Missing || c.Raw != o.Raw {
		return false
	}
	if c.Missing {
		return true
	}
	if ct, ok := c.Value.(time.Time); ok {
		ot, ok := o.Value.(time.Time)
		return ok && ct.Equal(ot)
	}
	return c.Value == o.Value
}

// String renders the cell for logs and error messages.
func (c Cell) String() string {
	if c.Missing {
		return "<missing>"
	}
	switch v := c.Value.(type) {
	case nil:
		return c.Raw
	case string:
		return v
	case time.Time:
		return v.Format(DateLayout)
	default:
		return fmt.Sprintf("%v", v)
	}
}
