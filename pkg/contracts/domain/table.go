package domain

import (
	"strings"
)

// Row maps column names to cells for a single table row.
type Row map[string]Cell

// Cell returns the cell stored under the given column. Absent columns
// read as missing cells.
func (r Row) Cell(name string) Cell {
	if c, ok := r[name]; ok {
		return c
	}
	return MissingCell()
}

// Equal reports whether two rows hold equal cells under the same columns.
func (r Row) Equal(o Row) bool {
	if len(r) != len(o) {
		return false
	}
	for name, c := range r {
		oc, ok := o[name]
		if !ok || !c.Equal(oc) {
			return false
		}
	}
	return true
}

// Format renders the row in the given column order, for error messages.
func (r Row) Format(columns []string) string {
	var b strings.Builder
	b.WriteString("{")
	for i, name := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(r.Cell(name).String())
	}
	b.WriteString("}")
	return b.String()
}

// Table is the ordered result of a load: the schema's column names in
// declaration order and one Row per retained sheet row, in sheet order.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewTable returns an empty table over the given columns.
func NewTable(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols, Rows: make([]Row, 0)}
}

// NumRows returns the number of data rows in the table.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// NumColumns returns the number of columns in the table.
func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// Equal reports whether two tables hold the same columns in the same
// order and row-for-row equal cells.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if len(t.Columns) != len(o.Columns) || len(t.Rows) != len(o.Rows) {
		return false
	}
	for i, name := range t.Columns {
		if o.Columns[i] != name {
			return false
		}
	}
	for i, row := range t.Rows {
		if !row.Equal(o.Rows[i]) {
			return false
		}
	}
	return true
}
