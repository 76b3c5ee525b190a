package domain

import (
	"fmt"
)

// ColumnType identifies the scalar type a schema column coerces to.
type ColumnType string

const (
	TypeText    ColumnType = "text"
	TypeInteger ColumnType = "integer"
	TypeFloat   ColumnType = "float"
	TypeDate    ColumnType = "date"
	TypeBool    ColumnType = "bool"
)

// Valid reports whether t is one of the supported column types.
func (t ColumnType) Valid() bool {
	switch t {
	case TypeText, TypeInteger, TypeFloat, TypeDate, TypeBool:
		return true
	}
	return false
}

// KeyColumn is the column used to decide whether a row carries data.
// Rows whose key cell is blank are dropped during loading.
const KeyColumn = "Name"

// Column pairs a column name with its declared type.
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Schema is the fixed, ordered set of columns a loaded table must carry.
// Column order is the declaration order and is preserved end to end,
// independent of how the columns are laid out in the source sheet.
// A Schema is immutable once constructed.
type Schema struct {
	columns []Column
	index   map[string]int
}

// NewSchema builds a schema from the given columns. It rejects empty
// column sets, empty or duplicate column names, and unknown column types.
func NewSchema(columns ...Column) (Schema, error) {
	if len(columns) == 0 {
		return Schema{}, fmt.Errorf("schema requires at least one column")
	}

	index := make(map[string]int, len(columns))
	for i, col := range columns {
		if col.Name == "" {
			return Schema{}, fmt.Errorf("schema column %d has no name", i)
		}
		if !col.Type.Valid() {
			return Schema{}, fmt.Errorf("schema column %q has unknown type %q", col.Name, col.Type)
		}
		if _, exists := index[col.Name]; exists {
			return Schema{}, fmt.Errorf("schema column %q declared twice", col.Name)
		}
		index[col.Name] = i
	}

	cols := make([]Column, len(columns))
	copy(cols, columns)
	return Schema{columns: cols, index: index}, nil
}

// MustSchema is like NewSchema but panics on invalid input. Intended for
// package-level schema declarations.
func MustSchema(columns ...Column) Schema {
	s, err := NewSchema(columns...)
	if err != nil {
		panic(err)
	}
	return s
}

var defaultSchema = MustSchema(
	Column{Name: KeyColumn, Type: TypeText},
	Column{Name: "Quantity", Type: TypeInteger},
	Column{Name: "UnitPrice", Type: TypeFloat},
	Column{Name: "ReceivedAt", Type: TypeDate},
	Column{Name: "Active", Type: TypeBool},
)

// DefaultSchema returns the built-in inventory schema: Name, Quantity,
// UnitPrice, ReceivedAt and Active.
func DefaultSchema() Schema {
	return defaultSchema
}

// Len returns the number of columns in the schema.
func (s Schema) Len() int {
	return len(s.columns)
}

// Columns returns the schema columns in declaration order. The returned
// slice is a copy and may be modified freely.
func (s Schema) Columns() []Column {
	cols := make([]Column, len(s.columns))
	copy(cols, s.columns)
	return cols
}

// ColumnNames returns the column names in declaration order.
func (s Schema) ColumnNames() []string {
	names := make([]string, len(s.columns))
	for i, col := range s.columns {
		names[i] = col.Name
	}
	return names
}

// TypeOf returns the declared type of the named column.
func (s Schema) TypeOf(name string) (ColumnType, bool) {
	i, ok := s.index[name]
	if !ok {
		return "", false
	}
	return s.columns[i].Type, true
}

// Has reports whether the schema declares the named column.
func (s Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}
