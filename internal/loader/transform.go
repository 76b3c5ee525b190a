package loader

import (
	"strings"

	apierrors "github.com/gibbonsand/excel-client/internal/errors"
	"github.com/gibbonsand/excel-client/pkg/contracts/domain"
)

// projectColumns maps the raw sheet onto the schema: exactly the schema
// columns, in schema order. Extra source columns are dropped silently.
// A schema column absent from the source fails with a SCHEMA error.
func (l *Loader) projectColumns(raw *rawTable) (*domain.Table, error) {
	// First occurrence wins when the sheet repeats a header name
	index := make(map[string]int, len(raw.columns))
	for i, name := range raw.columns {
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	schemaColumns := l.schema.Columns()
	sourceIndex := make([]int, len(schemaColumns))
	for i, col := range schemaColumns {
		idx, ok := index[col.Name]
		if !ok {
			return nil, apierrors.NewSchemaError(col.Name)
		}
		sourceIndex[i] = idx
	}

	table := domain.NewTable(l.schema.ColumnNames())
	for _, rawRow := range raw.rows {
		row := make(domain.Row, len(schemaColumns))
		for i, col := range schemaColumns {
			row[col.Name] = cellFrom(rawRow, sourceIndex[i])
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// cellFrom captures one source cell. Cells beyond the row's width and
// blank cells read as missing.
func cellFrom(rawRow []string, idx int) domain.Cell {
	if idx >= len(rawRow) {
		return domain.MissingCell()
	}
	text := rawRow[idx]
	if strings.TrimSpace(text) == "" {
		return domain.MissingCell()
	}
	return domain.RawCell(text)
}

// filterRows drops every row whose key column is blank. Remaining rows
// keep their relative order; their indices become contiguous from 0.
// Schemas without the key column keep all rows.
func (l *Loader) filterRows(table *domain.Table) *domain.Table {
	if !l.schema.Has(domain.KeyColumn) {
		return table
	}

	kept := make([]domain.Row, 0, len(table.Rows))
	for _, row := range table.Rows {
		if row.Cell(domain.KeyColumn).IsMissing() {
			continue
		}
		kept = append(kept, row)
	}
	table.Rows = kept
	return table
}
