package exporter

import (
	"fmt"
	"log/slog"

	"github.com/gibbonsand/excel-client/pkg/contracts/domain"
)

// TableExporter writes loaded tables to CSV files.
type TableExporter struct {
	csvWriter *CSVWriter
}

// NewTableExporter creates a new table exporter
func NewTableExporter(logger *slog.Logger) *TableExporter {
	return &TableExporter{
		csvWriter: NewCSVWriter(logger),
	}
}

// ExportTable writes the table to a CSV file, one header row plus one
// record per table row, in column order.
func (e *TableExporter) ExportTable(table *domain.Table, outputPath string) error {
	records := make([][]string, 0, table.NumRows())
	for _, row := range table.Rows {
		records = append(records, rowToCSVRow(row, table.Columns))
	}

	if err := e.csvWriter.WriteSimpleCSV(outputPath, table.Columns, records); err != nil {
		return fmt.Errorf("failed to write table to %s: %w", outputPath, err)
	}
	return nil
}

// ExportTableStreaming writes the table through a stream writer so large
// sheets do not buffer every record in memory.
func (e *TableExporter) ExportTableStreaming(table *domain.Table, outputPath string) error {
	stream, err := e.csvWriter.CreateStreamWriter(outputPath, table.Columns)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	for _, row := range table.Rows {
		if err := stream.WriteRecord(rowToCSVRow(row, table.Columns)); err != nil {
			stream.Close()
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	if err := stream.Close(); err != nil {
		return fmt.Errorf("failed to close stream: %w", err)
	}
	return nil
}

// rowToCSVRow converts a table row to a CSV record in column order
func rowToCSVRow(row domain.Row, columns []string) []string {
	record := make([]string, len(columns))
	for i, name := range columns {
		record[i] = cellText(row.Cell(name))
	}
	return record
}

// cellText renders a coerced cell for CSV output. Missing cells render
// as the empty string.
func cellText(c domain.Cell) string {
	if c.IsMissing() {
		return ""
	}
	switch c.Type {
	case domain.TypeInteger:
		return formatInt(c.Int())
	case domain.TypeFloat:
		return formatFloat(c.Float())
	case domain.TypeDate:
		return formatDate(c.Time())
	case domain.TypeBool:
		return formatBool(c.Bool())
	default:
		return c.String()
	}
}
