// Package exporter provides CSV export functionality for loaded tables.
//
// This package contains two main components:
//
// CSVWriter: Core CSV writing functionality with support for headers,
// appending, streaming, and UTF-8 BOM for Excel compatibility.
//
// TableExporter: Renders a loaded table as CSV, formatting each cell
// according to its column type (dates in ISO form, floats with two
// decimal places).
//
// Example usage:
//
//	tableExporter := exporter.NewTableExporter(logger)
//
//	// Export a loaded table
//	err := tableExporter.ExportTable(table, "out/inventory.csv")
//
//	// Or stream it for large sheets
//	err = tableExporter.ExportTableStreaming(table, "out/inventory.csv")
package exporter
