// Package loader reads a worksheet from an Excel workbook and turns it
// into a typed, validated table.
//
// A load is a fixed five step pipeline:
//
// Read: open the workbook, read the named sheet and capture the raw cell
// grid. The first row supplies column names unless the header row option
// is disabled, in which case columns are named by their Excel letters.
//
// Project: keep exactly the schema's columns, in schema order. Extra
// source columns are dropped; a missing schema column fails the load.
//
// Filter: drop every row whose key column ("Name") is blank. Surviving
// rows keep their relative order and are re-indexed from 0.
//
// Coerce: convert each remaining cell to its declared column type.
// Blank cells stay marked as missing and are left for validation.
//
// Validate: reject the table if any cell is still missing, naming the
// offending rows.
//
// Every failure is logged at error level and returned as a *LoadError
// carrying the failure kind, so callers can distinguish a missing file
// from, say, a cell that would not coerce.
//
// Example usage:
//
//	ldr := loader.New(domain.DefaultSchema(), logger)
//	table, err := ldr.Load("data/inventory.xlsx", "Sheet1")
//	if err != nil {
//	    var loadErr *errors.LoadError
//	    if stderrors.As(err, &loadErr) {
//	        // inspect loadErr.Type
//	    }
//	}
package loader
