package loader

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	apierrors "github.com/gibbonsand/excel-client/internal/errors"
)

// rawTable is the untyped result of reading a sheet: column names in
// source order plus the raw cell grid. Rows may be ragged; absent
// trailing cells read as missing during projection.
type rawTable struct {
	columns []string
	rows    [][]string
}

// readSheet opens the workbook at path and captures the named sheet.
// A missing file maps to a NOT_FOUND load error, every other access or
// parse failure to PARSE.
func (l *Loader) readSheet(log *slog.Logger, path, sheet string, headerRow bool) (*rawTable, error) {
	if err := l.files.ValidateWorkbookFile(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apierrors.NewNotFoundError(path)
		}
		return nil, apierrors.NewParseError("failed to access workbook", err).
			WithContext("path", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apierrors.NewParseError("failed to open workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apierrors.NewParseError("failed to read sheet", err).
			WithContext("path", path).
			WithContext("sheet", sheet)
	}

	if headerRow {
		if len(rows) == 0 {
			// No header row to name columns from; projection will
			// report the schema columns as absent.
			return &rawTable{}, nil
		}
		columns := headerNames(rows[0], maxWidth(rows))
		return &rawTable{columns: columns, rows: rows[1:]}, nil
	}

	columns := positionalNames(maxWidth(rows))
	log.Debug("Naming columns positionally",
		slog.Int("columns", len(columns)))
	return &rawTable{columns: columns, rows: rows}, nil
}

// headerNames derives column names from the header row, padded to the
// sheet's widest row. Blank or absent header cells fall back to the
// Excel column letter, so data columns past a short header stay
// addressable.
func headerNames(header []string, width int) []string {
	if width < len(header) {
		width = len(header)
	}
	names := make([]string, width)
	for i := range names {
		name := ""
		if i < len(header) {
			name = strings.TrimSpace(header[i])
		}
		if name == "" {
			name = columnLetter(i)
		}
		names[i] = name
	}
	return names
}

// positionalNames returns Excel column letters for a headerless sheet.
func positionalNames(width int) []string {
	names := make([]string, width)
	for i := range names {
		names[i] = columnLetter(i)
	}
	return names
}

// columnLetter converts a zero-based column index to its Excel name.
func columnLetter(i int) string {
	name, err := excelize.ColumnNumberToName(i + 1)
	if err != nil {
		// Out of range column numbers cannot come from a parsed sheet
		return ""
	}
	return name
}

// maxWidth returns the widest row length in the sheet.
func maxWidth(rows [][]string) int {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}
