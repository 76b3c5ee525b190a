package loader

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/gibbonsand/excel-client/internal/validation"
	"github.com/gibbonsand/excel-client/pkg/contracts/domain"
)

// Options controls how a single load interprets the sheet.
type Options struct {
	// HeaderRow treats the first sheet row as column names when true.
	// When false no row is consumed and columns are named by their
	// Excel letters ("A", "B", ...).
	HeaderRow bool
}

// DefaultOptions returns the standard load options: the first row is
// the header.
func DefaultOptions() Options {
	return Options{HeaderRow: true}
}

// Loader reads worksheets into typed tables enforcing a fixed schema.
// A Loader is stateless between calls and safe for sequential reuse;
// every Load produces a fresh table.
type Loader struct {
	schema domain.Schema
	logger *slog.Logger
	files  *validation.FileValidator
}

// New creates a loader for the given schema. A nil logger falls back
// to slog.Default.
func New(schema domain.Schema, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		schema: schema,
		logger: logger,
		files:  validation.NewFileValidator(logger),
	}
}

// Schema returns the schema this loader enforces.
func (l *Loader) Schema() domain.Schema {
	return l.schema
}

// Load reads the named sheet from the workbook at path with default
// options and returns the typed, validated table.
func (l *Loader) Load(path, sheet string) (*domain.Table, error) {
	return l.LoadWithOptions(path, sheet, DefaultOptions())
}

// LoadWithOptions is like Load with explicit options. The returned
// table carries the schema columns in declaration order and one row
// per retained sheet row. Any failure aborts the load and is returned
// as a *errors.LoadError; no partial table is ever returned.
func (l *Loader) LoadWithOptions(path, sheet string, opts Options) (*domain.Table, error) {
	loadID := uuid.New().String()
	log := l.logger.With(
		slog.String("load_id", loadID),
		slog.String("file", path),
		slog.String("sheet", sheet),
	)

	log.Info("Loading workbook",
		slog.Bool("header_row", opts.HeaderRow))

	raw, err := l.readSheet(log, path, sheet, opts.HeaderRow)
	if err != nil {
		log.Error("Failed to read sheet",
			slog.String("error", err.Error()))
		return nil, err
	}
	log.Debug("Sheet read",
		slog.Int("source_columns", len(raw.columns)),
		slog.Int("source_rows", len(raw.rows)))

	table, err := l.projectColumns(raw)
	if err != nil {
		log.Error("Failed to project schema columns",
			slog.String("error", err.Error()))
		return nil, err
	}

	before := table.NumRows()
	table = l.filterRows(table)
	if dropped := before - table.NumRows(); dropped > 0 {
		log.Info("Dropped rows with blank key column",
			slog.String("key_column", domain.KeyColumn),
			slog.Int("dropped", dropped))
	}

	if err := l.coerceTable(table); err != nil {
		log.Error("Failed to coerce column types",
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := l.validateTable(table); err != nil {
		log.Error("Table validation failed",
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("Workbook loaded",
		slog.Int("rows", table.NumRows()),
		slog.Int("columns", table.NumColumns()))

	return table, nil
}
