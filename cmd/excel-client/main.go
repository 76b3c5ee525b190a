package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gibbonsand/excel-client/internal/config"
	"github.com/gibbonsand/excel-client/internal/exporter"
	"github.com/gibbonsand/excel-client/internal/infrastructure"
	"github.com/gibbonsand/excel-client/internal/loader"
	"github.com/gibbonsand/excel-client/internal/validation"
	"github.com/gibbonsand/excel-client/pkg/contracts"
	"github.com/gibbonsand/excel-client/pkg/contracts/domain"
)

func main() {
	file := flag.String("file", "", "workbook file to load (overrides config)")
	sheet := flag.String("sheet", "", "sheet name to load (overrides config)")
	noHeader := flag.Bool("no-header", false, "treat the first sheet row as data, naming columns A, B, C, ...")
	out := flag.String("out", "", "write the loaded table to this CSV file (overrides config)")
	configPath := flag.String("config", "", "config file path (defaults to config.yaml)")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	applyFlags(cfg, *file, *sheet, *noHeader, *out)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Workbook.File == "" {
		fmt.Fprintln(os.Stderr, "no workbook file given; use -file or set workbook.file in the config")
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	logger.Info("Starting workbook load",
		slog.String("file", cfg.Workbook.File),
		slog.String("sheet", cfg.Workbook.Sheet),
		slog.Bool("header_row", cfg.Workbook.HeaderRow))

	ldr := loader.New(domain.DefaultSchema(), logger)
	table, err := ldr.LoadWithOptions(cfg.Workbook.File, cfg.Workbook.Sheet, loader.Options{
		HeaderRow: cfg.Workbook.HeaderRow,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "load failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loaded %d rows x %d columns from sheet %q\n",
		table.NumRows(), table.NumColumns(), cfg.Workbook.Sheet)

	if cfg.Workbook.Output != "" {
		files := validation.NewFileValidator(logger)
		if err := files.ValidateOutputFile(cfg.Workbook.Output); err != nil {
			logger.Error("Invalid output file", slog.String("error", err.Error()))
			fmt.Fprintf(os.Stderr, "invalid output file: %v\n", err)
			os.Exit(1)
		}
		if err := exporter.NewTableExporter(logger).ExportTable(table, cfg.Workbook.Output); err != nil {
			logger.Error("Failed to export table", slog.String("error", err.Error()))
			fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", cfg.Workbook.Output)
		return
	}

	printTable(os.Stdout, table)
}

// loadConfig loads from an explicit path when one is given, otherwise
// searches the default locations.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// applyFlags overlays non-empty command line values onto the config.
func applyFlags(cfg *config.Config, file, sheet string, noHeader bool, out string) {
	if file != "" {
		cfg.Workbook.File = file
	}
	if sheet != "" {
		cfg.Workbook.Sheet = sheet
	}
	if noHeader {
		cfg.Workbook.HeaderRow = false
	}
	if out != "" {
		cfg.Workbook.Output = out
	}
}

// printTable renders the table as aligned plain text.
func printTable(w io.Writer, table *domain.Table) {
	widths := make([]int, len(table.Columns))
	for i, name := range table.Columns {
		widths[i] = len(name)
	}

	rendered := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		cells := make([]string, len(table.Columns))
		for i, name := range table.Columns {
			cells[i] = row.Cell(name).String()
			if len(cells[i]) > widths[i] {
				widths[i] = len(cells[i])
			}
		}
		rendered = append(rendered, cells)
	}

	writeAligned(w, table.Columns, widths)
	for _, cells := range rendered {
		writeAligned(w, cells, widths)
	}
}

func writeAligned(w io.Writer, cells []string, widths []int) {
	for i, cell := range cells {
		if i > 0 {
			fmt.Fprint(w, "  ")
		}
		fmt.Fprintf(w, "%-*s", widths[i], cell)
	}
	fmt.Fprintln(w)
}
