package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/gibbonsand/excel-client/internal/config"
	"github.com/gibbonsand/excel-client/internal/exporter"
	"github.com/gibbonsand/excel-client/internal/loader"
	"github.com/gibbonsand/excel-client/pkg/contracts/domain"
)

// createTestWorkbook writes a workbook with the given rows on Sheet1.
func createTestWorkbook(t *testing.T, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for rowIdx, row := range rows {
		for colIdx, val := range row {
			if val == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, val))
		}
	}

	path := filepath.Join(t.TempDir(), "input.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		sheet    string
		noHeader bool
		out      string
		want     config.WorkbookConfig
	}{
		{
			name: "no overrides keep config values",
			want: config.WorkbookConfig{
				File:      "from-config.xlsx",
				Sheet:     "Sheet1",
				HeaderRow: true,
				Output:    "",
			},
		},
		{
			name:     "all flags override",
			file:     "cli.xlsx",
			sheet:    "Inventory",
			noHeader: true,
			out:      "out.csv",
			want: config.WorkbookConfig{
				File:      "cli.xlsx",
				Sheet:     "Inventory",
				HeaderRow: false,
				Output:    "out.csv",
			},
		},
		{
			name:  "partial override keeps the rest",
			sheet: "Inventory",
			want: config.WorkbookConfig{
				File:      "from-config.xlsx",
				Sheet:     "Inventory",
				HeaderRow: true,
				Output:    "",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Workbook.File = "from-config.xlsx"

			applyFlags(cfg, tt.file, tt.sheet, tt.noHeader, tt.out)
			assert.Equal(t, tt.want, cfg.Workbook)
		})
	}
}

func TestLoadConfigExplicitPath(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `workbook:
  file: inventory.xlsx
  sheet: Stock
logging:
  level: warn
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := loadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "inventory.xlsx", cfg.Workbook.File)
	assert.Equal(t, "Stock", cfg.Workbook.Sheet)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadConfigMissingExplicitPath(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestPrintTable(t *testing.T) {
	table := domain.NewTable([]string{"Name", "Qty"})
	table.Rows = append(table.Rows,
		domain.Row{
			"Name": domain.TypedCell(domain.TypeText, "Widget", "Widget"),
			"Qty":  domain.TypedCell(domain.TypeInteger, "5", int64(5)),
		},
		domain.Row{
			"Name": domain.TypedCell(domain.TypeText, "B", "B"),
			"Qty":  domain.TypedCell(domain.TypeInteger, "77", int64(77)),
		},
	)

	var buf bytes.Buffer
	printTable(&buf, table)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name    Qty", strings.TrimRight(lines[0], " "))
	assert.Equal(t, "Widget  5", strings.TrimRight(lines[1], " "))
	assert.Equal(t, "B       77", strings.TrimRight(lines[2], " "))
}

func TestLoadAndExportRoundTrip(t *testing.T) {
	input := createTestWorkbook(t, [][]string{
		{"Name", "Quantity", "UnitPrice", "ReceivedAt", "Active"},
		{"Widget", "5", "2.5", "2024-03-15", "true"},
		{"", "9", "1.0", "2024-03-16", "true"},
		{"Gadget", "1,200", "19.99", "2024-04-01", "false"},
	})
	outputPath := filepath.Join(t.TempDir(), "out.csv")

	ldr := loader.New(domain.DefaultSchema(), nil)
	table, err := ldr.Load(input, "Sheet1")
	require.NoError(t, err)
	require.NoError(t, exporter.NewTableExporter(nil).ExportTable(table, outputPath))

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	content = bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})

	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + 2 rows, blank Name dropped
	assert.Equal(t, []string{"Name", "Quantity", "UnitPrice", "ReceivedAt", "Active"}, records[0])
	assert.Equal(t, []string{"Widget", "5", "2.50", "2024-03-15", "true"}, records[1])
	assert.Equal(t, []string{"Gadget", "1200", "19.99", "2024-04-01", "false"}, records[2])
}
