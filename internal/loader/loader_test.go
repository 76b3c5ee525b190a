package loader

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apierrors "github.com/gibbonsand/excel-client/internal/errors"
	"github.com/gibbonsand/excel-client/internal/shared/testutil"
	"github.com/gibbonsand/excel-client/pkg/contracts/domain"
)

// writeWorkbook builds a workbook with one sheet holding the given rows
// and saves it under a temp directory. Nil values leave the cell unset.
func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))
	}

	for rowIdx, row := range rows {
		for colIdx, val := range row {
			if val == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, val))
		}
	}

	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// inventoryRows is a well-formed sheet for the default schema.
func inventoryRows() [][]interface{} {
	return [][]interface{}{
		{"Name", "Quantity", "UnitPrice", "ReceivedAt", "Active"},
		{"Widget", "5", "2.50", "2024-03-15", "true"},
		{"Gadget", "1,200", "19.99", "2024-04-01", "false"},
	}
}

func TestLoader_Load(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", inventoryRows())

	ldr := New(domain.DefaultSchema(), slog.Default())
	table, err := ldr.Load(path, "Sheet1")

	require.NoError(t, err)
	require.NotNil(t, table)
	assert.Equal(t, []string{"Name", "Quantity", "UnitPrice", "ReceivedAt", "Active"}, table.Columns)
	require.Equal(t, 2, table.NumRows())

	first := table.Rows[0]
	assert.Equal(t, "Widget", first.Cell("Name").Text())
	assert.Equal(t, int64(5), first.Cell("Quantity").Int())
	assert.Equal(t, 2.50, first.Cell("UnitPrice").Float())
	assert.True(t, first.Cell("ReceivedAt").Time().Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, first.Cell("Active").Bool())

	second := table.Rows[1]
	assert.Equal(t, "Gadget", second.Cell("Name").Text())
	assert.Equal(t, int64(1200), second.Cell("Quantity").Int())
	assert.False(t, second.Cell("Active").Bool())
}

func TestLoader_ColumnOrderFollowsSchema(t *testing.T) {
	// Sheet columns are laid out in a different order than the schema
	rows := [][]interface{}{
		{"Active", "UnitPrice", "Name", "ReceivedAt", "Quantity"},
		{"true", "2.50", "Widget", "2024-03-15", "5"},
	}
	path := writeWorkbook(t, "Sheet1", rows)

	ldr := New(domain.DefaultSchema(), slog.Default())
	table, err := ldr.Load(path, "Sheet1")

	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Quantity", "UnitPrice", "ReceivedAt", "Active"}, table.Columns)
	assert.Equal(t, "Widget", table.Rows[0].Cell("Name").Text())
	assert.Equal(t, int64(5), table.Rows[0].Cell("Quantity").Int())
}

func TestLoader_DropsRowsWithBlankKeyColumn(t *testing.T) {
	rows := [][]interface{}{
		{"Name", "Quantity", "UnitPrice", "ReceivedAt", "Active"},
		{"Widget", "5", "2.50", "2024-03-15", "true"},
		{nil, "2", "1.00", "2024-03-16", "true"},
		{"   ", "3", "1.50", "2024-03-17", "false"},
		{"Gadget", "7", "9.99", "2024-03-18", "false"},
	}
	path := writeWorkbook(t, "Sheet1", rows)

	ldr := New(domain.DefaultSchema(), slog.Default())
	table, err := ldr.Load(path, "Sheet1")

	require.NoError(t, err)
	require.Equal(t, 2, table.NumRows())
	assert.Equal(t, "Widget", table.Rows[0].Cell("Name").Text())
	assert.Equal(t, "Gadget", table.Rows[1].Cell("Name").Text())
}

func TestLoader_NotFoundOnMissingFile(t *testing.T) {
	ldr := New(domain.DefaultSchema(), slog.Default())

	missing := filepath.Join(t.TempDir(), "missing.xlsx")
	table, err := ldr.Load(missing, "Sheet1")

	require.Error(t, err)
	assert.Nil(t, table)
	assert.True(t, apierrors.IsType(err, apierrors.ErrTypeNotFound))
	assert.Contains(t, err.Error(), missing)
}

func TestLoader_ParseErrorOnMissingSheet(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", inventoryRows())

	ldr := New(domain.DefaultSchema(), slog.Default())
	_, err := ldr.Load(path, "NoSuchSheet")

	require.Error(t, err)
	assert.True(t, apierrors.IsType(err, apierrors.ErrTypeParse))
}

func TestLoader_ParseErrorOnCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("this is not a workbook"), 0644))

	ldr := New(domain.DefaultSchema(), slog.Default())
	_, err := ldr.Load(path, "Sheet1")

	require.Error(t, err)
	assert.True(t, apierrors.IsType(err, apierrors.ErrTypeParse))
}

func TestLoader_SchemaErrorOnMissingColumn(t *testing.T) {
	rows := [][]interface{}{
		{"Name", "Quantity", "UnitPrice", "ReceivedAt"}, // no Active column
		{"Widget", "5", "2.50", "2024-03-15"},
	}
	path := writeWorkbook(t, "Sheet1", rows)

	ldr := New(domain.DefaultSchema(), slog.Default())
	_, err := ldr.Load(path, "Sheet1")

	require.Error(t, err)
	assert.True(t, apierrors.IsType(err, apierrors.ErrTypeSchema))
	assert.Contains(t, err.Error(), `"Active"`)
}

func TestLoader_SchemaErrorOnEmptySheet(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", nil)

	ldr := New(domain.DefaultSchema(), slog.Default())
	_, err := ldr.Load(path, "Sheet1")

	require.Error(t, err)
	assert.True(t, apierrors.IsType(err, apierrors.ErrTypeSchema))
}

func TestLoader_CoercionErrorAfterFilter(t *testing.T) {
	schema := domain.MustSchema(
		domain.Column{Name: "Name", Type: domain.TypeText},
		domain.Column{Name: "Qty", Type: domain.TypeInteger},
	)
	// The blank-Name row is dropped before coercion, so its Qty never
	// fails; the bad value on the last row does, at post-filter index 1.
	rows := [][]interface{}{
		{"Name", "Qty"},
		{"A", "5"},
		{nil, "2"},
		{"B", "x"},
	}
	path := writeWorkbook(t, "Sheet1", rows)

	ldr := New(schema, slog.Default())
	_, err := ldr.Load(path, "Sheet1")

	require.Error(t, err)
	assert.True(t, apierrors.IsType(err, apierrors.ErrTypeCoercion))

	var loadErr *apierrors.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "Qty", loadErr.Context["column"])
	assert.Equal(t, 1, loadErr.Context["row"])
	assert.Equal(t, "x", loadErr.Context["value"])
}

func TestLoader_ValidationErrorOnMissingCell(t *testing.T) {
	schema := domain.MustSchema(
		domain.Column{Name: "Name", Type: domain.TypeText},
		domain.Column{Name: "Qty", Type: domain.TypeInteger},
	)
	rows := [][]interface{}{
		{"Name", "Qty"},
		{"A", "5"},
		{"B", nil},
	}
	path := writeWorkbook(t, "Sheet1", rows)

	ldr := New(schema, slog.Default())
	_, err := ldr.Load(path, "Sheet1")

	require.Error(t, err)
	assert.True(t, apierrors.IsType(err, apierrors.ErrTypeValidation))
	assert.Contains(t, err.Error(), "rows 1")

	var loadErr *apierrors.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, []int{1}, loadErr.Context["rows"])
}

func TestLoader_ValidationPassesOnCompleteTable(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", inventoryRows())

	logger, handler := testutil.NewTestLogger(t)
	ldr := New(domain.DefaultSchema(), logger)

	_, err := ldr.Load(path, "Sheet1")

	require.NoError(t, err)
	testutil.AssertNoErrors(t, handler)
}

func TestLoader_ExtraColumnsAreDropped(t *testing.T) {
	rows := [][]interface{}{
		{"Name", "Quantity", "UnitPrice", "ReceivedAt", "Active", "Comment"},
		{"Widget", "5", "2.50", "2024-03-15", "true", "left over"},
	}
	path := writeWorkbook(t, "Sheet1", rows)

	ldr := New(domain.DefaultSchema(), slog.Default())
	table, err := ldr.Load(path, "Sheet1")

	require.NoError(t, err)
	assert.Equal(t, 5, table.NumColumns())
	assert.NotContains(t, table.Columns, "Comment")
	assert.True(t, table.Rows[0].Cell("Comment").IsMissing())
}

func TestLoader_HeaderlessSheet(t *testing.T) {
	schema := domain.MustSchema(
		domain.Column{Name: "A", Type: domain.TypeText},
		domain.Column{Name: "B", Type: domain.TypeInteger},
	)
	rows := [][]interface{}{
		{"Widget", "5"},
		{"Gadget", "7"},
	}
	path := writeWorkbook(t, "Sheet1", rows)

	ldr := New(schema, slog.Default())
	table, err := ldr.LoadWithOptions(path, "Sheet1", Options{HeaderRow: false})

	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, table.Columns)
	// No header row is consumed, so both rows are data
	require.Equal(t, 2, table.NumRows())
	assert.Equal(t, "Widget", table.Rows[0].Cell("A").Text())
	assert.Equal(t, int64(7), table.Rows[1].Cell("B").Int())
}

func TestLoader_DuplicateHeaderFirstWins(t *testing.T) {
	schema := domain.MustSchema(
		domain.Column{Name: "Name", Type: domain.TypeText},
		domain.Column{Name: "Qty", Type: domain.TypeInteger},
	)
	rows := [][]interface{}{
		{"Name", "Qty", "Qty"},
		{"A", "5", "9"},
	}
	path := writeWorkbook(t, "Sheet1", rows)

	ldr := New(schema, slog.Default())
	table, err := ldr.Load(path, "Sheet1")

	require.NoError(t, err)
	assert.Equal(t, int64(5), table.Rows[0].Cell("Qty").Int())
}

func TestLoader_BlankHeaderCellGetsColumnLetter(t *testing.T) {
	schema := domain.MustSchema(
		domain.Column{Name: "Name", Type: domain.TypeText},
		domain.Column{Name: "B", Type: domain.TypeInteger},
	)
	rows := [][]interface{}{
		{"Name", nil},
		{"A", "5"},
	}
	path := writeWorkbook(t, "Sheet1", rows)

	ldr := New(schema, slog.Default())
	table, err := ldr.Load(path, "Sheet1")

	require.NoError(t, err)
	assert.Equal(t, int64(5), table.Rows[0].Cell("B").Int())
}

func TestLoader_RepeatedLoadsReturnEqualTables(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", inventoryRows())

	ldr := New(domain.DefaultSchema(), slog.Default())

	first, err := ldr.Load(path, "Sheet1")
	require.NoError(t, err)
	second, err := ldr.Load(path, "Sheet1")
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	// Mutating one result must not leak into the next load
	first.Rows[0]["Name"] = domain.TypedCell(domain.TypeText, "Mutated", "Mutated")
	third, err := ldr.Load(path, "Sheet1")
	require.NoError(t, err)
	assert.True(t, second.Equal(third))
}

func TestLoader_LogsFailuresAtErrorLevel(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", inventoryRows())

	logger, handler := testutil.NewTestLogger(t)
	ldr := New(domain.DefaultSchema(), logger)

	_, err := ldr.Load(path, "NoSuchSheet")

	require.Error(t, err)
	testutil.AssertLogContains(t, handler, slog.LevelError, "Failed to read sheet")
	assert.True(t, handler.HasAttr("load_id"))
	assert.True(t, handler.ContainsAttr("file", path))
	assert.True(t, handler.ContainsAttr("sheet", "NoSuchSheet"))
}

func TestLoader_LogsCompletedLoad(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", inventoryRows())

	logger, handler := testutil.NewTestLogger(t)
	ldr := New(domain.DefaultSchema(), logger)

	_, err := ldr.Load(path, "Sheet1")

	require.NoError(t, err)
	testutil.AssertLogContains(t, handler, slog.LevelInfo, "Workbook loaded")
	assert.True(t, handler.HasAttr("load_id"))
}

func TestLoader_SchemaAccessor(t *testing.T) {
	ldr := New(domain.DefaultSchema(), nil)
	assert.Equal(t, domain.DefaultSchema().ColumnNames(), ldr.Schema().ColumnNames())
}
