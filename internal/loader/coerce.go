package loader

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	apierrors "github.com/gibbonsand/excel-client/internal/errors"
	"github.com/gibbonsand/excel-client/pkg/contracts/domain"
)

// dateLayouts are tried in order when coercing date cells. The list
// starts with ISO forms and ends with the short display formats Excel
// applies to unstyled date cells.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01-02-06",
	"1/2/2006",
	"01/02/2006",
	"1/2/06 15:04",
	"2006/01/02",
}

// coerceTable converts every cell in place to its declared column type.
// Missing cells keep their marker and pick up the column type; deciding
// whether they are acceptable is validation's job, not coercion's.
func (l *Loader) coerceTable(table *domain.Table) error {
	columns := l.schema.Columns()
	for rowIdx, row := range table.Rows {
		for _, col := range columns {
			cell := row[col.Name]
			if cell.IsMissing() {
				row[col.Name] = domain.Cell{Type: col.Type, Missing: true}
				continue
			}

			coerced, err := coerceCell(col.Type, cell.Raw)
			if err != nil {
				return apierrors.NewCoercionError(col.Name, rowIdx, cell.Raw, err)
			}
			row[col.Name] = coerced
		}
	}
	return nil
}

// coerceCell converts one raw cell value to the given column type.
func coerceCell(t domain.ColumnType, raw string) (domain.Cell, error) {
	switch t {
	case domain.TypeText:
		return domain.TypedCell(t, raw, strings.TrimSpace(raw)), nil
	case domain.TypeInteger:
		v, err := parseInteger(raw)
		if err != nil {
			return domain.Cell{}, err
		}
		return domain.TypedCell(t, raw, v), nil
	case domain.TypeFloat:
		v, err := parseFloat(raw)
		if err != nil {
			return domain.Cell{}, err
		}
		return domain.TypedCell(t, raw, v), nil
	case domain.TypeDate:
		v, err := parseDate(raw)
		if err != nil {
			return domain.Cell{}, err
		}
		return domain.TypedCell(t, raw, v), nil
	case domain.TypeBool:
		v, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return domain.Cell{}, err
		}
		return domain.TypedCell(t, raw, v), nil
	default:
		return domain.Cell{}, fmt.Errorf("unsupported column type %q", t)
	}
}

// numericText strips the thousands separators and padding Excel leaves
// in formatted number cells.
func numericText(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}

// parseInteger parses an integer cell. Values formatted as integral
// floats ("5.0") are accepted; fractional values are not.
func parseInteger(s string) (int64, error) {
	text := numericText(s)
	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		return v, nil
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("value %q is not an integer", s)
	}
	return int64(f), nil
}

// parseFloat parses a float cell.
func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(numericText(s), 64)
}

// parseDate parses a date cell against the known layouts.
func parseDate(s string) (time.Time, error) {
	text := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if v, err := time.Parse(layout, text); err == nil {
			return v, nil
		}
	}
	return time.Time{}, fmt.Errorf("value %q matches no known date format", s)
}
