package loader

import (
	"fmt"
	"strings"

	apierrors "github.com/gibbonsand/excel-client/internal/errors"
	"github.com/gibbonsand/excel-client/pkg/contracts/domain"
)

// validateTable checks that no cell is missing after filtering and
// coercion. It is a pure check: the table is never modified. The
// returned VALIDATION error names every offending row so the caller
// can fix the input.
func (l *Loader) validateTable(table *domain.Table) error {
	var offending []int
	for i, row := range table.Rows {
		for _, name := range table.Columns {
			if row.Cell(name).IsMissing() {
				offending = append(offending, i)
				break
			}
		}
	}

	if len(offending) == 0 {
		return nil
	}

	details := make([]string, len(offending))
	for i, rowIdx := range offending {
		details[i] = fmt.Sprintf("row %d: %s", rowIdx, table.Rows[rowIdx].Format(table.Columns))
	}

	message := fmt.Sprintf("missing values in rows %s", joinInts(offending))
	return apierrors.NewValidationError(message, offending).
		WithContext("details", details)
}

// joinInts renders row indices as "0, 3, 7".
func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}
