package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/loxhness/HospitalManagement/internal/db"
)

// FormatReport renders a report table under a title. Numeric columns are
// right-aligned, and a CompletedTasks column is colored against TotalTasks
// when both are present.
func FormatReport(title string, t *db.Table) string {
	var b strings.Builder
	b.WriteString(Header(title))
	b.WriteString("\n\n")

	if t == nil || len(t.Rows) == 0 {
		b.WriteString(Dim("No rows."))
		b.WriteString("\n")
		return b.String()
	}

	align := make([]Align, len(t.Columns))
	for i, col := range t.Columns {
		if isNumericColumn(t, col) {
			align[i] = AlignRight
		}
	}

	// Postgres folds unquoted aliases to lower case.
	completedCol := findColumn(t.Columns, "CompletedTasks")
	totalCol := findColumn(t.Columns, "TotalTasks")

	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		cells := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			cells[i] = FormatCell(r[col])
			if col == completedCol && totalCol != "" {
				completed, okC := asInt(r[completedCol])
				total, okT := asInt(r[totalCol])
				if okC && okT {
					cells[i] = CompletionStyle(completed, total).Render(cells[i])
				}
			}
		}
		rows = append(rows, cells)
	}

	b.WriteString(RenderTable(t.Columns, rows, align))
	b.WriteString(Dim(fmt.Sprintf("%d row(s)", len(t.Rows))))
	b.WriteString("\n")
	return b.String()
}

// FormatCell converts a scanned column value to display text. NULL renders as
// a dash.
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// findColumn returns the column matching name regardless of case, or "".
func findColumn(cols []string, name string) string {
	for _, col := range cols {
		if strings.EqualFold(col, name) {
			return col
		}
	}
	return ""
}

func isNumericColumn(t *db.Table, col string) bool {
	seen := false
	for _, r := range t.Rows {
		v := r[col]
		if v == nil {
			continue
		}
		if _, ok := asInt(v); !ok {
			return false
		}
		seen = true
	}
	return seen
}

func asInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int32:
		return int64(x), true
	case int:
		return int64(x), true
	case float64:
		if x == float64(int64(x)) {
			return int64(x), true
		}
	}
	return 0, false
}
