package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loxhness/HospitalManagement/internal/db"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"Name", "Tasks"},
		[][]string{{"Ada Lovelace", "12"}, {"Bo", "3"}},
		[]Align{AlignLeft, AlignRight},
	)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Name          Tasks", lines[0])
	assert.Equal(t, "Ada Lovelace     12", lines[2])
	assert.Equal(t, "Bo                3", lines[3])
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil, nil))
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "-", FormatCell(nil))
	assert.Equal(t, "42", FormatCell(int64(42)))
	assert.Equal(t, "2.5", FormatCell(2.5))
	assert.Equal(t, "ICU", FormatCell([]byte("ICU")))
}

func TestCompletionStyle(t *testing.T) {
	assert.Equal(t, StyleDim, CompletionStyle(0, 0))
	assert.Equal(t, StyleGreen, CompletionStyle(3, 3))
	assert.Equal(t, StyleRed, CompletionStyle(0, 3))
	assert.Equal(t, StyleYellow, CompletionStyle(1, 3))
}

func TestFormatReport(t *testing.T) {
	table := &db.Table{
		Columns: []string{"StaffName", "Department", "TotalTasks", "CompletedTasks"},
		Rows: []db.Row{
			{"StaffName": "Ada Lovelace", "Department": "Cardiology", "TotalTasks": int64(2), "CompletedTasks": int64(1)},
			{"StaffName": "Alan Turing", "Department": nil, "TotalTasks": int64(0), "CompletedTasks": int64(0)},
		},
	}
	out := FormatReport("Staff Workload", table)
	assert.Contains(t, out, "STAFF WORKLOAD")
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "2 row(s)")
	assert.True(t, isNumericColumn(table, "TotalTasks"))
	assert.False(t, isNumericColumn(table, "Department"))
}

func TestFormatReport_NoRows(t *testing.T) {
	out := FormatReport("Department Performance", &db.Table{Columns: []string{"Name"}, Rows: []db.Row{}})
	assert.Contains(t, out, "No rows.")
}

func TestFindColumn_IgnoresCase(t *testing.T) {
	cols := []string{"staffname", "totaltasks", "completedtasks"}
	assert.Equal(t, "completedtasks", findColumn(cols, "CompletedTasks"))
	assert.Equal(t, "totaltasks", findColumn(cols, "TotalTasks"))
	assert.Empty(t, findColumn(cols, "Department"))
}

func TestFormatReport_LowercaseColumns(t *testing.T) {
	table := &db.Table{
		Columns: []string{"staffname", "totaltasks", "completedtasks"},
		Rows: []db.Row{
			{"staffname": "Ada Lovelace", "totaltasks": int64(3), "completedtasks": int64(1)},
		},
	}
	out := FormatReport("Staff Workload", table)
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "1 row(s)")
	assert.True(t, isNumericColumn(table, "completedtasks"))
}
