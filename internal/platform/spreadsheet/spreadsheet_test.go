package spreadsheet

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes rows into the first sheet of a new workbook.
func buildWorkbook(t *testing.T, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func header() []any {
	out := make([]any, len(RequiredColumns))
	for i, c := range RequiredColumns {
		out[i] = c
	}
	return out
}

func TestParseTasks(t *testing.T) {
	due := time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC)
	buf := buildWorkbook(t,
		header(),
		[]any{"EMP001", "Aniket Baral", "Developer", " Apollo ", " Build API ", "REST endpoints", due},
		[]any{},
		[]any{"EMP999", "Nobody", "Tester", "Apollo", "Write tests", "", "2026-03-01"},
		[]any{"EMP002", "Magesh", "Designer", "Gemini", "Draw mockups", "Figma"},
	)

	got, err := ParseTasks(buf)
	require.NoError(t, err)
	require.Len(t, got, 3, "blank rows are skipped")

	first := got[0]
	assert.Equal(t, "Build API", first.Title)
	assert.Equal(t, "REST endpoints", first.Description)
	assert.Equal(t, domain.DefaultPriority, first.Priority)
	assert.Equal(t, domain.TaskStatusPending, first.Status)
	assert.Equal(t, "Apollo", first.Metadata.ProjectName())
	require.NotNil(t, first.Deadline)
	assert.Equal(t, "2026-02-15", *first.Deadline)
	require.NotNil(t, first.Employee)
	assert.Equal(t, "EMP001", first.Employee.EmployeeID)
	assert.Equal(t, "Developer", first.Employee.Role)

	require.NotNil(t, got[1].Deadline)
	assert.Equal(t, "2026-03-01", *got[1].Deadline)

	assert.Nil(t, got[2].Deadline, "missing due date")
}

func TestParseTasks_MissingColumns(t *testing.T) {
	buf := buildWorkbook(t,
		[]any{ColumnEmployeeID, ColumnTaskTitle, ColumnProjectName},
		[]any{"EMP001", "Build API", "Apollo"},
	)

	_, err := ParseTasks(buf)
	var missing *MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{ColumnEmployeeName, ColumnRole, ColumnDescription, ColumnDueDate}, missing.Columns)
	assert.True(t, strings.HasPrefix(err.Error(), "Missing required columns"))
}

func TestParseTasks_BadDate(t *testing.T) {
	buf := buildWorkbook(t,
		header(),
		[]any{"EMP001", "Aniket Baral", "Developer", "Apollo", "Build API", "", "next tuesday"},
	)

	_, err := ParseTasks(buf)
	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, 2, rowErr.Row)
	assert.Equal(t, ColumnDueDate, rowErr.Column)
}

func TestParseTasks_NotAWorkbook(t *testing.T) {
	_, err := ParseTasks(strings.NewReader("employee,title\nEMP001,Build API\n"))
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestParseTasks_HeaderOnly(t *testing.T) {
	got, err := ParseTasks(buildWorkbook(t, header()))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"46068", "2026-02-15"},
		{"46068.5", "2026-02-15"},
		{"2026-02-15", "2026-02-15"},
		{"2026-02-15 10:30:00", "2026-02-15"},
		{"02/15/2026", "2026-02-15"},
		{"Feb 15, 2026", "2026-02-15"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDueDate(tt.in)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}

	none, err := parseDueDate("")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestIsWorkbookName(t *testing.T) {
	assert.True(t, IsWorkbookName("tasks.xlsx"))
	assert.True(t, IsWorkbookName("TASKS.XLSX"))
	assert.False(t, IsWorkbookName("tasks.csv"))
	assert.False(t, IsWorkbookName("tasks.xls"))
}
