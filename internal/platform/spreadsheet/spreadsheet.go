// Package spreadsheet reads task import workbooks. Only the first sheet is
// read; its first row must carry the column headers below.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Column headers of an import workbook.
const (
	ColumnEmployeeID   = "Employee_ID"
	ColumnEmployeeName = "Employee_Name"
	ColumnRole         = "Role"
	ColumnProjectName  = "Project Name"
	ColumnTaskTitle    = "Task Assigned"
	ColumnDescription  = "Task Description"
	ColumnDueDate      = "Task Completion Due Date"
)

// RequiredColumns lists every header an import workbook must contain.
var RequiredColumns = []string{
	ColumnEmployeeID,
	ColumnEmployeeName,
	ColumnRole,
	ColumnProjectName,
	ColumnTaskTitle,
	ColumnDescription,
	ColumnDueDate,
}

var (
	// ErrUnreadable is returned when the upload is not a readable workbook.
	ErrUnreadable = errors.New("failed to read Excel file")

	// ErrEmptyWorkbook is returned when the first sheet has no header row.
	ErrEmptyWorkbook = errors.New("workbook has no header row")
)

// MissingColumnsError lists required headers absent from the workbook.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("Missing required columns: [%s]", strings.Join(e.Columns, ", "))
}

// RowError reports a cell that could not be interpreted. Row is 1-based as shown in spreadsheet tools.
type RowError struct {
	Row    int
	Column string
	Value  string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: invalid %s %q", e.Row, e.Column, e.Value)
}

// dateLayouts are tried in order for due dates typed as text.
var dateLayouts = []string{
	domain.DateLayout,
	domain.TimestampLayout,
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02-01-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// IsWorkbookName reports whether a file name has the supported extension.
func IsWorkbookName(name string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(name)), ".xlsx")
}

// ParseTasks reads the first sheet of an .xlsx workbook into import candidates.
// Nothing is written anywhere; every row becomes a Pending, Medium-priority candidate.
func ParseTasks(r io.Reader) ([]domain.ImportCandidate, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyWorkbook
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.TrimSpace(h)] = i
	}
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	candidates := make([]domain.ImportCandidate, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		cell := func(col string) string {
			j := index[col]
			if j >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[j])
		}

		deadline, err := parseDueDate(cell(ColumnDueDate))
		if err != nil {
			return nil, &RowError{Row: i + 2, Column: ColumnDueDate, Value: cell(ColumnDueDate)}
		}

		candidates = append(candidates, domain.ImportCandidate{
			Title:       cell(ColumnTaskTitle),
			Description: cell(ColumnDescription),
			Priority:    domain.DefaultPriority,
			Deadline:    deadline,
			Metadata:    domain.Metadata{domain.MetadataProjectName: cell(ColumnProjectName)},
			Status:      domain.TaskStatusPending,
			Employee: &domain.EmployeeRef{
				EmployeeID:   cell(ColumnEmployeeID),
				EmployeeName: cell(ColumnEmployeeName),
				Role:         cell(ColumnRole),
			},
		})
	}
	return candidates, nil
}

// parseDueDate accepts an Excel date serial or a textual date and renders it as YYYY-MM-DD.
// An empty cell has no deadline.
func parseDueDate(raw string) (*string, error) {
	if raw == "" {
		return nil, nil
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return nil, err
		}
		d := t.Format(domain.DateLayout)
		return &d, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d := t.Format(domain.DateLayout)
			return &d, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date %q", raw)
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
