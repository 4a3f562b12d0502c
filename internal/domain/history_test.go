package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeHistory(t *testing.T) {
	t.Parallel()
	base := time.Date(2026, time.January, 14, 9, 0, 0, 0, time.UTC)

	entries := []HistoryEntry{
		{TaskID: 1, TaskTitle: "first", AssignedAt: base, Status: TaskStatusAssigned},
		{TaskID: 2, TaskTitle: "second", AssignedAt: base.Add(time.Hour), Status: TaskStatusCompleted},
		{TaskID: 3, TaskTitle: "third", AssignedAt: base.Add(2 * time.Hour), Status: TaskStatusInProgress},
	}

	summary := SummarizeHistory("EMP001", entries)

	assert.Equal(t, "EMP001", summary.EmployeeID)
	assert.Equal(t, 3, summary.TotalTasks)
	assert.Equal(t, 2, summary.ActiveCount)
	assert.Equal(t, 1, summary.CompletedCount)
	assert.Equal(t, summary.TotalTasks, summary.ActiveCount+summary.CompletedCount)

	require.Len(t, summary.FullHistory, 3)
	assert.Equal(t, int64(3), summary.FullHistory[0].TaskID, "newest assignment first")
	assert.Equal(t, int64(1), summary.FullHistory[2].TaskID)

	// input order untouched
	assert.Equal(t, int64(1), entries[0].TaskID)
}

func TestSummarizeHistory_Empty(t *testing.T) {
	t.Parallel()

	summary := SummarizeHistory("EMP404", nil)
	assert.Equal(t, 0, summary.TotalTasks)
	assert.Equal(t, 0, summary.ActiveCount)
	assert.Equal(t, 0, summary.CompletedCount)
	assert.NotNil(t, summary.ActiveTasks)
	assert.NotNil(t, summary.CompletedTasks)
	assert.NotNil(t, summary.FullHistory)
}

func TestEmployeeRecordAssignment(t *testing.T) {
	t.Parallel()

	e := &Employee{ID: "EMP001", Name: "Aniket Baral", ActiveProjects: 2}
	now := time.Date(2026, time.March, 3, 17, 45, 12, 0, time.UTC)
	e.RecordAssignment("Implement X", now)

	assert.Equal(t, 3, e.ActiveProjects)
	assert.Equal(t, "Implement X", e.CurrentTaskDetails)
	assert.Equal(t, "2026-03-03", e.UpdatedOn.Format(DateLayout))
	assert.Equal(t, AvailabilityModerate, e.Availability())
}

func TestAssignmentMessage(t *testing.T) {
	t.Parallel()
	assert.Equal(t,
		"Rajesh Krishnan selected you to do 'Implement X' task.",
		AssignmentMessage("Rajesh Krishnan", "Implement X"))
}

func TestImportCandidateKey(t *testing.T) {
	t.Parallel()

	c := ImportCandidate{Title: " Build API ", Metadata: Metadata{MetadataProjectName: " Apollo "}}
	task := &Task{Title: "Build API", Metadata: Metadata{MetadataProjectName: "Apollo"}}
	assert.Equal(t, KeyOf(task), c.Key())

	other := ImportCandidate{Title: "Build API"}
	assert.NotEqual(t, KeyOf(task), other.Key())
}
