package domain

import (
	"sort"
	"time"
)

// HistoryEntry is one task assignment in an employee's timeline.
// Its Status mirrors the task status only when updated explicitly.
type HistoryEntry struct {
	TaskID      int64      `json:"taskId"`
	TaskTitle   string     `json:"taskTitle"`
	ManagerID   string     `json:"managerId"`
	ManagerName string     `json:"managerName"`
	AssignedAt  time.Time  `json:"assignedAt"`
	Status      TaskStatus `json:"status"`
	CompletedAt *time.Time `json:"completedAt"`
}

// Clone returns a copy of the entry.
func (h HistoryEntry) Clone() HistoryEntry {
	if h.CompletedAt != nil {
		c := *h.CompletedAt
		h.CompletedAt = &c
	}
	return h
}

// HistorySummary partitions an employee's history into active and completed work.
type HistorySummary struct {
	EmployeeID     string
	TotalTasks     int
	ActiveTasks    []HistoryEntry
	ActiveCount    int
	CompletedTasks []HistoryEntry
	CompletedCount int
	FullHistory    []HistoryEntry
}

// SummarizeHistory builds the summary for an employee's entries.
// Active means Assigned or In Progress. FullHistory is newest assignment first.
func SummarizeHistory(employeeID string, entries []HistoryEntry) HistorySummary {
	summary := HistorySummary{
		EmployeeID:     employeeID,
		TotalTasks:     len(entries),
		ActiveTasks:    []HistoryEntry{},
		CompletedTasks: []HistoryEntry{},
		FullHistory:    make([]HistoryEntry, 0, len(entries)),
	}

	for _, e := range entries {
		switch {
		case e.Status.IsActive():
			summary.ActiveTasks = append(summary.ActiveTasks, e)
		case e.Status == TaskStatusCompleted:
			summary.CompletedTasks = append(summary.CompletedTasks, e)
		}
		summary.FullHistory = append(summary.FullHistory, e)
	}
	summary.ActiveCount = len(summary.ActiveTasks)
	summary.CompletedCount = len(summary.CompletedTasks)

	sort.SliceStable(summary.FullHistory, func(i, j int) bool {
		return summary.FullHistory[i].AssignedAt.After(summary.FullHistory[j].AssignedAt)
	})

	return summary
}
