package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		notFound  bool
		duplicate bool
	}{
		{"nil", nil, false, false},
		{"not found", ErrNotFound, true, false},
		{"employee not found", ErrEmployeeNotFound, true, false},
		{"wrapped task not found", fmt.Errorf("assign: %w", ErrTaskNotFound), true, false},
		{"notification not found", ErrNotificationNotFound, true, false},
		{"manager exists", ErrManagerExists, false, true},
		{"employee exists in store error", NewStoreError("employee", "create", "conflict", ErrEmployeeExists), false, true},
		{"unrelated", errors.New("boom"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFoundError(tt.err))
			assert.Equal(t, tt.duplicate, IsDuplicateError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStoreError("task", "create", "failed to persist state", cause)

	assert.Equal(t, "create operation on task failed: failed to persist state: disk full", err.Error())
	assert.ErrorIs(t, err, cause)

	var target *StoreError
	require.ErrorAs(t, fmt.Errorf("wrapped: %w", err), &target)
	assert.Equal(t, "task", target.Entity)

	bare := NewStoreError("counter", "next", "unknown counter", nil)
	assert.Equal(t, "next operation on counter failed: unknown counter", bare.Error())
	assert.Nil(t, bare.Unwrap())
}

func TestTaskFilterMatches(t *testing.T) {
	task := &domain.Task{
		ManagerID: "MGR001",
		Status:    domain.TaskStatusAssigned,
		Metadata:  domain.Metadata{domain.MetadataProjectName: "Apollo"},
		AssignedEmployees: []domain.AssigneeSummary{
			{EmployeeID: "EMP001", EmployeeName: "Aniket Baral"},
		},
		CreatedAt: time.Now(),
	}

	tests := []struct {
		name   string
		filter TaskFilter
		want   bool
	}{
		{"empty filter", TaskFilter{}, true},
		{"manager", TaskFilter{ManagerID: "MGR001"}, true},
		{"other manager", TaskFilter{ManagerID: "MGR002"}, false},
		{"status", TaskFilter{Status: domain.TaskStatusAssigned}, true},
		{"other status", TaskFilter{Status: domain.TaskStatusPending}, false},
		{"project", TaskFilter{ProjectName: "Apollo"}, true},
		{"other project", TaskFilter{ProjectName: "Gemini"}, false},
		{"assignee", TaskFilter{EmployeeID: "EMP001"}, true},
		{"non assignee", TaskFilter{EmployeeID: "EMP002"}, false},
		{"all fields", TaskFilter{ManagerID: "MGR001", Status: domain.TaskStatusAssigned, ProjectName: "Apollo", EmployeeID: "EMP001"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(task))
		})
	}
}

func TestNotificationFilterMatches(t *testing.T) {
	read := &domain.Notification{EmployeeID: "EMP001", IsRead: true}
	unread := &domain.Notification{EmployeeID: "EMP001"}

	assert.True(t, NotificationFilter{}.Matches(read))
	assert.True(t, NotificationFilter{EmployeeID: "EMP001"}.Matches(unread))
	assert.False(t, NotificationFilter{EmployeeID: "EMP002"}.Matches(unread))
	assert.False(t, NotificationFilter{UnreadOnly: true}.Matches(read))
	assert.True(t, NotificationFilter{UnreadOnly: true}.Matches(unread))
}

func TestDefaultSeedData(t *testing.T) {
	employees := DefaultEmployees()
	require.Len(t, employees, 15)
	seen := make(map[string]bool)
	for _, e := range employees {
		require.NoError(t, e.Validate())
		assert.False(t, seen[e.ID], "duplicate seed id %s", e.ID)
		seen[e.ID] = true
	}

	managers := DefaultManagers()
	require.Len(t, managers, 2)
	assert.Equal(t, "MGR001", managers[0].ID)
}
