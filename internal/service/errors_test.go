package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/pmsdemo/pms-api/internal/platform/memory"
	"github.com/pmsdemo/pms-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServiceError(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk on fire")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"store task not found", store.ErrTaskNotFound, ErrTaskNotFound},
		{"wrapped store employee not found", fmt.Errorf("lookup: %w", store.ErrEmployeeNotFound), ErrEmployeeNotFound},
		{"store manager not found", store.ErrManagerNotFound, ErrManagerNotFound},
		{"store notification not found", store.ErrNotificationNotFound, ErrNotificationNotFound},
		{"service sentinel", ErrNotYourTask, ErrNotYourTask},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := NewServiceError("task", "get", "failed", tc.err)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("unexpected errors are wrapped", func(t *testing.T) {
		t.Parallel()
		got := NewServiceError("task", "assign", "failed to save task", cause)

		var svcErr *ServiceError
		require.True(t, errors.As(got, &svcErr))
		assert.Equal(t, "task", svcErr.Service)
		assert.Equal(t, "assign", svcErr.Operation)
		assert.ErrorIs(t, got, cause)
		assert.Equal(t, "task service assign failed: failed to save task: disk on fire", got.Error())
	})

	t.Run("typed service errors keep their detail", func(t *testing.T) {
		t.Parallel()
		conflict := &StatusConflictError{Status: domain.TaskStatusInProgress}
		got := NewServiceError("task", "assign", "failed", conflict)
		assert.Same(t, conflict, got)
		assert.Equal(t, "already In Progress, cannot assign", got.Error())
	})
}

func TestConstructorsRejectMissingDependencies(t *testing.T) {
	t.Parallel()

	stores := memory.New().Stores()

	_, err := NewHistoryService(nil, nil)
	assert.Error(t, err)

	_, err = NewNotificationService(store.Stores{}, nil, nil)
	assert.Error(t, err)

	_, err = NewEmployeeService(stores.Employees, nil, nil)
	assert.Error(t, err)

	history, err := NewHistoryService(stores.History, nil)
	require.NoError(t, err)
	notifier, err := NewNotificationService(stores, nil, nil)
	require.NoError(t, err)

	_, err = NewTaskService(stores, nil, history, nil, nil)
	assert.Error(t, err)
	_, err = NewTaskService(store.Stores{}, notifier, history, nil, nil)
	assert.Error(t, err)
	_, err = NewTaskService(stores, notifier, history, nil, nil)
	assert.NoError(t, err, "metrics and logger are optional")

	_, err = NewProjectService(store.Stores{}, nil)
	assert.Error(t, err)
	_, err = NewStatsService(store.Stores{})
	assert.Error(t, err)
	_, err = NewManagerService(nil)
	assert.Error(t, err)

	var svcErr *ServiceError
	_, err = NewHistoryService(nil, nil)
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "create_service", svcErr.Operation)
}
