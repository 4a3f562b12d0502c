package service

import (
	"context"
	"testing"

	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/pmsdemo/pms-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRanking(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	for i, id := range []string{"EMP003", "EMP003", "EMP001"} {
		task := f.createTask(t, "MGR001", "task "+string(rune('a'+i)), "")
		_, err := f.tasks.Assign(ctx, task.ID, []string{id}, "MGR001")
		require.NoError(t, err)
	}

	ranked, err := f.employees.Ranking(ctx)
	require.NoError(t, err)
	require.Len(t, ranked, len(store.DefaultEmployees()))

	for i := range ranked {
		assert.Equal(t, i+1, ranked[i].Rank)
		if i > 0 {
			assert.LessOrEqual(t, ranked[i-1].Employee.ActiveProjects, ranked[i].Employee.ActiveProjects)
		}
	}
	assert.Equal(t, "EMP002", ranked[0].Employee.ID, "ties keep collection order")
	assert.Equal(t, "EMP001", ranked[len(ranked)-2].Employee.ID)
	assert.Equal(t, "EMP003", ranked[len(ranked)-1].Employee.ID)
	assert.Equal(t, domain.AvailabilityLow, ranked[len(ranked)-1].Availability)
}

func TestEmployeeDirectory(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.stores.Employees.Create(ctx, &domain.Employee{ID: "EMP016", Name: "New Hire"}))

	profile, err := f.employees.Profile(ctx, "EMP016")
	require.NoError(t, err)
	assert.Equal(t, Profile{
		ID:          "EMP016",
		Name:        "New Hire",
		Department:  DefaultDepartment,
		Designation: DefaultDesignation,
	}, profile)

	seeded, err := f.employees.Profile(ctx, "EMP001")
	require.NoError(t, err)
	assert.Equal(t, "Engineering", seeded.Department)

	profiles, err := f.employees.Profiles(ctx)
	require.NoError(t, err)
	assert.Len(t, profiles, len(store.DefaultEmployees())+1)

	_, err = f.employees.Profile(ctx, "EMP404")
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
	_, err = f.employees.Get(ctx, "EMP404")
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
	_, err = f.employees.TaskHistory(ctx, "EMP404")
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestEmployeeOverview(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	task := f.createTask(t, "MGR001", "Implement X", "")
	_, err := f.tasks.Assign(ctx, task.ID, []string{"EMP002"}, "MGR001")
	require.NoError(t, err)

	overview, err := f.employees.List(ctx)
	require.NoError(t, err)
	require.Len(t, overview, len(store.DefaultEmployees()))
	assert.Equal(t, "EMP001", overview[0].Employee.ID)
	assert.Equal(t, 0, overview[0].History.TotalTasks)
	assert.Equal(t, 1, overview[1].History.TotalTasks)
	assert.Equal(t, 1, overview[1].History.ActiveCount)

	history, err := f.employees.TaskHistory(ctx, "EMP002")
	require.NoError(t, err)
	assert.Equal(t, "Implement X", history.Employee.CurrentTaskDetails)
	require.Len(t, history.History.ActiveTasks, 1)
	assert.Equal(t, "Rajesh Krishnan", history.History.ActiveTasks[0].ManagerName)

	empty, err := f.history.GetHistory(ctx, "EMP404")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.TotalTasks)
}

func TestManagerService(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	svc, err := NewManagerService(f.stores.Managers)
	require.NoError(t, err)

	managers, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, managers, 2)

	m, err := svc.Get(ctx, "MGR002")
	require.NoError(t, err)
	assert.Equal(t, "Sunita Reddy", m.Name)

	_, err = svc.Get(ctx, "MGR404")
	assert.ErrorIs(t, err, ErrManagerNotFound)
}
