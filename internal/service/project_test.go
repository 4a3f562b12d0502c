package service

import (
	"context"
	"testing"

	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCreate(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.projects.Create(ctx, "MGR001", "Apollo", "Moon shot")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "Rajesh Krishnan", p.ManagerName)
	assert.Equal(t, domain.ProjectStatusActive, p.Status)

	_, err = f.projects.Create(ctx, "MGR001", " apollo ", "")
	assert.ErrorIs(t, err, ErrProjectExists)

	other, err := f.projects.Create(ctx, "MGR002", "Apollo", "")
	require.NoError(t, err, "names are unique per manager")
	assert.Equal(t, int64(2), other.ID)

	_, err = f.projects.Create(ctx, "MGR404", "Hermes", "")
	assert.ErrorIs(t, err, ErrManagerNotFound)

	_, err = f.projects.Create(ctx, "MGR001", "  ", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	list, err := f.projects.List(ctx, "MGR001")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Apollo", list[0].Name)
}

func TestProjectViews(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	a1 := f.createTask(t, "MGR001", "a1", "Apollo")
	f.createTask(t, "MGR001", "a2", "Apollo")
	h1 := f.createTask(t, "MGR001", "h1", "Hermes")
	f.createTask(t, "MGR001", "loose", "")
	f.createTask(t, "MGR002", "z1", "Apollo")

	for _, task := range []*domain.Task{a1, h1} {
		_, err := f.tasks.Assign(ctx, task.ID, []string{"EMP005"}, "MGR001")
		require.NoError(t, err)
	}
	_, err := f.tasks.AdvanceStatus(ctx, h1.ID, "EMP005", domain.TaskStatusInProgress)
	require.NoError(t, err)
	_, err = f.tasks.AdvanceStatus(ctx, h1.ID, "EMP005", domain.TaskStatusCompleted)
	require.NoError(t, err)

	summary, err := f.projects.Summary(ctx, "MGR001")
	require.NoError(t, err)
	assert.Equal(t, []ProjectSummary{
		{ProjectName: "Apollo", TotalTasks: 2, AssignedTasks: 1},
		{ProjectName: "Hermes", TotalTasks: 1, AssignedTasks: 0},
	}, summary)

	apollo, err := f.projects.Tasks(ctx, "Apollo")
	require.NoError(t, err)
	assert.Len(t, apollo, 3, "project tasks span managers")

	projects, err := f.projects.EmployeeProjects(ctx, "EMP005")
	require.NoError(t, err)
	assert.Equal(t, []EmployeeProject{
		{ProjectName: "Apollo", ActiveTasks: 1},
		{ProjectName: "Hermes", ActiveTasks: 0},
	}, projects)

	inHermes, err := f.projects.EmployeeTasks(ctx, "EMP005", "Hermes")
	require.NoError(t, err)
	require.Len(t, inHermes, 1)
	assert.Equal(t, h1.ID, inHermes[0].ID)

	none, err := f.projects.EmployeeProjects(ctx, "EMP006")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStats(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	task := f.createTask(t, "MGR001", "Implement X", "")
	f.createTask(t, "MGR001", "Later", "")
	_, err := f.tasks.Assign(ctx, task.ID, []string{"EMP001", "EMP002"}, "MGR001")
	require.NoError(t, err)
	_, err = f.notifications.MarkAllRead(ctx, "EMP001")
	require.NoError(t, err)

	stats, err := f.stats.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, SystemStats{
		TotalEmployees:      15,
		TotalManagers:       2,
		TotalTasks:          2,
		PendingTasks:        1,
		AssignedTasks:       1,
		TotalNotifications:  2,
		UnreadNotifications: 1,
	}, stats)
}
