package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	out := env.doJSON(t, http.MethodGet, "/api/health", nil, http.StatusOK)
	assert.Equal(t, "healthy", out["status"])
	assert.Equal(t, ServiceName, out["service"])
	assert.Equal(t, ServiceVersion, out["version"])
	assert.NotContains(t, out, "success")

	stats := asObject(t, out["stats"])
	assert.Equal(t, float64(15), stats["totalEmployees"])
	assert.Equal(t, float64(2), stats["totalManagers"])
	assert.Equal(t, float64(0), stats["totalTasks"])
}

func TestListEmployees(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	out := env.doJSON(t, http.MethodGet, "/api/employees", nil, http.StatusOK)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, float64(15), out["count"])

	first := asObject(t, asSlice(t, out["data"])[0])
	assert.Equal(t, "EMP001", first["employeeId"])
	assert.Equal(t, "Aniket Baral", first["employeeName"])
	assert.Equal(t, "2026-01-14", first["date"])
	summary := asObject(t, first["taskHistorySummary"])
	assert.Equal(t, float64(0), summary["totalTasks"])
}

func TestGetEmployee(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	out := env.doJSON(t, http.MethodGet, "/api/employees/EMP001", nil, http.StatusOK)
	data := asObject(t, out["data"])
	assert.Equal(t, "arun.kumar@company.com", data["email"])
	assert.Equal(t, float64(0), data["noOfActiveProjects"])
	assert.Equal(t, "Available", data["availabilityStatus"])

	missing := env.doJSON(t, http.MethodGet, "/api/employees/EMP999", nil, http.StatusNotFound)
	assert.Equal(t, "Employee not found", missing["error"])
	assert.Equal(t, false, missing["success"])
}

func TestEmployeeRanking(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	for i, title := range []string{"One", "Two"} {
		id := env.createTask(t, "MGR001", title, "")
		env.doJSON(t, http.MethodPost, fmt.Sprintf("/api/tasks/%d/assign", id), map[string]any{
			"managerId":   "MGR001",
			"employeeIds": []string{"EMP001"},
		}, http.StatusOK)
		if i == 0 {
			env.doJSON(t, http.MethodPost, fmt.Sprintf("/api/tasks/%d/assign", env.createTask(t, "MGR001", "Three", "")),
				map[string]any{"managerId": "MGR001", "employeeIds": []string{"EMP002"}}, http.StatusOK)
		}
	}

	out := env.doJSON(t, http.MethodGet, "/api/employees/ranking", nil, http.StatusOK)
	assert.Equal(t, rankingDescription, out["description"])
	assert.Equal(t, float64(15), out["count"])

	ranked := asSlice(t, out["data"])
	require.Len(t, ranked, 15)
	top := asObject(t, ranked[0])
	assert.Equal(t, float64(1), top["rank"])
	assert.Equal(t, "EMP003", top["employeeId"], "ties keep directory order")
	assert.Equal(t, "Available", top["availabilityStatus"])

	assert.Equal(t, "EMP002", asObject(t, ranked[13])["employeeId"])
	bottom := asObject(t, ranked[14])
	assert.Equal(t, "EMP001", bottom["employeeId"])
	assert.Equal(t, float64(2), bottom["noOfActiveProjects"])
	assert.Equal(t, "Low Load", bottom["availabilityStatus"])
	assert.Equal(t, "Two", bottom["currentTaskDetails"])

	for i, r := range ranked {
		assert.Equal(t, float64(i+1), asObject(t, r)["rank"])
	}
}

func TestEmployeeProfiles(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	all := env.doJSON(t, http.MethodGet, "/api/employees/profile", nil, http.StatusOK)
	assert.Equal(t, float64(15), all["count"])

	one := env.doJSON(t, http.MethodGet, "/api/employees/profile/EMP001", nil, http.StatusOK)
	profile := asObject(t, one["data"])
	assert.Equal(t, "EMP001", profile["id"])
	assert.Equal(t, "Aniket Baral", profile["name"])
	assert.Equal(t, "Backend Engineer", profile["designation"])

	env.doJSON(t, http.MethodGet, "/api/employees/profile/EMP404", nil, http.StatusNotFound)
}

func TestEmployeeTaskHistory(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	id := env.createTask(t, "MGR002", "Review schema", "Hermes")
	env.doJSON(t, http.MethodPost, fmt.Sprintf("/api/tasks/%d/assign", id), map[string]any{
		"managerId": "MGR002", "employeeIds": []string{"EMP004"},
	}, http.StatusOK)

	out := env.doJSON(t, http.MethodGet, "/api/employees/EMP004/task-history", nil, http.StatusOK)

	emp := asObject(t, out["employee"])
	assert.Equal(t, "S Harsha", emp["employeeName"])
	assert.Equal(t, "Review schema", emp["currentTaskDetails"])
	assert.Equal(t, float64(1), emp["noOfActiveProjects"])

	history := asObject(t, out["taskHistory"])
	assert.Equal(t, float64(1), history["activeCount"])
	assert.Empty(t, asSlice(t, history["completedTasks"]))
	entry := asObject(t, asSlice(t, history["activeTasks"])[0])
	assert.Equal(t, "Review schema", entry["taskTitle"])
	assert.Equal(t, "Sunita Reddy", entry["managerName"])
	assert.Equal(t, "Assigned", entry["status"])
	assert.Nil(t, entry["completedAt"])

	summary := asObject(t, out["summary"])
	assert.Equal(t, float64(1), summary["totalTasksAssigned"])
	assert.Equal(t, float64(1), summary["currentlyActive"])

	env.doJSON(t, http.MethodGet, "/api/employees/EMP404/task-history", nil, http.StatusNotFound)
}

func TestEmployeeNotificationsFilter(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	out := env.doJSON(t, http.MethodGet, "/api/employees/EMP005/notifications?unread_only=true", nil, http.StatusOK)
	assert.Equal(t, true, out["unreadOnly"])
	assert.Equal(t, float64(0), out["count"])
	assert.Equal(t, "Tanishka Singh", asObject(t, out["employee"])["employeeName"])

	bad := env.doJSON(t, http.MethodGet, "/api/employees/EMP005/notifications?unread_only=maybe", nil, http.StatusBadRequest)
	assert.Equal(t, "Invalid unread_only: must be true or false", bad["error"])
}

func TestManagers(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	out := env.doJSON(t, http.MethodGet, "/api/managers", nil, http.StatusOK)
	assert.Equal(t, float64(2), out["count"])

	one := env.doJSON(t, http.MethodGet, "/api/managers/MGR002", nil, http.StatusOK)
	assert.Equal(t, "Sunita Reddy", asObject(t, one["data"])["managerName"])

	missing := env.doJSON(t, http.MethodGet, "/api/managers/MGR404", nil, http.StatusNotFound)
	assert.Equal(t, "Manager not found", missing["error"])
}
