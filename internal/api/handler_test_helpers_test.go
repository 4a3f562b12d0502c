package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/pmsdemo/pms-api/internal/api/middleware"
	"github.com/pmsdemo/pms-api/internal/platform/logger"
	"github.com/pmsdemo/pms-api/internal/platform/memory"
	"github.com/pmsdemo/pms-api/internal/service"
	"github.com/pmsdemo/pms-api/internal/store"
	"github.com/stretchr/testify/require"
)

// testEnv is every handler mounted over real services and a seeded in-memory store.
type testEnv struct {
	router http.Handler
	stores store.Stores
	logs   *logger.TestLogBuffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log, logs := logger.NewTestLogger(t)
	stores := memory.New().Stores()
	require.NoError(t, store.Seed(context.Background(), stores))

	history, err := service.NewHistoryService(stores.History, log)
	require.NoError(t, err)
	notifications, err := service.NewNotificationService(stores, nil, log)
	require.NoError(t, err)
	employees, err := service.NewEmployeeService(stores.Employees, history, log)
	require.NoError(t, err)
	managers, err := service.NewManagerService(stores.Managers)
	require.NoError(t, err)
	tasks, err := service.NewTaskService(stores, notifications, history, nil, log)
	require.NoError(t, err)
	projects, err := service.NewProjectService(stores, log)
	require.NoError(t, err)
	stats, err := service.NewStatsService(stores)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(middleware.NewTraceMiddleware(log))
	r.Get("/api/health", NewHealthHandler(stats).Health)
	r.Route("/api/employees", NewEmployeeHandler(employees, notifications, log).Register)
	r.Route("/api/managers", NewManagerHandler(managers).Register)
	r.Route("/api/tasks", NewTaskHandler(tasks, 1<<20, log).Register)
	r.Route("/api/notifications", NewNotificationHandler(notifications, log).Register)
	r.Route("/api/projects", NewProjectHandler(projects, log).Register)

	return &testEnv{router: r, stores: stores, logs: logs}
}

// do sends a request with an optional JSON body and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// doJSON sends a request, checks the status, and decodes the response object.
func (e *testEnv) doJSON(t *testing.T, method, path string, body any, wantStatus int) map[string]any {
	t.Helper()

	w := e.do(t, method, path, body)
	require.Equal(t, wantStatus, w.Code, "body: %s", w.Body.String())

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// createTask posts a task for managerID and returns its id.
func (e *testEnv) createTask(t *testing.T, managerID, title, project string) int64 {
	t.Helper()

	body := map[string]any{
		"managerId":   managerID,
		"title":       title,
		"description": title + " description",
	}
	if project != "" {
		body["metadata"] = map[string]any{"projectName": project}
	}
	out := e.doJSON(t, http.MethodPost, "/api/tasks/create", body, http.StatusCreated)
	task := out["task"].(map[string]any)
	return int64(task["taskId"].(float64))
}

func asSlice(t *testing.T, v any) []any {
	t.Helper()
	s, ok := v.([]any)
	require.True(t, ok, "expected a JSON array, got %T", v)
	return s
}

func asObject(t *testing.T, v any) map[string]any {
	t.Helper()
	m, ok := v.(map[string]any)
	require.True(t, ok, "expected a JSON object, got %T", v)
	return m
}
