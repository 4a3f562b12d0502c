package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/pmsdemo/pms-api/internal/platform/logger"
	"github.com/pmsdemo/pms-api/internal/platform/memory"
	"github.com/pmsdemo/pms-api/internal/store"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, time.March, 3, 17, 45, 0, 0, time.UTC)

// stepClock returns baseTime and advances one second per call.
type stepClock struct {
	mu sync.Mutex
	n  int
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := baseTime.Add(time.Duration(c.n) * time.Second)
	c.n++
	return t
}

// recordingMetrics counts the events a service reports.
type recordingMetrics struct {
	mu            sync.Mutex
	created       map[string]int
	assigned      int
	notifications int
	advanced      map[string]int
	importFailed  map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		created:      map[string]int{},
		advanced:     map[string]int{},
		importFailed: map[string]int{},
	}
}

func (r *recordingMetrics) TaskCreated(source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created[source]++
}

func (r *recordingMetrics) TaskAssigned(int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assigned++
}

func (r *recordingMetrics) NotificationsIssued(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications += n
}

func (r *recordingMetrics) StatusAdvanced(to string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.advanced[to]++
}

func (r *recordingMetrics) ImportFailed(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.importFailed[reason]++
}

func (r *recordingMetrics) ObserveRequest(string, string, int, time.Duration) {}

type fixture struct {
	db            *memory.DB
	stores        store.Stores
	metrics       *recordingMetrics
	history       HistoryService
	notifications NotificationService
	employees     EmployeeService
	tasks         TaskService
	projects      ProjectService
	stats         StatsService
}

// newFixture wires every service over a seeded in-memory store.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	log, _ := logger.NewTestLogger(t)
	db := memory.New()
	stores := db.Stores()
	require.NoError(t, store.Seed(context.Background(), stores))

	clock := &stepClock{}
	rec := newRecordingMetrics()

	history, err := NewHistoryService(stores.History, log)
	require.NoError(t, err)

	notifications, err := NewNotificationService(stores, rec, log)
	require.NoError(t, err)
	notifications.(*notificationServiceImpl).now = clock.Now

	employees, err := NewEmployeeService(stores.Employees, history, log)
	require.NoError(t, err)

	tasks, err := NewTaskService(stores, notifications, history, rec, log)
	require.NoError(t, err)
	tasks.(*taskServiceImpl).now = clock.Now

	projects, err := NewProjectService(stores, log)
	require.NoError(t, err)
	projects.(*projectServiceImpl).now = clock.Now

	stats, err := NewStatsService(stores)
	require.NoError(t, err)

	return &fixture{
		db:            db,
		stores:        stores,
		metrics:       rec,
		history:       history,
		notifications: notifications,
		employees:     employees,
		tasks:         tasks,
		projects:      projects,
		stats:         stats,
	}
}

func (f *fixture) createTask(t *testing.T, managerID, title, project string) *domain.Task {
	t.Helper()

	draft := domain.TaskDraft{Title: title, Description: title + " description"}
	if project != "" {
		draft.Metadata = domain.Metadata{domain.MetadataProjectName: project}
	}
	task, err := f.tasks.Create(context.Background(), managerID, draft)
	require.NoError(t, err)
	return task
}

func (f *fixture) employee(t *testing.T, id string) *domain.Employee {
	t.Helper()

	e, err := f.stores.Employees.GetByID(context.Background(), id)
	require.NoError(t, err)
	return e
}
