package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)

	p.TaskCreated(SourceAPI)
	p.TaskCreated(SourceImport)
	p.TaskCreated(SourceImport)
	p.TaskAssigned(2)
	p.NotificationsIssued(2)
	p.StatusAdvanced("In Progress")
	p.ImportFailed("Employee not found")
	p.ObserveRequest(http.MethodPost, "/api/tasks/{taskId}/assign", http.StatusOK, 15*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(p.tasksCreated.WithLabelValues(SourceAPI)))
	assert.Equal(t, 2.0, testutil.ToFloat64(p.tasksCreated.WithLabelValues(SourceImport)))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.tasksAssigned))
	assert.Equal(t, 2.0, testutil.ToFloat64(p.notifications))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.statusAdvanced.WithLabelValues("In Progress")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.importFailures.WithLabelValues("Employee not found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		p.requestsTotal.WithLabelValues(http.MethodPost, "/api/tasks/{taskId}/assign", "200")))
}

func TestHandler(t *testing.T) {
	reg := NewRegistry()
	p := NewPrometheus(reg)
	p.TaskCreated(SourceAPI)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `pms_tasks_created_total{source="api"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestOrNop(t *testing.T) {
	assert.Equal(t, Nop{}, OrNop(nil))

	p := NewPrometheus(prometheus.NewRegistry())
	assert.Same(t, p, OrNop(p))

	// Nop accepts every event without panicking
	n := OrNop(nil)
	n.TaskCreated(SourceAPI)
	n.ObserveRequest(http.MethodGet, "/", 200, time.Second)
}
