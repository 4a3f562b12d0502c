package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pmsdemo/pms-api/internal/platform/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	method, route string
	status        int
}

type recordingRecorder struct {
	metrics.Nop
	mu  sync.Mutex
	obs []observation
}

func (r *recordingRecorder) ObserveRequest(method, route string, status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.obs = append(r.obs, observation{method, route, status})
}

func TestMetricsMiddlewareRecordsRoutePattern(t *testing.T) {
	rec := &recordingRecorder{}

	r := chi.NewRouter()
	r.Use(NewMetricsMiddleware(rec))
	r.Route("/api/tasks", func(r chi.Router) {
		r.Get("/{taskId}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		r.Post("/create", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{}"))
		})
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/tasks/42", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/tasks/create", nil))

	require.Len(t, rec.obs, 2)
	assert.Equal(t, observation{http.MethodGet, "/api/tasks/{taskId}", http.StatusNotFound}, rec.obs[0])
	assert.Equal(t, observation{http.MethodPost, "/api/tasks/create", http.StatusOK}, rec.obs[1])
}

func TestMetricsMiddlewareWithoutRouter(t *testing.T) {
	rec := &recordingRecorder{}
	handler := NewMetricsMiddleware(rec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	require.Len(t, rec.obs, 1)
	assert.Equal(t, unmatchedRoute, rec.obs[0].route)
	assert.Equal(t, http.StatusTeapot, rec.obs[0].status)
}
