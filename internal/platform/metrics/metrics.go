// Package metrics exposes Prometheus counters for task assignment activity
// and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pms"

// Task creation sources.
const (
	SourceAPI    = "api"
	SourceImport = "import"
)

// Recorder receives domain and transport events. Services accept a nil
// Recorder and fall back to Nop.
type Recorder interface {
	TaskCreated(source string)
	TaskAssigned(assignees int)
	NotificationsIssued(n int)
	StatusAdvanced(to string)
	ImportFailed(reason string)
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// Nop discards every event.
type Nop struct{}

func (Nop) TaskCreated(string)                                {}
func (Nop) TaskAssigned(int)                                  {}
func (Nop) NotificationsIssued(int)                           {}
func (Nop) StatusAdvanced(string)                             {}
func (Nop) ImportFailed(string)                               {}
func (Nop) ObserveRequest(string, string, int, time.Duration) {}

// OrNop returns r, or Nop when r is nil.
func OrNop(r Recorder) Recorder {
	if r == nil {
		return Nop{}
	}
	return r
}

// Prometheus implements Recorder with collectors registered on one registry.
type Prometheus struct {
	tasksCreated    *prometheus.CounterVec
	tasksAssigned   prometheus.Counter
	assignees       prometheus.Histogram
	notifications   prometheus.Counter
	statusAdvanced  *prometheus.CounterVec
	importFailures  *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

var _ Recorder = (*Prometheus)(nil)

// NewPrometheus creates the collectors and registers them on reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		tasksCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_created_total",
			Help:      "Total number of tasks created, by source.",
		}, []string{"source"}),
		tasksAssigned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_assigned_total",
			Help:      "Total number of successful task assignments.",
		}),
		assignees: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assignment_size",
			Help:      "Number of employees selected per assignment.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13},
		}),
		notifications: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_issued_total",
			Help:      "Total number of notifications issued.",
		}),
		statusAdvanced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "task_status_transitions_total",
			Help:      "Total number of task status transitions, by target status.",
		}, []string{"status"}),
		importFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_failures_total",
			Help:      "Total number of rejected import candidates, by reason.",
		}, []string{"reason"}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency distribution of HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		p.tasksCreated,
		p.tasksAssigned,
		p.assignees,
		p.notifications,
		p.statusAdvanced,
		p.importFailures,
		p.requestsTotal,
		p.requestDuration,
	)
	return p
}

// NewRegistry returns a registry carrying the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler serves the exposition format for g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func (p *Prometheus) TaskCreated(source string) {
	p.tasksCreated.WithLabelValues(source).Inc()
}

func (p *Prometheus) TaskAssigned(assignees int) {
	p.tasksAssigned.Inc()
	p.assignees.Observe(float64(assignees))
}

func (p *Prometheus) NotificationsIssued(n int) {
	p.notifications.Add(float64(n))
}

func (p *Prometheus) StatusAdvanced(to string) {
	p.statusAdvanced.WithLabelValues(to).Inc()
}

func (p *Prometheus) ImportFailed(reason string) {
	p.importFailures.WithLabelValues(reason).Inc()
}

func (p *Prometheus) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	p.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
