package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pmsdemo/pms-api/internal/api"
	apiMiddleware "github.com/pmsdemo/pms-api/internal/api/middleware"
	"github.com/pmsdemo/pms-api/internal/platform/metrics"
	"github.com/rs/cors"
)

// corsMethods are the methods the browser client may use cross-origin.
var corsMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.NewMetricsMiddleware(app.metrics))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: app.config.Server.CORSAllowedOrigins,
		AllowedMethods: corsMethods,
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{apiMiddleware.TraceHeader},
	}).Handler)

	employeeHandler := api.NewEmployeeHandler(app.employeeService, app.notificationService, app.logger)
	managerHandler := api.NewManagerHandler(app.managerService)
	taskHandler := api.NewTaskHandler(app.taskService, app.config.Import.MaxUploadBytes, app.logger)
	notificationHandler := api.NewNotificationHandler(app.notificationService, app.logger)
	projectHandler := api.NewProjectHandler(app.projectService, app.logger)
	healthHandler := api.NewHealthHandler(app.statsService)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)
		r.Route("/employees", employeeHandler.Register)
		r.Route("/managers", managerHandler.Register)
		r.Route("/tasks", taskHandler.Register)
		r.Route("/notifications", notificationHandler.Register)
		r.Route("/projects", projectHandler.Register)
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler(app.registry))

	return r
}
