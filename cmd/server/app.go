package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pmsdemo/pms-api/internal/config"
	"github.com/pmsdemo/pms-api/internal/platform/filestore"
	"github.com/pmsdemo/pms-api/internal/platform/memory"
	"github.com/pmsdemo/pms-api/internal/platform/metrics"
	"github.com/pmsdemo/pms-api/internal/platform/postgres"
	"github.com/pmsdemo/pms-api/internal/service"
	"github.com/pmsdemo/pms-api/internal/store"
	"github.com/prometheus/client_golang/prometheus"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is only set for the postgres driver.
	db     *sql.DB
	stores store.Stores

	registry *prometheus.Registry
	metrics  *metrics.Prometheus

	historyService      service.HistoryService
	notificationService service.NotificationService
	employeeService     service.EmployeeService
	managerService      service.ManagerService
	taskService         service.TaskService
	projectService      service.ProjectService
	statsService        service.StatsService
}

// newApplication opens the configured storage backend and wires every service.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		registry: metrics.NewRegistry(),
	}
	app.metrics = metrics.NewPrometheus(app.registry)

	if err := app.openStorage(ctx); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		app.cleanup()
		return nil, err
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// openStorage builds the record store selected by storage.driver and seeds it
// when seeding is enabled.
func (app *application) openStorage(ctx context.Context) error {
	cfg := app.config.Storage

	switch cfg.Driver {
	case config.DriverMemory:
		app.stores = memory.New().Stores()

	case config.DriverFile:
		db, err := filestore.Open(cfg.FilePath, app.logger)
		if err != nil {
			return fmt.Errorf("failed to open file store: %w", err)
		}
		app.stores = db.Stores()

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, app.config.Database.URL)
		if err != nil {
			return err
		}
		app.db = db
		app.stores = postgres.NewStores(db, app.logger)
		app.logger.Info("Database connection established")

	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}

	if !cfg.Seed {
		return nil
	}

	var err error
	if app.db != nil {
		err = postgres.Seed(ctx, app.db, app.logger)
	} else {
		err = store.Seed(ctx, app.stores)
	}
	if err != nil {
		app.cleanup()
		return fmt.Errorf("failed to seed store: %w", err)
	}
	app.logger.Info("Store seeded", "driver", cfg.Driver)
	return nil
}

func (app *application) initServices() error {
	var err error

	app.historyService, err = service.NewHistoryService(app.stores.History, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create history service: %w", err)
	}

	app.notificationService, err = service.NewNotificationService(app.stores, app.metrics, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create notification service: %w", err)
	}

	app.employeeService, err = service.NewEmployeeService(app.stores.Employees, app.historyService, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create employee service: %w", err)
	}

	app.managerService, err = service.NewManagerService(app.stores.Managers)
	if err != nil {
		return fmt.Errorf("failed to create manager service: %w", err)
	}

	app.taskService, err = service.NewTaskService(
		app.stores,
		app.notificationService,
		app.historyService,
		app.metrics,
		app.logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create task service: %w", err)
	}

	app.projectService, err = service.NewProjectService(app.stores, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create project service: %w", err)
	}

	app.statsService, err = service.NewStatsService(app.stores)
	if err != nil {
		return fmt.Errorf("failed to create stats service: %w", err)
	}

	return nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup releases storage resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
		app.db = nil
	}

	app.logger.Info("Application shutdown completed")
}
