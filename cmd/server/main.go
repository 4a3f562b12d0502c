// Package main implements the entry point for the PMS API server, which
// assigns manager-created tasks to employees ranked by current workload.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// options are the command-line flags of the server binary.
type options struct {
	// migrateCmd runs a goose command (up, down, status, version, reset) and exits.
	migrateCmd string
	// verbose forces debug logging regardless of the configured level.
	verbose bool
	// seed overrides storage.seed when set explicitly.
	seed *bool
}

// parseFlags reads the server flags from args (without the program name).
func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("pms-server", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.migrateCmd, "migrate", "", "Run database migrations (up|down|status|version|reset) and exit")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")
	seed := fs.Bool("seed", true, "Seed demo employees and managers into an empty store")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.seed = seed
		}
	})
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		log.Fatalf("pms-api: %v", err)
	}
}

// run loads configuration and either executes a migration command or serves HTTP
// until ctx is cancelled.
func run(ctx context.Context, opts options) error {
	cfg, err := loadAppConfig(opts)
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg, opts.verbose)
	if err != nil {
		return err
	}

	if opts.migrateCmd != "" {
		return handleMigrations(ctx, cfg, opts.migrateCmd, logger)
	}

	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	slog.Info("PMS API starting",
		"port", cfg.Server.Port,
		"storage_driver", cfg.Storage.Driver)
	return app.Run(ctx)
}
