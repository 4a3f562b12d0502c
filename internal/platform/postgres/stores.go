package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	// registers the "pgx" database/sql driver
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pmsdemo/pms-api/internal/store"
)

// Open establishes a connection pool and verifies it with a ping.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// NewStores builds every collection over db, which may be a pool or a transaction.
func NewStores(db store.DBTX, logger *slog.Logger) store.Stores {
	seq := NewPostgresSequencer(db)
	return store.Stores{
		Employees:     NewPostgresEmployeeStore(db, logger),
		Managers:      NewPostgresManagerStore(db, logger),
		Tasks:         NewPostgresTaskStore(db, seq, logger),
		Notifications: NewPostgresNotificationStore(db, seq, logger),
		History:       NewPostgresHistoryStore(db, logger),
		Projects:      NewPostgresProjectStore(db, seq, logger),
		Sequencer:     seq,
	}
}

// Seed loads the default directory inside one transaction.
func Seed(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		return store.Seed(ctx, NewStores(tx, logger))
	})
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
