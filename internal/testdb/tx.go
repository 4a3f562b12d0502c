//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"
)

const txTimeout = 10 * time.Second

// WithTx hands fn a transaction that is rolled back once fn returns, so
// nothing a test writes is ever committed. Panics still roll back.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), txTimeout)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}
	defer discard(t, tx)

	fn(t, tx)
}

func discard(t *testing.T, tx *sql.Tx) {
	p := recover()
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		t.Logf("Warning: failed to rollback transaction: %v", err)
	}
	if p != nil {
		panic(p)
	}
}
