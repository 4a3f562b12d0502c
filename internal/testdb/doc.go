//go:build integration

// Package testdb provides utilities for PostgreSQL integration tests.
//
// Tests run against the database named by PMS_TEST_DATABASE_URL (or
// DATABASE_URL) and are skipped when neither is set. The schema is migrated
// once per process; each test then runs inside its own transaction, which is
// rolled back when the test completes, so tests can share tables and run in
// parallel without cleanup.
//
// # Basic Usage
//
//	func TestMyStore(t *testing.T) {
//	    t.Parallel()
//	    db := testdb.Open(t)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        stores := postgres.NewStores(tx, nil)
//	        // exercise stores; nothing is committed
//	    })
//	}
//
// Files in this package carry the integration build tag, so they are only
// compiled with:
//
//	go test -tags=integration ./...
package testdb
