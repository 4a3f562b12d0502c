package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pmsdemo/pms-api/internal/store"
)

// PostgresSequencer implements store.Sequencer on the counters table.
// The increment happens in a single UPDATE, so concurrent callers never share an ID.
type PostgresSequencer struct {
	db store.DBTX
}

// NewPostgresSequencer creates a sequencer over a connection or transaction.
func NewPostgresSequencer(db store.DBTX) *PostgresSequencer {
	return &PostgresSequencer{db: db}
}

var _ store.Sequencer = (*PostgresSequencer)(nil)

// NextID implements store.Sequencer.NextID
func (s *PostgresSequencer) NextID(ctx context.Context, counter string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`UPDATE counters SET value = value + 1 WHERE name = $1 RETURNING value`,
		counter,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s", store.ErrUnknownCounter, counter)
		}
		return 0, MapError(err)
	}
	return id, nil
}
