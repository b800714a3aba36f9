package postgresql

import (
	"context"
	"fmt"

	"github.com/freightlink/portal/internal/db"
	"github.com/freightlink/portal/internal/repository"
	"github.com/freightlink/portal/internal/storage"
)

type SequenceRepo struct {
	db db.DB
}

func NewSequenceRepo(db db.DB) storage.SequenceRepository {
	return &SequenceRepo{db: db}
}

// The upsert-increment is a single statement, so two concurrent callers for
// the same kind serialize on the row and can never observe the same value.
const nextValueQuery = `
        INSERT INTO sequences (kind, value) VALUES ($1, 1)
        ON CONFLICT (kind) DO UPDATE SET value = sequences.value + 1
        RETURNING value
    `

func (r *SequenceRepo) Next(ctx context.Context, kind repository.SequenceKind) (int64, error) {
	var value int64
	if err := r.db.ExecQueryRow(ctx, nextValueQuery, string(kind)).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to advance sequence %q: %w", kind, err)
	}
	return value, nil
}

func (r *SequenceRepo) NextTx(ctx context.Context, tx db.Tx, kind repository.SequenceKind) (int64, error) {
	var value int64
	if err := tx.ExecQueryRow(ctx, nextValueQuery, string(kind)).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to advance sequence %q: %w", kind, err)
	}
	return value, nil
}
