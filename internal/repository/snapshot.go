package repository

import (
	"context"
	"fmt"
	"time"

	"coolpc/catalog/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SnapshotRepository archives fetched catalog snapshots. One row per fetch,
// the whole document as jsonb.
type SnapshotRepository interface {
	SaveSnapshot(ctx context.Context, fetchedAt time.Time, categories []domain.Category) error
}

type snapshotRepository struct {
	db *pgxpool.Pool
}

func NewSnapshotRepository(db *pgxpool.Pool) SnapshotRepository {
	return &snapshotRepository{
		db: db,
	}
}

func (r *snapshotRepository) SaveSnapshot(ctx context.Context, fetchedAt time.Time, categories []domain.Category) error {
	query := `
	INSERT INTO catalog_snapshots (fetched_at, data)
	VALUES ($1, $2)
	ON CONFLICT (fetched_at)
	DO UPDATE SET data = $2`
	_, err := r.db.Exec(ctx, query, fetchedAt, categories)
	if err != nil {
		return fmt.Errorf("failed to save catalog snapshot: %w", err)
	}

	return nil
}
