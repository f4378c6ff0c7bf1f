package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tmplhub/tmplhub/internal/domain"
)

// syncRunColumns is the shared list of columns for sync run queries.
var syncRunColumns = []string{
	"id", "source", "started_at", "finished_at", "pages_seen", "pages_synced",
	"pages_failed", "errors_count", "warnings_count",
}

// SyncRunRepository handles database operations for sync runs.
type SyncRunRepository struct {
	pool *pgxpool.Pool
}

// NewSyncRunRepository creates a new SyncRunRepository.
func NewSyncRunRepository(pool *pgxpool.Pool) *SyncRunRepository {
	return &SyncRunRepository{pool: pool}
}

func scanSyncRun(row pgx.Row) (*domain.SyncRun, error) {
	var run domain.SyncRun
	err := row.Scan(
		&run.ID,
		&run.Source,
		&run.StartedAt,
		&run.FinishedAt,
		&run.PagesSeen,
		&run.PagesSynced,
		&run.PagesFailed,
		&run.ErrorsCount,
		&run.WarningsCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSyncRunNotFound
		}
		return nil, fmt.Errorf("scan sync run: %w", err)
	}
	return &run, nil
}

// Create starts a new sync run record.
func (r *SyncRunRepository) Create(ctx context.Context, source string) (*domain.SyncRun, error) {
	query, args, err := psql.
		Insert("sync_runs").
		Columns("source").
		Values(source).
		Suffix("RETURNING id, started_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for sync run: %w", err)
	}

	run := &domain.SyncRun{Source: source}
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&run.ID, &run.StartedAt); err != nil {
		return nil, fmt.Errorf("create sync run: %w", err)
	}
	return run, nil
}

// Finish finalizes a sync run with its counters.
func (r *SyncRunRepository) Finish(ctx context.Context, run *domain.SyncRun) error {
	query, args, err := psql.
		Update("sync_runs").
		Set("finished_at", sq.Expr("NOW()")).
		Set("pages_seen", run.PagesSeen).
		Set("pages_synced", run.PagesSynced).
		Set("pages_failed", run.PagesFailed).
		Set("errors_count", run.ErrorsCount).
		Set("warnings_count", run.WarningsCount).
		Where(sq.Eq{"id": run.ID}).
		Suffix("RETURNING finished_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build Finish query for sync run %s: %w", run.ID, err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&run.FinishedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrSyncRunNotFound
		}
		return fmt.Errorf("finish sync run %s: %w", run.ID, err)
	}
	return nil
}

// Latest retrieves the most recently started sync run.
func (r *SyncRunRepository) Latest(ctx context.Context) (*domain.SyncRun, error) {
	query, args, err := psql.
		Select(syncRunColumns...).
		From("sync_runs").
		OrderBy("started_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Latest query for sync run: %w", err)
	}

	return scanSyncRun(r.pool.QueryRow(ctx, query, args...))
}
