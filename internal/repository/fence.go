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

// fenceColumns is the shared list of columns for fence queries.
var fenceColumns = []string{
	"id", "page_id", "ordinal", "lang", "section", "line", "content",
}

// FenceRepository handles database operations for code fences.
type FenceRepository struct {
	pool *pgxpool.Pool
}

// NewFenceRepository creates a new FenceRepository.
func NewFenceRepository(pool *pgxpool.Pool) *FenceRepository {
	return &FenceRepository{pool: pool}
}

func scanFence(row pgx.Row) (*domain.CodeFence, error) {
	var fence domain.CodeFence
	err := row.Scan(
		&fence.ID,
		&fence.PageID,
		&fence.Ordinal,
		&fence.Lang,
		&fence.Section,
		&fence.Line,
		&fence.Content,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFenceNotFound
		}
		return nil, fmt.Errorf("scan fence: %w", err)
	}
	return &fence, nil
}

// ReplaceForPage swaps a page's fences for the given set, within a
// transaction. Fences are immutable between syncs, so delete-and-insert
// keeps ordinals dense without diffing.
func (r *FenceRepository) ReplaceForPage(ctx context.Context, tx pgx.Tx, pageID string, fences []*domain.CodeFence) error {
	deleteQuery, deleteArgs, err := psql.
		Delete("fences").
		Where(sq.Eq{"page_id": pageID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query for fences of page %s: %w", pageID, err)
	}
	if _, err := tx.Exec(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete fences of page %s: %w", pageID, err)
	}

	if len(fences) == 0 {
		return nil
	}

	builder := psql.
		Insert("fences").
		Columns("page_id", "ordinal", "lang", "section", "line", "content")
	for _, fence := range fences {
		builder = builder.Values(pageID, fence.Ordinal, fence.Lang, fence.Section, fence.Line, fence.Content)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build insert query for fences of page %s: %w", pageID, err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert fences of page %s: %w", pageID, err)
	}

	return nil
}

// ListByPage retrieves all fences of a page in document order.
func (r *FenceRepository) ListByPage(ctx context.Context, pageID string) ([]*domain.CodeFence, error) {
	query, args, err := psql.
		Select(fenceColumns...).
		From("fences").
		Where(sq.Eq{"page_id": pageID}).
		OrderBy("ordinal").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListByPage query for fences: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query fences: %w", err)
	}
	defer rows.Close()

	var fences []*domain.CodeFence
	for rows.Next() {
		fence, err := scanFence(rows)
		if err != nil {
			return nil, err
		}
		fences = append(fences, fence)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return fences, nil
}

// GetByOrdinal retrieves one fence of a page by its document position.
func (r *FenceRepository) GetByOrdinal(ctx context.Context, pageID string, ordinal int) (*domain.CodeFence, error) {
	query, args, err := psql.
		Select(fenceColumns...).
		From("fences").
		Where(sq.Eq{"page_id": pageID, "ordinal": ordinal}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByOrdinal query for fence: %w", err)
	}

	return scanFence(r.pool.QueryRow(ctx, query, args...))
}
