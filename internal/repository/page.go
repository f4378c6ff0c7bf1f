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

// pageColumns is the shared list of columns for page queries.
var pageColumns = []string{
	"id", "slug", "category", "path", "title", "summary", "draft", "tags",
	"body", "checksum", "synced_at", "created_at", "updated_at",
}

// PageRepository handles database operations for pages.
type PageRepository struct {
	pool *pgxpool.Pool
}

// NewPageRepository creates a new PageRepository.
func NewPageRepository(pool *pgxpool.Pool) *PageRepository {
	return &PageRepository{pool: pool}
}

// scanPage scans a single row into a Page struct.
func scanPage(row pgx.Row) (*domain.Page, error) {
	var page domain.Page
	err := row.Scan(
		&page.ID,
		&page.Slug,
		&page.Category,
		&page.Path,
		&page.Title,
		&page.Summary,
		&page.Draft,
		&page.Tags,
		&page.Body,
		&page.Checksum,
		&page.SyncedAt,
		&page.CreatedAt,
		&page.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPageNotFound
		}
		return nil, fmt.Errorf("scan page: %w", err)
	}
	return &page, nil
}

// scanPages scans multiple rows into a slice of Page structs.
func scanPages(rows pgx.Rows) ([]*domain.Page, error) {
	defer rows.Close()

	var pages []*domain.Page
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return pages, nil
}

// GetBySlug retrieves a page by its slug.
func (r *PageRepository) GetBySlug(ctx context.Context, slug string) (*domain.Page, error) {
	query, args, err := psql.
		Select(pageColumns...).
		From("pages").
		Where(sq.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetBySlug query for page: %w", err)
	}

	return scanPage(r.pool.QueryRow(ctx, query, args...))
}

// Upsert inserts the page or updates the existing row claimed by the same
// slug, within a transaction. ID and timestamps are populated on return.
func (r *PageRepository) Upsert(ctx context.Context, tx pgx.Tx, page *domain.Page) (*domain.Page, error) {
	if page.Tags == nil {
		page.Tags = []string{}
	}

	query, args, err := psql.
		Insert("pages").
		Columns("slug", "category", "path", "title", "summary", "draft", "tags", "body", "checksum").
		Values(
			page.Slug,
			page.Category,
			page.Path,
			page.Title,
			page.Summary,
			page.Draft,
			page.Tags,
			page.Body,
			page.Checksum,
		).
		Suffix(`ON CONFLICT (slug) DO UPDATE SET
			category = EXCLUDED.category,
			path = EXCLUDED.path,
			title = EXCLUDED.title,
			summary = EXCLUDED.summary,
			draft = EXCLUDED.draft,
			tags = EXCLUDED.tags,
			body = EXCLUDED.body,
			checksum = EXCLUDED.checksum,
			synced_at = NOW(),
			updated_at = NOW()
		RETURNING id, synced_at, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Upsert query for page %s: %w", page.Slug, err)
	}

	err = tx.QueryRow(ctx, query, args...).Scan(&page.ID, &page.SyncedAt, &page.CreatedAt, &page.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert page %s: %w", page.Slug, err)
	}

	return page, nil
}

// ListChecksums returns slug -> checksum for every indexed page, used by sync
// to short-circuit unchanged pages.
func (r *PageRepository) ListChecksums(ctx context.Context) (map[string]string, error) {
	query, args, err := psql.
		Select("slug", "checksum").
		From("pages").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListChecksums query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query checksums: %w", err)
	}
	defer rows.Close()

	checksums := make(map[string]string)
	for rows.Next() {
		var slug, checksum string
		if err := rows.Scan(&slug, &checksum); err != nil {
			return nil, fmt.Errorf("scan checksum row: %w", err)
		}
		checksums[slug] = checksum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return checksums, nil
}

// DeleteMissing removes pages whose slug is not in the given set. Called
// after a successful full sync to prune pages deleted from the corpus.
// Returns the number of pruned pages.
func (r *PageRepository) DeleteMissing(ctx context.Context, keepSlugs []string) (int64, error) {
	builder := psql.Delete("pages")
	if len(keepSlugs) > 0 {
		builder = builder.Where(sq.NotEq{"slug": keepSlugs})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build DeleteMissing query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete missing pages: %w", err)
	}
	return tag.RowsAffected(), nil
}
