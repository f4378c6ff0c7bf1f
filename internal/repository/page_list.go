package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/tmplhub/tmplhub/internal/domain"
)

// PageFilters narrows the page list query.
type PageFilters struct {
	Category *domain.Category
	Lang     *string // pages carrying at least one fence with this language
	Query    *string // ILIKE over slug, title, summary
	Draft    *bool
	Limit    int
	Offset   int
}

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// List retrieves pages matching the filters plus the unpaginated total.
func (r *PageRepository) List(ctx context.Context, filters PageFilters) ([]*domain.Page, int, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	offset := filters.Offset
	if offset < 0 {
		offset = 0
	}

	base := psql.
		Select(pageColumns...).
		From("pages")
	base = applyPageFilters(base, filters)

	query, args, err := base.
		OrderBy("category", "slug").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build List query for pages: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query pages: %w", err)
	}

	pages, err := scanPages(rows)
	if err != nil {
		return nil, 0, err
	}

	countBuilder := applyPageFilters(psql.Select("COUNT(*)").From("pages"), filters)
	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query for pages: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count pages: %w", err)
	}

	return pages, total, nil
}

func applyPageFilters(builder sq.SelectBuilder, filters PageFilters) sq.SelectBuilder {
	if filters.Category != nil {
		builder = builder.Where(sq.Eq{"category": *filters.Category})
	}
	if filters.Draft != nil {
		builder = builder.Where(sq.Eq{"draft": *filters.Draft})
	}
	if filters.Lang != nil {
		builder = builder.Where(
			"EXISTS (SELECT 1 FROM fences f WHERE f.page_id = pages.id AND f.lang = ?)",
			*filters.Lang,
		)
	}
	if filters.Query != nil {
		pattern := "%" + *filters.Query + "%"
		builder = builder.Where(
			sq.Or{
				sq.ILike{"slug": pattern},
				sq.ILike{"title": pattern},
				sq.ILike{"summary": pattern},
			},
		)
	}
	return builder
}
