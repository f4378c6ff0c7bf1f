package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StatsRepository aggregates corpus statistics.
type StatsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

// PageCountsByCategory returns category -> page count.
func (r *StatsRepository) PageCountsByCategory(ctx context.Context) (map[string]int, error) {
	query, args, err := psql.
		Select("category", "COUNT(*)").
		From("pages").
		GroupBy("category").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build PageCountsByCategory query: %w", err)
	}
	return r.countMap(ctx, query, args)
}

// FenceCountsByLang returns language tag -> fence count.
func (r *StatsRepository) FenceCountsByLang(ctx context.Context) (map[string]int, error) {
	query, args, err := psql.
		Select("lang", "COUNT(*)").
		From("fences").
		GroupBy("lang").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build FenceCountsByLang query: %w", err)
	}
	return r.countMap(ctx, query, args)
}

// IssueCountsBySeverity returns severity -> issue count for the current
// issues.
func (r *StatsRepository) IssueCountsBySeverity(ctx context.Context) (map[string]int, error) {
	query, args, err := psql.
		Select("severity", "COUNT(*)").
		From("lint_issues").
		GroupBy("severity").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build IssueCountsBySeverity query: %w", err)
	}
	return r.countMap(ctx, query, args)
}

// countMap runs a two-column (key, count) aggregation query.
func (r *StatsRepository) countMap(ctx context.Context, query string, args []interface{}) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("scan count row: %w", err)
		}
		counts[key] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return counts, nil
}
