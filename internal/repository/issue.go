package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tmplhub/tmplhub/internal/domain"
)

// issueColumns is the shared list of columns for lint issue queries.
var issueColumns = []string{
	"id", "page_id", "path", "code", "severity", "message", "line",
	"sync_run_id", "created_at",
}

// IssueRepository handles database operations for lint issues.
type IssueRepository struct {
	pool *pgxpool.Pool
}

// NewIssueRepository creates a new IssueRepository.
func NewIssueRepository(pool *pgxpool.Pool) *IssueRepository {
	return &IssueRepository{pool: pool}
}

func scanIssue(row pgx.Row) (*domain.LintIssue, error) {
	var issue domain.LintIssue
	err := row.Scan(
		&issue.ID,
		&issue.PageID,
		&issue.Path,
		&issue.Code,
		&issue.Severity,
		&issue.Message,
		&issue.Line,
		&issue.SyncRunID,
		&issue.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan lint issue: %w", err)
	}
	return &issue, nil
}

// DeleteForPath removes the previous run's issues for one page path, within
// a transaction.
func (r *IssueRepository) DeleteForPath(ctx context.Context, tx pgx.Tx, path string) error {
	query, args, err := psql.
		Delete("lint_issues").
		Where(sq.Eq{"path": path}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build DeleteForPath query for issues of %s: %w", path, err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete issues of %s: %w", path, err)
	}
	return nil
}

// DeleteStale removes every issue not produced by the given run. Called at
// the end of a full sync so the table mirrors the latest lint results.
func (r *IssueRepository) DeleteStale(ctx context.Context, runID string) error {
	query, args, err := psql.
		Delete("lint_issues").
		Where(sq.Or{
			sq.NotEq{"sync_run_id": runID},
			sq.Eq{"sync_run_id": nil},
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build DeleteStale query for issues: %w", err)
	}
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete stale issues: %w", err)
	}
	return nil
}

// InsertBatch stores a set of issues for a sync run. Exec on the pool when tx
// is nil.
func (r *IssueRepository) InsertBatch(ctx context.Context, tx pgx.Tx, runID string, issues []*domain.LintIssue) error {
	if len(issues) == 0 {
		return nil
	}

	builder := psql.
		Insert("lint_issues").
		Columns("page_id", "path", "code", "severity", "message", "line", "sync_run_id")
	for _, issue := range issues {
		builder = builder.Values(issue.PageID, issue.Path, issue.Code, issue.Severity, issue.Message, issue.Line, runID)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build InsertBatch query for issues: %w", err)
	}

	if tx != nil {
		_, err = tx.Exec(ctx, query, args...)
	} else {
		_, err = r.pool.Exec(ctx, query, args...)
	}
	if err != nil {
		return fmt.Errorf("insert issues: %w", err)
	}
	return nil
}

// IssueFilters narrows the issue list query.
type IssueFilters struct {
	Severity *domain.Severity
	Code     *domain.IssueCode
	PageID   *string
}

// List retrieves the current issues, path then line ordered.
func (r *IssueRepository) List(ctx context.Context, filters IssueFilters) ([]*domain.LintIssue, error) {
	builder := psql.
		Select(issueColumns...).
		From("lint_issues")
	if filters.Severity != nil {
		builder = builder.Where(sq.Eq{"severity": *filters.Severity})
	}
	if filters.Code != nil {
		builder = builder.Where(sq.Eq{"code": *filters.Code})
	}
	if filters.PageID != nil {
		builder = builder.Where(sq.Eq{"page_id": *filters.PageID})
	}

	query, args, err := builder.
		OrderBy("path", "line", "code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build List query for issues: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query issues: %w", err)
	}
	defer rows.Close()

	var issues []*domain.LintIssue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return issues, nil
}
