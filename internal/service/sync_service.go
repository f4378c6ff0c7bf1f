package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tmplhub/tmplhub/internal/corpus"
	"github.com/tmplhub/tmplhub/internal/domain"
	"github.com/tmplhub/tmplhub/internal/lint"
	"github.com/tmplhub/tmplhub/internal/repository"
)

// SyncService ingests a loaded corpus: lint everything, upsert each page and
// its fences in a transaction, and leave lint_issues mirroring the run.
type SyncService struct {
	pool   *pgxpool.Pool
	pages  *repository.PageRepository
	fences *repository.FenceRepository
	issues *repository.IssueRepository
	runs   *repository.SyncRunRepository
	linter *lint.Linter
}

// NewSyncService creates a new SyncService.
func NewSyncService(
	pool *pgxpool.Pool,
	pages *repository.PageRepository,
	fences *repository.FenceRepository,
	issues *repository.IssueRepository,
	runs *repository.SyncRunRepository,
	linter *lint.Linter,
) *SyncService {
	return &SyncService{
		pool:   pool,
		pages:  pages,
		fences: fences,
		issues: issues,
		runs:   runs,
		linter: linter,
	}
}

// Sync ingests the corpus. Pages with lint findings still index; only
// unreadable files fail, and those failures never abort the run. When prune
// is set, pages no longer present in the corpus are removed afterwards.
func (s *SyncService) Sync(ctx context.Context, c *corpus.Corpus, prune bool) (*domain.SyncRun, error) {
	run, err := s.runs.Create(ctx, c.Source)
	if err != nil {
		return nil, fmt.Errorf("create sync run: %w", err)
	}

	allIssues := s.linter.Run(c)
	byPath := make(map[string][]*domain.LintIssue)
	for i := range allIssues {
		issue := allIssues[i]
		byPath[issue.Path] = append(byPath[issue.Path], &issue)
	}

	checksums, err := s.pages.ListChecksums(ctx)
	if err != nil {
		return nil, fmt.Errorf("list checksums: %w", err)
	}

	run.PagesSeen = len(c.Docs) + len(c.Failures)
	run.PagesFailed = len(c.Failures)
	keepSlugs := make([]string, 0, len(c.Docs))

	for _, doc := range c.Docs {
		unchanged := checksums[doc.Slug] == doc.Checksum
		if err := s.syncPage(ctx, run.ID, doc, byPath[doc.Path], unchanged); err != nil {
			slog.Error("page sync failed", "path", doc.Path, "error", err)
			run.PagesFailed++
			s.keepFailedPageIssues(ctx, run.ID, doc.Path, byPath[doc.Path])
			continue
		}
		keepSlugs = append(keepSlugs, doc.Slug)
		run.PagesSynced++
	}

	if err := s.syncOrphanIssues(ctx, run.ID, c, byPath); err != nil {
		return nil, err
	}

	if err := s.issues.DeleteStale(ctx, run.ID); err != nil {
		return nil, fmt.Errorf("drop stale issues: %w", err)
	}

	if prune {
		pruned, err := s.pages.DeleteMissing(ctx, keepSlugs)
		if err != nil {
			return nil, fmt.Errorf("prune pages: %w", err)
		}
		if pruned > 0 {
			slog.Info("pruned pages removed from corpus", "count", pruned)
		}
	}

	summary := lint.Summarize(allIssues)
	run.ErrorsCount = summary.Errors
	run.WarningsCount = summary.Warnings

	if err := s.runs.Finish(ctx, run); err != nil {
		return nil, fmt.Errorf("finish sync run: %w", err)
	}

	slog.Info("corpus synced",
		"source", c.Source,
		"run_id", run.ID,
		"pages_synced", run.PagesSynced,
		"pages_failed", run.PagesFailed,
		"lint_errors", run.ErrorsCount,
		"lint_warnings", run.WarningsCount,
	)

	return run, nil
}

// syncPage upserts one page, its fences, and its issues in a transaction.
func (s *SyncService) syncPage(
	ctx context.Context,
	runID string,
	doc *corpus.Document,
	issues []*domain.LintIssue,
	unchanged bool,
) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	page, err := s.pages.Upsert(ctx, tx, documentToPage(doc))
	if err != nil {
		return err
	}

	if !unchanged {
		if err := s.fences.ReplaceForPage(ctx, tx, page.ID, documentFences(doc, page.ID)); err != nil {
			return err
		}
	}

	for _, issue := range issues {
		issue.PageID = &page.ID
	}
	if err := s.issues.DeleteForPath(ctx, tx, doc.Path); err != nil {
		return err
	}
	if err := s.issues.InsertBatch(ctx, tx, runID, issues); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// keepFailedPageIssues re-inserts a failed page's findings path-keyed, so the
// stale-issue sweep does not erase them along with the previous run's rows.
// The page row from the rolled-back transaction is gone, so any PageID set
// there must be cleared before the pool-side insert.
func (s *SyncService) keepFailedPageIssues(ctx context.Context, runID, path string, issues []*domain.LintIssue) {
	for _, issue := range issues {
		issue.PageID = nil
	}
	if err := s.issues.InsertBatch(ctx, nil, runID, issues); err != nil {
		slog.Error("failed to record issues for failed page", "path", path, "error", err)
	}
}

// syncOrphanIssues stores findings that belong to no indexed page: parse
// failures and roadmap drift.
func (s *SyncService) syncOrphanIssues(
	ctx context.Context,
	runID string,
	c *corpus.Corpus,
	byPath map[string][]*domain.LintIssue,
) error {
	docPaths := c.Paths()

	var orphans []*domain.LintIssue
	for path, issues := range byPath {
		if docPaths[path] {
			continue
		}
		orphans = append(orphans, issues...)
	}

	if err := s.issues.InsertBatch(ctx, nil, runID, orphans); err != nil {
		return fmt.Errorf("insert corpus-level issues: %w", err)
	}
	return nil
}

// documentToPage maps a parsed document onto the persistence model.
func documentToPage(doc *corpus.Document) *domain.Page {
	return &domain.Page{
		Slug:     doc.Slug,
		Category: doc.Category,
		Path:     doc.Path,
		Title:    doc.DisplayTitle(),
		Summary:  doc.DisplaySummary(),
		Draft:    doc.Meta.Draft,
		Tags:     doc.Meta.Tags,
		Body:     string(doc.Body),
		Checksum: doc.Checksum,
	}
}

func documentFences(doc *corpus.Document, pageID string) []*domain.CodeFence {
	fences := make([]*domain.CodeFence, 0, len(doc.Fences))
	for _, f := range doc.Fences {
		fences = append(fences, &domain.CodeFence{
			PageID:  pageID,
			Ordinal: f.Ordinal,
			Lang:    f.Lang,
			Section: f.Section,
			Line:    f.Line,
			Content: f.Content,
		})
	}
	return fences
}
