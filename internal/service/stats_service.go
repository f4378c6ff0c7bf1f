package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmplhub/tmplhub/internal/domain"
	"github.com/tmplhub/tmplhub/internal/repository"
)

// CorpusStats is the aggregate view over the indexed corpus.
type CorpusStats struct {
	PagesByCategory  map[string]int
	FencesByLang     map[string]int
	IssuesBySeverity map[string]int
	LastRun          *domain.SyncRun
}

// StatsService aggregates corpus statistics for the API.
type StatsService struct {
	stats *repository.StatsRepository
	runs  *repository.SyncRunRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(stats *repository.StatsRepository, runs *repository.SyncRunRepository) *StatsService {
	return &StatsService{stats: stats, runs: runs}
}

// Stats collects the current corpus statistics. LastRun is nil when nothing
// has been synced yet.
func (s *StatsService) Stats(ctx context.Context) (*CorpusStats, error) {
	pages, err := s.stats.PageCountsByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("page counts: %w", err)
	}
	fences, err := s.stats.FenceCountsByLang(ctx)
	if err != nil {
		return nil, fmt.Errorf("fence counts: %w", err)
	}
	issues, err := s.stats.IssueCountsBySeverity(ctx)
	if err != nil {
		return nil, fmt.Errorf("issue counts: %w", err)
	}

	lastRun, err := s.runs.Latest(ctx)
	if err != nil && !errors.Is(err, domain.ErrSyncRunNotFound) {
		return nil, fmt.Errorf("latest run: %w", err)
	}

	return &CorpusStats{
		PagesByCategory:  pages,
		FencesByLang:     fences,
		IssuesBySeverity: issues,
		LastRun:          lastRun,
	}, nil
}
