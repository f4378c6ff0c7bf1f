package dto

import (
	"time"

	"github.com/tmplhub/tmplhub/internal/domain"
	"github.com/tmplhub/tmplhub/internal/service"
)

// PageListItem represents a page in the list view (no fences or issues).
type PageListItem struct {
	ID       string    `json:"id"`
	Slug     string    `json:"slug"`
	Category string    `json:"category"`
	Path     string    `json:"path"`
	Title    string    `json:"title"`
	Summary  string    `json:"summary"`
	Draft    bool      `json:"draft"`
	Tags     []string  `json:"tags"`
	SyncedAt time.Time `json:"synced_at"`
}

// PagesListResponse represents the response for GET /pages.
type PagesListResponse struct {
	Pages  []PageListItem `json:"pages"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// PageDetailResponse represents full page details with fences and issues.
type PageDetailResponse struct {
	Page   PageListItem `json:"page"`
	Fences []FenceInfo  `json:"fences"`
	Issues []IssueInfo  `json:"issues"`
}

// FenceInfo represents one code fence of a page.
type FenceInfo struct {
	Ordinal int    `json:"ordinal"`
	Lang    string `json:"lang"`
	Section string `json:"section"`
	Line    int    `json:"line"`
	Content string `json:"content"`
}

// IssueInfo represents one lint finding.
type IssueInfo struct {
	Path     string `json:"path"`
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line,omitempty"`
}

// IssuesListResponse represents the response for GET /lint.
type IssuesListResponse struct {
	Issues []IssueInfo `json:"issues"`
	Total  int         `json:"total"`
}

// SyncRunResponse represents a completed sync run.
type SyncRunResponse struct {
	ID            string     `json:"id"`
	Source        string     `json:"source"`
	StartedAt     time.Time  `json:"started_at"`
	FinishedAt    *time.Time `json:"finished_at"`
	PagesSeen     int        `json:"pages_seen"`
	PagesSynced   int        `json:"pages_synced"`
	PagesFailed   int        `json:"pages_failed"`
	ErrorsCount   int        `json:"errors_count"`
	WarningsCount int        `json:"warnings_count"`
}

// StatsResponse represents corpus statistics.
type StatsResponse struct {
	PagesByCategory  map[string]int   `json:"pages_by_category"`
	FencesByLang     map[string]int   `json:"fences_by_lang"`
	IssuesBySeverity map[string]int   `json:"issues_by_severity"`
	LastRun          *SyncRunResponse `json:"last_run,omitempty"`
}

// ToPageListItem converts domain.Page to PageListItem.
func ToPageListItem(page *domain.Page) PageListItem {
	return PageListItem{
		ID:       page.ID,
		Slug:     page.Slug,
		Category: string(page.Category),
		Path:     page.Path,
		Title:    page.Title,
		Summary:  page.Summary,
		Draft:    page.Draft,
		Tags:     page.Tags,
		SyncedAt: page.SyncedAt,
	}
}

// ToFenceInfo converts domain.CodeFence to FenceInfo.
func ToFenceInfo(fence *domain.CodeFence) FenceInfo {
	return FenceInfo{
		Ordinal: fence.Ordinal,
		Lang:    fence.Lang,
		Section: fence.Section,
		Line:    fence.Line,
		Content: fence.Content,
	}
}

// ToIssueInfo converts domain.LintIssue to IssueInfo.
func ToIssueInfo(issue *domain.LintIssue) IssueInfo {
	return IssueInfo{
		Path:     issue.Path,
		Code:     string(issue.Code),
		Severity: string(issue.Severity),
		Message:  issue.Message,
		Line:     issue.Line,
	}
}

// ToSyncRunResponse converts domain.SyncRun to SyncRunResponse.
func ToSyncRunResponse(run *domain.SyncRun) SyncRunResponse {
	return SyncRunResponse{
		ID:            run.ID,
		Source:        run.Source,
		StartedAt:     run.StartedAt,
		FinishedAt:    run.FinishedAt,
		PagesSeen:     run.PagesSeen,
		PagesSynced:   run.PagesSynced,
		PagesFailed:   run.PagesFailed,
		ErrorsCount:   run.ErrorsCount,
		WarningsCount: run.WarningsCount,
	}
}

// ToStatsResponse converts service.CorpusStats to StatsResponse.
func ToStatsResponse(stats *service.CorpusStats) StatsResponse {
	resp := StatsResponse{
		PagesByCategory:  stats.PagesByCategory,
		FencesByLang:     stats.FencesByLang,
		IssuesBySeverity: stats.IssuesBySeverity,
	}
	if stats.LastRun != nil {
		run := ToSyncRunResponse(stats.LastRun)
		resp.LastRun = &run
	}
	return resp
}
