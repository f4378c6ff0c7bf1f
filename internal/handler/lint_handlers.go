package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/tmplhub/tmplhub/internal/config"
	"github.com/tmplhub/tmplhub/internal/corpus"
	"github.com/tmplhub/tmplhub/internal/domain"
	"github.com/tmplhub/tmplhub/internal/handler/dto"
	"github.com/tmplhub/tmplhub/internal/middleware"
	"github.com/tmplhub/tmplhub/internal/repository"
)

// handleListIssues lists the current lint findings.
// @Summary List lint issues
// @Description Lists lint findings from the latest sync, optionally filtered.
// @Tags lint
// @Produce json
// @Param severity query string false "Filter by severity (error, warning, info)"
// @Param code query string false "Filter by issue code"
// @Success 200 {object} dto.IssuesListResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /lint [get]
func (h *Handler) handleListIssues(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	filters := repository.IssueFilters{}
	if v := query.Get("severity"); v != "" {
		severity := domain.Severity(v)
		if !severity.IsValid() {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "severity must be one of: error, warning, info")
			return
		}
		filters.Severity = &severity
	}
	if v := query.Get("code"); v != "" {
		code := domain.IssueCode(v)
		filters.Code = &code
	}

	issues, err := h.issueRepo.List(ctx, filters)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	resp := dto.IssuesListResponse{
		Issues: make([]dto.IssueInfo, 0, len(issues)),
		Total:  len(issues),
	}
	for _, issue := range issues {
		resp.Issues = append(resp.Issues, dto.ToIssueInfo(issue))
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleGetStats returns corpus statistics.
// @Summary Get corpus statistics
// @Description Page, fence, and issue counts plus the last sync run.
// @Tags stats
// @Produce json
// @Success 200 {object} dto.StatsResponse
// @Router /stats [get]
func (h *Handler) handleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.Stats(r.Context())
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToStatsResponse(stats))
}

// handleSync triggers a corpus sync.
// @Summary Sync the corpus
// @Description Ingests the corpus directory (or the embedded starter corpus) into the index.
// @Tags sync
// @Accept json
// @Produce json
// @Param request body dto.SyncRequest false "Sync options"
// @Success 200 {object} dto.SyncRunResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /sync [post]
func (h *Handler) handleSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}

	var (
		c   *corpus.Corpus
		err error
	)
	if req.Source == config.BuiltinSource {
		c, err = corpus.Load(corpus.Builtin(), config.BuiltinSource)
	} else {
		c, err = corpus.LoadDir(h.corpusDir, h.corpusDir)
	}
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	if token, err := middleware.GetTokenFromContext(ctx); err == nil {
		slog.Info("sync triggered", "token", token.Name, "source", c.Source, "prune", req.Prune)
	}

	run, err := h.syncService.Sync(ctx, c, req.Prune)
	if err != nil {
		slog.Error("sync failed", "error", err)
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToSyncRunResponse(run))
}
