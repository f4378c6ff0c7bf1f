package handler

import (
	"net/http"
	"strconv"

	"github.com/tmplhub/tmplhub/internal/domain"
	"github.com/tmplhub/tmplhub/internal/handler/dto"
	"github.com/tmplhub/tmplhub/internal/repository"
)

// handleListPages lists indexed pages.
// @Summary List template pages
// @Description Lists indexed template pages with optional filters.
// @Tags pages
// @Produce json
// @Param category query string false "Filter by category (ci-cd, scaffolds, agents)"
// @Param lang query string false "Pages containing a fence with this language tag"
// @Param q query string false "Substring match over slug, title, summary"
// @Param draft query bool false "Filter by draft flag"
// @Param limit query int false "Page size (max 200)"
// @Param offset query int false "Offset"
// @Success 200 {object} dto.PagesListResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /pages [get]
func (h *Handler) handleListPages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	filters := repository.PageFilters{}

	if v := query.Get("category"); v != "" {
		category := domain.Category(v)
		if !category.IsValid() {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "category must be one of: ci-cd, scaffolds, agents")
			return
		}
		filters.Category = &category
	}
	if v := query.Get("lang"); v != "" {
		filters.Lang = &v
	}
	if v := query.Get("q"); v != "" {
		filters.Query = &v
	}
	if v := query.Get("draft"); v != "" {
		draft, err := strconv.ParseBool(v)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "draft must be a boolean")
			return
		}
		filters.Draft = &draft
	}
	if v := query.Get("limit"); v != "" {
		filters.Limit, _ = strconv.Atoi(v)
	}
	if v := query.Get("offset"); v != "" {
		filters.Offset, _ = strconv.Atoi(v)
	}

	pages, total, err := h.pageRepo.List(ctx, filters)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	items := make([]dto.PageListItem, 0, len(pages))
	for _, page := range pages {
		items = append(items, dto.ToPageListItem(page))
	}

	respondJSON(w, http.StatusOK, dto.PagesListResponse{
		Pages:  items,
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	})
}

// handleGetPage retrieves page details with fences and current issues.
// @Summary Get page details
// @Description Get one page with its code fences and current lint issues.
// @Tags pages
// @Produce json
// @Param slug path string true "Page slug"
// @Success 200 {object} dto.PageDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /pages/{slug} [get]
func (h *Handler) handleGetPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, ok := h.findPage(w, r)
	if !ok {
		return
	}

	fences, err := h.fenceRepo.ListByPage(ctx, page.ID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	issues, err := h.issueRepo.List(ctx, repository.IssueFilters{PageID: &page.ID})
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	resp := dto.PageDetailResponse{
		Page:   dto.ToPageListItem(page),
		Fences: make([]dto.FenceInfo, 0, len(fences)),
		Issues: make([]dto.IssueInfo, 0, len(issues)),
	}
	for _, fence := range fences {
		resp.Fences = append(resp.Fences, dto.ToFenceInfo(fence))
	}
	for _, issue := range issues {
		resp.Issues = append(resp.Issues, dto.ToIssueInfo(issue))
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleGetPageHTML renders a page to HTML.
// @Summary Render page HTML
// @Description Renders the page markdown to HTML with highlighted fences.
// @Tags pages
// @Produce html
// @Param slug path string true "Page slug"
// @Success 200 {string} string "rendered page"
// @Failure 404 {object} dto.ErrorResponse
// @Router /pages/{slug}/html [get]
func (h *Handler) handleGetPageHTML(w http.ResponseWriter, r *http.Request) {
	page, ok := h.findPage(w, r)
	if !ok {
		return
	}

	html, err := h.renderer.Render([]byte(page.Body))
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(html)
}

// handleGetFence serves one fence body as plain text for copy-paste use.
// @Summary Get raw fence content
// @Description Serves the literal contents of one code fence.
// @Tags pages
// @Produce plain
// @Param slug path string true "Page slug"
// @Param ordinal path int true "Fence position within the page, starting at 0"
// @Success 200 {string} string "fence content"
// @Failure 404 {object} dto.ErrorResponse
// @Router /pages/{slug}/fences/{ordinal} [get]
func (h *Handler) handleGetFence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, ok := h.findPage(w, r)
	if !ok {
		return
	}

	ordinal, err := strconv.Atoi(r.PathValue("ordinal"))
	if err != nil || ordinal < 0 {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "ordinal must be a non-negative integer")
		return
	}

	fence, err := h.fenceRepo.GetByOrdinal(ctx, page.ID, ordinal)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(fence.Content))
}

// findPage extracts the slug path parameter and loads the page. On failure
// the error response has already been written.
func (h *Handler) findPage(w http.ResponseWriter, r *http.Request) (*domain.Page, bool) {
	slug := r.PathValue("slug")
	if slug == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "page slug is required")
		return nil, false
	}

	page, err := h.pageRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return nil, false
	}
	return page, true
}
