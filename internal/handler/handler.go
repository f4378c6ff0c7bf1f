package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/tmplhub/tmplhub/docs" // Import generated docs
	"github.com/tmplhub/tmplhub/internal/handler/dto"
	"github.com/tmplhub/tmplhub/internal/lint"
	"github.com/tmplhub/tmplhub/internal/middleware"
	"github.com/tmplhub/tmplhub/internal/render"
	"github.com/tmplhub/tmplhub/internal/repository"
	"github.com/tmplhub/tmplhub/internal/service"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	pool           *pgxpool.Pool
	corpusDir      string
	syncService    *service.SyncService
	statsService   *service.StatsService
	pageRepo       *repository.PageRepository
	fenceRepo      *repository.FenceRepository
	issueRepo      *repository.IssueRepository
	runRepo        *repository.SyncRunRepository
	renderer       *render.Renderer
	authMiddleware *middleware.AuthMiddleware
}

// New creates a new Handler instance with all dependencies. corpusDir is the
// on-disk corpus root used by POST /sync with source "dir".
func New(pool *pgxpool.Pool, corpusDir string) (*Handler, error) {
	pageRepo := repository.NewPageRepository(pool)
	fenceRepo := repository.NewFenceRepository(pool)
	issueRepo := repository.NewIssueRepository(pool)
	runRepo := repository.NewSyncRunRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)
	tokenRepo := repository.NewTokenRepository(pool)

	linter, err := lint.New()
	if err != nil {
		return nil, err
	}

	syncService := service.NewSyncService(pool, pageRepo, fenceRepo, issueRepo, runRepo, linter)
	statsService := service.NewStatsService(statsRepo, runRepo)
	authMiddleware := middleware.NewAuthMiddleware(tokenRepo)

	return &Handler{
		pool:           pool,
		corpusDir:      corpusDir,
		syncService:    syncService,
		statsService:   statsService,
		pageRepo:       pageRepo,
		fenceRepo:      fenceRepo,
		issueRepo:      issueRepo,
		runRepo:        runRepo,
		renderer:       render.New("github"),
		authMiddleware: authMiddleware,
	}, nil
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	// Read API: public
	mux.HandleFunc("GET /api/v1/pages", h.handleListPages)
	mux.HandleFunc("GET /api/v1/pages/{slug}", h.handleGetPage)
	mux.HandleFunc("GET /api/v1/pages/{slug}/html", h.handleGetPageHTML)
	mux.HandleFunc("GET /api/v1/pages/{slug}/fences/{ordinal}", h.handleGetFence)
	mux.HandleFunc("GET /api/v1/lint", h.handleListIssues)
	mux.HandleFunc("GET /api/v1/stats", h.handleGetStats)

	// Mutating API: authenticated
	mux.Handle("POST /api/v1/sync", h.authMiddleware.Authenticate(http.HandlerFunc(h.handleSync)))
}

// handleHealthz returns 200 OK if the database is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.pool.Ping(ctx); err != nil {
		slog.Error("database health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Ping checks if the database is reachable (used for testing).
func (h *Handler) Ping(ctx context.Context) error {
	return h.pool.Ping(ctx)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}
