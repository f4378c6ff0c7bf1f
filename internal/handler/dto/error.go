package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tmplhub/tmplhub/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// MapDomainError maps domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code string, message string) {
	message = err.Error()

	switch {
	// Page errors
	case errors.Is(err, domain.ErrPageNotFound):
		return http.StatusNotFound, "PAGE_NOT_FOUND", message
	case errors.Is(err, domain.ErrFenceNotFound):
		return http.StatusNotFound, "FENCE_NOT_FOUND", message
	case errors.Is(err, domain.ErrDuplicateSlug):
		return http.StatusConflict, "DUPLICATE_SLUG", message

	// Sync errors
	case errors.Is(err, domain.ErrSyncRunNotFound):
		return http.StatusNotFound, "SYNC_RUN_NOT_FOUND", message
	case errors.Is(err, domain.ErrSyncInProgress):
		return http.StatusConflict, "SYNC_IN_PROGRESS", message
	case errors.Is(err, domain.ErrCorpusNotFound):
		return http.StatusUnprocessableEntity, "CORPUS_NOT_FOUND", message

	// Auth errors
	case errors.Is(err, domain.ErrTokenNotFound):
		return http.StatusUnauthorized, "INVALID_TOKEN", message
	case errors.Is(err, domain.ErrTokenInactive):
		return http.StatusUnauthorized, "TOKEN_INACTIVE", message
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "INVALID_TOKEN", message

	// Validation errors
	case errors.Is(err, domain.ErrInvalidCategory):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message
	case errors.Is(err, domain.ErrInvalidSeverity):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message
	case errors.Is(err, domain.ErrInvalidSlug):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message

	// Default: internal server error
	default:
		// CRITICAL: Log unmapped error for debugging
		slog.Error("unmapped domain error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}
}
