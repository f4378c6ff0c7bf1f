package domain

import "errors"

// Domain-specific errors for business logic validation.
var (
	// Page errors
	ErrPageNotFound  = errors.New("page not found")
	ErrFenceNotFound = errors.New("fence not found")
	ErrDuplicateSlug = errors.New("duplicate page slug")

	// Sync errors
	ErrSyncRunNotFound = errors.New("sync run not found")
	ErrSyncInProgress  = errors.New("sync already in progress")
	ErrCorpusNotFound  = errors.New("corpus directory not found")

	// Auth errors
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenInactive = errors.New("token is inactive")
	ErrInvalidToken  = errors.New("invalid authentication token")

	// Validation errors
	ErrInvalidCategory = errors.New("invalid page category")
	ErrInvalidSeverity = errors.New("invalid issue severity")
	ErrInvalidSlug     = errors.New("invalid page slug")
)
