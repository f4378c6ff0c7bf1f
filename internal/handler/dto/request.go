package dto

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SyncRequest represents the request body for POST /sync.
type SyncRequest struct {
	// Source selects what to ingest: "dir" for the server's corpus
	// directory, "builtin" for the embedded starter corpus.
	Source string `json:"source,omitempty"`
	Prune  bool   `json:"prune,omitempty"`
}

// Validate checks the sync request.
func (r SyncRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Source, validation.In("", "dir", "builtin")),
	)
}
