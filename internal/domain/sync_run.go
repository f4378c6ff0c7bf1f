package domain

import "time"

// SyncRun records one corpus ingest: where the pages came from and how the
// run went. FinishedAt is nil while the run is in flight.
type SyncRun struct {
	ID            string
	Source        string
	StartedAt     time.Time
	FinishedAt    *time.Time
	PagesSeen     int
	PagesSynced   int
	PagesFailed   int
	ErrorsCount   int
	WarningsCount int
}

// IsFinished returns true once the run has been finalized.
func (r *SyncRun) IsFinished() bool {
	return r.FinishedAt != nil
}

// Token represents an API token allowed to trigger mutating operations.
type Token struct {
	ID        string
	Name      string
	Token     string
	IsActive  bool
	CreatedAt time.Time
}
