package domain

import "time"

// Category represents the corpus directory a page belongs to.
type Category string

const (
	CategoryCICD      Category = "ci-cd"
	CategoryScaffolds Category = "scaffolds"
	CategoryAgents    Category = "agents"
)

// IsValid checks if the category is one of the allowed values.
func (c Category) IsValid() bool {
	switch c {
	case CategoryCICD, CategoryScaffolds, CategoryAgents:
		return true
	default:
		return false
	}
}

// RequiresStructure returns true if pages in this category must follow the
// full page convention (H1, summary blockquote, required sections). Agent
// pages are free-form prompt text and only need a title.
func (c Category) RequiresStructure() bool {
	return c == CategoryCICD || c == CategoryScaffolds
}

// Page represents one indexed template page from the corpus.
type Page struct {
	ID        string
	Slug      string
	Category  Category
	Path      string
	Title     string
	Summary   string
	Draft     bool
	Tags      []string
	Body      string
	Checksum  string
	SyncedAt  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoadmapStatus represents the claimed state of a roadmap table row.
type RoadmapStatus string

const (
	RoadmapStatusExists  RoadmapStatus = "exists"
	RoadmapStatusPlanned RoadmapStatus = "planned"
)

// RoadmapEntry is one row of the roadmap status table.
type RoadmapEntry struct {
	Topic  string
	Path   string
	Status RoadmapStatus
	Line   int
}
