package domain

import "time"

// Severity represents how serious a lint finding is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid checks if the severity is one of the allowed values.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// IssueCode identifies a lint rule. Codes are stable so clients can filter
// and suppress on them.
type IssueCode string

const (
	CodeParseFailure       IssueCode = "page/parse-failure"
	CodeMissingTitle       IssueCode = "structure/missing-title"
	CodeMissingSummary     IssueCode = "structure/missing-summary"
	CodeMissingSection     IssueCode = "structure/missing-section"
	CodeUnclosedFence      IssueCode = "structure/unclosed-fence"
	CodeInvalidSlug        IssueCode = "slug/invalid"
	CodeDuplicateSlug      IssueCode = "slug/duplicate"
	CodeYAMLSyntax         IssueCode = "fence/yaml-syntax"
	CodeJSONSyntax         IssueCode = "fence/json-syntax"
	CodeFenceSchema        IssueCode = "fence/schema"
	CodeBrokenXref         IssueCode = "xref/broken"
	CodeRoadmapMissingPage IssueCode = "roadmap/missing-page"
	CodeRoadmapUntracked   IssueCode = "roadmap/untracked-page"
)

// LintIssue is one finding produced by a lint run. PageID is nil for
// corpus-level findings (roadmap drift, duplicate slugs on unreadable files)
// and for pages that failed to parse.
type LintIssue struct {
	ID        string
	PageID    *string
	Path      string
	Code      IssueCode
	Severity  Severity
	Message   string
	Line      int
	SyncRunID *string
	CreatedAt time.Time
}

// IsBlocking returns true if the issue should fail a strict lint run.
func (i *LintIssue) IsBlocking(strict bool) bool {
	if i.Severity == SeverityError {
		return true
	}
	return strict && i.Severity == SeverityWarning
}
