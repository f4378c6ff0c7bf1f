// Package lint checks a parsed corpus against the template page conventions:
// page structure, fence syntax, known fence schemas, slug uniqueness,
// cross-references, and roadmap consistency. Rules are good-faith
// documentation checks, not semantic validation of the tools the pages
// document.
package lint

import (
	"fmt"
	"sort"

	"github.com/tmplhub/tmplhub/internal/corpus"
	"github.com/tmplhub/tmplhub/internal/domain"
)

// Linter runs the full rule set over a corpus.
type Linter struct {
	schemas *schemaSet
}

// New creates a Linter with the embedded fence schemas compiled.
func New() (*Linter, error) {
	schemas, err := compileSchemas()
	if err != nil {
		return nil, fmt.Errorf("compile fence schemas: %w", err)
	}
	return &Linter{schemas: schemas}, nil
}

// Run lints every page and the corpus-level properties, returning a
// deterministic path/line ordered issue list.
func (l *Linter) Run(c *corpus.Corpus) []domain.LintIssue {
	var issues []domain.LintIssue

	for _, failure := range c.Failures {
		issues = append(issues, domain.LintIssue{
			Path:     failure.Path,
			Code:     domain.CodeParseFailure,
			Severity: domain.SeverityError,
			Message:  failure.Err.Error(),
		})
	}

	for _, doc := range c.Docs {
		issues = append(issues, l.checkPage(doc)...)
	}

	issues = append(issues, checkDuplicateSlugs(c)...)
	issues = append(issues, checkCrossReferences(c)...)
	issues = append(issues, checkRoadmap(c)...)

	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Path != issues[j].Path {
			return issues[i].Path < issues[j].Path
		}
		if issues[i].Line != issues[j].Line {
			return issues[i].Line < issues[j].Line
		}
		return issues[i].Code < issues[j].Code
	})

	return issues
}

// checkPage runs the per-page rules.
func (l *Linter) checkPage(doc *corpus.Document) []domain.LintIssue {
	var issues []domain.LintIssue
	issues = append(issues, checkStructure(doc)...)
	issues = append(issues, checkFenceSyntax(doc)...)
	issues = append(issues, l.checkFenceSchemas(doc)...)

	if doc.SlugInvalid {
		issues = append(issues, domain.LintIssue{
			Path:     doc.Path,
			Code:     domain.CodeInvalidSlug,
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("frontmatter slug %q is not a valid slug, using %q", doc.Meta.Slug, doc.Slug),
		})
	}

	return issues
}

// Summary counts issues by severity.
type Summary struct {
	Errors   int
	Warnings int
	Infos    int
}

// Summarize tallies an issue list by severity.
func Summarize(issues []domain.LintIssue) Summary {
	var s Summary
	for _, issue := range issues {
		switch issue.Severity {
		case domain.SeverityError:
			s.Errors++
		case domain.SeverityWarning:
			s.Warnings++
		default:
			s.Infos++
		}
	}
	return s
}
