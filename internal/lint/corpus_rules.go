package lint

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/tmplhub/tmplhub/internal/corpus"
	"github.com/tmplhub/tmplhub/internal/domain"
)

// checkDuplicateSlugs reports every page whose resolved slug collides with
// another page. No two files may claim the same canonical topic slug.
func checkDuplicateSlugs(c *corpus.Corpus) []domain.LintIssue {
	bySlug := make(map[string][]string)
	for _, doc := range c.Docs {
		bySlug[doc.Slug] = append(bySlug[doc.Slug], doc.Path)
	}

	var issues []domain.LintIssue
	for slug, paths := range bySlug {
		if len(paths) < 2 {
			continue
		}
		sort.Strings(paths)
		for _, p := range paths {
			issues = append(issues, domain.LintIssue{
				Path:     p,
				Code:     domain.CodeDuplicateSlug,
				Severity: domain.SeverityError,
				Message:  fmt.Sprintf("slug %q claimed by %s", slug, strings.Join(paths, ", ")),
			})
		}
	}
	return issues
}

// checkCrossReferences resolves relative markdown links between corpus pages.
// External URLs and in-page anchors are out of scope.
func checkCrossReferences(c *corpus.Corpus) []domain.LintIssue {
	known := c.Paths()
	if c.HasRoadmap {
		known["roadmap.md"] = true
	}

	var issues []domain.LintIssue
	for _, doc := range c.Docs {
		for _, link := range doc.Links {
			target, ok := internalTarget(doc.Path, link.Destination)
			if !ok {
				continue
			}
			if !known[target] {
				issues = append(issues, domain.LintIssue{
					Path:     doc.Path,
					Code:     domain.CodeBrokenXref,
					Severity: domain.SeverityError,
					Message:  fmt.Sprintf("link %q does not resolve to a corpus page", link.Destination),
					Line:     link.Line,
				})
			}
		}
	}
	return issues
}

// internalTarget normalizes a link destination to a corpus-relative page
// path, or reports false for links the xref rule does not own.
func internalTarget(fromPath, dest string) (string, bool) {
	if dest == "" || strings.Contains(dest, "://") || strings.HasPrefix(dest, "#") ||
		strings.HasPrefix(dest, "mailto:") {
		return "", false
	}

	if i := strings.IndexByte(dest, '#'); i >= 0 {
		dest = dest[:i]
	}
	if !strings.HasSuffix(dest, ".md") {
		return "", false
	}

	if strings.HasPrefix(dest, "/") {
		return strings.TrimPrefix(path.Clean(dest), "/"), true
	}
	return path.Clean(path.Join(path.Dir(fromPath), dest)), true
}

// checkRoadmap compares the roadmap table's claims with the pages actually
// on disk. A row claiming existence for a missing page is an error; a page
// the roadmap never mentions is a warning. Without a roadmap file, nothing
// runs — the table is optional.
func checkRoadmap(c *corpus.Corpus) []domain.LintIssue {
	if len(c.Roadmap) == 0 {
		return nil
	}

	onDisk := c.Paths()
	tracked := make(map[string]bool, len(c.Roadmap))

	var issues []domain.LintIssue
	for _, entry := range c.Roadmap {
		tracked[entry.Path] = true
		if entry.Status == domain.RoadmapStatusExists && !onDisk[entry.Path] {
			issues = append(issues, domain.LintIssue{
				Path:     "roadmap.md",
				Code:     domain.CodeRoadmapMissingPage,
				Severity: domain.SeverityError,
				Message:  fmt.Sprintf("roadmap claims %s exists but the file is missing", entry.Path),
				Line:     entry.Line,
			})
		}
	}

	for _, doc := range c.Docs {
		if !tracked[doc.Path] {
			issues = append(issues, domain.LintIssue{
				Path:     doc.Path,
				Code:     domain.CodeRoadmapUntracked,
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("page %s is not tracked in the roadmap", doc.Path),
			})
		}
	}

	return issues
}
