package lint

import (
	"fmt"
	"strings"

	"github.com/tmplhub/tmplhub/internal/corpus"
	"github.com/tmplhub/tmplhub/internal/domain"
)

// requiredSections is the section set every ci-cd and scaffold page carries,
// per the page content convention. Agent pages are free-form prompts and are
// exempt.
var requiredSections = []string{
	"Overview",
	"Quick Start",
	"CLAUDE.md Integration",
	"AI Suggestions",
}

// checkStructure validates the page skeleton: H1 title, summary blockquote,
// required sections, and balanced fences.
func checkStructure(doc *corpus.Document) []domain.LintIssue {
	var issues []domain.LintIssue

	if doc.Title == "" {
		issues = append(issues, domain.LintIssue{
			Path:     doc.Path,
			Code:     domain.CodeMissingTitle,
			Severity: domain.SeverityError,
			Message:  "page has no H1 title",
		})
	}

	if doc.Category.RequiresStructure() {
		if doc.DisplaySummary() == "" {
			issues = append(issues, domain.LintIssue{
				Path:     doc.Path,
				Code:     domain.CodeMissingSummary,
				Severity: domain.SeverityWarning,
				Message:  "page has no summary blockquote",
			})
		}

		for _, section := range requiredSections {
			if !doc.HasSection(section) {
				issues = append(issues, domain.LintIssue{
					Path:     doc.Path,
					Code:     domain.CodeMissingSection,
					Severity: domain.SeverityWarning,
					Message:  fmt.Sprintf("missing required section %q", section),
				})
			}
		}
	}

	if line, ok := unclosedFenceLine(doc.Body); ok {
		issues = append(issues, domain.LintIssue{
			Path:     doc.Path,
			Code:     domain.CodeUnclosedFence,
			Severity: domain.SeverityError,
			Message:  "code fence opened but never closed",
			Line:     line,
		})
	}

	return issues
}

// unclosedFenceLine scans for an unterminated code fence. Markdown treats an
// unterminated fence as running to end of file, so goldmark cannot report
// this; a line-level scan is the good-faith check. Per CommonMark, a fence
// closes only on a run of the opening marker character at least as long as
// the opening run, with nothing after it — shorter runs (a ``` line inside a
// ```` fence) are fence content.
func unclosedFenceLine(body []byte) (int, bool) {
	var (
		open     bool
		openLine int
		openChar byte
		openLen  int
	)

	for i, line := range strings.Split(string(body), "\n") {
		trimmed := strings.TrimLeft(line, " ")
		marker, runLen := fenceMarker(trimmed)
		if runLen < 3 {
			continue
		}
		if open {
			if marker == openChar && runLen >= openLen && strings.TrimSpace(trimmed[runLen:]) == "" {
				open = false
			}
			continue
		}
		open = true
		openLine = i + 1
		openChar = marker
		openLen = runLen
	}

	if open {
		return openLine, true
	}
	return 0, false
}

// fenceMarker reports the leading fence marker run of a line: the marker
// character (backtick or tilde) and its length, or a zero length for lines
// that start with neither.
func fenceMarker(line string) (byte, int) {
	if line == "" || (line[0] != '`' && line[0] != '~') {
		return 0, 0
	}
	n := 1
	for n < len(line) && line[n] == line[0] {
		n++
	}
	return line[0], n
}
