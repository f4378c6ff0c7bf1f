package lint

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tmplhub/tmplhub/internal/corpus"
	"github.com/tmplhub/tmplhub/internal/domain"
)

// checkFenceSyntax probes every yaml/json tagged fence with the matching
// parser. Other language tags are carried verbatim and never validated.
func checkFenceSyntax(doc *corpus.Document) []domain.LintIssue {
	var issues []domain.LintIssue

	for _, fence := range doc.Fences {
		switch fence.Lang {
		case domain.FenceLangYAML, domain.FenceLangYML:
			var v any
			if err := yaml.Unmarshal([]byte(fence.Content), &v); err != nil {
				issues = append(issues, domain.LintIssue{
					Path:     doc.Path,
					Code:     domain.CodeYAMLSyntax,
					Severity: domain.SeverityError,
					Message:  fmt.Sprintf("yaml fence #%d does not parse: %v", fence.Ordinal, err),
					Line:     fence.Line,
				})
			}
		case domain.FenceLangJSON:
			var v any
			if err := json.Unmarshal([]byte(fence.Content), &v); err != nil {
				issues = append(issues, domain.LintIssue{
					Path:     doc.Path,
					Code:     domain.CodeJSONSyntax,
					Severity: domain.SeverityError,
					Message:  fmt.Sprintf("json fence #%d does not parse: %v", fence.Ordinal, err),
					Line:     fence.Line,
				})
			}
		}
	}

	return issues
}
