package lint

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmplhub/tmplhub/internal/corpus"
	"github.com/tmplhub/tmplhub/internal/domain"
)

func newLinter(t *testing.T) *Linter {
	t.Helper()
	linter, err := New()
	require.NoError(t, err)
	return linter
}

func loadCorpus(t *testing.T, files map[string]string) *corpus.Corpus {
	t.Helper()
	fsys := fstest.MapFS{}
	for path, content := range files {
		fsys[path] = &fstest.MapFile{Data: []byte(content)}
	}
	c, err := corpus.Load(fsys, "test")
	require.NoError(t, err)
	return c
}

func codesOf(issues []domain.LintIssue) []domain.IssueCode {
	codes := make([]domain.IssueCode, 0, len(issues))
	for _, issue := range issues {
		codes = append(codes, issue.Code)
	}
	return codes
}

func TestBuiltinCorpusIsClean(t *testing.T) {
	c, err := corpus.Load(corpus.Builtin(), "builtin")
	require.NoError(t, err)

	issues := newLinter(t).Run(c)
	assert.Empty(t, issues, "starter corpus must lint clean: %v", issues)
}

func TestMissingTitle(t *testing.T) {
	c := loadCorpus(t, map[string]string{
		"agents/prompt.md": "Just prose, no heading.\n",
	})

	issues := newLinter(t).Run(c)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.CodeMissingTitle, issues[0].Code)
	assert.Equal(t, domain.SeverityError, issues[0].Severity)
	assert.Equal(t, "agents/prompt.md", issues[0].Path)
}

func TestMissingSectionsAndSummary(t *testing.T) {
	c := loadCorpus(t, map[string]string{
		"ci-cd/bare.md": "# Bare\n\n## Overview\n\nText.\n",
	})

	issues := newLinter(t).Run(c)
	codes := codesOf(issues)

	assert.Contains(t, codes, domain.CodeMissingSummary)
	assert.Contains(t, codes, domain.CodeMissingSection)
	assert.NotContains(t, codes, domain.CodeMissingTitle)

	// Overview is present, the other three required sections are not.
	missing := 0
	for _, issue := range issues {
		if issue.Code == domain.CodeMissingSection {
			missing++
			assert.Equal(t, domain.SeverityWarning, issue.Severity)
		}
	}
	assert.Equal(t, 3, missing)
}

func TestAgentPagesExemptFromStructure(t *testing.T) {
	c := loadCorpus(t, map[string]string{
		"agents/prompt.md": "# Prompt\n\nFree-form prompt body, no sections.\n",
	})

	issues := newLinter(t).Run(c)
	assert.Empty(t, issues)
}

func TestYAMLFenceSyntax(t *testing.T) {
	c := loadCorpus(t, map[string]string{
		"agents/page.md": "# Page\n\n```yaml\nfoo: [unclosed\n```\n",
	})

	issues := newLinter(t).Run(c)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.CodeYAMLSyntax, issues[0].Code)
	assert.Equal(t, domain.SeverityError, issues[0].Severity)
	assert.Greater(t, issues[0].Line, 0)
}

func TestJSONFenceSyntax(t *testing.T) {
	c := loadCorpus(t, map[string]string{
		"agents/page.md": "# Page\n\n```json\n{not json}\n```\n",
	})

	issues := newLinter(t).Run(c)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.CodeJSONSyntax, issues[0].Code)
}

func TestNonConfigFencesNeverValidated(t *testing.T) {
	c := loadCorpus(t, map[string]string{
		"agents/page.md": "# Page\n\n```bash\nif [ -z \"$x\" ; then\n```\n\n```\nfree text {{{\n```\n",
	})

	issues := newLinter(t).Run(c)
	assert.Empty(t, issues)
}

func TestUnclosedFence(t *testing.T) {
	c := loadCorpus(t, map[string]string{
		"agents/page.md": "# Page\n\n```bash\necho hi\n",
	})

	issues := newLinter(t).Run(c)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.CodeUnclosedFence, issues[0].Code)
	assert.Equal(t, domain.SeverityError, issues[0].Severity)
	assert.Equal(t, 3, issues[0].Line)
}

func TestNestedFenceNotFlagged(t *testing.T) {
	c := loadCorpus(t, map[string]string{
		"agents/page.md": "# Page\n\n````markdown\nTo open a fence write:\n```\n````\n\n~~~\nplain text\n~~~\n",
	})

	issues := newLinter(t).Run(c)
	assert.Empty(t, issues, "shorter marker runs inside a fence are content, not closers")
}

func TestUnclosedOuterFence(t *testing.T) {
	c := loadCorpus(t, map[string]string{
		"agents/page.md": "# Page\n\n````markdown\n```\necho hi\n```\n",
	})

	issues := newLinter(t).Run(c)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.CodeUnclosedFence, issues[0].Code)
	assert.Equal(t, 3, issues[0].Line)
}

func TestDependabotSchema(t *testing.T) {
	valid := "# Dependabot\n\n```yaml\nversion: 2\nupdates: []\n```\n"
	wrongVersion := "# Dependabot\n\n```yaml\nversion: 1\n```\n"

	c := loadCorpus(t, map[string]string{"agents/dependabot.md": valid})
	assert.Empty(t, newLinter(t).Run(c))

	c = loadCorpus(t, map[string]string{"agents/dependabot.md": wrongVersion})
	issues := newLinter(t).Run(c)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.CodeFenceSchema, issues[0].Code)
	assert.Equal(t, domain.SeverityError, issues[0].Severity)
}

func TestChromeManifestSchema(t *testing.T) {
	c := loadCorpus(t, map[string]string{
		"agents/chrome-extension.md": "# Ext\n\n```json\n{\"manifest_version\": 2}\n```\n",
	})

	issues := newLinter(t).Run(c)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.CodeFenceSchema, issues[0].Code)
	assert.Contains(t, issues[0].Message, "manifest_version")
}

func TestInvalidFrontmatterSlug(t *testing.T) {
	c := loadCorpus(t, map[string]string{
		"agents/page.md": "---\nslug: \"Not Valid!\"\n---\n# Page\n",
	})

	issues := newLinter(t).Run(c)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.CodeInvalidSlug, issues[0].Code)
	assert.Equal(t, domain.SeverityWarning, issues[0].Severity)
}

func TestDuplicateSlugs(t *testing.T) {
	c := loadCorpus(t, map[string]string{
		"ci-cd/topic.md":     "# A\n",
		"scaffolds/topic.md": "# B\n",
	})

	issues := newLinter(t).Run(c)

	duplicates := 0
	for _, issue := range issues {
		if issue.Code == domain.CodeDuplicateSlug {
			duplicates++
			assert.Equal(t, domain.SeverityError, issue.Severity)
			assert.Contains(t, issue.Message, `slug "topic"`)
		}
	}
	assert.Equal(t, 2, duplicates, "both colliding pages must be flagged")
}

func TestBrokenCrossReference(t *testing.T) {
	c := loadCorpus(t, map[string]string{
		"agents/page.md": "# Page\n\nSee [other](other.md), [gone](../ci-cd/gone.md), " +
			"[site](https://example.com), and [top](#page).\n",
		"agents/other.md": "# Other\n",
	})

	issues := newLinter(t).Run(c)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.CodeBrokenXref, issues[0].Code)
	assert.Contains(t, issues[0].Message, `"../ci-cd/gone.md"`)
	assert.Greater(t, issues[0].Line, 0)
}

func TestRoadmapLinkNeedsRoadmapFile(t *testing.T) {
	page := "# Page\n\nSee the [roadmap](../roadmap.md).\n"

	c := loadCorpus(t, map[string]string{"agents/page.md": page})
	issues := newLinter(t).Run(c)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.CodeBrokenXref, issues[0].Code)

	c = loadCorpus(t, map[string]string{
		"agents/page.md": page,
		"roadmap.md":     "# Roadmap\n",
	})
	assert.Empty(t, newLinter(t).Run(c))
}

func TestRoadmapMissingPage(t *testing.T) {
	c := loadCorpus(t, map[string]string{
		"roadmap.md": "# Roadmap\n\n| Topic | Path | Status |\n| --- | --- | --- |\n" +
			"| Gone | `agents/gone.md` | ✅ EXISTS |\n" +
			"| Here | `agents/here.md` | ✅ EXISTS |\n",
		"agents/here.md": "# Here\n",
	})

	issues := newLinter(t).Run(c)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.CodeRoadmapMissingPage, issues[0].Code)
	assert.Equal(t, "roadmap.md", issues[0].Path)
	assert.Equal(t, domain.SeverityError, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "agents/gone.md")
}

func TestRoadmapUntrackedPage(t *testing.T) {
	c := loadCorpus(t, map[string]string{
		"roadmap.md": "# Roadmap\n\n| Topic | Path | Status |\n| --- | --- | --- |\n" +
			"| Here | `agents/here.md` | ✅ EXISTS |\n",
		"agents/here.md": "# Here\n",
		"agents/solo.md": "# Solo\n",
	})

	issues := newLinter(t).Run(c)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.CodeRoadmapUntracked, issues[0].Code)
	assert.Equal(t, "agents/solo.md", issues[0].Path)
	assert.Equal(t, domain.SeverityWarning, issues[0].Severity)
}

func TestRoadmapOptional(t *testing.T) {
	c := loadCorpus(t, map[string]string{
		"agents/solo.md": "# Solo\n",
	})

	assert.Empty(t, newLinter(t).Run(c))
}

func TestParseFailureReported(t *testing.T) {
	c := loadCorpus(t, map[string]string{
		"ci-cd/bad.md": "---\ntitle: [unclosed\n---\n# Bad\n",
	})

	issues := newLinter(t).Run(c)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.CodeParseFailure, issues[0].Code)
	assert.Equal(t, domain.SeverityError, issues[0].Severity)
}

func TestIssuesSortedByPathAndLine(t *testing.T) {
	c := loadCorpus(t, map[string]string{
		"agents/b.md": "# B\n\n```yaml\nx: [\n```\n",
		"agents/a.md": "# A\n\n```json\n{\n```\n\n```yaml\ny: [\n```\n",
	})

	issues := newLinter(t).Run(c)
	require.Len(t, issues, 3)
	assert.Equal(t, "agents/a.md", issues[0].Path)
	assert.Equal(t, "agents/a.md", issues[1].Path)
	assert.Equal(t, "agents/b.md", issues[2].Path)
	assert.Less(t, issues[0].Line, issues[1].Line)
}

func TestSummarize(t *testing.T) {
	issues := []domain.LintIssue{
		{Severity: domain.SeverityError},
		{Severity: domain.SeverityError},
		{Severity: domain.SeverityWarning},
		{Severity: domain.SeverityInfo},
	}

	s := Summarize(issues)
	assert.Equal(t, 2, s.Errors)
	assert.Equal(t, 1, s.Warnings)
	assert.Equal(t, 1, s.Infos)
}
