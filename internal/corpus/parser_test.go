package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmplhub/tmplhub/internal/domain"
)

const samplePage = `# Dependabot

> Automated dependency updates.

## Overview

- one config file
- grouped updates

## Quick Start

` + "```bash" + `
mkdir -p .github
` + "```" + `

## Configuration

` + "```yaml" + `
version: 2
` + "```" + `

See also [the Go workflow](github-actions-go.md).
`

func TestParseExtractsStructure(t *testing.T) {
	doc, err := Parse("ci-cd/dependabot.md", []byte(samplePage))
	require.NoError(t, err)

	assert.Equal(t, "Dependabot", doc.Title)
	assert.Equal(t, "Automated dependency updates.", doc.Summary)
	assert.Equal(t, domain.CategoryCICD, doc.Category)
	assert.Equal(t, "dependabot", doc.Slug)
	assert.False(t, doc.SlugInvalid)
	assert.NotEmpty(t, doc.Checksum)

	require.Len(t, doc.Sections, 3)
	assert.True(t, doc.HasSection("Overview"))
	assert.True(t, doc.HasSection("Quick Start"))
	assert.True(t, doc.HasSection("Configuration"))
	assert.False(t, doc.HasSection("AI Suggestions"))
}

func TestParseExtractsFences(t *testing.T) {
	doc, err := Parse("ci-cd/dependabot.md", []byte(samplePage))
	require.NoError(t, err)

	require.Len(t, doc.Fences, 2)

	bash := doc.Fences[0]
	assert.Equal(t, 0, bash.Ordinal)
	assert.Equal(t, "bash", bash.Lang)
	assert.Equal(t, "Quick Start", bash.Section)
	assert.Equal(t, "mkdir -p .github\n", bash.Content)
	assert.Greater(t, bash.Line, 0)

	yaml := doc.Fences[1]
	assert.Equal(t, 1, yaml.Ordinal)
	assert.Equal(t, "yaml", yaml.Lang)
	assert.Equal(t, "Configuration", yaml.Section)
	assert.Equal(t, "version: 2\n", yaml.Content)
	assert.Greater(t, yaml.Line, bash.Line)
}

func TestParseExtractsLinks(t *testing.T) {
	doc, err := Parse("ci-cd/dependabot.md", []byte(samplePage))
	require.NoError(t, err)

	require.Len(t, doc.Links, 1)
	assert.Equal(t, "github-actions-go.md", doc.Links[0].Destination)
}

func TestParseFrontmatter(t *testing.T) {
	source := `---
title: Custom Title
slug: custom-slug
summary: Frontmatter summary.
tags: [ci, automation]
draft: true
---
# Body Title
`

	doc, err := Parse("ci-cd/page.md", []byte(source))
	require.NoError(t, err)

	assert.Equal(t, "Custom Title", doc.Meta.Title)
	assert.Equal(t, "custom-slug", doc.Slug)
	assert.Equal(t, []string{"ci", "automation"}, doc.Meta.Tags)
	assert.True(t, doc.Meta.Draft)

	// The H1 still wins for display.
	assert.Equal(t, "Body Title", doc.DisplayTitle())
	assert.Equal(t, "Frontmatter summary.", doc.DisplaySummary())
}

func TestParseInvalidFrontmatterSlugFallsBack(t *testing.T) {
	source := `---
slug: "Not A Slug!"
---
# Page
`

	doc, err := Parse("ci-cd/my-page.md", []byte(source))
	require.NoError(t, err)

	assert.Equal(t, "my-page", doc.Slug)
	assert.True(t, doc.SlugInvalid)
}

func TestParsePageWithoutFrontmatter(t *testing.T) {
	doc, err := Parse("agents/prompt.md", []byte("# Prompt\n\nPlain text.\n"))
	require.NoError(t, err)

	assert.Equal(t, "Prompt", doc.Title)
	assert.Equal(t, domain.CategoryAgents, doc.Category)
	assert.Empty(t, doc.Summary)
	assert.Empty(t, doc.Fences)
}

func TestCategoryFromPath(t *testing.T) {
	tests := []struct {
		path string
		want domain.Category
	}{
		{"ci-cd/dependabot.md", domain.CategoryCICD},
		{"scaffolds/fastapi.md", domain.CategoryScaffolds},
		{"agents/reviewer.md", domain.CategoryAgents},
		{"misc/other.md", ""},
		{"orphan.md", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, categoryFromPath(tt.path), tt.path)
	}
}

func TestLineIndex(t *testing.T) {
	idx := newLineIndex([]byte("a\nbb\nccc\n"))

	assert.Equal(t, 1, idx.lineFor(0))
	assert.Equal(t, 2, idx.lineFor(2))
	assert.Equal(t, 3, idx.lineFor(5))
	assert.Equal(t, 0, idx.lineFor(-1))
}
