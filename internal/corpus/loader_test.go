package corpus

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmplhub/tmplhub/internal/domain"
)

func TestLoadBuiltinCorpus(t *testing.T) {
	c, err := Load(Builtin(), "builtin")
	require.NoError(t, err)

	assert.Equal(t, "builtin", c.Source)
	assert.Empty(t, c.Failures)
	require.Len(t, c.Docs, 4)

	paths := c.Paths()
	assert.True(t, paths["ci-cd/dependabot.md"])
	assert.True(t, paths["ci-cd/github-actions-go.md"])
	assert.True(t, paths["scaffolds/chrome-extension.md"])
	assert.True(t, paths["agents/code-reviewer.md"])

	assert.True(t, c.HasRoadmap)
	require.Len(t, c.Roadmap, 6)
}

func TestLoadSkipsUnknownDirectories(t *testing.T) {
	fsys := fstest.MapFS{
		"ci-cd/page.md":   {Data: []byte("# Page\n")},
		"drafts/wip.md":   {Data: []byte("# WIP\n")},
		"ci-cd/notes.txt": {Data: []byte("not markdown")},
	}

	c, err := Load(fsys, "test")
	require.NoError(t, err)

	require.Len(t, c.Docs, 1)
	assert.Equal(t, "ci-cd/page.md", c.Docs[0].Path)
	assert.Empty(t, c.Failures)
	assert.False(t, c.HasRoadmap)
}

func TestLoadRecordsParseFailures(t *testing.T) {
	fsys := fstest.MapFS{
		"ci-cd/bad.md": {Data: []byte("---\ntitle: [unclosed\n---\n# Bad\n")},
		"ci-cd/ok.md":  {Data: []byte("# OK\n")},
	}

	c, err := Load(fsys, "test")
	require.NoError(t, err)

	require.Len(t, c.Docs, 1)
	require.Len(t, c.Failures, 1)
	assert.Equal(t, "ci-cd/bad.md", c.Failures[0].Path)
	assert.Error(t, c.Failures[0].Err)
}

func TestLoadDirMissing(t *testing.T) {
	_, err := LoadDir("/nonexistent/corpus", "test")
	require.ErrorIs(t, err, domain.ErrCorpusNotFound)
}

func TestParseRoadmap(t *testing.T) {
	source := []byte(`# Roadmap

Some prose before the table.

| Template | Path | Status |
| --- | --- | --- |
| Dependabot | ` + "`ci-cd/dependabot.md`" + ` | ✅ EXISTS |
| Jenkins | template-builder/ci-cd/jenkins.md | PLANNED |
| Broken row with no path | something | ✅ |
`)

	entries := parseRoadmap(source)
	require.Len(t, entries, 2)

	assert.Equal(t, "Dependabot", entries[0].Topic)
	assert.Equal(t, "ci-cd/dependabot.md", entries[0].Path)
	assert.Equal(t, domain.RoadmapStatusExists, entries[0].Status)
	assert.Greater(t, entries[0].Line, 0)

	assert.Equal(t, "ci-cd/jenkins.md", entries[1].Path)
	assert.Equal(t, domain.RoadmapStatusPlanned, entries[1].Status)
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		cell   string
		want   domain.RoadmapStatus
		wantOK bool
	}{
		{"✅ EXISTS", domain.RoadmapStatusExists, true},
		{"done", domain.RoadmapStatusExists, true},
		{"❌", domain.RoadmapStatusPlanned, true},
		{"PLANNED", domain.RoadmapStatusPlanned, true},
		{"TODO", domain.RoadmapStatusPlanned, true},
		{"whatever", "", false},
	}

	for _, tt := range tests {
		got, ok := parseStatus(tt.cell)
		assert.Equal(t, tt.wantOK, ok, tt.cell)
		assert.Equal(t, tt.want, got, tt.cell)
	}
}
