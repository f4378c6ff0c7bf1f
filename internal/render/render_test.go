package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBasicMarkdown(t *testing.T) {
	r := New("github")

	html, err := r.Render([]byte("# Title\n\n> A summary line.\n\nBody text.\n"))
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, `<h1 id="title">Title</h1>`)
	assert.Contains(t, out, "<blockquote>")
	assert.Contains(t, out, "Body text.")
}

func TestRenderHighlightsFences(t *testing.T) {
	r := New("github")

	html, err := r.Render([]byte("```yaml\nversion: 2\n```\n"))
	require.NoError(t, err)

	out := string(html)
	// Chroma emits inline-styled spans; goldmark's plain block does not.
	assert.Contains(t, out, "<pre")
	assert.Contains(t, out, "style=")
	assert.Contains(t, out, "version")
	assert.NotContains(t, out, `<code class="language-yaml">`)
}

func TestRenderUnknownLanguageFallsBack(t *testing.T) {
	r := New("github")

	html, err := r.Render([]byte("```nosuchlang\nplain <text> & stuff\n```\n"))
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "<pre")
	assert.NotContains(t, out, "plain <text>", "content must be escaped")
}

func TestRenderUnknownStyleStillWorks(t *testing.T) {
	r := New("definitely-not-a-style")

	html, err := r.Render([]byte("```go\npackage main\n```\n"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "package")
}

func TestRenderGFMTable(t *testing.T) {
	r := New("github")

	html, err := r.Render([]byte("| A | B |\n| --- | --- |\n| 1 | 2 |\n"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<table>")
}
