// Package render turns template page markdown into HTML with syntax
// highlighted code fences. Rendering is a pure function of the page body;
// the database only ever stores markdown.
package render

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Renderer renders page markdown to HTML.
type Renderer struct {
	engine goldmark.Markdown
}

// New constructs a Renderer with GFM extensions and chroma highlighting for
// fenced code blocks, using the given chroma style name.
func New(style string) *Renderer {
	engine := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(
				util.Prioritized(newFenceRenderer(style), 100),
			),
		),
	)
	return &Renderer{engine: engine}
}

// Render converts markdown to HTML.
func (r *Renderer) Render(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// fenceRenderer overrides fenced code block rendering to emit chroma output
// instead of goldmark's plain <pre><code>.
type fenceRenderer struct {
	style *chroma.Style
}

func newFenceRenderer(styleName string) *fenceRenderer {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	return &fenceRenderer{style: style}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *fenceRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFence)
}

func (r *fenceRenderer) renderFence(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*ast.FencedCodeBlock)
	lang := string(n.Language(source))

	var content bytes.Buffer
	segments := n.Lines()
	for i := 0; i < segments.Len(); i++ {
		segment := segments.At(i)
		content.Write(segment.Value(source))
	}

	if err := r.highlight(w, content.String(), lang); err != nil {
		// Degrade to an unhighlighted block rather than failing the page.
		_, _ = w.WriteString("<pre><code>")
		r.writeEscaped(w, content.Bytes())
		_, _ = w.WriteString("</code></pre>\n")
	}

	return ast.WalkSkipChildren, nil
}

// highlight tokenises the fence with the lexer matching its language tag and
// writes inline-styled HTML.
func (r *fenceRenderer) highlight(w util.BufWriter, source, lang string) error {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return fmt.Errorf("tokenise fence: %w", err)
	}

	formatter := chromahtml.New(chromahtml.Standalone(false))
	if err := formatter.Format(w, r.style, iterator); err != nil {
		return fmt.Errorf("format fence: %w", err)
	}
	return nil
}

func (r *fenceRenderer) writeEscaped(w util.BufWriter, source []byte) {
	for _, b := range source {
		switch b {
		case '&':
			_, _ = w.WriteString("&amp;")
		case '<':
			_, _ = w.WriteString("&lt;")
		case '>':
			_, _ = w.WriteString("&gt;")
		default:
			_ = w.WriteByte(b)
		}
	}
}
