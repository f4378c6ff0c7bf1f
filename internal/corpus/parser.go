package corpus

import (
	"bytes"
	"fmt"
	"path"
	"sort"
	"strings"

	slug "github.com/goliatone/go-slug"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/tmplhub/tmplhub/internal/domain"
)

// markdown is the shared goldmark instance used for structural parsing.
// The parser is stateless, so a single instance is safe to reuse.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
		extension.TaskList,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// Parse builds a Document from the raw contents of one page file.
// The path must be corpus-relative (e.g. "ci-cd/dependabot.md").
func Parse(relPath string, source []byte) (*Document, error) {
	meta, body, err := parseFrontMatter(source)
	if err != nil {
		return nil, fmt.Errorf("parse page %s: %w", relPath, err)
	}

	doc := &Document{
		Path:     relPath,
		Category: categoryFromPath(relPath),
		Meta:     meta,
		Checksum: checksum(source),
		Body:     body,
	}
	doc.Slug, doc.SlugInvalid = resolveSlug(relPath, meta)

	lines := newLineIndex(body)
	root := markdown.Parser().Parse(text.NewReader(body))

	var currentSection string
	sawH2 := false

	err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			heading := string(node.Text(body))
			line := lines.lineFor(firstSegmentStart(node))
			switch node.Level {
			case 1:
				if doc.Title == "" {
					doc.Title = heading
				}
			case 2:
				sawH2 = true
				currentSection = heading
				doc.Sections = append(doc.Sections, Section{Heading: heading, Line: line})
			}

		case *ast.Blockquote:
			// The page summary is the first top-level blockquote before any
			// H2 section.
			if doc.Summary == "" && !sawH2 && node.Parent() == root {
				doc.Summary = strings.TrimSpace(string(node.Text(body)))
			}

		case *ast.FencedCodeBlock:
			fence := Fence{
				Ordinal: len(doc.Fences),
				Lang:    strings.ToLower(string(node.Language(body))),
				Section: currentSection,
				Line:    lines.lineFor(firstSegmentStart(node)),
				Content: fenceContent(node, body),
			}
			doc.Fences = append(doc.Fences, fence)
			return ast.WalkSkipChildren, nil

		case *ast.Link:
			doc.Links = append(doc.Links, Link{
				Destination: string(node.Destination),
				Line:        lines.lineFor(firstSegmentStart(n)),
			})
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk page %s: %w", relPath, err)
	}

	return doc, nil
}

// categoryFromPath derives the category from the first path element.
// Unknown directories yield an empty (invalid) category; the linter reports
// those.
func categoryFromPath(relPath string) domain.Category {
	dir := path.Dir(relPath)
	if dir == "." {
		return ""
	}
	parts := strings.Split(dir, "/")
	c := domain.Category(parts[0])
	if !c.IsValid() {
		return ""
	}
	return c
}

// resolveSlug picks the page slug: a valid frontmatter slug wins, otherwise
// the normalized filename stem. The second return is true when a frontmatter
// slug was declared but rejected.
func resolveSlug(relPath string, meta Meta) (string, bool) {
	if meta.Slug != "" {
		if slug.IsValid(meta.Slug) {
			return meta.Slug, false
		}
		return stemSlug(relPath), true
	}
	return stemSlug(relPath), false
}

func stemSlug(relPath string) string {
	stem := strings.TrimSuffix(path.Base(relPath), path.Ext(relPath))
	normalized, err := slug.Normalize(stem)
	if err != nil || normalized == "" {
		return stem
	}
	return normalized
}

// fenceContent joins the literal lines of a fenced code block.
func fenceContent(node *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	segments := node.Lines()
	for i := 0; i < segments.Len(); i++ {
		segment := segments.At(i)
		buf.Write(segment.Value(source))
	}
	return buf.String()
}

// firstSegmentStart returns the byte offset of the node's first source line,
// or -1 when the node carries no segments (e.g. an empty fence).
func firstSegmentStart(n ast.Node) int {
	type lined interface {
		Lines() *text.Segments
	}
	if block, ok := n.(lined); ok && n.Type() == ast.TypeBlock {
		if segments := block.Lines(); segments != nil && segments.Len() > 0 {
			return segments.At(0).Start
		}
	}
	if parent := n.Parent(); parent != nil {
		if block, ok := parent.(lined); ok && parent.Type() == ast.TypeBlock {
			if segments := block.Lines(); segments != nil && segments.Len() > 0 {
				return segments.At(0).Start
			}
		}
	}
	return -1
}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex struct {
	starts []int
}

func newLineIndex(source []byte) *lineIndex {
	starts := []int{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts}
}

func (l *lineIndex) lineFor(offset int) int {
	if offset < 0 {
		return 0
	}
	i := sort.Search(len(l.starts), func(i int) bool { return l.starts[i] > offset })
	return i
}
