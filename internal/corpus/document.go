package corpus

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/tmplhub/tmplhub/internal/domain"
)

// Document is one parsed template page, prior to persistence.
type Document struct {
	// Path is corpus-relative, e.g. "ci-cd/dependabot.md".
	Path     string
	Category domain.Category
	Slug     string
	Meta     Meta
	Title    string
	Summary  string
	Sections []Section
	Fences   []Fence
	Links    []Link
	Checksum string

	// Body is the markdown source with frontmatter stripped.
	Body []byte

	// SlugInvalid is set when the frontmatter declared a slug that failed
	// normalization and the filename stem was used instead.
	SlugInvalid bool
}

// Section is one H2 section of a page.
type Section struct {
	Heading string
	Line    int
}

// Fence is one fenced code block, in document order.
type Fence struct {
	Ordinal int
	Lang    string
	Section string
	Line    int
	Content string
}

// Link is one markdown link destination found in the page.
type Link struct {
	Destination string
	Line        int
}

// HasSection reports whether the page contains an H2 with the given heading.
func (d *Document) HasSection(heading string) bool {
	for _, s := range d.Sections {
		if s.Heading == heading {
			return true
		}
	}
	return false
}

// DisplayTitle prefers the H1 title, falling back to frontmatter.
func (d *Document) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Meta.Title
}

// DisplaySummary prefers the blockquote summary, falling back to frontmatter.
func (d *Document) DisplaySummary() string {
	if d.Summary != "" {
		return d.Summary
	}
	return d.Meta.Summary
}

// checksum returns the hex SHA-256 of the raw file contents. Sync uses it to
// skip re-indexing unchanged pages.
func checksum(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}
