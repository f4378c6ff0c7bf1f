package domain

// Common fence language tags the linter knows how to probe. Every other tag
// is carried verbatim and never validated.
const (
	FenceLangYAML = "yaml"
	FenceLangYML  = "yml"
	FenceLangJSON = "json"
)

// CodeFence is one language-tagged code block inside a page, stored verbatim
// so API consumers can copy it without re-parsing markdown.
type CodeFence struct {
	ID      string
	PageID  string
	Ordinal int
	Lang    string
	Section string
	Line    int
	Content string
}
