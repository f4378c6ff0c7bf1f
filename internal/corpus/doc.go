// Package corpus loads and parses template pages from a corpus directory.
// A corpus is a tree of markdown files laid out as
// <category>/<topic>.md plus an optional roadmap.md status page at the root.
// Parsing is structural only: frontmatter, title, summary, sections, code
// fences, and links are extracted; nothing is validated here (see the lint
// package).
package corpus
