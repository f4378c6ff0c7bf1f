package corpus

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// Meta is the optional YAML frontmatter of a template page. Every field is
// optional; unknown keys are preserved in Custom.
type Meta struct {
	Title    string         `yaml:"title"`
	Slug     string         `yaml:"slug"`
	Summary  string         `yaml:"summary"`
	Category string         `yaml:"category"`
	Tags     []string       `yaml:"tags"`
	Draft    bool           `yaml:"draft"`
	Custom   map[string]any `yaml:",inline"`
}

// parseFrontMatter extracts metadata and the markdown body from the provided
// source bytes. Pages without frontmatter are returned unchanged with an
// empty Meta.
func parseFrontMatter(source []byte) (Meta, []byte, error) {
	var meta Meta

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return Meta{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return meta, body, nil
}
