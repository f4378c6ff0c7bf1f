package lint

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/tmplhub/tmplhub/internal/corpus"
	"github.com/tmplhub/tmplhub/internal/domain"
)

// Known fence kinds: pages whose slug matches get one semantic check on top
// of the syntax probe. The schemas encode only the anchor keys the corpus
// convention promises, not the documented tool's full config surface.
const (
	dependabotSchema = `{
		"type": "object",
		"required": ["version"],
		"properties": {
			"version": {"const": 2}
		}
	}`

	chromeManifestSchema = `{
		"type": "object",
		"required": ["manifest_version"],
		"properties": {
			"manifest_version": {"const": 3}
		}
	}`
)

// knownKind ties a page slug to the fence language and schema it must carry.
type knownKind struct {
	slug   string
	lang   string
	schema *jsonschema.Schema
	what   string
}

type schemaSet struct {
	kinds []knownKind
}

func compileSchemas() (*schemaSet, error) {
	dependabot, err := jsonschema.CompileString("dependabot.json", dependabotSchema)
	if err != nil {
		return nil, fmt.Errorf("dependabot schema: %w", err)
	}
	manifest, err := jsonschema.CompileString("chrome-manifest.json", chromeManifestSchema)
	if err != nil {
		return nil, fmt.Errorf("chrome manifest schema: %w", err)
	}

	return &schemaSet{
		kinds: []knownKind{
			{slug: "dependabot", lang: domain.FenceLangYAML, schema: dependabot, what: "dependabot config with version: 2"},
			{slug: "chrome-extension", lang: domain.FenceLangJSON, schema: manifest, what: "manifest with manifest_version: 3"},
		},
	}, nil
}

// checkFenceSchemas validates known page kinds: at least one fence of the
// expected language must satisfy the kind's schema.
func (l *Linter) checkFenceSchemas(doc *corpus.Document) []domain.LintIssue {
	var issues []domain.LintIssue

	for _, kind := range l.schemas.kinds {
		if doc.Slug != kind.slug {
			continue
		}

		if !anyFenceMatches(doc, kind) {
			issues = append(issues, domain.LintIssue{
				Path:     doc.Path,
				Code:     domain.CodeFenceSchema,
				Severity: domain.SeverityError,
				Message:  fmt.Sprintf("page %q has no %s fence containing a %s", doc.Slug, kind.lang, kind.what),
			})
		}
	}

	return issues
}

func anyFenceMatches(doc *corpus.Document, kind knownKind) bool {
	for _, fence := range doc.Fences {
		if fence.Lang != kind.lang && !(kind.lang == domain.FenceLangYAML && fence.Lang == domain.FenceLangYML) {
			continue
		}

		v, err := decodeFence(fence.Lang, fence.Content)
		if err != nil {
			continue
		}
		if kind.schema.Validate(v) == nil {
			return true
		}
	}
	return false
}

// decodeFence parses fence content into a generic value for schema
// validation. YAML values are round-tripped through JSON because the schema
// validator expects json.Unmarshal-shaped values.
func decodeFence(lang, content string) (any, error) {
	data := []byte(content)

	if lang == domain.FenceLangYAML || lang == domain.FenceLangYML {
		var yv any
		if err := yaml.Unmarshal(data, &yv); err != nil {
			return nil, err
		}
		normalized, err := json.Marshal(yv)
		if err != nil {
			return nil, err
		}
		data = normalized
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}
