package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/tmplhub/tmplhub/internal/domain"
)

// roadmapFile is the corpus-root status page listing written and planned
// templates.
const roadmapFile = "roadmap.md"

// Corpus is the result of loading one corpus tree: every page that parsed,
// every file that did not, and the roadmap table if present.
type Corpus struct {
	Source   string
	Docs     []*Document
	Failures []Failure
	Roadmap  []domain.RoadmapEntry
	// HasRoadmap records that a roadmap file was present, even one whose
	// table parsed to zero entries.
	HasRoadmap bool
}

// Failure records a file that could not be read or parsed. The sync pipeline
// records these as page-level lint issues instead of aborting.
type Failure struct {
	Path string
	Err  error
}

// Paths returns the corpus-relative path of every successfully parsed page.
func (c *Corpus) Paths() map[string]bool {
	paths := make(map[string]bool, len(c.Docs))
	for _, doc := range c.Docs {
		paths[doc.Path] = true
	}
	return paths
}

// LoadDir loads a corpus from a directory on disk.
func LoadDir(dir string, source string) (*Corpus, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCorpusNotFound, dir)
		}
		return nil, fmt.Errorf("stat corpus dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrCorpusNotFound, dir)
	}

	return Load(os.DirFS(dir), source)
}

// Load walks fsys collecting markdown pages. Files under unknown top-level
// directories are ignored; the corpus layout owns only <category>/<topic>.md
// and the root roadmap.
func Load(fsys fs.FS, source string) (*Corpus, error) {
	c := &Corpus{Source: source}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".md") {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			c.Failures = append(c.Failures, Failure{Path: p, Err: err})
			return nil
		}

		if p == roadmapFile {
			c.HasRoadmap = true
			c.Roadmap = parseRoadmap(data)
			return nil
		}

		if categoryFromPath(p) == "" {
			slog.Debug("skipping page outside category directories", "path", p)
			return nil
		}

		doc, err := Parse(p, data)
		if err != nil {
			c.Failures = append(c.Failures, Failure{Path: p, Err: err})
			return nil
		}
		c.Docs = append(c.Docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk corpus: %w", err)
	}

	slog.Debug("corpus loaded",
		"source", source,
		"pages", len(c.Docs),
		"failures", len(c.Failures),
		"roadmap_entries", len(c.Roadmap),
	)

	return c, nil
}

// normalizeRoadmapPath strips decoration from a roadmap path cell so it can
// be compared with corpus-relative page paths.
func normalizeRoadmapPath(cell string) string {
	p := strings.Trim(cell, "` ")
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "template-builder/")
	return path.Clean(p)
}
