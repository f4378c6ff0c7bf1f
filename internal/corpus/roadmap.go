package corpus

import (
	"strings"

	"github.com/tmplhub/tmplhub/internal/domain"
)

// parseRoadmap extracts status rows from the roadmap markdown table. The
// table is authored by hand and historically drifts; anything that does not
// look like a row with a .md path is skipped.
func parseRoadmap(source []byte) []domain.RoadmapEntry {
	var entries []domain.RoadmapEntry

	for i, line := range strings.Split(string(source), "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "|") {
			continue
		}

		cells := splitRow(trimmed)
		if len(cells) < 2 || isSeparatorRow(cells) {
			continue
		}

		entry := domain.RoadmapEntry{Line: i + 1}
		for _, cell := range cells {
			if strings.HasSuffix(strings.Trim(cell, "` "), ".md") {
				entry.Path = normalizeRoadmapPath(cell)
			}
			if status, ok := parseStatus(cell); ok {
				entry.Status = status
			}
		}
		if entry.Path == "" || entry.Status == "" {
			continue
		}

		entry.Topic = strings.TrimSpace(cells[0])
		entries = append(entries, entry)
	}

	return entries
}

func splitRow(row string) []string {
	row = strings.Trim(row, "|")
	parts := strings.Split(row, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

func isSeparatorRow(cells []string) bool {
	for _, c := range cells {
		if strings.Trim(c, "-: ") != "" {
			return false
		}
	}
	return true
}

// parseStatus recognizes the status markers used in the roadmap table:
// "✅ EXISTS" style cells and plain-text planned/todo markers.
func parseStatus(cell string) (domain.RoadmapStatus, bool) {
	lower := strings.ToLower(cell)
	switch {
	case strings.Contains(cell, "✅"), strings.Contains(lower, "exists"), strings.Contains(lower, "done"):
		return domain.RoadmapStatusExists, true
	case strings.Contains(cell, "❌"), strings.Contains(lower, "planned"), strings.Contains(lower, "todo"):
		return domain.RoadmapStatusPlanned, true
	default:
		return "", false
	}
}
