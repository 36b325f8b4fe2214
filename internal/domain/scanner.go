package domain

import (
	"sort"

	"linkmend.dev/pkg/linkmend/internal/domain/patterns"
	m "linkmend.dev/pkg/linkmend/internal/model"
)

// Scanner detects broken-link shapes on single lines. It holds only the
// immutable catalog and is safe for concurrent use.
type Scanner struct {
	catalog patterns.Catalog
}

// NewScanner builds a scanner over the given catalog.
func NewScanner(catalog patterns.Catalog) *Scanner {
	return &Scanner{catalog: catalog}
}

// Scan returns every broken-link match on the line, ordered by start offset
// (longest first among equal starts). Overlapping candidates from different
// shapes are all reported; resolving overlaps is the rewriter's job.
//
// Lines whose only link-shaped content is a well-formed inline-code example
// are classified as already correct and yield no matches.
func (s *Scanner) Scan(line string) []m.LinkMatch {
	if line == "" || patterns.IsProtectedLine(line) {
		return nil
	}

	var matches []m.LinkMatch
	for _, shape := range s.catalog.Shapes() {
		matches = append(matches, shape.Find(line)...)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Start != matches[j].Start {
			return matches[i].Start < matches[j].Start
		}

		return matches[i].End > matches[j].End
	})

	return matches
}
