// Package domain contains the core link-repair engine and workflow.
package domain

import (
	"path"
	"strings"

	m "linkmend.dev/pkg/linkmend/internal/model"
)

// Registry is the filename to canonical-path mapping for one run. It is
// built once, read-only afterwards, and safe to share across goroutines.
type Registry struct {
	paths map[string]string
}

// NewRegistry builds a registry from loaded entries. Duplicate filenames
// keep the last entry (a known limitation of the flat basename model).
// Each filename additionally aliases its extensionless form, but an alias
// never shadows an explicit entry for that exact name.
func NewRegistry(entries []m.PathEntry) *Registry {
	paths := make(map[string]string, len(entries))

	for _, entry := range entries {
		if entry.Filename == "" || entry.CanonicalPath == "" {
			continue
		}

		paths[entry.Filename] = entry.CanonicalPath
	}

	for _, entry := range entries {
		ext := path.Ext(entry.Filename)
		if ext == "" {
			continue
		}

		alias := strings.TrimSuffix(entry.Filename, ext)
		if alias == "" {
			continue
		}

		if _, exists := paths[alias]; !exists {
			paths[alias] = entry.CanonicalPath
		}
	}

	return &Registry{paths: paths}
}

// Lookup resolves a bare filename to its canonical path. Exact match only;
// no directory-aware disambiguation.
func (r *Registry) Lookup(filename string) (string, bool) {
	canonical, ok := r.paths[filename]
	return canonical, ok
}

// Len returns the number of resolvable names, aliases included.
func (r *Registry) Len() int {
	return len(r.paths)
}
