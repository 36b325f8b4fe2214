package domain

import (
	"fmt"
	"path"
	"sort"

	m "linkmend.dev/pkg/linkmend/internal/model"
)

// Rewrite applies the registry's canonical form to the given matches and
// returns the corrected line.
//
// Matches are processed by descending start offset so that splicing one
// match never invalidates the offsets of matches to its left. This ordering
// is a correctness requirement, not a style choice. A match whose span
// overlaps an already-visited span is dropped; a match whose filename has
// no registry entry is left untouched and reported as unresolved.
func Rewrite(line string, matches []m.LinkMatch, registry *Registry) (string, []m.AppliedFix, []m.UnresolvedLink) {
	ordered := make([]m.LinkMatch, len(matches))
	copy(ordered, matches)

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Start != ordered[j].Start {
			return ordered[i].Start > ordered[j].Start
		}

		return ordered[i].End > ordered[j].End
	})

	var (
		fixes      []m.AppliedFix
		unresolved []m.UnresolvedLink
		visited    []span
	)

	updated := line

	for _, match := range ordered {
		if overlapsAny(visited, match.Start, match.End) {
			continue
		}

		visited = append(visited, span{match.Start, match.End})

		name, canonical, ok := resolve(registry, match)
		if !ok {
			unresolved = append(unresolved, m.UnresolvedLink{
				Line:     match.Line,
				Kind:     match.Kind,
				Filename: match.Filename,
				Raw:      match.Raw,
			})

			continue
		}

		replacement := fmt.Sprintf("[%s](%s)", name, canonical)
		if replacement == match.Raw {
			continue
		}

		updated = updated[:match.Start] + replacement + updated[match.End:]

		fixes = append(fixes, m.AppliedFix{
			Kind:        match.Kind,
			Line:        match.Line,
			Original:    match.Raw,
			Replacement: replacement,
			Filename:    name,
		})
	}

	return updated, fixes, unresolved
}

// resolve looks up the match in the registry: first the extracted display
// filename, then the basename of the extracted target. A miss must never
// produce a guessed path.
func resolve(registry *Registry, match m.LinkMatch) (string, string, bool) {
	if canonical, ok := registry.Lookup(match.Filename); ok {
		return match.Filename, canonical, true
	}

	if match.Target != "" {
		base := path.Base(match.Target)
		if canonical, ok := registry.Lookup(base); ok {
			return base, canonical, true
		}
	}

	return "", "", false
}

type span struct {
	start, end int
}

func overlapsAny(spans []span, start, end int) bool {
	for _, s := range spans {
		if start < s.end && end > s.start {
			return true
		}
	}

	return false
}
