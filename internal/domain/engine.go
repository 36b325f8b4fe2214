package domain

import (
	"strings"

	m "linkmend.dev/pkg/linkmend/internal/model"
)

// maxRepairPasses bounds the per-line convergence loop. One pass over the
// unified catalog fixes every known shape; the loop exists for shapes that
// only surface after an earlier fix (e.g. a nested link wrapping another
// broken link). Real corpus lines converge in at most two passes.
const maxRepairPasses = 4

// Engine combines the scanner, the rewriter and a registry into the
// per-file repair unit. It never touches the filesystem.
type Engine struct {
	scanner  *Scanner
	registry *Registry
}

// NewEngine builds an engine over an immutable scanner and registry.
func NewEngine(scanner *Scanner, registry *Registry) *Engine {
	return &Engine{scanner: scanner, registry: registry}
}

// RepairContent rewrites every broken link in content and returns the
// resulting change set. Line terminators are preserved byte for byte: a
// CRLF file stays CRLF, a file without a trailing newline keeps none.
func (e *Engine) RepairContent(file m.Path, content []byte) m.FileChange {
	change := m.FileChange{
		Path:     file,
		Original: content,
	}

	var out strings.Builder

	out.Grow(len(content))

	rest := string(content)
	lineNo := 0

	for len(rest) > 0 {
		lineNo++

		raw := rest

		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			raw = rest[:i+1]
			rest = rest[i+1:]
		} else {
			rest = ""
		}

		body, ending := splitEnding(raw)

		repaired, fixes, unresolved := e.repairLine(body, lineNo)

		out.WriteString(repaired)
		out.WriteString(ending)

		change.Fixes = append(change.Fixes, fixes...)

		for _, u := range unresolved {
			u.File = file
			change.Unresolved = append(change.Unresolved, u)
		}
	}

	change.Rewritten = []byte(out.String())

	return change
}

// repairLine runs scan+rewrite until a pass makes no fix, bounded by
// maxRepairPasses. Unresolved matches are taken from the final pass only,
// so a shape that an earlier pass repairs is not double-reported.
func (e *Engine) repairLine(line string, lineNo int) (string, []m.AppliedFix, []m.UnresolvedLink) {
	current := line

	var fixes []m.AppliedFix

	for pass := 0; pass < maxRepairPasses; pass++ {
		matches := e.scanner.Scan(current)
		if len(matches) == 0 {
			return current, fixes, nil
		}

		for i := range matches {
			matches[i].Line = lineNo
		}

		updated, passFixes, unresolved := Rewrite(current, matches, e.registry)
		if len(passFixes) == 0 {
			return current, fixes, unresolved
		}

		fixes = append(fixes, passFixes...)
		current = updated
	}

	return current, fixes, nil
}

// splitEnding separates a raw line into its body and terminator.
func splitEnding(raw string) (string, string) {
	if strings.HasSuffix(raw, "\r\n") {
		return raw[:len(raw)-2], "\r\n"
	}

	if strings.HasSuffix(raw, "\n") {
		return raw[:len(raw)-1], "\n"
	}

	return raw, ""
}
