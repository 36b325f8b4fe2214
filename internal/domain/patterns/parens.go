package patterns

import (
	"path"
	"regexp"

	m "linkmend.dev/pkg/linkmend/internal/model"
)

// doubledParenShape matches an extra closing parenthesis, e.g. [a.md](p)).
// Targets containing ':' are left to the scheme shapes. The guard rejects
// the match when an earlier unclosed '(' owns the trailing parenthesis,
// as in prose like "(see [a.md](p))".
func doubledParenShape() Shape {
	return Shape{
		Kind: m.KindDoubledParen,
		expr: regexp.MustCompile(`\[([^\]` + "`" + `]+)\]\(([^():]+)\)\)`),
		guard: func(line string, start, _ int, _ []string) bool {
			return !unbalancedOpenBefore(line, start)
		},
		extract: func(g []string) (string, string, string) {
			return g[1], g[2], ""
		},
	}
}

// parenPairShape matches two bare parenthesized filenames, e.g.
// (a.md)(a.md), a shape produced when both brackets of a link were lost.
func parenPairShape(ext string) Shape {
	file := `[^()\s]+\.` + ext

	return Shape{
		Kind:     m.KindParenPair,
		expr:     regexp.MustCompile(`\((` + file + `)\)\((` + file + `)\)`),
		notAfter: "]",
		extract: func(g []string) (string, string, string) {
			return path.Base(g[1]), g[1], g[2]
		},
	}
}

// selfTargetShape matches a link whose target is the bare filename itself,
// e.g. [a.md](a.md) — the shape left behind when a rewrite dropped the
// directory part. Canonical targets always contain a '/', so they never
// match.
func selfTargetShape(ext string) Shape {
	file := `[^\]\s()/` + "`" + `]+\.` + ext

	return Shape{
		Kind:     m.KindSelfTarget,
		expr:     regexp.MustCompile(`\[(` + file + `)\]\((` + file + `)\)`),
		notAfter: "[`(",
		guard: func(_ string, _, _ int, g []string) bool {
			return g[1] == g[2]
		},
		extract: func(g []string) (string, string, string) {
			return g[1], g[2], ""
		},
	}
}

// absoluteDocsPathShape matches a target anchored at the docs root, e.g.
// [a.md](.cursor/rules/x/a.md) in a tree whose links must use the canonical
// relative form.
func absoluteDocsPathShape(prefix string) Shape {
	q := regexp.QuoteMeta(prefix)

	return Shape{
		Kind: m.KindAbsoluteDocsPath,
		expr: regexp.MustCompile(`\[([^\]]+)\]\(` + q + `/([^()]+)\)`),
		extract: func(g []string) (string, string, string) {
			return g[1], g[2], ""
		},
	}
}
