package patterns

import (
	"regexp"

	m "linkmend.dev/pkg/linkmend/internal/model"
)

// schemePrefixShape matches a leftover editor scheme in the target,
// e.g. [a.md](mdc:a.md).
func schemePrefixShape(scheme string) Shape {
	q := regexp.QuoteMeta(scheme)

	return Shape{
		Kind: m.KindSchemePrefix,
		expr: regexp.MustCompile(`\[([^\]]+)\]\(` + q + `:([^()]+)\)`),
		extract: func(g []string) (string, string, string) {
			return g[1], g[2], ""
		},
	}
}

// schemePrefixDoubledParenShape matches the scheme prefix combined with an
// extra closing parenthesis, e.g. [a.md](mdc:a.md)). Both corruptions are
// resolved by one canonical substitution.
func schemePrefixDoubledParenShape(scheme string) Shape {
	q := regexp.QuoteMeta(scheme)

	return Shape{
		Kind: m.KindSchemePrefixDoubledParen,
		expr: regexp.MustCompile(`\[([^\]]+)\]\(` + q + `:([^()]+)\)\)`),
		guard: func(line string, start, _ int, _ []string) bool {
			return !unbalancedOpenBefore(line, start)
		},
		extract: func(g []string) (string, string, string) {
			return g[1], g[2], ""
		},
	}
}
