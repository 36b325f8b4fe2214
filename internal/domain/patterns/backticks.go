package patterns

import (
	"regexp"

	m "linkmend.dev/pkg/linkmend/internal/model"
)

// backtickWrappedShape matches a code-quoted link that was wrapped in a
// second link, e.g. [`[a.md](a.md)`](a.md). The inner link carries the
// filename; both targets are corrupt.
func backtickWrappedShape() Shape {
	return Shape{
		Kind: m.KindBacktickWrapped,
		expr: regexp.MustCompile("\\[`\\[([^\\]]+)\\]\\(([^()]+)\\)`\\]\\(([^()]+)\\)"),
		extract: func(g []string) (string, string, string) {
			return g[1], g[2], g[3]
		},
	}
}

// backtickBracketShape matches a backtick/bracket fusion that lost its tail,
// e.g. [`[a.md](a.md)).
func backtickBracketShape() Shape {
	return Shape{
		Kind: m.KindBacktickBracket,
		expr: regexp.MustCompile("\\[`\\[([^\\]]+)\\]\\(([^()]+)\\)\\)"),
		extract: func(g []string) (string, string, string) {
			return g[1], g[2], ""
		},
	}
}

// missingCloseBracketShape matches a backticked name that lost its closing
// backtick before a doubled parenthesis, e.g. [`a.md](p)).
func missingCloseBracketShape() Shape {
	return Shape{
		Kind: m.KindMissingCloseBracket,
		expr: regexp.MustCompile("\\[`([^\\]`\\[]+)\\]\\(([^()]+)\\)\\)"),
		extract: func(g []string) (string, string, string) {
			return g[1], g[2], ""
		},
	}
}
