package patterns

import (
	"regexp"

	m "linkmend.dev/pkg/linkmend/internal/model"
)

// nestedBracketsShape matches a link whose target swallowed a second link,
// e.g. [a](docs/[b.md](docs/b.md)). The inner link carries the real
// filename and path.
func nestedBracketsShape() Shape {
	return Shape{
		Kind: m.KindNestedBrackets,
		expr: regexp.MustCompile(`\[([^\]]+)\]\(([^()]*)\[([^\]]+)\]\(([^()]*)\)([^()]*)\)`),
		extract: func(g []string) (string, string, string) {
			return g[3], g[4], g[2]
		},
	}
}

// doubleEndingShape matches a doubled ](...) tail, e.g. [a.md](p)](q).
func doubleEndingShape() Shape {
	return Shape{
		Kind: m.KindDoubleEnding,
		expr: regexp.MustCompile(`\[([^\]]+)\]\(([^()]+)\)\]\(([^()]+)\)`),
		extract: func(g []string) (string, string, string) {
			return g[1], g[2], g[3]
		},
	}
}

// embeddedLinkShape matches bare path text fused onto a link, e.g.
// docs/guide/[a.md](a.md). The fused prefix is dropped by the rewrite.
func embeddedLinkShape() Shape {
	return Shape{
		Kind: m.KindEmbeddedLink,
		expr: regexp.MustCompile(`([^\s\[\]()]+)/\[([^\]]+)\]\(([^()]+)\)`),
		extract: func(g []string) (string, string, string) {
			return g[2], g[3], g[1]
		},
	}
}

// bracketInPathShape matches stray brackets inside a link target, e.g.
// [a.md](docs/[x]a.md).
func bracketInPathShape() Shape {
	return Shape{
		Kind: m.KindBracketInPath,
		expr: regexp.MustCompile(`\[([^\]]+)\]\(([^()\[\]]*)\[([^\]()]*)\]([^()\[\]]*)\)`),
		extract: func(g []string) (string, string, string) {
			return g[1], g[2] + g[4], g[3]
		},
	}
}

// doubleBracketShape matches a doubled opening bracket, e.g. [[a.md](p).
func doubleBracketShape() Shape {
	return Shape{
		Kind:     m.KindDoubleBracket,
		expr:     regexp.MustCompile(`\[\[([^\]\[]+)\]\(([^()]+)\)`),
		notAfter: "[",
		extract: func(g []string) (string, string, string) {
			return g[1], g[2], ""
		},
	}
}

// missingOpenBracketShape matches a link that lost its opening bracket,
// e.g. a.md](p). Only filename-looking text is accepted, otherwise ordinary
// prose ending in "](...)" fragments would be swallowed.
func missingOpenBracketShape(ext string) Shape {
	return Shape{
		Kind:     m.KindMissingOpenBracket,
		expr:     regexp.MustCompile(`([^\s\[\]()` + "`" + `]+\.` + ext + `)\]\(([^()]+)\)`),
		notAfter: "[`",
		extract: func(g []string) (string, string, string) {
			return g[1], g[2], ""
		},
	}
}

// doubledPathShape matches a target that repeats the tree's path marker,
// e.g. [a.md](rules/x/rules/x/a.md) when the marker is "rules/".
func doubledPathShape(marker string) Shape {
	q := regexp.QuoteMeta(marker)

	return Shape{
		Kind: m.KindDoubledPath,
		expr: regexp.MustCompile(`\[([^\]]+)\]\(([^()]*` + q + `[^()]*` + q + `[^()]*)\)`),
		extract: func(g []string) (string, string, string) {
			return g[1], g[2], ""
		},
	}
}
