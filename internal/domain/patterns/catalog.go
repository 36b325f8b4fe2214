// Package patterns defines the catalog of broken-link shapes. Each shape is
// a named matcher plus an extraction rule; detection order and rewrite
// behavior live outside this package.
package patterns

import (
	"regexp"
	"strings"

	m "linkmend.dev/pkg/linkmend/internal/model"
)

// Options parameterizes the catalog for a documentation tree.
type Options struct {
	// Extensions are the link-target filename extensions the tree uses,
	// without the leading dot (e.g. "md", "mdc").
	Extensions []string

	// Scheme is the leftover editor scheme found in corrupted targets
	// (e.g. "mdc" for mdc:path/file.mdc). Empty disables the scheme shapes.
	Scheme string

	// PathMarker is a directory fragment that appears exactly once in every
	// canonical path (e.g. "rules/"). When set, targets containing it twice
	// are flagged as doubled paths. Empty disables the shape.
	PathMarker string

	// AbsolutePrefix is a tree-root prefix that must not appear in link
	// targets (e.g. ".cursor/rules"). It must not be a prefix of any
	// canonical registry path, otherwise repairs would not be idempotent.
	// Empty disables the shape.
	AbsolutePrefix string
}

// DefaultOptions matches the documentation trees this tool was built for.
func DefaultOptions() Options {
	return Options{
		Extensions: []string{"md", "mdc"},
		Scheme:     "mdc",
	}
}

// extractFunc pulls the display filename and up to two path fragments out of
// the submatches of a shape's expression.
type extractFunc func(groups []string) (filename, target, alt string)

// guardFunc can veto a candidate match using the surrounding line.
type guardFunc func(line string, start, end int, groups []string) bool

// Shape is one broken-link signature: a matcher and its extraction rule.
type Shape struct {
	Kind m.PatternKind

	expr     *regexp.Regexp
	extract  extractFunc
	notAfter string // bytes that must not immediately precede a match
	guard    guardFunc
}

// Find returns every occurrence of the shape on the line. Offsets are byte
// offsets into line; Line is left to the caller.
func (s Shape) Find(line string) []m.LinkMatch {
	var matches []m.LinkMatch

	for _, idx := range s.expr.FindAllStringSubmatchIndex(line, -1) {
		start, end := idx[0], idx[1]

		if s.notAfter != "" && start > 0 && strings.IndexByte(s.notAfter, line[start-1]) >= 0 {
			continue
		}

		groups := submatches(line, idx)
		if s.guard != nil && !s.guard(line, start, end, groups) {
			continue
		}

		filename, target, alt := s.extract(groups)

		matches = append(matches, m.LinkMatch{
			Kind:     s.Kind,
			Start:    start,
			End:      end,
			Raw:      line[start:end],
			Filename: filename,
			Target:   target,
			AltPath:  alt,
		})
	}

	return matches
}

// Catalog is the ordered, immutable set of shapes for one run.
type Catalog struct {
	shapes []Shape
}

// New builds the catalog for the given options. The order is fixed: more
// specific shapes come before the shapes they structurally contain, so that
// overlap resolution keeps the most specific reading.
func New(opts Options) Catalog {
	ext := extAlternation(opts.Extensions)

	shapes := []Shape{
		backtickWrappedShape(),
		nestedBracketsShape(),
	}

	if opts.PathMarker != "" {
		shapes = append(shapes, doubledPathShape(opts.PathMarker))
	}

	shapes = append(shapes,
		doubleEndingShape(),
		embeddedLinkShape(),
		bracketInPathShape(),
		backtickBracketShape(),
		doubleBracketShape(),
		missingOpenBracketShape(ext),
		missingCloseBracketShape(),
	)

	if opts.Scheme != "" {
		shapes = append(shapes,
			schemePrefixDoubledParenShape(opts.Scheme),
			schemePrefixShape(opts.Scheme),
		)
	}

	shapes = append(shapes,
		doubledParenShape(),
		parenPairShape(ext),
	)

	if opts.AbsolutePrefix != "" {
		shapes = append(shapes, absoluteDocsPathShape(opts.AbsolutePrefix))
	}

	shapes = append(shapes, selfTargetShape(ext))

	return Catalog{shapes: shapes}
}

// Shapes returns the catalog entries in detection order.
func (c Catalog) Shapes() []Shape {
	return c.shapes
}

// extAlternation builds a non-capturing alternation like `(?:md|mdc)`.
func extAlternation(extensions []string) string {
	if len(extensions) == 0 {
		extensions = DefaultOptions().Extensions
	}

	quoted := make([]string, 0, len(extensions))
	for _, e := range extensions {
		quoted = append(quoted, regexp.QuoteMeta(strings.TrimPrefix(e, ".")))
	}

	return "(?:" + strings.Join(quoted, "|") + ")"
}

// submatches materializes the capture groups of a FindSubmatchIndex result.
func submatches(line string, idx []int) []string {
	groups := make([]string, 0, len(idx)/2)

	for i := 0; i < len(idx); i += 2 {
		if idx[i] < 0 {
			groups = append(groups, "")
			continue
		}

		groups = append(groups, line[idx[i]:idx[i+1]])
	}

	return groups
}

// unbalancedOpenBefore reports whether the line has more `(` than `)` before
// offset. Shapes keyed on a trailing `))` use this to avoid eating the
// closing parenthesis of ordinary prose like "(see [a](b))".
func unbalancedOpenBefore(line string, offset int) bool {
	depth := 0

	for i := 0; i < offset; i++ {
		switch line[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		}
	}

	return depth > 0
}
