// Package model defines the data structures for link repair.
package model

// PatternKind identifies one of the known broken-link shapes.
type PatternKind string

const (
	// KindNestedBrackets matches a link whose target contains another link,
	// e.g. [a](docs/[b.md](docs/b.md)).
	KindNestedBrackets PatternKind = "nested-brackets"
	// KindDoubledPath matches a link whose target repeats the docs prefix,
	// e.g. [a.md](docs/guide/docs/guide/a.md).
	KindDoubledPath PatternKind = "doubled-path"
	// KindDoubleEnding matches a doubled ](...) tail, e.g. [a.md](p)](q).
	KindDoubleEnding PatternKind = "double-ending"
	// KindEmbeddedLink matches bare path text fused onto a link,
	// e.g. docs/guide/[a.md](a.md).
	KindEmbeddedLink PatternKind = "embedded-link"
	// KindBracketInPath matches stray brackets inside a link target,
	// e.g. [a.md](docs/[x]a.md).
	KindBracketInPath PatternKind = "bracket-in-path"
	// KindBacktickWrapped matches a code-quoted link wrapped in a second
	// link, e.g. [`[a.md](a.md)`](a.md).
	KindBacktickWrapped PatternKind = "backtick-wrapped"
	// KindBacktickBracket matches a backtick/bracket fusion ending in a
	// doubled parenthesis, e.g. [`[a.md](a.md)).
	KindBacktickBracket PatternKind = "backtick-bracket"
	// KindDoubleBracket matches a doubled opening bracket, e.g. [[a.md](a.md).
	KindDoubleBracket PatternKind = "double-bracket"
	// KindMissingOpenBracket matches a link that lost its opening bracket,
	// e.g. a.md](a.md).
	KindMissingOpenBracket PatternKind = "missing-open-bracket"
	// KindMissingCloseBracket matches a backticked name that lost its
	// closing backtick/bracket before a doubled parenthesis, e.g. [`a.md](p)).
	KindMissingCloseBracket PatternKind = "missing-close-bracket"
	// KindDoubledParen matches an extra closing parenthesis, e.g. [a.md](p)).
	KindDoubledParen PatternKind = "doubled-paren"
	// KindParenPair matches two bare parenthesized filenames, e.g.
	// (a.md)(a.md).
	KindParenPair PatternKind = "paren-pair"
	// KindSchemePrefix matches a leftover editor scheme in the target,
	// e.g. [a.md](mdc:a.md).
	KindSchemePrefix PatternKind = "scheme-prefix"
	// KindSchemePrefixDoubledParen matches the scheme prefix combined with
	// an extra closing parenthesis, e.g. [a.md](mdc:a.md)).
	KindSchemePrefixDoubledParen PatternKind = "scheme-prefix-doubled-paren"
	// KindAbsoluteDocsPath matches a target anchored at the docs root where
	// the registry holds the canonical relative form.
	KindAbsoluteDocsPath PatternKind = "absolute-docs-path"
	// KindSelfTarget matches a link whose target is the bare filename
	// itself, e.g. [a.md](a.md), left behind when a rewrite dropped the
	// directory part.
	KindSelfTarget PatternKind = "self-target"
)

// LinkMatch is one occurrence of a broken-link shape on a line.
type LinkMatch struct {
	Kind     PatternKind
	Line     int // 1-based line number within the file
	Start    int // byte offset of the match within the line
	End      int // byte offset one past the match
	Raw      string
	Filename string // display filename extracted from the shape
	Target   string // first path fragment, when the shape carries one
	AltPath  string // second path fragment, when the shape carries one
}
