package patterns

import (
	"testing"

	m "linkmend.dev/pkg/linkmend/internal/model"
)

func fullOptions() Options {
	return Options{
		Extensions:     []string{"md", "mdc"},
		Scheme:         "mdc",
		PathMarker:     "rules/",
		AbsolutePrefix: ".cursor/rules",
	}
}

func findByKind(matches []m.LinkMatch, kind m.PatternKind) []m.LinkMatch {
	var out []m.LinkMatch

	for _, match := range matches {
		if match.Kind == kind {
			out = append(out, match)
		}
	}

	return out
}

func scanLine(t *testing.T, catalog Catalog, line string) []m.LinkMatch {
	t.Helper()

	var matches []m.LinkMatch
	for _, shape := range catalog.Shapes() {
		matches = append(matches, shape.Find(line)...)
	}

	return matches
}

func TestCatalogShapes(t *testing.T) {
	catalog := New(fullOptions())

	tests := []struct {
		name     string
		line     string
		kind     m.PatternKind
		filename string
		target   string
	}{
		{
			name:     "backtick wrapped link",
			line:     "See [`[api.md](api.md)`](api.md) for details",
			kind:     m.KindBacktickWrapped,
			filename: "api.md",
			target:   "api.md",
		},
		{
			name:     "nested brackets keep inner link",
			line:     "[guide](docs/[setup.md](docs/setup.md))",
			kind:     m.KindNestedBrackets,
			filename: "setup.md",
			target:   "docs/setup.md",
		},
		{
			name:     "doubled link ending",
			line:     "[a.md](a.md)](docs/a.md)",
			kind:     m.KindDoubleEnding,
			filename: "a.md",
			target:   "a.md",
		},
		{
			name:     "embedded link after bare path",
			line:     "docs/guide/[setup.md](setup.md)",
			kind:     m.KindEmbeddedLink,
			filename: "setup.md",
			target:   "setup.md",
		},
		{
			name:     "bracket fragment inside target",
			line:     "[a.md](docs/[x]a.md)",
			kind:     m.KindBracketInPath,
			filename: "a.md",
			target:   "docs/a.md",
		},
		{
			name:     "doubled opening bracket",
			line:     "[[a.md](docs/a.md)",
			kind:     m.KindDoubleBracket,
			filename: "a.md",
			target:   "docs/a.md",
		},
		{
			name:     "missing opening bracket",
			line:     "a.md](docs/a.md)",
			kind:     m.KindMissingOpenBracket,
			filename: "a.md",
			target:   "docs/a.md",
		},
		{
			name:     "backtick name missing closing backtick",
			line:     "[`a.md](docs/a.md))",
			kind:     m.KindMissingCloseBracket,
			filename: "a.md",
			target:   "docs/a.md",
		},
		{
			name:     "backtick bracket fusion",
			line:     "[`[a.md](docs/a.md))",
			kind:     m.KindBacktickBracket,
			filename: "a.md",
			target:   "docs/a.md",
		},
		{
			name:     "doubled closing parenthesis",
			line:     "[a.md](docs/a.md))",
			kind:     m.KindDoubledParen,
			filename: "a.md",
			target:   "docs/a.md",
		},
		{
			name:     "bare parenthesized pair",
			line:     "(docs/a.md)(docs/a.md)",
			kind:     m.KindParenPair,
			filename: "a.md",
			target:   "docs/a.md",
		},
		{
			name:     "leftover scheme prefix",
			line:     "[a.md](mdc:docs/a.md)",
			kind:     m.KindSchemePrefix,
			filename: "a.md",
			target:   "docs/a.md",
		},
		{
			name:     "scheme prefix with doubled parenthesis",
			line:     "[a.md](mdc:docs/a.md))",
			kind:     m.KindSchemePrefixDoubledParen,
			filename: "a.md",
			target:   "docs/a.md",
		},
		{
			name:     "absolute tree path",
			line:     "[a.md](.cursor/rules/x/a.md)",
			kind:     m.KindAbsoluteDocsPath,
			filename: "a.md",
			target:   "x/a.md",
		},
		{
			name:     "doubled path marker",
			line:     "[a.md](rules/x/rules/x/a.md)",
			kind:     m.KindDoubledPath,
			filename: "a.md",
			target:   "rules/x/rules/x/a.md",
		},
		{
			name:     "self targeting bare filename",
			line:     "[a.md](a.md)",
			kind:     m.KindSelfTarget,
			filename: "a.md",
			target:   "a.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := findByKind(scanLine(t, catalog, tt.line), tt.kind)
			if len(matches) != 1 {
				t.Fatalf("expected exactly 1 %s match, got %d", tt.kind, len(matches))
			}

			match := matches[0]
			if match.Filename != tt.filename {
				t.Errorf("Filename = %q, want %q", match.Filename, tt.filename)
			}

			if match.Target != tt.target {
				t.Errorf("Target = %q, want %q", match.Target, tt.target)
			}

			if got := tt.line[match.Start:match.End]; got != match.Raw {
				t.Errorf("Raw = %q but span covers %q", match.Raw, got)
			}
		})
	}
}

func TestCatalogIgnoresCanonicalLinks(t *testing.T) {
	catalog := New(fullOptions())

	lines := []string{
		"[api.md](docs/api/api.md)",
		"Read [setup.md](rules/core/setup.md) before [usage.md](rules/core/usage.md).",
		"Plain prose with (parentheses) and [brackets] kept apart.",
		"External [docs](https://example.com/docs) stay untouched.",
	}

	for _, line := range lines {
		if matches := scanLine(t, catalog, line); len(matches) != 0 {
			t.Errorf("line %q: expected no matches, got %d (%v)", line, len(matches), matches[0].Kind)
		}
	}
}

func TestCatalogGuards(t *testing.T) {
	catalog := New(fullOptions())

	t.Run("doubled paren owned by prose parenthesis", func(t *testing.T) {
		line := "(see [a.md](docs/a.md))"
		if got := findByKind(scanLine(t, catalog, line), m.KindDoubledParen); len(got) != 0 {
			t.Fatalf("expected guard to reject %q, got %d matches", line, len(got))
		}
	})

	t.Run("double bracket not matched inside triple bracket span", func(t *testing.T) {
		line := "[[[a.md](docs/a.md)"

		got := findByKind(scanLine(t, catalog, line), m.KindDoubleBracket)
		if len(got) != 1 {
			t.Fatalf("expected 1 match, got %d", len(got))
		}

		// The match must start at the second bracket, so the splice keeps
		// exactly one stray bracket for the next pass.
		if got[0].Start != 1 {
			t.Errorf("Start = %d, want 1", got[0].Start)
		}
	})

	t.Run("missing open bracket not matched inside intact link", func(t *testing.T) {
		line := "[a.md](docs/a.md)"
		if got := findByKind(scanLine(t, catalog, line), m.KindMissingOpenBracket); len(got) != 0 {
			t.Fatalf("expected no matches in canonical link, got %d", len(got))
		}
	})

	t.Run("self target requires identical name and target", func(t *testing.T) {
		line := "[a.md](b.md)"
		if got := findByKind(scanLine(t, catalog, line), m.KindSelfTarget); len(got) != 0 {
			t.Fatalf("expected no matches for differing name/target, got %d", len(got))
		}
	})

	t.Run("scheme shapes disabled without scheme", func(t *testing.T) {
		noScheme := New(Options{Extensions: []string{"md"}})

		line := "[a.md](mdc:docs/a.md)"
		if got := findByKind(scanLine(t, noScheme, line), m.KindSchemePrefix); len(got) != 0 {
			t.Fatalf("expected scheme shape to be disabled, got %d matches", len(got))
		}
	})
}

func TestIsProtectedLine(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		protected bool
	}{
		{
			name:      "inline code example",
			line:      "Use the form `[name](path)` in listings.",
			protected: true,
		},
		{
			name:      "corrupted wrapper overrides exemption",
			line:      "Broken: [`[a.md](a.md)`](a.md)",
			protected: false,
		},
		{
			name:      "plain broken link",
			line:      "[a.md](a.md))",
			protected: false,
		},
		{
			name:      "no links at all",
			line:      "nothing here",
			protected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsProtectedLine(tt.line); got != tt.protected {
				t.Errorf("IsProtectedLine(%q) = %v, want %v", tt.line, got, tt.protected)
			}
		})
	}
}

func TestUnbalancedOpenBefore(t *testing.T) {
	line := "(see [a.md](p))"

	if !unbalancedOpenBefore(line, 5) {
		t.Errorf("expected unbalanced open before offset 5 in %q", line)
	}

	if unbalancedOpenBefore("[a.md](p))", 0) {
		t.Errorf("expected balanced prefix at offset 0")
	}
}
