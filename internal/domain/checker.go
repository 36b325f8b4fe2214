package domain

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"linkmend.dev/pkg/linkmend/internal/adapter"
	m "linkmend.dev/pkg/linkmend/internal/model"
)

// wellFormedLink matches an intact [text](target) reference.
var wellFormedLink = regexp.MustCompile(`\[([^\]]+)\]\(([^()]+)\)`)

// Checker validates that well-formed links point at files that exist,
// either directly or through the registry.
type Checker struct {
	fs       adapter.DocsFSAdapter
	registry *Registry
	root     m.Path
	schemes  []string
}

// NewChecker builds a checker rooted at root. Targets carrying one of the
// strippable schemes (e.g. "mdc:") are validated against the path after the
// scheme.
func NewChecker(fs adapter.DocsFSAdapter, registry *Registry, root m.Path, schemes []string) *Checker {
	return &Checker{
		fs:       fs,
		registry: registry,
		root:     root,
		schemes:  schemes,
	}
}

// CheckContent validates every link in content and returns the findings
// plus the number of links inspected. External URLs, mail links and pure
// anchors are skipped.
func (c *Checker) CheckContent(file m.Path, content []byte) ([]m.CheckFinding, int) {
	var findings []m.CheckFinding

	checked := 0
	lines := strings.Split(string(content), "\n")

	for i, line := range lines {
		for _, groups := range wellFormedLink.FindAllStringSubmatch(line, -1) {
			text, target := groups[1], groups[2]

			if isExternalTarget(target) {
				continue
			}

			checked++

			if c.resolves(file, target) {
				continue
			}

			findings = append(findings, m.CheckFinding{
				File:   file,
				Line:   i + 1,
				Text:   text,
				Target: target,
			})
		}
	}

	return findings, checked
}

// resolves reports whether target points at an existing file: relative to
// the containing file, relative to the tree root, or via the registry.
func (c *Checker) resolves(file m.Path, target string) bool {
	target = c.stripScheme(target)

	if i := strings.IndexByte(target, '#'); i >= 0 {
		target = target[:i]
	}

	if target == "" {
		return true
	}

	fromFile := c.fs.JoinPath(filepath.Dir(string(file)), target)
	if c.exists(fromFile) {
		return true
	}

	fromRoot := c.fs.JoinPath(string(c.root), target)
	if c.exists(fromRoot) {
		return true
	}

	_, ok := c.registry.Lookup(path.Base(target))

	return ok
}

func (c *Checker) stripScheme(target string) string {
	for _, scheme := range c.schemes {
		if rest, ok := strings.CutPrefix(target, scheme+":"); ok {
			return rest
		}
	}

	return target
}

func (c *Checker) exists(path m.Path) bool {
	info, err := c.fs.FileInfo(path)

	return err == nil && !info.IsDir()
}

// RenderCheckReport formats a validation report as markdown, grouped by
// file, suitable for committing next to the docs tree.
func RenderCheckReport(report m.CheckReport) string {
	var b strings.Builder

	b.WriteString("# Link Validation Report\n\n")
	b.WriteString(fmt.Sprintf("- Files checked: %d\n", report.FilesChecked))
	b.WriteString(fmt.Sprintf("- Links checked: %d\n", report.LinksChecked))
	b.WriteString(fmt.Sprintf("- Broken links: %d\n", len(report.Findings)))

	if len(report.Findings) == 0 {
		b.WriteString("\nAll links resolve.\n")

		return b.String()
	}

	byFile := map[m.Path][]m.CheckFinding{}

	var order []m.Path

	for _, finding := range report.Findings {
		if _, ok := byFile[finding.File]; !ok {
			order = append(order, finding.File)
		}

		byFile[finding.File] = append(byFile[finding.File], finding)
	}

	for _, file := range order {
		b.WriteString(fmt.Sprintf("\n## %s\n\n", file))

		for _, finding := range byFile[file] {
			b.WriteString(fmt.Sprintf("- line %d: `[%s](%s)`\n", finding.Line, finding.Text, finding.Target))
		}
	}

	return b.String()
}

// isExternalTarget reports targets the checker has no authority over.
func isExternalTarget(target string) bool {
	return strings.HasPrefix(target, "http://") ||
		strings.HasPrefix(target, "https://") ||
		strings.HasPrefix(target, "mailto:") ||
		strings.HasPrefix(target, "#")
}
