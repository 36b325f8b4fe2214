package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "linkmend.dev/pkg/linkmend/internal/model"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd   *cobra.Command
	pager *ScanPager
}

// NewSimpleUI creates a new SimpleUI. Large scan results are handed to the
// pager when the output is an interactive terminal.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{
		cmd:   cmd,
		pager: NewScanPager(cmd.OutOrStdout()),
	}
}

// DisplayDiff prints the would-be change of one file during a dry run.
func (s *SimpleUI) DisplayDiff(ctx context.Context, file m.Path, diff string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("--- would repair %s ---\n%s\n", file, diff)
}

// DisplayFixSummary prints the per-kind fix table and run totals.
func (s *SimpleUI) DisplayFixSummary(ctx context.Context, report m.Report, dryRun bool) {
	if err := ctx.Err(); err != nil {
		return
	}

	verb := "applied"
	if dryRun {
		verb = "would apply"
	}

	if len(report.FixesByKind) > 0 {
		s.printf("\n%s", renderKindTable("Fixes", report.FixesByKind, report.FixesApplied))
	}

	s.printf("Scanned %d file(s), %s %d fix(es) in %d file(s)\n",
		report.FilesScanned, verb, report.FixesApplied, report.FilesModified)

	for _, u := range report.Unresolved {
		s.printf("unresolved: %s:%d %s (%s)\n", u.File, u.Line, u.Raw, u.Kind)
	}

	for _, f := range report.Failures {
		s.printf("failed (%s): %s: %s\n", f.Stage, f.File, f.Err)
	}
}

func renderKindTable(column string, byKind map[m.PatternKind]int, total int) string {
	kinds := make([]m.PatternKind, 0, len(byKind))
	for kind := range byKind {
		kinds = append(kinds, kind)
	}

	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Pattern", column})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, kind := range kinds {
		table.Append([]string{string(kind), fmt.Sprintf("%d", byKind[kind])})
	}

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", total)})
	table.Render()

	return tableBuffer.String()
}

// DisplayScanResults shows detected shapes per file. Long listings go
// through the interactive pager when stdout is a terminal.
func (s *SimpleUI) DisplayScanResults(ctx context.Context, results []m.FileMatches, unresolved []m.UnresolvedLink) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(results) == 0 {
		s.printf("No broken link shapes found\n")

		return nil
	}

	lines := buildScanLines(results, unresolved)

	if s.pager == nil {
		for _, line := range lines {
			s.printf("%s\n", line)
		}

		return nil
	}

	return s.pager.Show(lines)
}

func buildScanLines(results []m.FileMatches, unresolved []m.UnresolvedLink) []string {
	missing := make(map[string]bool, len(unresolved))
	for _, u := range unresolved {
		missing[fmt.Sprintf("%s:%d:%s", u.File, u.Line, u.Raw)] = true
	}

	byKind := map[m.PatternKind]int{}
	total := 0

	var lines []string

	for _, fr := range results {
		for _, match := range fr.Matches {
			byKind[match.Kind]++
		}
	}

	for _, fr := range results {
		lines = append(lines, fmt.Sprintf("%s: %d match(es)", fr.File, len(fr.Matches)))

		for _, match := range fr.Matches {
			marker := ""
			if missing[fmt.Sprintf("%s:%d:%s", fr.File, match.Line, match.Raw)] {
				marker = " [no registry entry]"
			}

			lines = append(lines, fmt.Sprintf("  line %d (%s): %s%s", match.Line, match.Kind, match.Raw, marker))
		}

		total += len(fr.Matches)
	}

	lines = append(lines, "")
	lines = append(lines, strings.Split(strings.TrimRight(renderKindTable("Matches", byKind, total), "\n"), "\n")...)
	lines = append(lines,
		fmt.Sprintf("Total: %d match(es) in %d file(s), %d without a registry entry",
			total, len(results), len(unresolved)))

	return lines
}

// DisplayCheckReport prints validation findings grouped by file.
func (s *SimpleUI) DisplayCheckReport(ctx context.Context, report m.CheckReport) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Checked %d link(s) in %d file(s)\n", report.LinksChecked, report.FilesChecked)

	if len(report.Findings) == 0 {
		s.printf("All links resolve\n")

		return
	}

	for _, finding := range report.Findings {
		s.printf("broken: %s:%d [%s](%s)\n", finding.File, finding.Line, finding.Text, finding.Target)
	}

	s.printf("%d broken link(s)\n", len(report.Findings))
}

// DisplayIndexSummary reports the regenerated listing.
func (s *SimpleUI) DisplayIndexSummary(ctx context.Context, listing m.Path, entries int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Wrote %d entries to %s\n", entries, listing)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
