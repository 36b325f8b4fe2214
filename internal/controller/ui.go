// Package controller provides output adapters for displaying repair results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "linkmend.dev/pkg/linkmend/internal/model"
)

// UI defines the interface for presenting run results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayDiff(ctx context.Context, file m.Path, diff string)
	DisplayFixSummary(ctx context.Context, report m.Report, dryRun bool)
	DisplayScanResults(ctx context.Context, results []m.FileMatches, unresolved []m.UnresolvedLink) error
	DisplayCheckReport(ctx context.Context, report m.CheckReport)
	DisplayIndexSummary(ctx context.Context, listing m.Path, entries int)
}

// NewUI selects the UI implementation. Interactive terminals get the
// pager-backed UI; everything else prints plainly.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	ui := NewSimpleUI(cmd)
	if !interactive {
		ui.pager = nil
	}

	return ui
}

// IsTTY reports whether f is attached to an interactive terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
