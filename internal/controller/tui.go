package controller

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	pagerTitleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	pagerHelpStyle  = lipgloss.NewStyle().Faint(true).Padding(0, 1)
)

// ScanPager shows scan result lines, switching to an interactive scrollable
// view when the listing does not fit the terminal.
type ScanPager struct {
	output io.Writer
}

// NewScanPager creates a pager writing to output.
func NewScanPager(output io.Writer) *ScanPager {
	return &ScanPager{output: output}
}

// Show prints lines directly when they fit (or when output is not a
// terminal) and runs the interactive pager otherwise.
func (p *ScanPager) Show(lines []string) error {
	width, height, interactive := p.terminalSize()

	// Reserve space for the title and help rows.
	if !interactive || len(lines) <= height-3 {
		for _, line := range lines {
			if _, err := fmt.Fprintln(p.output, line); err != nil {
				return err
			}
		}

		return nil
	}

	model := newScanPagerModel(lines, width, height)

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

func (p *ScanPager) terminalSize() (int, int, bool) {
	f, ok := p.output.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, 0, false
	}

	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0, false
	}

	return width, height, true
}

// scanPagerModel is the Bubble Tea model wrapping a viewport over the scan
// listing.
type scanPagerModel struct {
	view  viewport.Model
	lines []string
}

func newScanPagerModel(lines []string, width, height int) scanPagerModel {
	view := viewport.New(width, contentHeight(height))
	view.SetContent(strings.Join(lines, "\n"))

	return scanPagerModel{view: view, lines: lines}
}

func contentHeight(height int) int {
	// Title row plus help row.
	h := height - 2
	if h < 1 {
		return 1
	}

	return h
}

func (sm scanPagerModel) Init() tea.Cmd {
	return nil
}

func (sm scanPagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		sm.view.Width = msg.Width
		sm.view.Height = contentHeight(msg.Height)

		return sm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return sm, tea.Quit
		case "g", "home":
			sm.view.GotoTop()

			return sm, nil
		case "G", "end":
			sm.view.GotoBottom()

			return sm, nil
		}
	}

	var cmd tea.Cmd
	sm.view, cmd = sm.view.Update(msg)

	return sm, cmd
}

func (sm scanPagerModel) View() string {
	title := pagerTitleStyle.Render(fmt.Sprintf("Scan results (%d lines, %.0f%%)",
		len(sm.lines), sm.view.ScrollPercent()*100))
	help := pagerHelpStyle.Render("↑/k: up | ↓/j: down | g: top | G: bottom | q: quit")

	return title + "\n" + sm.view.View() + "\n" + help
}
