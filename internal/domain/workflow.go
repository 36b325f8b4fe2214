package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"linkmend.dev/pkg/linkmend/internal/adapter"
	"linkmend.dev/pkg/linkmend/internal/controller"
	"linkmend.dev/pkg/linkmend/internal/domain/patterns"
	m "linkmend.dev/pkg/linkmend/internal/model"
)

// FixArgs contains the arguments for a repair run.
type FixArgs struct {
	Paths           []m.Path
	Exclude         []string
	Extensions      []string
	Registry        m.Path
	RequireRegistry bool
	DryRun          bool
	Threads         int
	Reports         m.Path
	Patterns        patterns.Options
}

// ScanArgs contains the arguments for a detect-only run.
type ScanArgs struct {
	Paths      []m.Path
	Exclude    []string
	Extensions []string
	Registry   m.Path
	Patterns   patterns.Options
}

// CheckArgs contains the arguments for link validation.
type CheckArgs struct {
	Paths      []m.Path
	Exclude    []string
	Extensions []string
	Registry   m.Path
	Root       m.Path
	ReportFile m.Path
	Schemes    []string
}

// IndexArgs contains the arguments for regenerating the registry listing.
type IndexArgs struct {
	Root       m.Path
	Extensions []string
	Listing    m.Path
}

// Workflow ties the repair engine to the filesystem, the registry store and
// the UI. All dependencies are injected; nothing here is process-global.
type Workflow interface {
	Fix(ctx context.Context, args FixArgs) error
	Scan(ctx context.Context, args ScanArgs) error
	Check(ctx context.Context, args CheckArgs) error
	Index(ctx context.Context, args IndexArgs) error
}

type workflow struct {
	fs            adapter.DocsFSAdapter
	registryStore adapter.RegistryStore
	reportStore   adapter.ReportStore
	ui            controller.UI
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(
	fs adapter.DocsFSAdapter,
	registryStore adapter.RegistryStore,
	reportStore adapter.ReportStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		fs:            fs,
		registryStore: registryStore,
		reportStore:   reportStore,
		ui:            ui,
	}
}

// targetFile is one candidate file with the metadata needed for write-back.
type targetFile struct {
	path m.Path
	mode os.FileMode
}

// Fix runs the full repair: load registry, enumerate files, scan+rewrite,
// write back changed files, persist and display the report. Per-file
// failures never abort the run.
func (w *workflow) Fix(ctx context.Context, args FixArgs) error {
	registry, err := w.loadRegistry(args.Registry, args.RequireRegistry)
	if err != nil {
		return err
	}

	files, err := w.collectTargets(args.Paths, args.Extensions, args.Exclude, args.Registry)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no target files found")
	}

	engine := NewEngine(NewScanner(patterns.New(args.Patterns)), registry)

	changes := make([]*m.FileChange, len(files))
	report := m.Report{FixesByKind: map[m.PatternKind]int{}}

	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workerLimit(args.Threads))

	for i, file := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			content, err := w.fs.ReadFile(file.path)
			if err != nil {
				slog.Warn("skipping unreadable file", "file", file.path, "error", err)
				mu.Lock()
				report.Failures = append(report.Failures, m.FileFailure{File: file.path, Stage: "read", Err: err.Error()})
				mu.Unlock()

				return nil
			}

			change := engine.RepairContent(file.path, content)

			if change.Modified() && !args.DryRun {
				if err := w.fs.WriteFile(file.path, change.Rewritten, file.mode); err != nil {
					slog.Warn("write-back failed", "file", file.path, "error", err)
					mu.Lock()
					report.Failures = append(report.Failures, m.FileFailure{File: file.path, Stage: "write", Err: err.Error()})
					mu.Unlock()

					return nil
				}
			}

			changes[i] = &change

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	for _, change := range changes {
		if change == nil {
			continue
		}

		report.FilesScanned++
		report.FixesApplied += len(change.Fixes)
		report.Unresolved = append(report.Unresolved, change.Unresolved...)

		for _, fix := range change.Fixes {
			report.FixesByKind[fix.Kind]++
		}

		if !change.Modified() {
			continue
		}

		report.FilesModified++

		if args.DryRun {
			w.ui.DisplayDiff(ctx, change.Path, unifiedDiff(*change))
		}
	}

	if !args.DryRun && args.Reports != "" {
		if err := w.reportStore.SaveReport(args.Reports, report); err != nil {
			slog.Warn("could not persist report", "dir", args.Reports, "error", err)
		}
	}

	w.ui.DisplayFixSummary(ctx, report, args.DryRun)

	return nil
}

// Scan detects broken shapes without modifying anything and hands the
// results to the UI.
func (w *workflow) Scan(ctx context.Context, args ScanArgs) error {
	registry, err := w.loadRegistry(args.Registry, false)
	if err != nil {
		return err
	}

	files, err := w.collectTargets(args.Paths, args.Extensions, args.Exclude, args.Registry)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no target files found")
	}

	scanner := NewScanner(patterns.New(args.Patterns))

	var (
		results    []m.FileMatches
		unresolved []m.UnresolvedLink
	)

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		content, err := w.fs.ReadFile(file.path)
		if err != nil {
			slog.Warn("skipping unreadable file", "file", file.path, "error", err)
			continue
		}

		matches := scanFile(scanner, string(content))
		if len(matches) == 0 {
			continue
		}

		results = append(results, m.FileMatches{File: file.path, Matches: matches})

		for _, match := range matches {
			if _, _, ok := resolve(registry, match); !ok {
				unresolved = append(unresolved, m.UnresolvedLink{
					File:     file.path,
					Line:     match.Line,
					Kind:     match.Kind,
					Filename: match.Filename,
					Raw:      match.Raw,
				})
			}
		}
	}

	return w.ui.DisplayScanResults(ctx, results, unresolved)
}

// Check validates well-formed links across the tree. It returns an error
// when findings exist so CI pipelines fail on broken links.
func (w *workflow) Check(ctx context.Context, args CheckArgs) error {
	registry, err := w.loadRegistry(args.Registry, false)
	if err != nil {
		return err
	}

	files, err := w.collectTargets(args.Paths, args.Extensions, args.Exclude, args.Registry)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no target files found")
	}

	checker := NewChecker(w.fs, registry, args.Root, args.Schemes)
	report := m.CheckReport{}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		content, err := w.fs.ReadFile(file.path)
		if err != nil {
			slog.Warn("skipping unreadable file", "file", file.path, "error", err)
			continue
		}

		findings, checked := checker.CheckContent(file.path, content)
		report.FilesChecked++
		report.LinksChecked += checked
		report.Findings = append(report.Findings, findings...)
	}

	if args.ReportFile != "" {
		rendered := RenderCheckReport(report)
		if err := w.fs.WriteFile(args.ReportFile, []byte(rendered), 0o600); err != nil {
			slog.Warn("could not write check report", "file", args.ReportFile, "error", err)
		}
	}

	w.ui.DisplayCheckReport(ctx, report)

	if len(report.Findings) > 0 {
		return fmt.Errorf("found %d broken links", len(report.Findings))
	}

	return nil
}

// Index regenerates the registry listing from the current tree.
func (w *workflow) Index(ctx context.Context, args IndexArgs) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var entries []m.PathEntry

	err := w.fs.Walk(args.Root, true, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || !hasExtension(path, args.Extensions) {
			return nil
		}

		if samePath(m.Path(path), args.Listing) {
			return nil
		}

		rel, err := w.fs.RelPath(args.Root, m.Path(path))
		if err != nil {
			return err
		}

		entries = append(entries, m.PathEntry{
			Filename:      filepath.Base(path),
			CanonicalPath: filepath.ToSlash(string(rel)),
		})

		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", args.Root, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CanonicalPath < entries[j].CanonicalPath
	})

	if err := w.registryStore.SaveEntries(args.Listing, entries); err != nil {
		return err
	}

	w.ui.DisplayIndexSummary(ctx, args.Listing, len(entries))

	return nil
}

// loadRegistry reads the listing and builds the registry. A missing or
// unreadable listing is not fatal unless required: the run continues with
// an empty registry, which simply disables registry-based rewrites.
func (w *workflow) loadRegistry(listing m.Path, required bool) (*Registry, error) {
	if listing == "" {
		if required {
			return nil, fmt.Errorf("registry listing required but not configured")
		}

		return NewRegistry(nil), nil
	}

	entries, err := w.registryStore.LoadEntries(listing)
	if err != nil {
		if required {
			return nil, fmt.Errorf("registry listing required: %w", err)
		}

		slog.Warn("continuing with empty registry", "listing", listing, "error", err)

		return NewRegistry(nil), nil
	}

	registry := NewRegistry(entries)
	slog.Debug("registry loaded", "listing", listing, "entries", registry.Len())

	return registry, nil
}

// collectTargets walks the given roots and selects candidate files by
// extension, minus excludes and the registry listing itself.
func (w *workflow) collectTargets(paths []m.Path, extensions, exclude []string, listing m.Path) ([]targetFile, error) {
	if len(paths) == 0 {
		paths = []m.Path{"."}
	}

	excludes, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)

	var files []targetFile

	for _, root := range paths {
		err := w.fs.Walk(root, true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() || !hasExtension(path, extensions) {
				return nil
			}

			if samePath(m.Path(path), listing) || seen[path] {
				return nil
			}

			for _, re := range excludes {
				if re.MatchString(path) {
					return nil
				}
			}

			seen[path] = true
			files = append(files, targetFile{path: m.Path(path), mode: info.Mode().Perm()})

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].path < files[j].path })

	return files, nil
}

// scanFile runs the scanner over every line of content, assigning line
// numbers.
func scanFile(scanner *Scanner, content string) []m.LinkMatch {
	var matches []m.LinkMatch

	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")

		found := scanner.Scan(line)
		for j := range found {
			found[j].Line = i + 1
		}

		matches = append(matches, found...)
	}

	return matches
}

func compileExcludes(exclude []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(exclude))

	for _, pattern := range exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		compiled = append(compiled, re)
	}

	return compiled, nil
}

func hasExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		extensions = patterns.DefaultOptions().Extensions
	}

	ext := strings.TrimPrefix(filepath.Ext(path), ".")

	for _, want := range extensions {
		if strings.EqualFold(ext, strings.TrimPrefix(want, ".")) {
			return true
		}
	}

	return false
}

func samePath(a, b m.Path) bool {
	if a == "" || b == "" {
		return false
	}

	return filepath.Clean(string(a)) == filepath.Clean(string(b))
}

func workerLimit(threads int) int {
	if threads < 1 {
		return 1
	}

	return threads
}

// unifiedDiff renders the would-be change of one file for dry runs.
func unifiedDiff(change m.FileChange) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(change.Original)),
		B:        difflib.SplitLines(string(change.Rewritten)),
		FromFile: string(change.Path),
		ToFile:   string(change.Path) + " (repaired)",
		Context:  2,
	})
	if err != nil {
		return fmt.Sprintf("diff failed: %v", err)
	}

	return diff
}
