package adapter

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	m "linkmend.dev/pkg/linkmend/internal/model"
)

// listingEntry parses one registry line: `filename : [filename](path)`.
// The third field is the canonical path.
var listingEntry = regexp.MustCompile(`^(.+?) : \[(.+?)\]\((.+?)\)\s*$`)

// RegistryStore loads and saves the filename listing that backs the path
// registry.
type RegistryStore interface {
	// LoadEntries parses the listing at path. Lines that do not match the
	// entry shape are skipped; a partially malformed listing still yields
	// whatever entries were parseable.
	LoadEntries(path m.Path) ([]m.PathEntry, error)

	// SaveEntries writes the listing, one entry per line, creating parent
	// directories as needed.
	SaveEntries(path m.Path, entries []m.PathEntry) error
}

// LocalRegistryStore is the concrete RegistryStore backed by the os package.
type LocalRegistryStore struct{}

// NewLocalRegistryStore constructs a LocalRegistryStore.
func NewLocalRegistryStore() *LocalRegistryStore {
	return &LocalRegistryStore{}
}

// LoadEntries reads and parses the listing file.
func (s *LocalRegistryStore) LoadEntries(path m.Path) ([]m.PathEntry, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return nil, fmt.Errorf("open registry listing: %w", err)
	}

	defer func() { _ = f.Close() }()

	var entries []m.PathEntry

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		groups := listingEntry.FindStringSubmatch(line)
		if groups == nil {
			continue
		}

		entries = append(entries, m.PathEntry{
			Filename:      groups[1],
			CanonicalPath: groups[3],
		})
	}

	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("read registry listing: %w", err)
	}

	return entries, nil
}

// SaveEntries writes the listing in the `filename : [filename](path)` shape
// the loader parses.
func (s *LocalRegistryStore) SaveEntries(path m.Path, entries []m.PathEntry) error {
	var b strings.Builder

	for _, entry := range entries {
		fmt.Fprintf(&b, "%s : [%s](%s)\n", entry.Filename, entry.Filename, entry.CanonicalPath)
	}

	if dir := filepath.Dir(string(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create listing directory: %w", err)
		}
	}

	if err := os.WriteFile(string(path), []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("write registry listing: %w", err)
	}

	return nil
}
