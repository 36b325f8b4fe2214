package adapter

import (
	"os"
	"path/filepath"
	"testing"

	m "linkmend.dev/pkg/linkmend/internal/model"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLocalRegistryStore_LoadEntries(t *testing.T) {
	store := NewLocalRegistryStore()

	t.Run("parses well-formed entries and skips the rest", func(t *testing.T) {
		root := t.TempDir()
		listing := filepath.Join(root, "file_list.md")
		writeTestFile(t, listing, ""+
			"a.md : [a.md](docs/a.md)\n"+
			"# a heading, not an entry\n"+
			"malformed line without link\n"+
			"b.mdc : [b.mdc](rules/b.mdc)\n"+
			"\n")

		entries, err := store.LoadEntries(m.Path(listing))
		if err != nil {
			t.Fatalf("LoadEntries() error = %v", err)
		}

		if len(entries) != 2 {
			t.Fatalf("entries = %+v, want 2", entries)
		}

		if entries[0].Filename != "a.md" || entries[0].CanonicalPath != "docs/a.md" {
			t.Errorf("first entry = %+v", entries[0])
		}

		if entries[1].Filename != "b.mdc" || entries[1].CanonicalPath != "rules/b.mdc" {
			t.Errorf("second entry = %+v", entries[1])
		}
	})

	t.Run("missing listing returns an error", func(t *testing.T) {
		if _, err := store.LoadEntries(m.Path(filepath.Join(t.TempDir(), "nope.md"))); err == nil {
			t.Fatal("expected error for missing listing")
		}
	})
}

func TestLocalRegistryStore_SaveEntries(t *testing.T) {
	store := NewLocalRegistryStore()

	t.Run("save and load round trip", func(t *testing.T) {
		root := t.TempDir()
		listing := filepath.Join(root, "nested", "file_list.md")

		in := []m.PathEntry{
			{Filename: "a.md", CanonicalPath: "docs/a.md"},
			{Filename: "b.md", CanonicalPath: "docs/sub/b.md"},
		}

		if err := store.SaveEntries(m.Path(listing), in); err != nil {
			t.Fatalf("SaveEntries() error = %v", err)
		}

		out, err := store.LoadEntries(m.Path(listing))
		if err != nil {
			t.Fatalf("LoadEntries() error = %v", err)
		}

		if len(out) != len(in) {
			t.Fatalf("round trip lost entries: %+v", out)
		}

		for i := range in {
			if out[i] != in[i] {
				t.Errorf("entry %d = %+v, want %+v", i, out[i], in[i])
			}
		}
	})

	t.Run("written lines use the listing shape", func(t *testing.T) {
		root := t.TempDir()
		listing := filepath.Join(root, "file_list.md")

		err := store.SaveEntries(m.Path(listing), []m.PathEntry{
			{Filename: "a.md", CanonicalPath: "docs/a.md"},
		})
		if err != nil {
			t.Fatalf("SaveEntries() error = %v", err)
		}

		data, _ := os.ReadFile(listing)
		if string(data) != "a.md : [a.md](docs/a.md)\n" {
			t.Errorf("listing = %q", data)
		}
	})
}
