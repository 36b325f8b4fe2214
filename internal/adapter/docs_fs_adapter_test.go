package adapter

import (
	"os"
	"path/filepath"
	"testing"

	m "linkmend.dev/pkg/linkmend/internal/model"
)

func mustMkdir(t *testing.T, dir string) {
	t.Helper()

	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
}

func containsPath(paths []string, want string) bool {
	for _, p := range paths {
		if p == want {
			return true
		}
	}

	return false
}

func collectWalk(t *testing.T, a *LocalDocsFSAdapter, root string, recursive bool) []string {
	t.Helper()

	var visited []string

	err := a.Walk(m.Path(root), recursive, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		visited = append(visited, path)

		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	return visited
}

func TestLocalDocsFSAdapter_Walk(t *testing.T) {
	t.Run("non recursive skips nested files", func(t *testing.T) {
		a := NewLocalDocsFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "top.md"), "# top\n")

		nested := filepath.Join(root, "nested")
		mustMkdir(t, nested)
		writeTestFile(t, filepath.Join(nested, "child.md"), "# child\n")

		visited := collectWalk(t, a, root, false)

		if containsPath(visited, filepath.Join(nested, "child.md")) {
			t.Fatal("Walk() visited nested file when recursive is false")
		}

		if !containsPath(visited, filepath.Join(root, "top.md")) {
			t.Fatal("Walk() did not visit top-level file")
		}
	})

	t.Run("recursive visits nested files but never VCS dirs", func(t *testing.T) {
		a := NewLocalDocsFSAdapter()

		root := t.TempDir()

		nested := filepath.Join(root, "docs")
		mustMkdir(t, nested)
		writeTestFile(t, filepath.Join(nested, "child.md"), "# child\n")

		gitDir := filepath.Join(root, ".git")
		mustMkdir(t, gitDir)
		writeTestFile(t, filepath.Join(gitDir, "config.md"), "fake\n")

		visited := collectWalk(t, a, root, true)

		if !containsPath(visited, filepath.Join(nested, "child.md")) {
			t.Fatal("Walk() did not visit nested file when recursive")
		}

		if containsPath(visited, filepath.Join(gitDir, "config.md")) {
			t.Fatal("Walk() descended into .git")
		}
	})
}

func TestLocalDocsFSAdapter_ReadWrite(t *testing.T) {
	a := NewLocalDocsFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "doc.md")
	content := "# doc\n[a.md](docs/a.md)\n"
	writeTestFile(t, path, content)

	got, err := a.ReadFile(m.Path(path))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(got) != content {
		t.Fatalf("ReadFile() = %q, want %q", got, content)
	}

	updated := "# doc\n[a.md](docs/sub/a.md)\n"
	if err := a.WriteFile(m.Path(path), []byte(updated), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, _ = a.ReadFile(m.Path(path))
	if string(got) != updated {
		t.Fatalf("after WriteFile() = %q, want %q", got, updated)
	}
}

func TestLocalDocsFSAdapter_Paths(t *testing.T) {
	a := NewLocalDocsFSAdapter()

	rel, err := a.RelPath("/base", "/base/docs/a.md")
	if err != nil {
		t.Fatalf("RelPath() error = %v", err)
	}

	if rel != m.Path(filepath.Join("docs", "a.md")) {
		t.Errorf("RelPath() = %q", rel)
	}

	if got := a.JoinPath("docs", "a.md"); got != m.Path(filepath.Join("docs", "a.md")) {
		t.Errorf("JoinPath() = %q", got)
	}
}
