package adapter

import (
	"path/filepath"
	"testing"

	m "linkmend.dev/pkg/linkmend/internal/model"
)

func TestLocalReportStore(t *testing.T) {
	store := NewLocalReportStore()

	t.Run("save and load round trip", func(t *testing.T) {
		dir := m.Path(filepath.Join(t.TempDir(), "reports"))

		in := m.Report{
			FilesScanned:  4,
			FilesModified: 2,
			FixesApplied:  5,
			FixesByKind: map[m.PatternKind]int{
				m.KindSelfTarget:   3,
				m.KindDoubledParen: 2,
			},
			Unresolved: []m.UnresolvedLink{
				{File: "doc.md", Line: 7, Kind: m.KindSelfTarget, Filename: "ghost.md", Raw: "[ghost.md](ghost.md)"},
			},
		}

		if err := store.SaveReport(dir, in); err != nil {
			t.Fatalf("SaveReport() error = %v", err)
		}

		out, err := store.LoadReport(dir)
		if err != nil {
			t.Fatalf("LoadReport() error = %v", err)
		}

		if out.FixesApplied != in.FixesApplied || out.FilesModified != in.FilesModified {
			t.Errorf("LoadReport() = %+v", out)
		}

		if out.FixesByKind[m.KindSelfTarget] != 3 {
			t.Errorf("FixesByKind = %+v", out.FixesByKind)
		}

		if len(out.Unresolved) != 1 || out.Unresolved[0].Filename != "ghost.md" {
			t.Errorf("Unresolved = %+v", out.Unresolved)
		}
	})

	t.Run("load from empty directory fails", func(t *testing.T) {
		if _, err := store.LoadReport(m.Path(t.TempDir())); err == nil {
			t.Fatal("expected error when no report exists")
		}
	})
}
