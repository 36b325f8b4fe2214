package model

// AppliedFix records one rewrite made to a line.
type AppliedFix struct {
	Kind        PatternKind `yaml:"kind"`
	Line        int         `yaml:"line"`
	Original    string      `yaml:"original"`
	Replacement string      `yaml:"replacement"`
	Filename    string      `yaml:"filename"`
}

// UnresolvedLink is a detected broken shape whose filename has no registry
// entry. It is reported and left unmodified in the file.
type UnresolvedLink struct {
	File     Path        `yaml:"file"`
	Line     int         `yaml:"line"`
	Kind     PatternKind `yaml:"kind"`
	Filename string      `yaml:"filename"`
	Raw      string      `yaml:"raw"`
}

// FileChange holds the outcome of processing a single file. It is owned by
// the repair run for the duration of that file and discarded afterwards.
type FileChange struct {
	Path       Path
	Original   []byte
	Rewritten  []byte
	Fixes      []AppliedFix
	Unresolved []UnresolvedLink
}

// Modified reports whether the rewritten content differs from the original.
func (c FileChange) Modified() bool {
	return string(c.Original) != string(c.Rewritten)
}

// FileMatches holds the detect-only scan result for a single file.
type FileMatches struct {
	File    Path
	Matches []LinkMatch
}

// FileFailure records a file that could not be read or written back.
type FileFailure struct {
	File  Path   `yaml:"file"`
	Stage string `yaml:"stage"` // "read" or "write"
	Err   string `yaml:"error"`
}

// Report summarizes one repair run.
type Report struct {
	FilesScanned  int                 `yaml:"files_scanned"`
	FilesModified int                 `yaml:"files_modified"`
	FixesApplied  int                 `yaml:"fixes_applied"`
	FixesByKind   map[PatternKind]int `yaml:"fixes_by_kind,omitempty"`
	Failures      []FileFailure       `yaml:"failures,omitempty"`
	Unresolved    []UnresolvedLink    `yaml:"unresolved,omitempty"`
}

// CheckFinding is one link that failed validation: its target resolves
// neither on disk nor through the registry.
type CheckFinding struct {
	File   Path   `yaml:"file"`
	Line   int    `yaml:"line"`
	Text   string `yaml:"text"`
	Target string `yaml:"target"`
}

// CheckReport summarizes a link validation run.
type CheckReport struct {
	FilesChecked int            `yaml:"files_checked"`
	LinksChecked int            `yaml:"links_checked"`
	Findings     []CheckFinding `yaml:"findings,omitempty"`
}
