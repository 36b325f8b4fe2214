package model

// Path represents a file system path.
type Path string

// PathEntry maps a bare filename to its canonical relative link path.
type PathEntry struct {
	Filename      string
	CanonicalPath string
}
