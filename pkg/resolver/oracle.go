package resolver

import "path/filepath"

// Oracle answers file-existence queries during resolution. The oracle must
// be frozen before resolution starts; resolvers only read it.
type Oracle interface {
	Exists(path string) bool
}

// FileSet is an Oracle over a fixed set of paths.
type FileSet struct {
	paths map[string]bool
}

// NewFileSet builds an oracle from the scanned file list. Paths are
// normalized with filepath.Clean.
func NewFileSet(paths []string) *FileSet {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[filepath.Clean(p)] = true
	}
	return &FileSet{paths: set}
}

// Exists implements Oracle.
func (s *FileSet) Exists(path string) bool {
	return s.paths[filepath.Clean(path)]
}

// Len returns the number of known files.
func (s *FileSet) Len() int {
	return len(s.paths)
}

var _ Oracle = (*FileSet)(nil)
