package source

import (
	"fmt"
	"os"
	"sync"
)

// ContentSource provides file content from a specific source.
type ContentSource interface {
	// Read returns the content of the file at path.
	Read(path string) ([]byte, error)
}

// FilesystemSource reads files from the local filesystem.
type FilesystemSource struct{}

// NewFilesystem creates a source that reads from the filesystem.
func NewFilesystem() *FilesystemSource {
	return &FilesystemSource{}
}

// Read implements ContentSource.
func (f *FilesystemSource) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// MapSource serves content from an in-memory map, keyed by path.
// It is safe for concurrent use by multiple goroutines.
type MapSource struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMap creates a source backed by the given path -> content map.
func NewMap(files map[string][]byte) *MapSource {
	if files == nil {
		files = make(map[string][]byte)
	}
	return &MapSource{files: files}
}

// Add inserts or replaces the content for path.
func (m *MapSource) Add(path string, content []byte) {
	m.mu.Lock()
	m.files[path] = content
	m.mu.Unlock()
}

// Read implements ContentSource.
func (m *MapSource) Read(path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	content, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("no content for %s", path)
	}
	return content, nil
}
