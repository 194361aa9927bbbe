package testutil

import (
	"io/fs"
	"path/filepath"
	"sync"
	"time"
)

// MemoryFS implements types.FS with in-memory storage
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool

	// Error injection: operations touching these paths fail
	errorPaths map[string]error

	writeCount int
}

// NewMemoryFS creates a new in-memory filesystem
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		files:      make(map[string][]byte),
		dirs:       map[string]bool{"/": true},
		errorPaths: make(map[string]error),
	}
}

// WithFile seeds the filesystem with a file and returns the MemoryFS for chaining
func (m *MemoryFS) WithFile(name string, content []byte) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[filepath.Clean(name)] = content
	return m
}

// FailWith injects an error for every operation touching the given path
func (m *MemoryFS) FailWith(name string, err error) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorPaths[filepath.Clean(name)] = err
	return m
}

// WriteCount returns the number of WriteFile calls made so far
func (m *MemoryFS) WriteCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writeCount
}

func (m *MemoryFS) injected(name string) error {
	if err, ok := m.errorPaths[filepath.Clean(name)]; ok {
		return err
	}
	return nil
}

func (m *MemoryFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.injected(name); err != nil {
		return nil, err
	}
	name = filepath.Clean(name)
	if content, ok := m.files[name]; ok {
		return &memFileInfo{name: filepath.Base(name), size: int64(len(content))}, nil
	}
	if m.dirs[name] {
		return &memFileInfo{name: filepath.Base(name), isDir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}

func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.injected(name); err != nil {
		return nil, err
	}
	content, ok := m.files[filepath.Clean(name)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	out := make([]byte, len(content))
	copy(out, content)
	return out, nil
}

func (m *MemoryFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected(name); err != nil {
		return err
	}
	m.writeCount++
	m.files[filepath.Clean(name)] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryFS) MkdirAll(path string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected(path); err != nil {
		return err
	}
	for p := filepath.Clean(path); p != "/" && p != "."; p = filepath.Dir(p) {
		m.dirs[p] = true
	}
	return nil
}

func (m *MemoryFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected(name); err != nil {
		return err
	}
	name = filepath.Clean(name)
	if _, ok := m.files[name]; !ok {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	delete(m.files, name)
	return nil
}

// memFileInfo is a minimal fs.FileInfo for in-memory entries
type memFileInfo struct {
	name  string
	size  int64
	isDir bool
}

func (fi *memFileInfo) Name() string       { return fi.name }
func (fi *memFileInfo) Size() int64        { return fi.size }
func (fi *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (fi *memFileInfo) ModTime() time.Time { return time.Time{} }
func (fi *memFileInfo) IsDir() bool        { return fi.isDir }
func (fi *memFileInfo) Sys() interface{}   { return nil }
