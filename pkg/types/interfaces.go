package types

import (
	"io/fs"
)

// FS is the filesystem interface required for annix operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Other operations
	Remove(name string) error
}
