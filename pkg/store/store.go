// Package store is the persistence boundary for the managed Nix file. It
// reads and writes the raw line buffer through a types.FS, wrapping I/O
// failures with path context. It never retries: a failed read or write
// aborts the current operation.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/annix/pkg/errors"
	"github.com/arthur-debert/annix/pkg/logging"
	"github.com/arthur-debert/annix/pkg/nixfile"
	"github.com/arthur-debert/annix/pkg/types"
)

// Store reads and writes one managed file
type Store struct {
	fs   types.FS
	path string
}

// New creates a store for the file at path
func New(fs types.FS, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Path returns the managed file path
func (s *Store) Path() string {
	return s.path
}

// Read loads the managed file into a line buffer
func (s *Store) Read() (*nixfile.Buffer, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, errors.Wrapf(err, errors.ErrPermission, "permission denied - cannot read %s", s.path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", s.path)
	}
	return nixfile.FromBytes(data), nil
}

// Write persists the line buffer back to the managed file
func (s *Store) Write(buf *nixfile.Buffer) error {
	logger := logging.GetLogger("store")

	if err := s.fs.WriteFile(s.path, buf.Bytes(), 0644); err != nil {
		if os.IsPermission(err) {
			return errors.Wrapf(err, errors.ErrPermission, "permission denied - cannot write to %s", s.path)
		}
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to save %s", s.path)
	}

	logger.Debug().Str("path", s.path).Int("lines", buf.Len()).Msg("File written")
	return nil
}

// SavePath returns the destination for a named copy of the managed file:
// an_<name>.nix in the same directory. The name has whitespace squashed.
func (s *Store) SavePath(name string) (string, error) {
	name = strings.Join(strings.Fields(name), "")
	if name == "" {
		return "", errors.New(errors.ErrInvalidInput, "save name must not be empty")
	}
	return filepath.Join(filepath.Dir(s.path), fmt.Sprintf("an_%s.nix", name)), nil
}

// Exists reports whether the given path exists
func (s *Store) Exists(path string) bool {
	_, err := s.fs.Stat(path)
	return err == nil
}

// SaveAs copies the managed file's current content to dest
func (s *Store) SaveAs(dest string) error {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if os.IsPermission(err) {
			return errors.Wrapf(err, errors.ErrPermission, "permission denied - cannot read %s", s.path)
		}
		return errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", s.path)
	}
	if err := s.fs.WriteFile(dest, data, 0644); err != nil {
		if os.IsPermission(err) {
			return errors.Wrapf(err, errors.ErrPermission, "permission denied - cannot write to %s", dest)
		}
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to save %s", dest)
	}
	return nil
}
