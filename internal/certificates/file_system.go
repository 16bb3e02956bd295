package certificates

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/creachadair/atomicfile"
)

// FileSystem abstracts the file operations used around certificate installation.
type FileSystem interface {
	FileExists(path string) (bool, error)
	EnsureDirectory(path string, permissions fs.FileMode) error
	WriteFile(path string, content []byte, permissions fs.FileMode) error
}

// OperatingSystemFileSystem implements FileSystem on the local disk.
type OperatingSystemFileSystem struct{}

// NewOperatingSystemFileSystem constructs an OperatingSystemFileSystem.
func NewOperatingSystemFileSystem() OperatingSystemFileSystem {
	return OperatingSystemFileSystem{}
}

// FileExists reports whether path names an existing regular file.
func (OperatingSystemFileSystem) FileExists(path string) (bool, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if errors.Is(statErr, fs.ErrNotExist) {
			return false, nil
		}
		return false, statErr
	}
	if info.IsDir() {
		return false, fmt.Errorf("%s is a directory", path)
	}
	return true, nil
}

// EnsureDirectory creates path and its parents when missing.
func (OperatingSystemFileSystem) EnsureDirectory(path string, permissions fs.FileMode) error {
	return os.MkdirAll(path, permissions)
}

// WriteFile replaces path atomically, so readers never observe a partial file.
func (OperatingSystemFileSystem) WriteFile(path string, content []byte, permissions fs.FileMode) error {
	return atomicfile.WriteData(path, content, permissions)
}
