package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// FileSystemProvider gives read access to input files and directories.
type FileSystemProvider interface {
	// Open opens a regular file for reading. The caller must close it.
	// Errors for missing files wrap fs.ErrNotExist.
	Open(path string) (io.ReadCloser, error)

	// ReadDir returns the entries directly inside a directory, sorted by name.
	ReadDir(path string) ([]FileInfo, error)

	// Stat returns file information for the given path.
	Stat(path string) (FileInfo, error)
}
