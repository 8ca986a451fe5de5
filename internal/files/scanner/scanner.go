package scanner

import (
	"fmt"
	"path/filepath"

	"github.com/vvka-141/qcsv/internal/files/filesystem"
	"github.com/vvka-141/qcsv/internal/files/loader"
	"github.com/vvka-141/qcsv/pkg/qcsv"
)

// Scanner implements qcsv.InputScanner.
// Scanner is safe for concurrent use as long as the provided fsProvider is.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a scanner over the OS filesystem.
func NewScanner() *Scanner {
	return &Scanner{fsProvider: filesystem.NewOSFileSystem()}
}

// NewScannerWithFS creates a scanner with a custom filesystem provider.
// Panics if fsProvider is nil.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{fsProvider: fsProvider}
}

// Expand resolves paths in argument order. A path that does not exist, or a
// directory that cannot be listed, yields an error wrapping qcsv.ErrIO.
// The same file named twice is converted twice.
func (s *Scanner) Expand(paths []string) ([]qcsv.InputFile, error) {
	var inputs []qcsv.InputFile

	for _, p := range paths {
		info, err := s.fsProvider.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %w", p, qcsv.ErrIO, err)
		}

		if !info.IsDir() {
			input, err := newInputFile(p)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, input)
			continue
		}

		found, err := s.expandDir(p)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, found...)
	}

	return inputs, nil
}

func (s *Scanner) expandDir(dir string) ([]qcsv.InputFile, error) {
	entries, err := s.fsProvider.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", dir, qcsv.ErrIO, err)
	}

	var inputs []qcsv.InputFile
	for _, entry := range entries {
		if entry.IsDir() || !loader.IsDataFile(entry.Name()) {
			continue
		}
		input, err := newInputFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

func newInputFile(path string) (qcsv.InputFile, error) {
	name, err := loader.TableName(path)
	if err != nil {
		return qcsv.InputFile{}, err
	}
	return qcsv.InputFile{Path: path, TableName: name}, nil
}

var _ qcsv.InputScanner = (*Scanner)(nil)
