package loader

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/vvka-141/qcsv/pkg/qcsv"
)

var compressionExts = []string{".gz", ".zst"}

// DataExts lists the extensions recognized as delimited input.
var DataExts = []string{".csv", ".tsv", ".tab"}

// TableName derives a table name from an input path: the base name with its
// compression extension and then its data extension removed.
//
//	people.csv       -> people
//	exports/q3.tsv   -> q3
//	people.csv.gz    -> people
//	archive.tar.csv  -> archive.tar
func TableName(path string) (string, error) {
	base := filepath.Base(path)
	if ext := compressionExt(base); ext != "" {
		base = strings.TrimSuffix(base, base[len(base)-len(ext):])
	}

	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" {
		// Dot files have no extension: ".csv" stays ".csv"
		name = base
	}

	if !utf8.ValidString(name) {
		return "", fmt.Errorf("%s: table name is not valid UTF-8: %w", path, qcsv.ErrIO)
	}
	return name, nil
}

// IsDataFile reports whether a file name has a recognized delimited
// extension, optionally followed by a compression extension.
func IsDataFile(name string) bool {
	ext := dataExt(name)
	for _, e := range DataExts {
		if ext == e {
			return true
		}
	}
	return false
}

// compressionExt returns the compression extension of path (lower case), or "".
func compressionExt(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range compressionExts {
		if ext == e {
			return ext
		}
	}
	return ""
}

// dataExt returns the lower-case extension of path after removing any
// compression extension.
func dataExt(path string) string {
	if ext := compressionExt(path); ext != "" {
		path = path[:len(path)-len(ext)]
	}
	return strings.ToLower(filepath.Ext(path))
}
